// authctl es la CLI operativa: siembra el usuario de ejemplo, emite
// tokens de prueba y desbloquea cuentas trabadas por el lockout.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/praphull/authd/internal/config"
	"github.com/praphull/authd/internal/domain/repository"
	"github.com/praphull/authd/internal/store"
	"github.com/praphull/authd/internal/token"
)

func main() {
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:           "authctl",
		Short:         "CLI operativa de authd",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "ruta al YAML de configuración")

	loadConfig := func() (*config.Config, error) {
		return config.Load(configPath)
	}

	openStore := func(ctx context.Context, cfg *config.Config) (repository.UserRepository, func(), error) {
		return store.Open(ctx, cfg)
	}

	// ── seed ──
	var (
		seedEmail    string
		seedPassword string
		seedName     string
		seedPhone    string
		seedDigitsID int64
	)
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea el usuario de ejemplo para desarrollo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			repo, cleanup, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			in := repository.CreateUserInput{
				Name:     seedName,
				Email:    seedEmail,
				Password: seedPassword,
				Phone:    seedPhone,
				Status:   "active",
			}
			if seedDigitsID != 0 {
				in.DigitsID = &seedDigitsID
			}

			u, err := repo.Create(ctx, in)
			if err != nil {
				if repository.IsConflict(err) {
					return fmt.Errorf("el email %s ya existe", seedEmail)
				}
				return err
			}
			fmt.Printf("usuario creado: %s (%s)\n", u.ID, u.Email)
			return nil
		},
	}
	seedCmd.Flags().StringVar(&seedEmail, "email", "debug@praphull.com", "email del usuario")
	seedCmd.Flags().StringVar(&seedPassword, "password", "password", "password en claro (se hashea al guardar)")
	seedCmd.Flags().StringVar(&seedName, "name", "Praphull Purohit", "nombre completo")
	seedCmd.Flags().StringVar(&seedPhone, "phone", "+91-1234567890", "teléfono")
	seedCmd.Flags().Int64Var(&seedDigitsID, "digits-id", 12345678, "id del provider externo (0 = sin vincular)")

	// ── token ──
	var (
		tokenClient string
		tokenUID    string
		tokenCTZ    string
	)
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un token de prueba con la clave mocha",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			codec := token.New(token.Config{
				Secret:    cfg.JWT.Secret,
				Issuer:    cfg.App.Domain,
				AuthKey:   cfg.Security.AuthKey,
				MochaKey:  cfg.Security.MochaKey,
				AuthTTL:   cfg.AuthTokenTTL(),
				UnauthTTL: cfg.UnauthTokenTTL(),
			})

			ctz := tokenCTZ
			if ctz == "" {
				ctz = cfg.App.DefaultTimezone
			}

			var tk string
			if tokenUID != "" {
				tk, err = codec.IssueAuthenticated(tokenClient, tokenUID, ctz, cfg.Security.MochaKey)
			} else {
				tk, err = codec.IssueUnauthenticated(tokenClient, ctz, cfg.Security.MochaKey)
			}
			if err != nil {
				return err
			}
			fmt.Println(tk)
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&tokenClient, "client", token.ClientMocha, "client del token (la clave mocha solo emite para mocha)")
	tokenCmd.Flags().StringVar(&tokenUID, "uid", "", "uid del token; vacío emite uno anónimo")
	tokenCmd.Flags().StringVar(&tokenCTZ, "ctz", "", "timezone ±HH:MM (default: el configurado)")

	// ── unlock ──
	var unlockEmail string
	unlockCmd := &cobra.Command{
		Use:   "unlock",
		Short: "Desbloquea una cuenta trabada por intentos fallidos",
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(strings.ToLower(unlockEmail))
			if email == "" {
				return fmt.Errorf("falta --email")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			repo, cleanup, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := repo.GetByEmail(ctx, email)
			if err != nil {
				if repository.IsNotFound(err) {
					return fmt.Errorf("no existe usuario con email %s", email)
				}
				return err
			}
			if err := repo.ResetLoginAttempts(ctx, u.ID, 0); err != nil {
				return err
			}
			fmt.Printf("cuenta %s desbloqueada (tenía %d intentos)\n", email, u.LoginAttempts)
			return nil
		},
	}
	unlockCmd.Flags().StringVar(&unlockEmail, "email", "", "email de la cuenta a desbloquear")

	root.AddCommand(seedCmd, tokenCmd, unlockCmd)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
