// migrate aplica las migraciones embebidas del esquema con goose.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/praphull/authd/internal/config"
	"github.com/praphull/authd/internal/store/migrations"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "ruta al YAML de configuración")
	flag.Parse()

	_ = godotenv.Load()

	// Acciones: up (default) | down | status
	action := "up"
	if args := flag.Args(); len(args) > 0 {
		action = args[0]
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Storage.Driver != "postgres" {
		log.Fatalf("las migraciones solo aplican al driver postgres (configurado: %q)", cfg.Storage.Driver)
	}

	db, err := sql.Open("pgx", cfg.Storage.DSN)
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("goose dialect: %v", err)
	}

	ctx := context.Background()
	switch action {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	default:
		fmt.Fprintf(os.Stderr, "acción desconocida %q (up|down|status)\n", action)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("goose %s: %v", action, err)
	}
}
