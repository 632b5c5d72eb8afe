package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/praphull/authd/internal/cache"
	"github.com/praphull/authd/internal/digits"
	"github.com/praphull/authd/internal/domain/repository"
	dto "github.com/praphull/authd/internal/http/dto/auth"
	"github.com/praphull/authd/internal/metrics"
	"github.com/praphull/authd/internal/observability/logger"
	"github.com/praphull/authd/internal/token"
)

// Headers del flujo delegado (OAuth Echo).
const (
	HeaderCredentials = "X-Verify-Credentials-Authorization"
	HeaderProvider    = "X-Auth-Service-Provider"
)

// DigitsDeps contiene las dependencias del servicio delegado.
type DigitsDeps struct {
	Users    repository.UserRepository
	Verifier digits.Verifier
	Codec    *token.Codec
	// Cache absorbe reintentos del cliente; nil = sin cache.
	Cache    cache.Client
	CacheTTL time.Duration

	IssuanceKey string
	DefaultTZ   string
	// ConsumerKey es la clave OAuth que el assertion debe declarar.
	ConsumerKey string
	// AllowedHosts son los hostnames de provider confiables.
	AllowedHosts []string
}

type digitsService struct {
	deps DigitsDeps
}

// NewDigitsService crea el servicio de autenticación delegada.
func NewDigitsService(deps DigitsDeps) DigitsService {
	return &digitsService{deps: deps}
}

func (s *digitsService) LoginDigits(ctx context.Context, in DigitsInput) (*dto.DigitsResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.digits"),
		logger.Op("LoginDigits"),
	)

	// Paso 1: Headers presentes.
	var missing []string
	if strings.TrimSpace(in.Credentials) == "" {
		missing = append(missing, HeaderCredentials)
	}
	if strings.TrimSpace(in.ProviderURL) == "" {
		missing = append(missing, HeaderProvider)
	}
	if len(missing) > 0 {
		log.Debug("faltan headers de autenticación delegada")
		metrics.LoginAttempts.WithLabelValues("digits", "missing_headers").Inc()
		return nil, &MissingHeadersError{Headers: missing}
	}

	// Paso 2: El assertion debe declarar nuestra consumer key. Un key
	// ajeno significa credenciales emitidas para otra app.
	want := fmt.Sprintf("oauth_consumer_key=%q", s.deps.ConsumerKey)
	if !strings.Contains(in.Credentials, want) {
		log.Info("consumer key no reconocida en el assertion")
		metrics.LoginAttempts.WithLabelValues("digits", "untrusted_provider").Inc()
		return nil, ErrUntrustedProvider
	}

	// Paso 3: El hostname del provider tiene que estar en la allow-list;
	// si no, cualquiera podría apuntarnos a un verificador propio.
	u, err := url.Parse(in.ProviderURL)
	if err != nil || !s.hostAllowed(u.Hostname()) {
		log.Info("hostname del provider no confiable",
			logger.String("provider_url", in.ProviderURL))
		metrics.LoginAttempts.WithLabelValues("digits", "untrusted_provider").Inc()
		return nil, ErrUntrustedProvider
	}

	// Paso 4: Sólo la app mobile usa el flujo delegado.
	if strings.TrimSpace(in.Client) != token.ClientAndroid {
		log.Debug("client no habilitado para digits", logger.Client(in.Client))
		metrics.LoginAttempts.WithLabelValues("digits", "invalid_client").Inc()
		return nil, ErrInvalidClientLogin
	}

	// Paso 5: Verificar contra el provider (con cache corto de reintentos).
	acc, err := s.verify(ctx, in.ProviderURL, in.Credentials)
	if err != nil {
		log.Warn("verificación contra el provider falló", logger.Err(err))
		metrics.LoginAttempts.WithLabelValues("digits", "provider_failed").Inc()
		return nil, ErrProviderFailed
	}

	log = log.With(logger.DigitsID(acc.ID))

	// Paso 6: Vincular con la cuenta local.
	user, err := s.deps.Users.GetByDigitsID(ctx, acc.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Info("identidad verificada sin cuenta local")
			metrics.LoginAttempts.WithLabelValues("digits", "not_linked").Inc()
			return nil, ErrNotLinked
		}
		log.Error("fallo de storage buscando por digitsId", logger.Err(err))
		return nil, err
	}

	// Paso 7: Emitir token autenticado.
	ctz := clientTZ(in.CTZOffset, s.deps.DefaultTZ)
	tk, err := s.deps.Codec.IssueAuthenticated(in.Client, user.ID, ctz, s.deps.IssuanceKey)
	if err != nil {
		log.Error("no se pudo emitir el token", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	log.Info("login delegado exitoso", logger.UserID(user.ID))
	metrics.LoginAttempts.WithLabelValues("digits", "success").Inc()

	return &dto.DigitsResult{
		UserID:      user.ID,
		PhoneNumber: acc.PhoneNumber,
		DigitsID:    acc.ID,
		Email:       user.Email,
		Token:       tk,
	}, nil
}

func (s *digitsService) hostAllowed(host string) bool {
	for _, h := range s.deps.AllowedHosts {
		if strings.EqualFold(h, host) {
			return true
		}
	}
	return false
}

// verify consulta el provider, con un cache corto keado por hash de las
// credenciales para absorber reintentos inmediatos del cliente.
func (s *digitsService) verify(ctx context.Context, providerURL, credentials string) (*digits.Account, error) {
	// Sin TTL no se cachea: una entrada sin expiración dejaría
	// credenciales viejas válidas para siempre.
	useCache := s.deps.Cache != nil && s.deps.CacheTTL > 0

	var key string
	if useCache {
		sum := sha256.Sum256([]byte(credentials))
		key = "digits:verify:" + hex.EncodeToString(sum[:])
		if raw, err := s.deps.Cache.Get(ctx, key); err == nil {
			var acc digits.Account
			if json.Unmarshal([]byte(raw), &acc) == nil {
				return &acc, nil
			}
		}
	}

	start := time.Now()
	acc, err := s.deps.Verifier.Verify(ctx, providerURL, credentials)
	metrics.ProviderLatency.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, err
	}

	if useCache {
		if raw, merr := json.Marshal(acc); merr == nil {
			_ = s.deps.Cache.Set(ctx, key, string(raw), s.deps.CacheTTL)
		}
	}
	return acc, nil
}
