package auth

import (
	"context"
	"errors"
	"strings"

	authcore "github.com/praphull/authd/internal/auth"
	dto "github.com/praphull/authd/internal/http/dto/auth"
	"github.com/praphull/authd/internal/metrics"
	"github.com/praphull/authd/internal/observability/logger"
	"github.com/praphull/authd/internal/token"
)

// LoginDeps contiene las dependencias para el login service.
type LoginDeps struct {
	Authenticator *authcore.PasswordAuthenticator
	Codec         *token.Codec
	// IssuanceKey es la clave de producción con la que el servicio
	// emite tokens a su propio nombre.
	IssuanceKey string
	// DefaultTZ es el ctz cuando el cliente no manda offset.
	DefaultTZ string
}

type loginService struct {
	deps LoginDeps
}

// NewLoginService crea un nuevo servicio de login con password.
func NewLoginService(deps LoginDeps) LoginService {
	return &loginService{deps: deps}
}

func (s *loginService) LoginPassword(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("LoginPassword"),
	)

	// Paso 0: Normalización
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Client = strings.TrimSpace(in.Client)

	if in.Email == "" || in.Password == "" {
		return nil, ErrInvalidCredentials
	}

	// Paso 1: El login con password es exclusivo de la app mobile.
	if in.Client != token.ClientAndroid {
		log.Debug("client no habilitado para login", logger.Client(in.Client))
		metrics.LoginAttempts.WithLabelValues("password", "invalid_client").Inc()
		return nil, ErrInvalidClientLogin
	}

	// Paso 2: Verificar credenciales con política de lockout.
	user, reason, err := s.deps.Authenticator.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		log.Error("fallo de storage durante autenticación", logger.Err(err))
		return nil, err
	}

	switch reason {
	case authcore.ReasonNone:
		// sigue abajo
	case authcore.ReasonMaxAttempts:
		log.Info("cuenta bloqueada por intentos excesivos", logger.Email(in.Email))
		metrics.LoginAttempts.WithLabelValues("password", "locked").Inc()
		return nil, ErrMaxAttempts
	default:
		// NOT_FOUND y PASSWORD_INCORRECT colapsan hacia afuera.
		log.Debug("credenciales inválidas", logger.Reason(reason.String()))
		metrics.LoginAttempts.WithLabelValues("password", "invalid_credentials").Inc()
		return nil, ErrInvalidCredentials
	}

	log = log.With(logger.UserID(user.ID))

	// Paso 3: Emitir token autenticado con el ctz del cliente.
	ctz := clientTZ(in.CTZOffset, s.deps.DefaultTZ)
	tk, err := s.deps.Codec.IssueAuthenticated(in.Client, user.ID, ctz, s.deps.IssuanceKey)
	if err != nil {
		log.Error("no se pudo emitir el token", logger.Err(err))
		if errors.Is(err, token.ErrInvalidKey) || errors.Is(err, token.ErrTestKeyMisuse) {
			return nil, err
		}
		return nil, ErrTokenIssueFailed
	}

	log.Info("login exitoso")
	metrics.LoginAttempts.WithLabelValues("password", "success").Inc()

	return &dto.LoginResult{
		UserID:      user.ID,
		PhoneNumber: user.Phone,
		DigitsID:    user.DigitsID,
		Token:       tk,
	}, nil
}
