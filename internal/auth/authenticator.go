package auth

import (
	"context"
	"strings"

	"github.com/praphull/authd/internal/domain/repository"
	"github.com/praphull/authd/internal/observability/logger"
	"github.com/praphull/authd/internal/security/password"
)

// FailureReason es el motivo interno de rechazo de una autenticación por
// password. Es un enum cerrado; cada consumer hace match exhaustivo.
type FailureReason int

const (
	ReasonNone FailureReason = iota
	ReasonNotFound
	ReasonPasswordIncorrect
	ReasonMaxAttempts
)

// String para logs internos. Hacia el caller NOT_FOUND y PASSWORD_INCORRECT
// se colapsan en el mismo errcode; acá se distinguen para operar.
func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNotFound:
		return "not_found"
	case ReasonPasswordIncorrect:
		return "password_incorrect"
	case ReasonMaxAttempts:
		return "max_attempts"
	default:
		return "unknown"
	}
}

// PasswordAuthenticator verifica credenciales email+password aplicando la
// política de lockout.
type PasswordAuthenticator struct {
	Users   repository.UserRepository
	Lockout *LockoutPolicy
}

// NewPasswordAuthenticator arma el verificador con la política por defecto.
func NewPasswordAuthenticator(users repository.UserRepository) *PasswordAuthenticator {
	return &PasswordAuthenticator{Users: users, Lockout: NewLockoutPolicy()}
}

// Authenticate busca la identidad y compara el secreto.
//
// Resultado: (user, ReasonNone, nil) en éxito; (nil, reason, nil) en los
// rechazos esperados; err solo ante fallas inesperadas de storage.
//
// Identidades desconocidas no dejan rastro: no hay registro que mutar y no
// se trackean intentos para emails inexistentes.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, plain string) (*repository.User, FailureReason, error) {
	log := logger.From(ctx).With(
		logger.Layer("core"),
		logger.Component("auth.password"),
		logger.Op("Authenticate"),
	)

	email = strings.TrimSpace(strings.ToLower(email))

	u, err := a.Users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Debug("user not found")
			return nil, ReasonNotFound, nil
		}
		return nil, ReasonNone, err
	}

	// Cuenta bloqueada: se incrementa el contador sin comparar el secreto.
	if a.Lockout.IsLocked(u) {
		log.Info("account locked, attempt counted",
			logger.UserID(u.ID), logger.Attempts(u.LoginAttempts))
		if err := a.Lockout.OnFailure(ctx, a.Users, u); err != nil {
			return nil, ReasonNone, err
		}
		return nil, ReasonMaxAttempts, nil
	}

	if !password.Verify(plain, u.PasswordHash) {
		log.Debug("password check failed", logger.UserID(u.ID))
		if err := a.Lockout.OnFailure(ctx, a.Users, u); err != nil {
			return nil, ReasonNone, err
		}
		return nil, ReasonPasswordIncorrect, nil
	}

	if err := a.Lockout.OnSuccess(ctx, a.Users, u); err != nil {
		return nil, ReasonNone, err
	}

	log.Debug("password check ok", logger.UserID(u.ID))
	return u, ReasonNone, nil
}
