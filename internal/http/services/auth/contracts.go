// Package auth contiene los servicios de autenticación: login con
// password, login delegado (Digits) y skip login. Los controllers
// validan el transporte; acá vive la lógica de negocio.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	dto "github.com/praphull/authd/internal/http/dto/auth"
	"github.com/praphull/authd/internal/timezone"
)

// LoginService autentica credenciales email/password.
type LoginService interface {
	LoginPassword(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error)
}

// DigitsService autentica credenciales delegadas del proveedor.
type DigitsService interface {
	LoginDigits(ctx context.Context, in DigitsInput) (*dto.DigitsResult, error)
}

// SkipService emite tokens anónimos.
type SkipService interface {
	SkipLogin(ctx context.Context, in dto.SkipRequest) (string, error)
}

// DigitsInput junta body y headers del flujo delegado.
type DigitsInput struct {
	Client      string
	CTZOffset   string
	Credentials string // X-Verify-Credentials-Authorization, verbatim
	ProviderURL string // X-Auth-Service-Provider
	RemoteAddr  string
}

// Errores de los servicios de autenticación. El controller los mapea
// a errcodes estables.
var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrMaxAttempts        = fmt.Errorf("maximum attempts exhausted")
	ErrInvalidClientLogin = fmt.Errorf("invalid client for login")
	ErrInvalidClientSkip  = fmt.Errorf("invalid client for skip login")
	ErrUntrustedProvider  = fmt.Errorf("untrusted credential provider")
	ErrProviderFailed     = fmt.Errorf("provider verification failed")
	ErrNotLinked          = fmt.Errorf("no local account for provider identity")
	ErrTokenIssueFailed   = fmt.Errorf("failed to issue token")
)

// MissingHeadersError lista los headers ausentes del flujo delegado.
type MissingHeadersError struct {
	Headers []string
}

func (e *MissingHeadersError) Error() string {
	return "missing auth headers: " + strings.Join(e.Headers, ", ")
}

// clientTZ convierte el offset reportado por el cliente (minutos) a
// ±HH:MM, respetando el signo tal como llega. Vacío, no numérico o
// cero caen al default configurado.
func clientTZ(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v == 0 {
		return fallback
	}
	return timezone.Format(v, false)
}
