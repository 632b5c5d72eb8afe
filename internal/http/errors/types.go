package errors

import (
	"fmt"
	"net/http"
)

// APIError es la estructura estándar de errores que ve el caller.
// El errcode es fijo por tipo de rechazo; los clientes mobile dependen de él.
type APIError struct {
	ErrCode       int      `json:"errcode"`
	Message       string   `json:"message"`
	MissingInputs []string `json:"missingInputs,omitempty"`
	HTTPStatus    int      `json:"-"` // no se serializa, va en el header
	Err           error    `json:"-"` // causa original, solo para logs
}

// Error implementa la interfaz error.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.ErrCode, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.ErrCode, e.Message)
}

// Unwrap permite acceder al error original.
func (e *APIError) Unwrap() error {
	return e.Err
}

// WithMissing agrega la lista de inputs faltantes.
// Devuelve una COPIA para no mutar las variables globales base.
func (e *APIError) WithMissing(fields ...string) *APIError {
	ne := *e
	ne.MissingInputs = fields
	return &ne
}

// WithCause agrega el error original (causa).
// Devuelve una COPIA.
func (e *APIError) WithCause(err error) *APIError {
	ne := *e
	ne.Err = err
	return &ne
}

// FromError convierte un error genérico en APIError.
// Si no lo es, devuelve un error interno opaco conservando la causa.
func FromError(err error) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return ErrInternal.WithCause(err)
}

// =================================================================================
// TAXONOMÍA FIJA DE ERRORES
// Los errcodes vienen del contrato original con los clientes; no se renumeran.
// =================================================================================

var (
	// ErrInvalidCredentials colapsa NOT_FOUND y PASSWORD_INCORRECT para no
	// revelar existencia de cuentas.
	ErrInvalidCredentials = &APIError{
		ErrCode:    2001,
		Message:    "Invalid user credentials",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrMissingAuthHeaders: faltan headers de autenticación delegada.
	ErrMissingAuthHeaders = &APIError{
		ErrCode:    2003,
		Message:    "Authentication information missing",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrUntrustedProvider: consumer key u hostname del provider no reconocidos.
	ErrUntrustedProvider = &APIError{
		ErrCode:    2004,
		Message:    "Credential provider not trusted",
		HTTPStatus: http.StatusUnauthorized,
	}

	// ErrInvalidClientLogin: client inválido en un flujo de login.
	ErrInvalidClientLogin = &APIError{
		ErrCode:    2005,
		Message:    "Invalid client code. Cannot proceed with login",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrInvalidClientSkip: client inválido en skip login.
	ErrInvalidClientSkip = &APIError{
		ErrCode:    2006,
		Message:    "Invalid client code. Cannot proceed with skip login",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrProviderUnreachable: la verificación contra el provider falló.
	ErrProviderUnreachable = &APIError{
		ErrCode:    2007,
		Message:    "Could not successfully validate your phone number",
		HTTPStatus: http.StatusBadGateway,
	}

	// ErrInvalidToken: firma/issuer/expiry inválidos. Uniforme a propósito,
	// no se distingue el motivo hacia afuera.
	ErrInvalidToken = &APIError{
		ErrCode:    2008,
		Message:    "Failed to verify token validity",
		HTTPStatus: http.StatusForbidden,
	}

	// ErrUnsupportedClient: el claim client del token no es reconocido.
	ErrUnsupportedClient = &APIError{
		ErrCode:    2009,
		Message:    "API does not support this client",
		HTTPStatus: http.StatusForbidden,
	}

	// ErrNoToken: request protegido sin token.
	ErrNoToken = &APIError{
		ErrCode:    2010,
		Message:    "No token provided in API request",
		HTTPStatus: http.StatusForbidden,
	}

	// ErrInsufficientPermissions: token válido pero anónimo en ruta que
	// requiere identidad.
	ErrInsufficientPermissions = &APIError{
		ErrCode:    2011,
		Message:    "User does not have sufficient permissions to invoke this API",
		HTTPStatus: http.StatusForbidden,
	}

	// ErrInvalidAuthKey: clave de autorización de emisión inválida.
	ErrInvalidAuthKey = &APIError{
		ErrCode:    2013,
		Message:    "Authentication key for token generation is invalid. Possible hack attempt",
		HTTPStatus: http.StatusForbidden,
	}

	// ErrTestKeyMisuse: la clave de test usada por un client que no es mocha.
	ErrTestKeyMisuse = &APIError{
		ErrCode:    2014,
		Message:    "Unit test key can't be used for token generation by other clients",
		HTTPStatus: http.StatusForbidden,
	}

	// ErrMaxAttempts: cuenta bloqueada por intentos excesivos.
	ErrMaxAttempts = &APIError{
		ErrCode:    2015,
		Message:    "Maximum authentication attempts exhausted",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrNotLinked: el provider verificó pero no hay cuenta local asociada.
	ErrNotLinked = &APIError{
		ErrCode:    2016,
		Message:    "Error validating user at DB",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrInternal: fallas inesperadas de storage/red. Mensaje opaco.
	ErrInternal = &APIError{
		ErrCode:    2500,
		Message:    "Unexpected error during authentication. Contact the helpdesk",
		HTTPStatus: http.StatusInternalServerError,
	}
)
