// Package auth contiene los controllers HTTP de autenticación. Validan
// transporte (método, body, content-type), delegan en los services y
// mapean sus errores a errcodes estables.
package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/praphull/authd/internal/email"
	httperrors "github.com/praphull/authd/internal/http/errors"
	svc "github.com/praphull/authd/internal/http/services/auth"
	"github.com/praphull/authd/internal/token"
)

const (
	maxBodySize     = 64 * 1024 // 64KB
	contentTypeJSON = "application/json; charset=utf-8"
)

// serverOffset devuelve el offset del servidor en minutos con la
// convención del cliente mobile (signo invertido respecto de UTC).
func serverOffset() int {
	_, secs := time.Now().Zone()
	return -secs / 60
}

// writeJSON serializa la respuesta de éxito.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody parsea el body JSON con límite de tamaño. Body vacío no es
// error: los flujos aceptan requests sin campos opcionales.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// writeAuthError mapea los errores de los services a la taxonomía fija.
// El alerter dispara en los casos de abuso de clave de emisión.
func writeAuthError(w http.ResponseWriter, err error, alerter *email.Alerter, client, remoteAddr string) {
	var mh *svc.MissingHeadersError
	switch {
	case errors.As(err, &mh):
		httperrors.WriteError(w, httperrors.ErrMissingAuthHeaders.WithMissing(mh.Headers...))

	case errors.Is(err, svc.ErrInvalidCredentials):
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)

	case errors.Is(err, svc.ErrMaxAttempts):
		httperrors.WriteError(w, httperrors.ErrMaxAttempts)

	case errors.Is(err, svc.ErrUntrustedProvider):
		httperrors.WriteError(w, httperrors.ErrUntrustedProvider)

	case errors.Is(err, svc.ErrInvalidClientLogin):
		httperrors.WriteError(w, httperrors.ErrInvalidClientLogin)

	case errors.Is(err, svc.ErrInvalidClientSkip):
		httperrors.WriteError(w, httperrors.ErrInvalidClientSkip)

	case errors.Is(err, svc.ErrProviderFailed):
		httperrors.WriteError(w, httperrors.ErrProviderUnreachable)

	case errors.Is(err, svc.ErrNotLinked):
		httperrors.WriteError(w, httperrors.ErrNotLinked)

	case errors.Is(err, token.ErrTestKeyMisuse):
		alerter.TestKeyMisuse(client, remoteAddr)
		httperrors.WriteError(w, httperrors.ErrTestKeyMisuse)

	case errors.Is(err, token.ErrInvalidKey):
		httperrors.WriteError(w, httperrors.ErrInvalidAuthKey)

	default:
		httperrors.WriteError(w, httperrors.ErrInternal.WithCause(err))
	}
}
