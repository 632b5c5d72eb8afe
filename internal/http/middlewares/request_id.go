package middlewares

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Largo máximo de un request ID aportado por el cliente; más allá de
// eso se descarta y se genera uno propio.
const maxRequestIDLen = 64

// WithRequestID asigna un request ID a cada request: respeta el
// X-Request-ID entrante si es razonable, o genera un UUID nuevo. El ID
// viaja en el header de respuesta y en el contexto para los logs.
func WithRequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
			if rid == "" || len(rid) > maxRequestIDLen {
				rid = uuid.NewString()
			}

			w.Header().Set("X-Request-ID", rid)

			next.ServeHTTP(w, r.WithContext(setRequestID(r.Context(), rid)))
		})
	}
}
