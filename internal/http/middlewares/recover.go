package middlewares

import (
	"net/http"

	httperrors "github.com/praphull/authd/internal/http/errors"
	"github.com/praphull/authd/internal/observability/logger"
)

// WithRecover atrapa panics del handler y responde el error interno
// opaco en lugar de voltear la conexión.
func WithRecover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.From(r.Context()).Error("panic recuperado",
						logger.Component("middlewares.WithRecover"),
						logger.Any("recover", rec),
						logger.Path(r.URL.Path),
					)
					httperrors.WriteError(w, httperrors.ErrInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
