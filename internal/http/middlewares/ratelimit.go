package middlewares

import (
	"net"
	"net/http"
	"time"

	"github.com/praphull/authd/internal/cache"
	httperrors "github.com/praphull/authd/internal/http/errors"
	"github.com/praphull/authd/internal/observability/logger"
)

// RateLimitConfig parametriza la ventana fija por IP. El contador vive
// en el cache (memoria o redis), así el límite sobrevive múltiples
// réplicas cuando hay redis atrás.
type RateLimitConfig struct {
	Cache  cache.Client
	Limit  int64
	Window time.Duration
	// Scope separa contadores entre grupos de rutas.
	Scope string
}

// WithRateLimit aplica una ventana fija de intentos por IP. Al exceder
// el límite responde 429. Los fallos del cache no bloquean el request:
// mejor dejar pasar que tirar el login por un redis caído.
func WithRateLimit(cfg RateLimitConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			key := "rate:" + cfg.Scope + ":" + ip
			n, err := cfg.Cache.Incr(r.Context(), key, cfg.Window)
			if err != nil {
				logger.From(r.Context()).Warn("rate limit cache no disponible",
					logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			if n > cfg.Limit {
				w.Header().Set("Retry-After", cfg.Window.String())
				httperrors.WriteError(w, &httperrors.APIError{
					ErrCode:    2429,
					Message:    "Too many attempts. Try again later",
					HTTPStatus: http.StatusTooManyRequests,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
