package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/praphull/authd/internal/metrics"
)

// WithMetrics cuenta requests y mide latencias por ruta. Recibe la ruta
// como patrón fijo para no explotar la cardinalidad con paths dinámicos.
func WithMetrics(routePattern string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			metrics.HTTPRequests.WithLabelValues(
				routePattern, r.Method, strconv.Itoa(rec.status)).Inc()
			metrics.HTTPDuration.WithLabelValues(routePattern, r.Method).
				Observe(float64(time.Since(start).Milliseconds()))
		})
	}
}
