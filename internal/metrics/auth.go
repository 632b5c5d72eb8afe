package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Auth-related Prometheus metrics. Viven en un paquete aparte para que
// servicios y middlewares las compartan sin ciclos de import.

var (
	LoginAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "authd_login_attempts_total",
		Help: "Intentos de autenticación por flujo y resultado",
	}, []string{"flow", "outcome"})

	TokenVerifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "authd_token_verifications_total",
		Help: "Verificaciones de token por resultado",
	}, []string{"outcome"})

	AccountLockouts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "authd_account_lockouts_total",
		Help: "Cuentas bloqueadas por exceso de intentos",
	})

	ProviderLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "authd_provider_verify_latency_ms",
		Help:    "Latencia de verificación contra el proveedor en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "authd_http_requests_total",
		Help: "Requests HTTP por ruta, método y status",
	}, []string{"path", "method", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "authd_http_request_duration_ms",
		Help:    "Duración de requests HTTP en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"path", "method"})
)

// Register registra todas las métricas en el registry dado (o el
// default si es nil). Tolera doble registro.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	cs := []prometheus.Collector{
		LoginAttempts,
		TokenVerifications,
		AccountLockouts,
		ProviderLatency,
		HTTPRequests,
		HTTPDuration,
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
