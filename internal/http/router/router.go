// Package router arma el árbol de rutas del servicio y la cadena de
// middlewares de cada grupo.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/praphull/authd/internal/cache"
	apictrl "github.com/praphull/authd/internal/http/controllers/api"
	authctrl "github.com/praphull/authd/internal/http/controllers/auth"
	mw "github.com/praphull/authd/internal/http/middlewares"
	"github.com/praphull/authd/internal/token"
)

// Deps contiene todo lo que el router necesita para armar los handlers.
type Deps struct {
	Login  *authctrl.LoginController
	Digits *authctrl.DigitsController
	Skip   *authctrl.SkipController
	API    *apictrl.Controller

	Codec *token.Codec

	// Rate limiting opcional sobre los endpoints de login.
	Cache       cache.Client
	RateEnabled bool
	RateLimit   int64
	RateWindow  time.Duration
}

// New construye el router completo.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Liveness plano, sin middlewares: lo golpea el balanceador.
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("authd up\n"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		// Flujos de autenticación: abiertos, con rate limit.
		api.Method(http.MethodPost, "/authenticate",
			loginHandler(deps, "/api/authenticate", deps.Login.Login))
		api.Method(http.MethodPost, "/authenticate/digits",
			loginHandler(deps, "/api/authenticate/digits", deps.Digits.Login))
		api.Method(http.MethodPost, "/authenticate/skip",
			loginHandler(deps, "/api/authenticate/skip", deps.Skip.Skip))

		// Rutas protegidas por token.
		api.Method(http.MethodGet, "/",
			protectedHandler(deps, "/api/", deps.API.Welcome))
		api.Method(http.MethodGet, "/check",
			protectedHandler(deps, "/api/check", deps.API.Check))

		// Rutas que además exigen identidad (uid en el token).
		api.Method(http.MethodGet, "/users",
			userHandler(deps, "/api/users", deps.API.Users))
	})

	return r
}

// baseChain son los middlewares comunes a todas las rutas de /api.
func baseChain(pattern string) []mw.Middleware {
	return []mw.Middleware{
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithMetrics(pattern),
		mw.WithLogging(),
	}
}

func loginHandler(deps Deps, pattern string, hf http.HandlerFunc) http.Handler {
	chain := baseChain(pattern)
	if deps.RateEnabled && deps.Cache != nil {
		chain = append(chain, mw.WithRateLimit(mw.RateLimitConfig{
			Cache:  deps.Cache,
			Limit:  deps.RateLimit,
			Window: deps.RateWindow,
			Scope:  "login",
		}))
	}
	return mw.ChainFunc(hf, chain...)
}

func protectedHandler(deps Deps, pattern string, hf http.HandlerFunc) http.Handler {
	chain := append(baseChain(pattern), mw.VerifyToken(deps.Codec))
	return mw.ChainFunc(hf, chain...)
}

func userHandler(deps Deps, pattern string, hf http.HandlerFunc) http.Handler {
	chain := append(baseChain(pattern), mw.VerifyToken(deps.Codec), mw.RequireUser())
	return mw.ChainFunc(hf, chain...)
}
