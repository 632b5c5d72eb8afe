// Package app cablea las dependencias del servicio: storage, cache,
// codec de tokens, services, controllers y router. Los mains quedan
// finos y los tests pueden armar la app completa en memoria.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/praphull/authd/internal/auth"
	"github.com/praphull/authd/internal/cache"
	"github.com/praphull/authd/internal/config"
	"github.com/praphull/authd/internal/digits"
	"github.com/praphull/authd/internal/domain/repository"
	"github.com/praphull/authd/internal/email"
	apictrl "github.com/praphull/authd/internal/http/controllers/api"
	authctrl "github.com/praphull/authd/internal/http/controllers/auth"
	"github.com/praphull/authd/internal/http/router"
	svc "github.com/praphull/authd/internal/http/services/auth"
	"github.com/praphull/authd/internal/metrics"
	"github.com/praphull/authd/internal/observability/logger"
	"github.com/praphull/authd/internal/store"
	"github.com/praphull/authd/internal/token"
)

// App agrupa los recursos vivos del servicio.
type App struct {
	Handler http.Handler
	Users   repository.UserRepository
	Cache   cache.Client
	Codec   *token.Codec

	cleanups []func()
}

// Close libera storage y cache en orden inverso al armado.
func (a *App) Close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
}

// New arma la aplicación completa desde la configuración.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := metrics.Register(nil); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	users, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	cacheClient, err := cache.New(cache.Config{
		Kind:       cfg.Cache.Kind,
		Addr:       cfg.Cache.Redis.Addr,
		Password:   cfg.Cache.Redis.Password,
		DB:         cfg.Cache.Redis.DB,
		Prefix:     cfg.Cache.Redis.Prefix,
		DefaultTTL: cfg.CacheMemoryTTL(),
	})
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("cache: %w", err)
	}

	codec := token.New(token.Config{
		Secret:    cfg.JWT.Secret,
		Issuer:    cfg.App.Domain,
		AuthKey:   cfg.Security.AuthKey,
		MochaKey:  cfg.Security.MochaKey,
		AuthTTL:   cfg.AuthTokenTTL(),
		UnauthTTL: cfg.UnauthTokenTTL(),
	})

	var alerter *email.Alerter
	if cfg.Alerts.Enabled {
		s := cfg.Alerts.SMTP
		sender := email.NewSMTPSender(s.Host, s.Port, s.From, s.Username, s.Password)
		if s.TLS != "" {
			sender.TLSMode = s.TLS
		}
		sender.InsecureSkipVerify = s.InsecureSkipVerify
		alerter = email.NewAlerter(sender, cfg.Alerts.To, cfg.App.Name, true)
		logger.L().Info("alertas SMTP habilitadas",
			logger.Component("app"), logger.String("to", cfg.Alerts.To))
	}

	loginSvc := svc.NewLoginService(svc.LoginDeps{
		Authenticator: auth.NewPasswordAuthenticator(users),
		Codec:         codec,
		IssuanceKey:   cfg.Security.AuthKey,
		DefaultTZ:     cfg.App.DefaultTimezone,
	})

	digitsSvc := svc.NewDigitsService(svc.DigitsDeps{
		Users:        users,
		Verifier:     digits.New(cfg.DigitsTimeout()),
		Codec:        codec,
		Cache:        cacheClient,
		CacheTTL:     cfg.DigitsCacheTTL(),
		IssuanceKey:  cfg.Security.AuthKey,
		DefaultTZ:    cfg.App.DefaultTimezone,
		ConsumerKey:  cfg.Digits.ConsumerKey,
		AllowedHosts: cfg.Digits.AllowedHosts,
	})

	skipSvc := svc.NewSkipService(svc.SkipDeps{
		Codec:       codec,
		IssuanceKey: cfg.Security.AuthKey,
		DefaultTZ:   cfg.App.DefaultTimezone,
	})

	handler := router.New(router.Deps{
		Login:  authctrl.NewLoginController(loginSvc, alerter),
		Digits: authctrl.NewDigitsController(digitsSvc, alerter),
		Skip:   authctrl.NewSkipController(skipSvc, alerter),
		API:    apictrl.New(users),
		Codec:  codec,

		Cache:       cacheClient,
		RateEnabled: cfg.Rate.Enabled,
		RateLimit:   int64(cfg.Rate.Login.Limit),
		RateWindow:  cfg.RateLoginWindow(),
	})

	return &App{
		Handler:  handler,
		Users:    users,
		Cache:    cacheClient,
		Codec:    codec,
		cleanups: []func(){closeStore, func() { _ = cacheClient.Close() }},
	}, nil
}
