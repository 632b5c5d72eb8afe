// Package store resuelve la implementación de persistencia según la
// configuración (postgres para producción, memory para dev y tests).
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/praphull/authd/internal/config"
	"github.com/praphull/authd/internal/domain/repository"
	"github.com/praphull/authd/internal/store/memory"
	"github.com/praphull/authd/internal/store/pg"
)

// Open abre el repositorio de usuarios del driver configurado.
// El cleanup devuelto cierra recursos y siempre es seguro de llamar.
func Open(ctx context.Context, cfg *config.Config) (repository.UserRepository, func(), error) {
	switch cfg.Storage.Driver {
	case "memory", "":
		return memory.New(), func() {}, nil

	case "postgres":
		lifetime, _ := time.ParseDuration(cfg.Storage.Postgres.ConnMaxLifetime)
		pool, err := pg.NewPool(ctx, pg.PoolConfig{
			DSN:             cfg.Storage.DSN,
			MaxConns:        cfg.Storage.Postgres.MaxConns,
			ConnMaxLifetime: lifetime,
		})
		if err != nil {
			return nil, func() {}, err
		}
		return pg.New(pool), pool.Close, nil

	default:
		return nil, func() {}, fmt.Errorf("store: unknown driver %q", cfg.Storage.Driver)
	}
}
