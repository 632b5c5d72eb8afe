package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Init arma el logger global a partir de la configuración. Solo la
// primera llamada tiene efecto; va al principio de main.
func Init(cfg Config) {
	once.Do(func() {
		instance = build(cfg)
	})
}

// L devuelve el logger global. Si nadie llamó a Init todavía (tests,
// helpers sueltos) se auto-inicializa en modo dev/info.
func L() *zap.Logger {
	if instance == nil {
		Init(Config{Env: "dev", Level: "info"})
	}
	return instance
}

// Sync descarga lo que quede en buffers; se difiere en main.
func Sync() error {
	if instance == nil {
		return nil
	}
	return instance.Sync()
}
