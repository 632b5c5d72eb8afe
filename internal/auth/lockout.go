// Package auth implementa el núcleo de autenticación por password:
// la política de lockout por intentos fallidos y el verificador de
// credenciales que la consulta.
package auth

import (
	"context"
	"time"

	"github.com/praphull/authd/internal/domain/repository"
	"github.com/praphull/authd/internal/metrics"
)

// Constantes de la política. Cinco intentos fallidos bloquean la cuenta
// por dos horas; el vencimiento del lock se detecta de forma lazy en el
// siguiente intento, no hay timer de fondo.
const (
	MaxLoginAttempts = 5
	LockDuration     = 2 * time.Hour
)

// LockoutStore son las operaciones atómicas de persistencia que la política
// necesita. repository.UserRepository las implementa.
type LockoutStore interface {
	IncLoginAttempts(ctx context.Context, userID string, lockUntil *time.Time) error
	ResetLoginAttempts(ctx context.Context, userID string, attempts int) error
}

// LockoutPolicy es la máquina de estados {unlocked, locked} por identidad.
// Es pura salvo por las escrituras que delega en el store; el estado vive
// en el registro del usuario.
type LockoutPolicy struct {
	MaxAttempts  int
	LockDuration time.Duration

	// Now permite inyectar el reloj en tests.
	Now func() time.Time
}

// NewLockoutPolicy crea la política con los valores de producción.
func NewLockoutPolicy() *LockoutPolicy {
	return &LockoutPolicy{
		MaxAttempts:  MaxLoginAttempts,
		LockDuration: LockDuration,
		Now:          time.Now,
	}
}

func (p *LockoutPolicy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// IsLocked indica si la cuenta está bloqueada en este instante.
func (p *LockoutPolicy) IsLocked(u *repository.User) bool {
	return u.LockUntil != nil && u.LockUntil.After(p.now())
}

// OnFailure aplica la transición por comparación fallida (o por intento
// durante un lock vigente, que también cuenta).
//
//   - Lock vencido: reinicia attempts en 1 y limpia lockUntil.
//   - Si no: incrementa; al llegar a MaxAttempts sin estar ya bloqueada,
//     fija lockUntil = now + LockDuration.
func (p *LockoutPolicy) OnFailure(ctx context.Context, store LockoutStore, u *repository.User) error {
	now := p.now()

	if u.LockUntil != nil && u.LockUntil.Before(now) {
		return store.ResetLoginAttempts(ctx, u.ID, 1)
	}

	var lockUntil *time.Time
	if u.LoginAttempts+1 >= p.MaxAttempts && !p.IsLocked(u) {
		t := now.Add(p.LockDuration)
		lockUntil = &t
		metrics.AccountLockouts.Inc()
	}
	return store.IncLoginAttempts(ctx, u.ID, lockUntil)
}

// OnSuccess aplica la transición por comparación exitosa: si había intentos
// acumulados o un lock registrado, vuelve todo a cero. Sin estado previo no
// escribe nada.
func (p *LockoutPolicy) OnSuccess(ctx context.Context, store LockoutStore, u *repository.User) error {
	if u.LoginAttempts == 0 && u.LockUntil == nil {
		return nil
	}
	return store.ResetLoginAttempts(ctx, u.ID, 0)
}
