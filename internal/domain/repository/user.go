package repository

import (
	"context"
	"time"
)

// User representa un principal del sistema.
// loginAttempts y lockUntil son el estado del lockout; los muta únicamente
// la política de lockout a través de las operaciones atómicas de este repo.
type User struct {
	ID            string
	Name          string
	Email         string // único
	PasswordHash  string // nunca en claro; se hashea en el write boundary
	Phone         string
	DigitsID      *int64 // id numérico del provider externo, si está vinculado
	Status        string // active | inactive
	LoginAttempts int
	LockUntil     *time.Time
	CreatedAt     time.Time
}

// CreateUserInput contiene los datos para crear un usuario.
// Password llega en claro y el repositorio lo hashea antes de persistir.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	DigitsID *int64
	Status   string
}

// UserRepository define las operaciones de persistencia sobre usuarios.
type UserRepository interface {
	// GetByEmail busca un usuario por email.
	// Retorna ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID busca un usuario por ID.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, userID string) (*User, error)

	// GetByDigitsID busca el usuario vinculado a un id externo de Digits.
	// Retorna ErrNotFound si ninguno lo tiene asociado.
	GetByDigitsID(ctx context.Context, digitsID int64) (*User, error)

	// List devuelve todos los usuarios ordenados por fecha de creación.
	List(ctx context.Context) ([]*User, error)

	// Create crea un usuario hasheando el password antes de guardar.
	// Retorna ErrConflict si el email ya existe.
	Create(ctx context.Context, input CreateUserInput) (*User, error)

	// UpdatePassword reemplaza el password (se hashea acá, no en el caller).
	UpdatePassword(ctx context.Context, userID, newPassword string) error

	// IncLoginAttempts suma 1 al contador de intentos de forma atómica.
	// Si lockUntil no es nil, además fija el instante de desbloqueo.
	// Dos fallas concurrentes nunca pierden un incremento.
	IncLoginAttempts(ctx context.Context, userID string, lockUntil *time.Time) error

	// ResetLoginAttempts fija el contador en el valor dado y limpia lockUntil.
	ResetLoginAttempts(ctx context.Context, userID string, attempts int) error
}
