// Package memory implementa repository.UserRepository sobre un map en
// proceso. Sirve para desarrollo y tests; serializa con un mutex, así que
// las actualizaciones de lockout son atómicas igual que en postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/praphull/authd/internal/domain/repository"
	"github.com/praphull/authd/internal/security/password"
)

type Repository struct {
	mu    sync.Mutex
	users map[string]*repository.User // por ID
}

// New crea un repositorio vacío.
func New() *Repository {
	return &Repository{users: make(map[string]*repository.User)}
}

func clone(u *repository.User) *repository.User {
	cp := *u
	if u.LockUntil != nil {
		t := *u.LockUntil
		cp.LockUntil = &t
	}
	if u.DigitsID != nil {
		d := *u.DigitsID
		cp.DigitsID = &d
	}
	return &cp
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Repository) GetByID(ctx context.Context, userID string) (*repository.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		return clone(u), nil
	}
	return nil, repository.ErrNotFound
}

func (r *Repository) GetByDigitsID(ctx context.Context, digitsID int64) (*repository.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.DigitsID != nil && *u.DigitsID == digitsID {
			return clone(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Repository) List(ctx context.Context) ([]*repository.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*repository.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *Repository) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, repository.ErrInvalidInput
	}

	// Hash-before-store: el password nunca se guarda en claro.
	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return nil, repository.ErrConflict
		}
	}

	status := input.Status
	if status == "" {
		status = "active"
	}
	u := &repository.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Phone:        input.Phone,
		DigitsID:     input.DigitsID,
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}
	r.users[u.ID] = u
	return clone(u), nil
}

func (r *Repository) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *Repository) IncLoginAttempts(ctx context.Context, userID string, lockUntil *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.LoginAttempts++
	if lockUntil != nil {
		t := *lockUntil
		u.LockUntil = &t
	}
	return nil
}

func (r *Repository) ResetLoginAttempts(ctx context.Context, userID string, attempts int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.LoginAttempts = attempts
	u.LockUntil = nil
	return nil
}

var _ repository.UserRepository = (*Repository)(nil)
