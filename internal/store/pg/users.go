// Package pg implementa repository.UserRepository sobre PostgreSQL (pgx).
//
// Las actualizaciones de lockout son UPDATEs de un solo statement: el
// incremento ocurre en la base, así que dos fallas concurrentes sobre la
// misma cuenta nunca pierden un intento.
package pg

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praphull/authd/internal/domain/repository"
	"github.com/praphull/authd/internal/security/password"
)

type Repository struct {
	pool *pgxpool.Pool
}

// New crea el repositorio sobre un pool existente.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, name, email, password_hash, phone, digits_id, status, login_attempts, lock_until, created_at`

func scanUser(row pgx.Row) (*repository.User, error) {
	var u repository.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone,
		&u.DigitsID, &u.Status, &u.LoginAttempts, &u.LockUntil, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	const query = `SELECT ` + userColumns + ` FROM app_user WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))))
}

func (r *Repository) GetByID(ctx context.Context, userID string) (*repository.User, error) {
	const query = `SELECT ` + userColumns + ` FROM app_user WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, userID))
}

func (r *Repository) GetByDigitsID(ctx context.Context, digitsID int64) (*repository.User, error) {
	const query = `SELECT ` + userColumns + ` FROM app_user WHERE digits_id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, digitsID))
}

func (r *Repository) List(ctx context.Context) ([]*repository.User, error) {
	const query = `SELECT ` + userColumns + ` FROM app_user ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*repository.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repository) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, repository.ErrInvalidInput
	}

	// Hash-before-store: el password nunca toca la base en claro.
	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = "active"
	}

	const query = `
		INSERT INTO app_user (name, email, password_hash, phone, digits_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	u, err := scanUser(r.pool.QueryRow(ctx, query,
		input.Name, email, hash, input.Phone, input.DigitsID, status))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return u, nil
}

func (r *Repository) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	const query = `UPDATE app_user SET password_hash = $2 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, userID, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *Repository) IncLoginAttempts(ctx context.Context, userID string, lockUntil *time.Time) error {
	// COALESCE: un NULL en $2 incrementa sin tocar el lock existente.
	const query = `
		UPDATE app_user
		   SET login_attempts = login_attempts + 1,
		       lock_until = COALESCE($2, lock_until)
		 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, userID, lockUntil)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *Repository) ResetLoginAttempts(ctx context.Context, userID string, attempts int) error {
	const query = `
		UPDATE app_user
		   SET login_attempts = $2,
		       lock_until = NULL
		 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, userID, attempts)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*Repository)(nil)
