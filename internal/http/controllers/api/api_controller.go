// Package api contiene los endpoints protegidos por token: el saludo
// de la raíz, el echo de claims y el listado de usuarios.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/praphull/authd/internal/domain/repository"
	httperrors "github.com/praphull/authd/internal/http/errors"
	"github.com/praphull/authd/internal/http/middlewares"
	"github.com/praphull/authd/internal/observability/logger"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Controller sirve las rutas /api protegidas.
type Controller struct {
	users repository.UserRepository
}

// New crea el controller de rutas protegidas.
func New(users repository.UserRepository) *Controller {
	return &Controller{users: users}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Welcome maneja GET /api/
func (c *Controller) Welcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the API!",
	})
}

// Check maneja GET /api/check: devuelve las claims verificadas del token.
func (c *Controller) Check(w http.ResponseWriter, r *http.Request) {
	claims := middlewares.GetClaims(r.Context())
	if claims == nil {
		httperrors.WriteError(w, httperrors.ErrNoToken)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"client": claims.Client,
		"ctz":    claims.CTZ,
		"userId": claims.UID,
		"iss":    claims.Issuer,
		"exp":    claims.ExpiresAt,
	})
}

// userView es la proyección pública de un usuario. El hash jamás sale.
type userView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	DigitsID  *int64    `json:"digitsId,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Users maneja GET /api/users. Requiere un token con identidad.
func (c *Controller) Users(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("api.Users"))

	all, err := c.users.List(ctx)
	if err != nil {
		log.Error("no se pudo listar usuarios", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternal.WithCause(err))
		return
	}

	out := make([]userView, 0, len(all))
	for _, u := range all {
		out = append(out, userView{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Phone:     u.Phone,
			DigitsID:  u.DigitsID,
			Status:    u.Status,
			CreatedAt: u.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
