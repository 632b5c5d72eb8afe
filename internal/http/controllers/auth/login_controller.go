package auth

import (
	"net/http"

	"github.com/praphull/authd/internal/email"
	dto "github.com/praphull/authd/internal/http/dto/auth"
	httperrors "github.com/praphull/authd/internal/http/errors"
	svc "github.com/praphull/authd/internal/http/services/auth"
	"github.com/praphull/authd/internal/observability/logger"
)

// LoginController maneja el endpoint de login con password.
type LoginController struct {
	service svc.LoginService
	alerter *email.Alerter
}

// NewLoginController crea un nuevo controller de login.
func NewLoginController(service svc.LoginService, alerter *email.Alerter) *LoginController {
	return &LoginController{service: service, alerter: alerter}
}

// Login maneja POST /api/authenticate
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	var req dto.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials.WithCause(err))
		return
	}

	result, err := c.service.LoginPassword(ctx, req)
	if err != nil {
		log.Debug("login rechazado", logger.Err(err))
		writeAuthError(w, err, c.alerter, req.Client, r.RemoteAddr)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Status:      "success",
		PhoneNumber: result.PhoneNumber,
		UserID:      result.UserID,
		DigitsID:    result.DigitsID,
		Message:     "Successfully authenticated",
		AuthToken:   result.Token,
		Offset:      serverOffset(),
	})
}
