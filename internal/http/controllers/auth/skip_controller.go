package auth

import (
	"net/http"

	"github.com/praphull/authd/internal/email"
	dto "github.com/praphull/authd/internal/http/dto/auth"
	httperrors "github.com/praphull/authd/internal/http/errors"
	svc "github.com/praphull/authd/internal/http/services/auth"
	"github.com/praphull/authd/internal/observability/logger"
)

// SkipController maneja el skip login (token anónimo).
type SkipController struct {
	service svc.SkipService
	alerter *email.Alerter
}

// NewSkipController crea el controller de skip login.
func NewSkipController(service svc.SkipService, alerter *email.Alerter) *SkipController {
	return &SkipController{service: service, alerter: alerter}
}

// Skip maneja POST /api/authenticate/skip
func (c *SkipController) Skip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("SkipController.Skip"))

	var req dto.SkipRequest
	if err := decodeBody(w, r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidClientSkip.WithCause(err))
		return
	}

	tk, err := c.service.SkipLogin(ctx, req)
	if err != nil {
		log.Debug("skip login rechazado", logger.Err(err))
		writeAuthError(w, err, c.alerter, req.Client, r.RemoteAddr)
		return
	}

	writeJSON(w, http.StatusOK, dto.SkipResponse{
		Status:    "success",
		Message:   "Login skipped by user",
		AuthToken: tk,
		Offset:    serverOffset(),
	})
}
