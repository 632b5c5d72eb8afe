package auth

import (
	"net/http"

	"github.com/praphull/authd/internal/email"
	dto "github.com/praphull/authd/internal/http/dto/auth"
	httperrors "github.com/praphull/authd/internal/http/errors"
	svc "github.com/praphull/authd/internal/http/services/auth"
	"github.com/praphull/authd/internal/observability/logger"
)

// DigitsController maneja el login delegado contra el provider externo.
type DigitsController struct {
	service svc.DigitsService
	alerter *email.Alerter
}

// NewDigitsController crea el controller del flujo delegado.
func NewDigitsController(service svc.DigitsService, alerter *email.Alerter) *DigitsController {
	return &DigitsController{service: service, alerter: alerter}
}

// Login maneja POST /api/authenticate/digits
func (c *DigitsController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("DigitsController.Login"))

	var req dto.DigitsRequest
	if err := decodeBody(w, r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidClientLogin.WithCause(err))
		return
	}

	in := svc.DigitsInput{
		Client:      req.Client,
		CTZOffset:   req.CTZOffset,
		Credentials: r.Header.Get(svc.HeaderCredentials),
		ProviderURL: r.Header.Get(svc.HeaderProvider),
		RemoteAddr:  r.RemoteAddr,
	}

	result, err := c.service.LoginDigits(ctx, in)
	if err != nil {
		log.Debug("login delegado rechazado", logger.Err(err))
		writeAuthError(w, err, c.alerter, req.Client, r.RemoteAddr)
		return
	}

	writeJSON(w, http.StatusOK, dto.DigitsResponse{
		Status:      "success",
		PhoneNumber: result.PhoneNumber,
		UserID:      result.UserID,
		DigitsID:    result.DigitsID,
		Email:       result.Email,
		Message:     "Successfully authenticated",
		AuthToken:   result.Token,
		Offset:      serverOffset(),
	})
}
