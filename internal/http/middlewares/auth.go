package middlewares

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	httperrors "github.com/praphull/authd/internal/http/errors"
	"github.com/praphull/authd/internal/metrics"
	"github.com/praphull/authd/internal/observability/logger"
	"github.com/praphull/authd/internal/token"
)

const maxTokenBodySize = 64 * 1024

// extractToken busca el token con la precedencia del contrato original:
// header X-Access-Token, luego query param `token`, luego campo `token`
// del body JSON. Si lo toma del body, lo repone para el handler.
func extractToken(r *http.Request) string {
	if tk := strings.TrimSpace(r.Header.Get("X-Access-Token")); tk != "" {
		return tk
	}
	if tk := strings.TrimSpace(r.URL.Query().Get("token")); tk != "" {
		return tk
	}
	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxTokenBodySize))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	var body struct {
		Token string `json:"token"`
	}
	if json.Unmarshal(raw, &body) != nil {
		return ""
	}
	return strings.TrimSpace(body.Token)
}

// VerifyToken protege una ruta: exige un token válido y deja las claims
// en el contexto. Cualquier falla de verificación responde el mismo
// error uniforme; el motivo queda sólo en los logs.
func VerifyToken(codec *token.Codec) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.From(r.Context()).With(logger.Component("middlewares.VerifyToken"))

			raw := extractToken(r)
			if raw == "" {
				metrics.TokenVerifications.WithLabelValues("missing").Inc()
				httperrors.WriteError(w, httperrors.ErrNoToken)
				return
			}

			claims, err := codec.Verify(raw)
			if err != nil {
				log.Debug("token inválido", logger.Err(err))
				metrics.TokenVerifications.WithLabelValues("invalid").Inc()
				httperrors.WriteError(w, httperrors.ErrInvalidToken)
				return
			}

			// Token bien firmado pero de un client que esta API no atiende.
			if !token.SupportedClient(claims.Client) {
				log.Info("client no soportado en token válido", logger.Client(claims.Client))
				metrics.TokenVerifications.WithLabelValues("unsupported_client").Inc()
				httperrors.WriteError(w, httperrors.ErrUnsupportedClient)
				return
			}

			metrics.TokenVerifications.WithLabelValues("ok").Inc()
			ctx := WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser exige identidad: un token anónimo (skip login) no alcanza.
// Debe usarse después de VerifyToken.
func RequireUser() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUserID(r.Context()) == "" {
				httperrors.WriteError(w, httperrors.ErrInsufficientPermissions)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
