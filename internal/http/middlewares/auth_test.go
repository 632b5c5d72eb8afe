package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/praphull/authd/internal/token"
)

func testCodec() *token.Codec {
	return token.New(token.Config{
		Secret:    "mw-secret",
		Issuer:    "praphull.com",
		AuthKey:   "auth-key",
		MochaKey:  "mocha-key",
		AuthTTL:   time.Hour,
		UnauthTTL: time.Hour,
	})
}

func TestExtractToken_Precedence(t *testing.T) {
	t.Parallel()

	// Header gana sobre query y body.
	r := httptest.NewRequest(http.MethodPost, "/api/check?token=del-query",
		strings.NewReader(`{"token":"del-body"}`))
	r.Header.Set("X-Access-Token", "del-header")
	require.Equal(t, "del-header", extractToken(r))

	// Sin header, gana el query param.
	r = httptest.NewRequest(http.MethodPost, "/api/check?token=del-query",
		strings.NewReader(`{"token":"del-body"}`))
	require.Equal(t, "del-query", extractToken(r))

	// Último recurso: el body.
	r = httptest.NewRequest(http.MethodPost, "/api/check",
		strings.NewReader(`{"token":"del-body"}`))
	require.Equal(t, "del-body", extractToken(r))
}

func TestExtractToken_BodyIsRestored(t *testing.T) {
	t.Parallel()

	const payload = `{"token":"tk","otro":"campo"}`
	r := httptest.NewRequest(http.MethodPost, "/api/check", strings.NewReader(payload))
	require.Equal(t, "tk", extractToken(r))

	// El handler downstream todavía puede leer el body completo.
	raw, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	require.JSONEq(t, payload, string(raw))
}

func TestVerifyToken_ValidAndInvalid(t *testing.T) {
	t.Parallel()
	codec := testCodec()

	var gotClaims *token.Claims
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	}), VerifyToken(codec))

	tk, err := codec.IssueAuthenticated("android", "user-1", "+05:30", "auth-key")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/", nil)
	r.Header.Set("X-Access-Token", tk)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotClaims)
	require.Equal(t, "user-1", gotClaims.UID)

	// Token roto.
	r = httptest.NewRequest(http.MethodGet, "/api/", nil)
	r.Header.Set("X-Access-Token", "garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "2008")

	// Sin token.
	r = httptest.NewRequest(http.MethodGet, "/api/", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "2010")
}

func TestRequireUser_RejectsAnonymous(t *testing.T) {
	t.Parallel()
	codec := testCodec()

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), VerifyToken(codec), RequireUser())

	anon, err := codec.IssueUnauthenticated("android", "+05:30", "auth-key")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	r.Header.Set("X-Access-Token", anon)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "2011")
}
