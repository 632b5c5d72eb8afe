package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/praphull/authd/internal/cache"
)

func TestWithRateLimit_BlocksAfterLimit(t *testing.T) {
	t.Parallel()

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), WithRateLimit(RateLimitConfig{
		Cache:  cache.NewMemory("test", time.Minute),
		Limit:  3,
		Window: time.Minute,
		Scope:  "login",
	}))

	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/authenticate", nil)
		r.RemoteAddr = "203.0.113.7:1000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/authenticate", nil)
	r.RemoteAddr = "203.0.113.7:1000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Otra IP no comparte la ventana.
	r = httptest.NewRequest(http.MethodPost, "/api/authenticate", nil)
	r.RemoteAddr = "203.0.113.8:1000"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestWithRequestID_PropagatesHeader(t *testing.T) {
	t.Parallel()

	var got string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r.Context())
	}), WithRequestID())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "rid-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	require.Equal(t, "rid-123", got)
	require.Equal(t, "rid-123", rec.Header().Get("X-Request-ID"))

	// Sin header, genera uno.
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// Un ID absurdamente largo se reemplaza por uno propio.
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	long := strings.Repeat("x", maxRequestIDLen+1)
	r.Header.Set("X-Request-ID", long)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.NotEqual(t, long, rec.Header().Get("X-Request-ID"))
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
