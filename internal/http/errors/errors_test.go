package errors

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteError_APIError(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	WriteError(rec, ErrInvalidCredentials)

	require.Equal(t, 400, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "error", body["status"])
	require.EqualValues(t, 2001, body["errcode"])
	require.Equal(t, "Invalid user credentials", body["message"])
	require.NotContains(t, body, "missingInputs")
}

func TestWriteError_MissingInputs(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	WriteError(rec, ErrMissingAuthHeaders.WithMissing("X-Verify-Credentials-Authorization"))

	var body struct {
		MissingInputs []string `json:"missingInputs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []string{"X-Verify-Credentials-Authorization"}, body.MissingInputs)
}

func TestWriteError_GenericErrorIsOpaque(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("pgx: connection refused"))

	require.Equal(t, 500, rec.Code)
	require.NotContains(t, rec.Body.String(), "pgx")
	require.Contains(t, rec.Body.String(), "2500")
}

func TestWithMissing_DoesNotMutateBase(t *testing.T) {
	t.Parallel()
	_ = ErrMissingAuthHeaders.WithMissing("X-Auth-Service-Provider")
	require.Nil(t, ErrMissingAuthHeaders.MissingInputs)
}

func TestFromError_Unwrap(t *testing.T) {
	t.Parallel()
	cause := errors.New("boom")
	e := FromError(cause)
	require.ErrorIs(t, e, cause)
}
