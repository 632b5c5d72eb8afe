package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Minimal(t *testing.T) {
	p := writeYAML(t, `
jwt:
  secret: super-secret
security:
  auth_key: prod-key
`)
	c, err := Load(p)
	require.NoError(t, err)

	// Defaults
	require.Equal(t, "praphull.com", c.App.Domain)
	require.Equal(t, "+05:30", c.App.DefaultTimezone)
	require.Equal(t, "HS256", c.JWT.Algorithm)
	require.Equal(t, []string{"api.digits.com", "api.twitter.com"}, c.Digits.AllowedHosts)
	require.Equal(t, 720*time.Hour, c.AuthTokenTTL())
	require.Equal(t, 24*time.Hour, c.UnauthTokenTTL())
}

func TestLoad_MissingSecret(t *testing.T) {
	p := writeYAML(t, `
security:
  auth_key: prod-key
`)
	_, err := Load(p)
	require.ErrorContains(t, err, "jwt.secret")
}

func TestLoad_UnsupportedAlgorithm(t *testing.T) {
	p := writeYAML(t, `
jwt:
  secret: s
  algorithm: none
security:
  auth_key: k
`)
	_, err := Load(p)
	require.ErrorContains(t, err, "algorithm")
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	p := writeYAML(t, `
jwt:
  secret: s
security:
  auth_key: k
storage:
  driver: postgres
`)
	_, err := Load(p)
	require.ErrorContains(t, err, "storage.dsn")
}

func TestLoad_EnvOverrides(t *testing.T) {
	p := writeYAML(t, `
jwt:
  secret: file-secret
security:
  auth_key: file-key
`)
	t.Setenv("AUTHD_JWT_SECRET", "env-secret")
	t.Setenv("AUTHD_AUTH_KEY", "env-key")
	t.Setenv("AUTHD_DIGITS_ALLOWED_HOSTS", "api.digits.com, api.twitter.com")
	t.Setenv("AUTHD_RATE_ENABLED", "true")

	c, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "env-secret", c.JWT.Secret)
	require.Equal(t, "env-key", c.Security.AuthKey)
	require.True(t, c.Rate.Enabled)
	require.Len(t, c.Digits.AllowedHosts, 2)
}

func TestLoad_BadDuration(t *testing.T) {
	p := writeYAML(t, `
jwt:
  secret: s
  auth_ttl: treinta-dias
security:
  auth_key: k
`)
	_, err := Load(p)
	require.ErrorContains(t, err, "auth_ttl")
}
