package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestCodec() *Codec {
	return New(Config{
		Secret:    "unit-test-secret",
		Issuer:    "praphull.com",
		AuthKey:   "prod-key",
		MochaKey:  "mocha-key",
		AuthTTL:   time.Hour,
		UnauthTTL: 10 * time.Minute,
	})
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()
	c := newTestCodec()

	signed, err := c.IssueAuthenticated("mocha", "3", "+05:30", "prod-key")
	require.NoError(t, err)

	claims, err := c.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "3", claims.UID)
	require.Equal(t, "mocha", claims.Client)
	require.Equal(t, "+05:30", claims.CTZ)
	require.False(t, claims.Anonymous())
}

func TestIssueUnauthenticated_NoUID(t *testing.T) {
	t.Parallel()
	c := newTestCodec()

	signed, err := c.IssueUnauthenticated("android", "+00:00", "prod-key")
	require.NoError(t, err)

	claims, err := c.Verify(signed)
	require.NoError(t, err)
	require.Empty(t, claims.UID)
	require.True(t, claims.Anonymous())
}

func TestIssue_KeyGuard(t *testing.T) {
	t.Parallel()
	c := newTestCodec()

	_, err := c.IssueAuthenticated("android", "1", "+05:30", "forged-key")
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = c.IssueAuthenticated("android", "1", "+05:30", "")
	require.ErrorIs(t, err, ErrInvalidKey)

	// La clave mocha no sirve para otros clients
	_, err = c.IssueAuthenticated("android", "1", "+05:30", "mocha-key")
	require.ErrorIs(t, err, ErrTestKeyMisuse)

	// Pero sí para la audiencia mocha
	_, err = c.IssueAuthenticated("mocha", "1", "+05:30", "mocha-key")
	require.NoError(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()
	c := newTestCodec()
	other := New(Config{
		Secret:    "otro-secreto",
		Issuer:    "praphull.com",
		AuthKey:   "prod-key",
		AuthTTL:   time.Hour,
		UnauthTTL: time.Hour,
	})

	signed, err := other.IssueAuthenticated("android", "1", "+05:30", "prod-key")
	require.NoError(t, err)

	_, err = c.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuer(t *testing.T) {
	t.Parallel()
	c := newTestCodec()
	other := New(Config{
		Secret:    "unit-test-secret",
		Issuer:    "evil.example.com",
		AuthKey:   "prod-key",
		AuthTTL:   time.Hour,
		UnauthTTL: time.Hour,
	})

	signed, err := other.IssueAuthenticated("android", "1", "+05:30", "prod-key")
	require.NoError(t, err)

	_, err = c.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()
	c := newTestCodec()

	// Emitir en el pasado moviendo el reloj del codec
	past := time.Now().Add(-2 * time.Hour)
	c.now = func() time.Time { return past }
	signed, err := c.IssueUnauthenticated("android", "+05:30", "prod-key")
	require.NoError(t, err)

	// Verificar con el reloj real: ya expiró aunque la firma sea válida
	c.now = time.Now
	_, err = c.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	t.Parallel()
	c := newTestCodec()
	_, err := c.Verify("ni.siquiera.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSupportedClient(t *testing.T) {
	t.Parallel()
	require.True(t, SupportedClient("android"))
	require.True(t, SupportedClient("mocha"))
	require.False(t, SupportedClient("ios"))
	require.False(t, SupportedClient(""))
}
