package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	dto "github.com/praphull/authd/internal/http/dto/auth"
)

func newSkipService() SkipService {
	return NewSkipService(SkipDeps{
		Codec:       testCodec(),
		IssuanceKey: testAuthKey,
		DefaultTZ:   "+05:30",
	})
}

func TestSkipLogin_AnonymousToken(t *testing.T) {
	t.Parallel()
	svc := newSkipService()

	for _, client := range []string{"android", "mocha"} {
		tk, err := svc.SkipLogin(context.Background(), dto.SkipRequest{
			Client:    client,
			CTZOffset: "330",
		})
		require.NoError(t, err)

		claims, err := testCodec().Verify(tk)
		require.NoError(t, err)
		require.True(t, claims.Anonymous())
		require.Equal(t, client, claims.Client)
		require.Equal(t, "+05:30", claims.CTZ)
	}
}

func TestSkipLogin_InvalidClient(t *testing.T) {
	t.Parallel()
	svc := newSkipService()

	for _, client := range []string{"", "ios", "web"} {
		_, err := svc.SkipLogin(context.Background(), dto.SkipRequest{Client: client})
		require.ErrorIs(t, err, ErrInvalidClientSkip, "client %q", client)
	}
}
