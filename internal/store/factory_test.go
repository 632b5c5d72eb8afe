package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/praphull/authd/internal/config"
)

func TestOpen_MemoryDriver(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Storage.Driver = "memory"

	repo, cleanup, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, repo)
	cleanup()
}

func TestOpen_UnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Storage.Driver = "cassandra"

	repo, cleanup, err := Open(context.Background(), cfg)
	require.Error(t, err)
	require.Nil(t, repo)
	// El cleanup vale aunque Open falle.
	require.NotNil(t, cleanup)
	cleanup()
}
