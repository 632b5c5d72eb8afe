package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

// clients arma los dos backends para correr la misma batería contra ambos.
func clients(t *testing.T) map[string]Client {
	t.Helper()

	mr := miniredis.RunT(t)
	rc, err := NewRedis(Config{Kind: "redis", Addr: mr.Addr(), Prefix: "authd"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	return map[string]Client{
		"memory": NewMemory("authd", time.Minute),
		"redis":  rc,
	}
}

func TestGetSetDelete(t *testing.T) {
	for name, c := range clients(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := c.Get(ctx, "nada")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
			got, err := c.Get(ctx, "k")
			require.NoError(t, err)
			require.Equal(t, "v", got)

			require.NoError(t, c.Delete(ctx, "k"))
			_, err = c.Get(ctx, "k")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestIncr_StartsAtOne(t *testing.T) {
	for name, c := range clients(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			n, err := c.Incr(ctx, "contador", time.Minute)
			require.NoError(t, err)
			require.EqualValues(t, 1, n)

			n, err = c.Incr(ctx, "contador", time.Minute)
			require.NoError(t, err)
			require.EqualValues(t, 2, n)
		})
	}
}

func TestIncr_MemoryConcurrent(t *testing.T) {
	t.Parallel()
	c := NewMemory("", time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Incr(ctx, "k", time.Minute)
		}()
	}
	wg.Wait()

	n, err := c.Incr(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 51, n)
}

func TestRedis_WindowExpiry(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	c, err := NewRedis(Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	_, err = c.Incr(ctx, "w", time.Second)
	require.NoError(t, err)

	// La ventana expira y el contador arranca de nuevo
	mr.FastForward(2 * time.Second)

	n, err := c.Incr(ctx, "w", time.Second)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestNew_UnknownKind(t *testing.T) {
	t.Parallel()
	_, err := New(Config{Kind: "memcached"})
	require.Error(t, err)
}
