//go:build integration

package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// Run with: go test -tags=integration ./internal/adapter/cache/ -v -count=1

func setupRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	return strings.TrimPrefix(endpoint, "redis://")
}

func TestRedis_GetSet(t *testing.T) {
	addr := setupRedis(t)
	store, err := NewRedis(addr, "", 0, time.Minute)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))

	_, ok, err := store.Get(ctx, "https://example.test/forecast?model=gfs")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "https://example.test/forecast?model=gfs", []byte(`{"hourly":{}}`)))
	v, ok, err := store.Get(ctx, "https://example.test/forecast?model=gfs")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"hourly":{}}`, string(v))
}

func TestRedis_Expiry(t *testing.T) {
	addr := setupRedis(t)
	store, err := NewRedis(addr, "", 0, time.Second)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", []byte("v")))

	assert.Eventually(t, func() bool {
		_, ok, err := store.Get(ctx, "k")
		return err == nil && !ok
	}, 5*time.Second, 200*time.Millisecond)
}

func TestNewRedis_Unreachable(t *testing.T) {
	_, err := NewRedis("127.0.0.1:1", "", 0, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}
