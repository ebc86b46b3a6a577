package auth

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestInMemoryBlacklist(t *testing.T) {
	store := NewInMemoryBlacklistStore()

	ok, err := store.IsBlacklisted("unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.AddToBlacklist("live", time.Now().Add(time.Hour)))
	require.NoError(t, store.AddToBlacklist("dead", time.Now().Add(-time.Minute)))

	ok, _ = store.IsBlacklisted("live")
	assert.True(t, ok)

	store.CleanUpExpired()

	store.mu.RLock()
	_, deadExists := store.blacklist["dead"]
	_, liveExists := store.blacklist["live"]
	store.mu.RUnlock()
	assert.False(t, deadExists)
	assert.True(t, liveExists)
}

func TestRedisBlacklist(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisBlacklistStore(client)

	require.NoError(t, store.AddToBlacklist("jti-1", time.Now().Add(time.Minute)))
	ok, err := store.IsBlacklisted("jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := client.TTL(ctx, "jwt:blacklist:jti-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.AddToBlacklist("jti-expired", time.Now().Add(-time.Minute)))
	ok, err = store.IsBlacklisted("jti-expired")
	require.NoError(t, err)
	assert.False(t, ok)
}
