package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping redis container test in short mode")
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
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	require.Eventually(t, func() bool { return client.Ping(ctx).Err() == nil }, 10*time.Second, 200*time.Millisecond)
	return client
}

func TestRedisTableCache_Contract(t *testing.T) {
	client := setupRedis(t)
	assertCacheContract(t, NewRedisTableCache(client))
}

func TestRedisTableCache_SetsTTL(t *testing.T) {
	client := setupRedis(t)
	c := NewRedisTableCache(client)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "k", sampleTable(), 90*time.Second))

	ttl, err := client.TTL(ctx, "k").Result()
	require.NoError(t, err)
	require.Greater(t, ttl, 80*time.Second)
	require.LessOrEqual(t, ttl, 90*time.Second)
}

func TestRedisTableCache_CorruptValue(t *testing.T) {
	client := setupRedis(t)
	c := NewRedisTableCache(client)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "k", "{", time.Minute).Err())

	require.True(t, c.Contains(ctx, "k"))
	_, err := c.Fetch(ctx, "k")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode")
}
