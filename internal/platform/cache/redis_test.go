package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestBackend connects to the Redis named by TASK_API_TEST_REDIS_ADDR,
// skipping the test when it is unset or unreachable.
func setupTestBackend(t *testing.T) *RedisBackend {
	t.Helper()

	addr := os.Getenv("TASK_API_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TASK_API_TEST_REDIS_ADDR not set - skipping redis test")
	}

	client := NewRedisClient(config.CacheConfig{RedisAddr: addr, TTL: time.Minute})
	backend := NewRedisBackend(client, "task-api-test:"+t.Name()+":")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := backend.Ping(ctx); err != nil {
		_ = backend.Close()
		t.Skipf("Redis not available at %s: %v", addr, err)
	}

	t.Cleanup(func() {
		_ = backend.Delete(context.Background(), ListKey, "other")
		_ = backend.Close()
	})
	return backend
}

func TestNewRedisClient(t *testing.T) {
	client := NewRedisClient(config.CacheConfig{
		RedisAddr:     "cache.internal:6380",
		RedisPassword: "hunter2",
		RedisDB:       3,
	})
	defer func() { _ = client.Close() }()

	opts := client.Options()
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "hunter2", opts.Password)
	assert.Equal(t, 3, opts.DB)
}

func TestNewRedisBackend_NilClientPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewRedisBackend(nil, DefaultPrefix)
	})
}

func TestRedisBackend_RoundTrip(t *testing.T) {
	backend := setupTestBackend(t)
	ctx := context.Background()

	_, found, err := backend.Get(ctx, ListKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, backend.Set(ctx, ListKey, []byte(`[]`), time.Minute))
	require.NoError(t, backend.Set(ctx, "other", []byte(`1`), time.Minute))

	data, found, err := backend.Get(ctx, ListKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(data))

	require.NoError(t, backend.Delete(ctx, ListKey, "other"))
	_, found, err = backend.Get(ctx, "other")
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, backend.Delete(ctx))
}
