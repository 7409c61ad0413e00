package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisLimiter(rdb, limit, window), mr
}

func TestRedisLimiter_Allow(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		allowed, err := limiter.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i)
	}

	allowed, err := limiter.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, allowed)

	// Other clients have their own counter
	allowed, err = limiter.Allow(ctx, "198.51.100.1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiter_WindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, 10*time.Minute)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "client")
	require.NoError(t, err)
	require.True(t, allowed)

	assert.Equal(t, 10*time.Minute, mr.TTL(KeyPrefix+"client"))

	allowed, err = limiter.Allow(ctx, "client")
	require.NoError(t, err)
	require.False(t, allowed)

	mr.FastForward(10 * time.Minute)

	allowed, err = limiter.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiter_Defaults(t *testing.T) {
	limiter, mr := newTestLimiter(t, 0, 0)

	assert.Equal(t, int64(1), limiter.limit)
	assert.Equal(t, time.Minute, limiter.window)

	_, err := limiter.Allow(context.Background(), "client")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL(KeyPrefix+"client"))
}

func TestRedisLimiter_BackendDown(t *testing.T) {
	limiter, mr := newTestLimiter(t, 5, time.Minute)
	mr.Close()

	allowed, err := limiter.Allow(context.Background(), "client")
	assert.Error(t, err)
	assert.False(t, allowed)
}
