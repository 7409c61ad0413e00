package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces the per-client counters
const KeyPrefix = "ratelimit:contact:"

// RedisLimiter is a fixed-window counter stored in Redis
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRedisLimiter allows limit requests per client in every window
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
	}
}

// Allow counts one request for clientID and reports whether it is within the limit
func (l *RedisLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	key := KeyPrefix + clientID

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count request: %w", err)
	}

	// First hit opens the window
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set window expiry: %w", err)
		}
	}

	return count <= l.limit, nil
}
