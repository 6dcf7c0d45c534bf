// Package cache implements the cache facade on top of Redis.
//
// Every operation is best-effort: an underlying Redis failure is logged
// and converted into a miss or no-op, never propagated. The cache is an
// optimization, not a correctness dependency.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// redisCache implements the adapter.Cache interface.
type redisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis-backed cache facade.
func NewRedisCache(client *redis.Client) adapter.Cache {
	return &redisCache{client: client}
}

// Get returns the value stored under key, or ok=false on a miss or failure.
func (c *redisCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("Cache get failed", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

// Set stores value under key with the given TTL.
func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Warn("Cache set failed", "key", key, "error", err)
		return false
	}
	return true
}

// Delete removes the given keys.
func (c *redisCache) Delete(ctx context.Context, keys ...string) bool {
	if len(keys) == 0 {
		return true
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("Cache delete failed", "keys", keys, "error", err)
		return false
	}
	return true
}

// Keys enumerates the keys matching a glob-style pattern.
func (c *redisCache) Keys(ctx context.Context, pattern string) []string {
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		slog.Warn("Cache key enumeration failed", "pattern", pattern, "error", err)
		return nil
	}
	return keys
}

// FlushAll removes every key.
func (c *redisCache) FlushAll(ctx context.Context) bool {
	if err := c.client.FlushAll(ctx).Err(); err != nil {
		slog.Warn("Cache flush failed", "error", err)
		return false
	}
	return true
}
