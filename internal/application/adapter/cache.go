package adapter

import (
	"context"
	"time"
)

// Cache defines a best-effort key/value store with per-key TTL.
// Implementations must never propagate failures: an unreachable or
// misbehaving backend degrades to a miss/no-op so the cache can never
// be a source of request failure.
type Cache interface {
	// Get returns the value stored under key, or ok=false on a miss.
	Get(ctx context.Context, key string) (value string, ok bool)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) bool

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) bool

	// Keys enumerates the keys matching a glob-style pattern.
	Keys(ctx context.Context, pattern string) []string

	// FlushAll removes every key.
	FlushAll(ctx context.Context) bool
}
