package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. The Redis implementation
// lives in internal/infrastructure/cache; handlers and services only
// ever see this interface.
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// Returns (found, error); on a miss dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set marshals value to JSON and stores it with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
