// Package cache provides pluggable caching for pipeline stages.
//
// Generated plan documents and rendered artifacts are byte blobs keyed by
// content hashes of their inputs, so any Cache implementation that can store
// []byte with an optional TTL works. Three backends are provided:
//   - FileCache: sharded files on disk, used by the CLI
//   - RedisCache: shared cache for multi-instance server deployments
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind. Plans are pure functions of their inputs
// and never go stale; the TTL only bounds disk growth.
const (
	TTLPlan     = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface for cache backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
