// Package cache stores rendered artifacts so that identical drawings are
// not rendered twice.
//
// A drawing is identified by [GraphHash], a digest of its topology,
// positions and boundary flags. [ArtifactKey] combines that digest with
// the render settings into a cache key. Three backends implement [Cache]:
//
//   - [NullCache] stores nothing and is the default.
//   - [FileCache] keeps entries as files, for the CLI.
//   - [RedisCache] keeps entries in Redis, for servers sharing a cache.
//
// [Open] picks a backend from a single string, which is how the CLI's
// --cache flag is interpreted.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value stored under key. A miss is reported as
	// (nil, false, nil), not as an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Open returns the backend described by target: an empty string disables
// caching, a redis:// or rediss:// URL connects to Redis, and anything
// else is taken as a directory for a [FileCache].
func Open(ctx context.Context, target string) (Cache, error) {
	switch {
	case target == "":
		return NewNullCache(), nil
	case strings.HasPrefix(target, "redis://"), strings.HasPrefix(target, "rediss://"):
		return NewRedisCache(ctx, target)
	default:
		return NewFileCache(target)
	}
}
