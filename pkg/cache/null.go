package cache

import (
	"context"
	"time"
)

// NullCache stores nothing: every Get misses and every write succeeds.
// It is what runners use when no cache is configured.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error { return nil }
func (*NullCache) Close() error { return nil }

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
