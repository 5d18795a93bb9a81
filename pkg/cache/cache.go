// Package cache stores rendered artifacts and rankings between cdgpath runs.
//
// Rendering a large CDG to SVG or ranking many paths is repeatable work: the
// result depends only on the graph and the options. The pipeline keys results
// by a hash of the graph's records plus the options, and keeps them in one of
// three backends:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for CI machines running many
//     jobs against the same graphs
//   - [NullCache]: stores nothing
//
// [Open] picks a backend from a [Config].
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every entry owned by the cache.
	Clear(ctx context.Context) error
	// Close releases resources.
	Close() error
}

// Default lifetimes per entry kind.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLRanking  = 24 * time.Hour
)

// Backend names a cache implementation.
type Backend string

const (
	BackendFile  Backend = "file"
	BackendRedis Backend = "redis"
	BackendNone  Backend = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend Backend
	// Dir is the directory used by the file backend.
	Dir string
	// Redis configures the redis backend.
	Redis RedisConfig
}

// Open creates the cache described by cfg. An empty backend means file.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, cfg.Redis)
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}
