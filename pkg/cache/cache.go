// Package cache stores computed layouts and rendered artifacts.
//
// Laying out labels is cheap, but measuring text and rasterizing are not,
// and the HTTP server sees the same charts over and over. Entries are keyed
// by content: [Keyer] derives keys from a hash of the chart document plus
// every option that influences the result, so a changed chart or config
// never hits a stale entry.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory; used by the CLI.
//   - [RedisCache]: shared cache for server deployments.
//   - [NullCache]: stores nothing; used with --no-cache.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every entry owned by the cache.
	Clear(ctx context.Context) error
	Close() error
}
