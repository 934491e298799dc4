// Package cache stores extracted bundle descriptors between runs.
//
// Entries are keyed by the package file path and a hash of its contents, so
// an upgraded or edited package misses the cache.
//
// Two implementations are provided:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [NullCache]: stores nothing (--no-cache and library default)
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a cached descriptor stays valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired or
	// unreadable entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
