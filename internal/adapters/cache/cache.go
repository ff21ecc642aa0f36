// Package cache stores built pages between revalidations.
//
// Two implementations share the Store contract: Redis for deployments with
// more than one replica, and an in-process map otherwise. Both hold JSON so a
// cached value never aliases the caller's memory.
package cache

import (
	"context"
	"time"
)

// Store is a TTL key/value store of JSON documents.
type Store interface {
	// GetJSON decodes the value at key into out. It reports false on a miss.
	GetJSON(ctx context.Context, key string, out any) (bool, error)

	// SetJSON encodes value and stores it for ttl. A non-positive ttl uses the store default.
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping reports whether the backing store is usable.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}

// DefaultTTL applies when SetJSON is called without a ttl.
const DefaultTTL = 60 * time.Second
