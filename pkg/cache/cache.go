// Package cache provides the artifact cache used by the render pipeline.
//
// # Overview
//
// Rendering a diagram is cheap, but converting it (PDF through rsvg-convert,
// node-link SVG through Graphviz) is not. The pipeline stores rendered
// artifacts under a key derived from the document hash and the render
// options, so repeated renders of an unchanged document are served from the
// cache.
//
// Three implementations are provided:
//
//   - [FileCache]: one JSON file per entry, for CLI usage
//   - [RedisCache]: shared cache for the HTTP service
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are built by a [Keyer]. [ScopedKeyer] prefixes every key, which lets
// several services share one redis database.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional time-to-live.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLArtifact is the default lifetime of rendered artifacts.
const TTLArtifact = 7 * 24 * time.Hour

// NullCache never stores anything; every Get is a miss.
type NullCache struct{}

// NewNullCache returns the cache used for --no-cache and unreachable backends.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
