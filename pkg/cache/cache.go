// Package cache stores derived data (sampled palettes, encoded frames) so
// repeated renders of the same photograph skip work.
//
// Three backends implement [Cache]:
//   - [NullCache] disables caching
//   - [FileCache] keeps entries on disk, used by the CLI
//   - [RedisCache] shares entries between server instances
//
// Keys are produced by a [Keyer] from content hashes, so a key never
// depends on the file name a photograph was loaded from.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default time-to-live per kind of entry.
const (
	// TTLPalette applies to sampled palettes. Palettes depend only on the
	// source pixels, so they stay valid for a long time.
	TTLPalette = 30 * 24 * time.Hour

	// TTLArtifact applies to encoded frames.
	TTLArtifact = 7 * 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypePalette  = "palette"
	KeyTypeArtifact = "artifact"
)

// NullCache never stores anything. Every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache that disables caching.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
