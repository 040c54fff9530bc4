// Package cache stores rendered grids and artifacts between runs.
//
// Three backends implement [Cache]: [NullCache] (caching disabled),
// [FileCache] (CLI, one JSON file per entry under the XDG cache dir) and
// [RedisCache] (shared by server replicas). [Open] picks one from a
// [Config]. Keys come from a [Keyer] so that every caller derives the same
// key for the same input.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Entry lifetimes.
const (
	TTLRecipe   = 24 * time.Hour
	TTLShape    = 7 * 24 * time.Hour
	TTLCompose  = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Key types, as reported to cache hooks.
const (
	KeyTypeRecipe   = "recipe"
	KeyTypeShape    = "shape"
	KeyTypeCompose  = "compose"
	KeyTypeArtifact = "artifact"
)
