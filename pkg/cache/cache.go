// Package cache provides caching for rendered board fragments.
//
// Plotting a board split is the most expensive step of the pipeline, and its
// output depends only on the board contents, the net set, the layer, and the
// plot options. The cache stores finished SVG fragments keyed by a hash of
// those inputs so repeated runs over an unchanged board skip the plot pass
// entirely. Caching is transparent: enabling or disabling it never changes the
// output bytes.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for rendered fragments.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (zero means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// FragmentKeyOpts captures every plot input that affects fragment bytes.
type FragmentKeyOpts struct {
	Layer     string   `json:"layer"`
	Nets      []string `json:"nets"`
	SkipZones bool     `json:"skip_zones"`
	Outline   bool     `json:"outline"`
}

// FragmentKey generates a cache key for a rendered fragment.
// boardHash is the content hash of the source board file.
func FragmentKey(boardHash string, opts FragmentKeyOpts) string {
	return hashKey("fragment:"+boardHash, opts)
}
