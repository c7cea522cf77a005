package embedding

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is used when the configured cache size is non-positive.
const DefaultCacheSize = 10000

// Cache wraps a Client with a bounded LRU cache keyed by exact query text,
// guarded by single-flight so that concurrent callers for the same cold
// key share one backend call (§4.2, P4). Cache hits never touch the
// network. Failures are never cached.
type Cache struct {
	inner Client
	cache *lru.Cache[string, []float32]
	group singleflight.Group
}

// NewCache builds a Cache wrapping inner with an LRU of the given size.
func NewCache(inner Client, size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, _ := lru.New[string, []float32](size)
	return &Cache{inner: inner, cache: c}
}

// Embed resolves text to a vector: a cache hit returns immediately with no
// network I/O; a cache miss single-flights the backend call so at most one
// request per distinct text is ever in flight.
func (c *Cache) Embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.cache.Get(text); ok {
		return vec, nil
	}

	v, err, _ := c.group.Do(text, func() (interface{}, error) {
		vec, err := c.inner.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		c.cache.Add(text, vec)
		return vec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]float32), nil
}
