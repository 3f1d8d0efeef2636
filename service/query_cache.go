package service

import (
	"context"
	"strings"
	"sync"
)

// QueryKey identifies a cached catalog read by its domain segments, e.g.
// {"media", galleryID} or {"businesses", searchQuery}.
type QueryKey []string

func (k QueryKey) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether k falls under the given domain prefix.
func (k QueryKey) HasPrefix(prefix QueryKey) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, segment := range prefix {
		if k[i] != segment {
			return false
		}
	}
	return true
}

// CacheInvalidator is the only write surface the mutation coordinator needs
// on a cache: marking a domain of entries stale after a successful write.
type CacheInvalidator interface {
	Invalidate(prefix QueryKey) int
}

type cacheEntry[T any] struct {
	key   QueryKey
	value T
	stale bool
}

// QueryCache holds the last successful fetch result per query key with a
// staleness flag. Readers refetch when an entry is missing or stale; only
// the mutation coordinator marks entries stale.
type QueryCache[T any] struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry[T]
}

func NewQueryCache[T any]() *QueryCache[T] {
	return &QueryCache[T]{entries: make(map[string]*cacheEntry[T])}
}

// GetOrFetch returns the cached value for key, calling fetch when the entry
// is missing or stale. A fetch failure is returned to the caller and leaves
// any previous (stale) entry in place.
func (c *QueryCache[T]) GetOrFetch(ctx context.Context, key QueryKey, fetch func(context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	entry, ok := c.entries[key.String()]
	if ok && !entry.stale {
		value := entry.value
		c.mu.Unlock()
		return value, nil
	}
	c.mu.Unlock()

	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	c.entries[key.String()] = &cacheEntry[T]{key: key, value: value}
	c.mu.Unlock()
	return value, nil
}

// Invalidate marks every entry under the given domain prefix as stale and
// returns how many entries were affected.
func (c *QueryCache[T]) Invalidate(prefix QueryKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	affected := 0
	for _, entry := range c.entries {
		if !entry.stale && entry.key.HasPrefix(prefix) {
			entry.stale = true
			affected++
		}
	}
	return affected
}

// IsStale reports whether the entry for key is stale. A missing entry counts
// as stale since a read would have to fetch.
func (c *QueryCache[T]) IsStale(key QueryKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key.String()]
	return !ok || entry.stale
}
