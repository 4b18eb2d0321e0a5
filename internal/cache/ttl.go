package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Clock returns the current time. Injectable so tests can drive TTL
// expiry with a fake clock instead of sleeping.
type Clock func() time.Time

type entry[T any] struct {
	value     T
	fetchedAt time.Time
}

// Cache is a keyed in-memory store with one fixed TTL per instance.
// Staleness is binary: an entry is served only while now-fetchedAt is
// below the TTL. Entries are never proactively invalidated, only
// superseded by the next successful fetch after expiry (or dropped by
// Sweep).
type Cache[T any] struct {
	ttl   time.Duration
	clock Clock

	mu      sync.Mutex
	entries map[string]entry[T]
	group   singleflight.Group
}

// New builds a cache with the given TTL. A nil clock means wall time.
func New[T any](ttl time.Duration, clock Clock) *Cache[T] {
	if clock == nil {
		clock = time.Now
	}
	return &Cache[T]{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]entry[T]),
	}
}

// Get returns the value stored under key if present and still fresh.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.clock().Sub(e.fetchedAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Put stores value under key stamped with the current time, overwriting
// any prior entry unconditionally.
func (c *Cache[T]) Put(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[T]{value: value, fetchedAt: c.clock()}
}

// GetOrFetch returns the fresh value for key, running fetch on a miss
// and storing its result. Concurrent callers missing on the same key
// share a single underlying fetch. A failed fetch leaves any previous
// entry untouched and reports the error to every waiting caller.
func (c *Cache[T]) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have refreshed the entry while this one
		// waited to join the flight.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		fetched, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.Put(key, fetched)
		return fetched, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Len reports the number of stored entries, fresh or expired.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Sweep drops every entry whose TTL has elapsed and reports how many
// were removed. Keyed caches grow with each distinct key ever stored,
// so a scheduler runs this periodically.
func (c *Cache[T]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	removed := 0
	for k, e := range c.entries {
		if now.Sub(e.fetchedAt) >= c.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}
