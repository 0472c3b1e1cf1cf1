// Package cache provides an in-memory LRU cache with per-entry TTL.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const defaultCapacity = 100

// entry is a cached item with its expiry and LRU position.
type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	element   *list.Element
}

// MemoryCache is a typed LRU cache; expired entries are dropped lazily on
// access and by CleanExpired.
type MemoryCache[V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*entry[V]
	lru      *list.List
	now      func() time.Time
}

// New creates a cache holding at most capacity entries (<= 0 uses 100).
func New[V any](capacity int) *MemoryCache[V] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &MemoryCache[V]{
		capacity: capacity,
		items:    make(map[string]*entry[V]),
		lru:      list.New(),
		now:      time.Now,
	}
}

// Get returns the value for key if present and not expired.
func (c *MemoryCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if c.expired(e) {
		c.remove(e)
		return zero, false
	}
	c.lru.MoveToFront(e.element)
	return e.value, true
}

// Set stores value under key. A ttl of 0 never expires.
func (c *MemoryCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.lru.MoveToFront(e.element)
		return
	}

	if len(c.items) >= c.capacity {
		if back := c.lru.Back(); back != nil {
			c.remove(back.Value.(*entry[V]))
		}
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	e.element = c.lru.PushFront(e)
	c.items[key] = e
}

// GetOrLoad returns the cached value or calls load and caches its result.
// Errors are not cached. Concurrent misses may call load more than once.
func (c *MemoryCache[V]) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	c.Set(key, v, ttl)
	return v, nil
}

// Delete removes key.
func (c *MemoryCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		c.remove(e)
	}
}

// Len returns the number of stored entries, expired ones included until swept.
func (c *MemoryCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// CleanExpired removes every expired entry and returns how many were dropped.
func (c *MemoryCache[V]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, e := range c.items {
		if c.expired(e) {
			c.remove(e)
			removed++
		}
	}
	return removed
}

// Must be called with c.mu held.
func (c *MemoryCache[V]) expired(e *entry[V]) bool {
	return !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt)
}

// Must be called with c.mu held.
func (c *MemoryCache[V]) remove(e *entry[V]) {
	delete(c.items, e.key)
	c.lru.Remove(e.element)
}
