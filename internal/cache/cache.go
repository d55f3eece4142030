// Package cache provides small in-process caches. There is no external
// cache tier: lifetimes never exceed the process.
package cache

import (
	"sync"
	"time"
)

// Cache is a concurrency-safe key/value store with per-entry TTL.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Len() int
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type ttlCache[K comparable, V any] struct {
	mu         sync.RWMutex
	entries    map[K]entry[V]
	maxEntries int
	now        func() time.Time
}

// NewTTLCache returns an empty TTL cache. maxEntries <= 0 means unbounded.
func NewTTLCache[K comparable, V any](maxEntries int) Cache[K, V] {
	return &ttlCache[K, V]{
		entries:    make(map[K]entry[V]),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *ttlCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *ttlCache[K, V]) Set(key K, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(ttl)}
}

func (c *ttlCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictLocked drops expired entries, then arbitrary ones until under capacity.
func (c *ttlCache[K, V]) evictLocked() {
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	for k := range c.entries {
		if len(c.entries) < c.maxEntries {
			break
		}
		delete(c.entries, k)
	}
}
