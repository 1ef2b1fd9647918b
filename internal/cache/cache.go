package cache

import (
	"sync"
	"time"
)

// Package cache provides the in-memory TTL cache the orchestrator uses for
// pattern-analysis results. Expensive history mining for the same
// location/type pair within one cycle window hits the cache instead of the
// history provider.

// entry is one cached value with its expiry.
type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache is a TTL cache with a maximum entry count. Safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
}

// New creates a cache with the given TTL and maximum entry count.
func New(ttl time.Duration, maxEntries int) *Cache {
	return &Cache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Get retrieves a cached value by key. Expired entries are treated as misses
// and removed.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores a value under key. When the cache is full, the entry closest to
// expiry is evicted first.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Delete removes a key from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the current entry count, expired entries included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldestLocked removes the entry closest to expiry. Caller holds the lock.
func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	first := true
	for k, e := range c.entries {
		if first || e.expiresAt.Before(oldest) {
			oldestKey = k
			oldest = e.expiresAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
