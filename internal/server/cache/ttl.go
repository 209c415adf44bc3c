// Package cache holds a small in-process TTL cache used for recommendation
// results.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	storedAt  time.Time
	expiresAt time.Time
}

// TTL is a thread-safe map whose entries expire after a fixed duration.
// When full, storing a new key evicts the oldest entry. Expired entries are
// dropped lazily on Get and on Set.
type TTL[V any] struct {
	mu       sync.Mutex
	entries  map[string]entry[V]
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// NewTTL returns a cache holding at most capacity entries for ttl each.
// A capacity below 1 is treated as 1.
func NewTTL[V any](ttl time.Duration, capacity int) *TTL[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &TTL[V]{
		entries:  make(map[string]entry[V], capacity),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the value for key if it has not expired.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous value.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.purgeExpired(now)
		if len(c.entries) >= c.capacity {
			c.evictOldest()
		}
	}
	c.entries[key] = entry[V]{value: value, storedAt: now, expiresAt: now.Add(c.ttl)}
}

// Len reports the number of stored entries, expired ones included until
// they are purged.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *TTL[V]) purgeExpired(now time.Time) {
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

func (c *TTL[V]) evictOldest() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for k, e := range c.entries {
		if !found || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt, found = k, e.storedAt, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}
