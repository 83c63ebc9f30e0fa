package cache

import (
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	expiresAt time.Time // zero means no expiration
}

func (it item[V]) expired(at time.Time) bool {
	return !it.expiresAt.IsZero() && at.After(it.expiresAt)
}

// TTL is a map-backed Cache with per-entry expiry. Expired entries are ignored on
// read and removed by PurgeExpired; there is no background janitor.
type TTL[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]item[V]
}

// NewTTL returns an empty TTL cache, safe for concurrent use.
func NewTTL[K comparable, V any]() *TTL[K, V] {
	return &TTL[K, V]{items: make(map[K]item[V])}
}

// now is swapped in tests.
var now = time.Now

// Get implements Cache.Get.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	it, ok := c.items[key]
	if !ok || it.expired(now()) {
		return zero, false
	}
	return it.value, true
}

// Set implements Cache.Set.
func (c *TTL[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := item[V]{value: value}
	if ttl > 0 {
		it.expiresAt = now().Add(ttl)
	}
	c.items[key] = it
}

// Delete implements Cache.Delete.
func (c *TTL[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok {
		return false
	}
	delete(c.items, key)
	return !it.expired(now())
}

// Len implements Cache.Len.
func (c *TTL[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	at := now()
	n := 0
	for _, it := range c.items {
		if !it.expired(at) {
			n++
		}
	}
	return n
}

// PurgeExpired implements Cache.PurgeExpired.
func (c *TTL[K, V]) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	at := now()
	dropped := 0
	for k, it := range c.items {
		if it.expired(at) {
			delete(c.items, k)
			dropped++
		}
	}
	return dropped
}

var _ Cache[string, int] = (*TTL[string, int])(nil)
