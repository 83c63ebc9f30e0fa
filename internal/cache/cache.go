package cache

import "time"

// Cache is a key-value store whose entries may expire.
type Cache[K comparable, V any] interface {
	// Get returns the value and whether it was present and not expired.
	Get(key K) (V, bool)

	// Set stores the value. A ttl <= 0 means the entry never expires.
	Set(key K, value V, ttl time.Duration)

	// Delete removes a key and reports whether a live entry was removed.
	Delete(key K) bool

	// Len returns the number of live entries.
	Len() int

	// PurgeExpired drops expired entries and returns how many were dropped.
	PurgeExpired() int
}
