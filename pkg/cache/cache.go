// Package cache provides an in-memory LRU cache with TTL and a two-level
// loader that layers it over Redis.
//
// Example usage:
//
//	mem := NewCache(env.CacheConfig)
//	defer mem.Stop()
//
//	loader := NewLoader[model.Coordinates](mem, redisClient, LoaderOptions{Prefix: "geo:"})
//	coords, err := loader.Get(ctx, "12345", fetchCoordinates)
package cache

import "github.com/duccv/weather-tracker/config"

// Cache interface defines the common methods for in-memory caches.
type Cache interface {
	// Get retrieves an item from the cache by its key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// Set adds a key-value pair to the cache with the default TTL.
	Set(key string, value any)

	// SetWithTTL adds a key-value pair to the cache with a custom TTL in seconds.
	SetWithTTL(key string, value any, ttlSeconds int)

	Delete(key string)

	// Size returns the current number of items in the cache.
	Size() int

	MaxSize() int

	Stats() Stats

	// Stop shuts down the background cleanup goroutine.
	Stop()
}

// Stats counts lookups since the cache was created.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Expired   uint64
}

// NewCache creates the in-memory cache described by cfg. LRU is the only
// eviction policy; unknown types fall back to it.
func NewCache(cfg config.CacheConfig) Cache {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 1000
	}
	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = 3600
	}
	return NewLRUCache(capacity, ttl)
}
