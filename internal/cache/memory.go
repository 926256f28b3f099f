package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache holds marshaled Serper search responses in process memory
// so repeated checks of the same claim within a run do not burn API
// quota. Values are opaque byte slices; keys are the normalized query.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a cache whose entries expire after defaultTTL.
// Expired entries are reaped every cleanupInterval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a cached response. The second return is false on a miss
// or after expiry.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a response under key. A zero ttl uses the cache default.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete evicts a single entry.
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear drops every entry, typically between batch runs.
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
