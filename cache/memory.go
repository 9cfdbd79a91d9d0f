package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMaxEntries bounds an InMemoryCache created with size 0.
const DefaultMaxEntries = 100_000

// InMemoryCache is a thread-safe, size-bounded LRU cache with TTL support.
type InMemoryCache struct {
	lru *expirable.LRU[string, string]
	ttl time.Duration
}

// NewInMemoryCache creates a cache holding at most size entries, evicting
// the least recently used beyond that. A size of 0 or less selects
// DefaultMaxEntries. If ttl is 0 or negative, entries never expire.
func NewInMemoryCache(size int, ttl time.Duration) *InMemoryCache {
	if size <= 0 {
		size = DefaultMaxEntries
	}
	if ttl < 0 {
		ttl = 0
	}
	return &InMemoryCache{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
		ttl: ttl,
	}
}

// Get retrieves a value from the cache.
// Returns the value and true if found and not expired, empty string and false otherwise.
func (c *InMemoryCache) Get(key string) (string, bool) {
	return c.lru.Get(key)
}

// Set stores a value in the cache.
func (c *InMemoryCache) Set(key string, value string) error {
	c.lru.Add(key, value)
	return nil
}

// Len returns the number of entries in the cache.
func (c *InMemoryCache) Len() int {
	return c.lru.Len()
}

// Clear removes all entries from the cache.
func (c *InMemoryCache) Clear() {
	c.lru.Purge()
}

// Keys returns the live keys, oldest first.
func (c *InMemoryCache) Keys() ([]string, error) {
	return c.lru.Keys(), nil
}

// TTL returns the configured entry lifetime; 0 means no expiry.
func (c *InMemoryCache) TTL() time.Duration {
	return c.ttl
}

var _ ExportableCache = (*InMemoryCache)(nil)
