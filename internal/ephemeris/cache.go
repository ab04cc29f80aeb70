// Package ephemeris resolves planetary position snapshots through an
// ordered ladder of source tiers with a day-keyed TTL cache, validating
// every result against a transit-date table. Resolution never fails: when
// all live tiers are exhausted the bundled reference snapshot is used.
package ephemeris

import (
	"sync"
	"time"

	"alchm-engine/internal/domain"
)

// DefaultCacheTTL is how long a cached snapshot stays valid.
const DefaultCacheTTL = 6 * time.Hour

// Cache is a day-keyed in-memory store of resolved position snapshots.
// Expiry is checked on read; there is no background sweeper. Put overwrites
// unconditionally: all valid resolutions for a day are equivalent, so
// last-writer-wins is correct and no merge is needed.
type Cache struct {
	mu   sync.RWMutex
	data map[string]cacheEntry
	ttl  time.Duration
	now  func() time.Time
}

type cacheEntry struct {
	snapshot *domain.PositionSnapshot
	storedAt time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL sets the entry time-to-live.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithClock sets the time source, for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates an empty position cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		data: make(map[string]cacheEntry),
		ttl:  DefaultCacheTTL,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached snapshot for a day key, or (nil, false) on miss.
// Expired entries are a miss. The returned snapshot is a copy.
func (c *Cache) Get(dateKey string) (*domain.PositionSnapshot, bool) {
	c.mu.RLock()
	entry, ok := c.data[dateKey]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		return nil, false
	}
	return entry.snapshot.Clone(), true
}

// Put stores a snapshot under its day key, overwriting any existing entry.
// The snapshot is copied in so later caller mutations cannot leak.
func (c *Cache) Put(dateKey string, snapshot *domain.PositionSnapshot) {
	if snapshot == nil || dateKey == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[dateKey] = cacheEntry{
		snapshot: snapshot.Clone(),
		storedAt: c.now(),
	}
}

// Len returns the number of entries currently stored, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
