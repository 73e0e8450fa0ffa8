package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/lightningnetwork/lnd/clock"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a bounded key-value store with per entry expiry.
// Expired entries are treated as absent and purged lazily on access.
// When full, inserting a new key evicts the oldest inserted entry.
// Reads never change eviction order.
type Cache[V any] struct {
	mu      sync.Mutex
	lru     *simplelru.LRU[string, entry[V]]
	maxSize int
	ttl     time.Duration
	clock   clock.Clock
}

// Stats describes the cache state.
type Stats struct {
	Size    int
	MaxSize int
	TTL     time.Duration
}

type options struct {
	clock clock.Clock
}

// Option configures a cache.
type Option func(*options)

// WithClock sets the clock the cache reads time from.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// New creates a cache holding at most maxSize entries, each visible for ttl.
// Panics if maxSize is not positive.
func New[V any](maxSize int, ttl time.Duration, opts ...Option) *Cache[V] {
	o := options{clock: clock.NewDefaultClock()}
	for _, opt := range opts {
		opt(&o)
	}

	lru, err := simplelru.NewLRU[string, entry[V]](maxSize, nil)
	if err != nil {
		panic(err)
	}

	return &Cache[V]{
		lru:     lru,
		maxSize: maxSize,
		ttl:     ttl,
		clock:   o.clock,
	}
}

// Get returns the value for key if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Peek so that reads do not refresh the position of the entry.
	e, ok := c.lru.Peek(key)
	if !ok {
		var zero V
		return zero, false
	}

	if !c.clock.Now().Before(e.expiresAt) {
		c.lru.Remove(key)
		var zero V
		return zero, false
	}

	return e.value, true
}

// Set stores value under key with expiry now + ttl.
// Re-setting an existing key counts as a fresh insertion.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Remove first so that the key moves to the newest position.
	c.lru.Remove(key)
	c.lru.Add(key, entry[V]{
		value:     value,
		expiresAt: c.clock.Now().Add(c.ttl),
	})
}

// Invalidate removes key.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Remove(key)
}

// InvalidateByPrefix removes every key starting with prefix and returns how many were removed.
func (c *Cache[V]) InvalidateByPrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.lru.Remove(key)
			removed++
		}
	}
	return removed
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Purge()
}

// Prune removes all expired entries and returns how many were removed.
func (c *Cache[V]) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	removed := 0
	for _, key := range c.lru.Keys() {
		e, ok := c.lru.Peek(key)
		if ok && !now.Before(e.expiresAt) {
			c.lru.Remove(key)
			removed++
		}
	}
	return removed
}

// Stats returns the cache size, capacity and ttl.
// Size may include expired entries that have not been purged yet.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Size:    c.lru.Len(),
		MaxSize: c.maxSize,
		TTL:     c.ttl,
	}
}
