package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a thread-safe bounded cache with LRU eviction and per-entry TTL.
// When inserting a new key would exceed the configured maximum size, the least
// recently used entry is evicted. Expired entries are purged lazily on access
// and eagerly by Prune.
type Cache[K comparable, V any] struct {
	mu         sync.Mutex
	maxSize    int
	defaultTTL time.Duration

	// order keeps entries most-recently-used first; items maps keys to their
	// list elements so recency updates stay O(1).
	order *list.List
	items map[K]*list.Element

	hits      uint64
	misses    uint64
	evictions uint64
}

type entry[K comparable, V any] struct {
	key        K
	value      V
	expiresAt  time.Time // zero means the entry never expires
	lastAccess time.Time
}

func (e *entry[K, V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// New creates a cache holding at most maxSize entries. Entries set without an
// explicit TTL expire after defaultTTL; a defaultTTL of zero means entries
// never expire unless Set is called with a positive TTL.
func New[K comparable, V any](maxSize int, defaultTTL time.Duration) (*Cache[K, V], error) {
	if maxSize < 1 {
		return nil, ErrInvalidMaxSize
	}
	if defaultTTL < 0 {
		return nil, ErrInvalidTTL
	}
	return &Cache[K, V]{
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		order:      list.New(),
		items:      make(map[K]*list.Element, maxSize),
	}, nil
}

// Get returns the value for key and whether it was present. Expired entries
// are treated as absent and removed. A hit refreshes the entry's recency.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	elem, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}

	ent := elem.Value.(*entry[K, V])
	if ent.expired(now) {
		c.removeElement(elem)
		c.evictions++
		c.misses++
		var zero V
		return zero, false
	}

	ent.lastAccess = now
	c.order.MoveToFront(elem)
	c.hits++
	return ent.value, true
}

// Set stores value under key. An optional TTL overrides the cache default;
// a TTL of exactly zero means the entry never expires. Overwriting an existing
// key refreshes its recency. Inserting a new key evicts least recently used
// entries until the cache is within capacity.
func (c *Cache[K, V]) Set(key K, value V, ttl ...time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	effective := c.defaultTTL
	if len(ttl) > 0 {
		effective = ttl[0]
	}
	var expiresAt time.Time
	if effective > 0 {
		expiresAt = now.Add(effective)
	}

	if elem, ok := c.items[key]; ok {
		ent := elem.Value.(*entry[K, V])
		ent.value = value
		ent.expiresAt = expiresAt
		ent.lastAccess = now
		c.order.MoveToFront(elem)
		return
	}

	for len(c.items) >= c.maxSize {
		c.evictOldest()
	}

	elem := c.order.PushFront(&entry[K, V]{
		key:        key,
		value:      value,
		expiresAt:  expiresAt,
		lastAccess: now,
	})
	c.items[key] = elem
}

// Delete removes key and reports whether it was present, expired or not.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeElement(elem)
	return true
}

// Has reports whether key is present and unexpired. Unlike Get it does not
// refresh recency and does not count toward the hit rate, but it still purges
// an expired entry it finds.
func (c *Cache[K, V]) Has(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	if elem.Value.(*entry[K, V]).expired(time.Now()) {
		c.removeElement(elem)
		c.evictions++
		return false
	}
	return true
}

// Prune removes all expired entries regardless of capacity pressure and
// returns how many were removed. Intended for periodic maintenance.
func (c *Cache[K, V]) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if elem.Value.(*entry[K, V]).expired(now) {
			c.removeElement(elem)
			c.evictions++
			removed++
		}
		elem = next
	}
	return removed
}

// Len returns the number of physically present entries, including any that
// have expired but not yet been purged.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes every entry without touching the hit/miss/eviction counters.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[K]*list.Element, c.maxSize)
}

// Stats is a point-in-time snapshot of cache metrics.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
	// HitRate is hits/(hits+misses) as a percentage, 0 when there were no
	// accesses yet.
	HitRate float64
}

// Stats returns current cache metrics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.items),
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total) * 100.0
	}
	return s
}

func (c *Cache[K, V]) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	c.removeElement(elem)
	c.evictions++
}

func (c *Cache[K, V]) removeElement(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*entry[K, V]).key)
}
