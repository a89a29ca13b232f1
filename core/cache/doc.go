// Package cache provides a thread-safe, generic bounded cache combining LRU
// eviction with per-entry TTL expiry and built-in hit/miss/eviction metrics.
//
// # Features
//
//   - Generic type parameters for compile-time type safety
//   - Fixed maximum size with least-recently-used eviction
//   - Per-entry TTL with a configurable default (zero = never expires)
//   - Lazy expiry on access plus explicit Prune for periodic maintenance
//   - Hit, miss, and eviction counters with a derived hit rate
//   - Coarse per-instance locking; operations are O(1)
//
// # Usage
//
//	import "github.com/dmitrymomot/chatkit/core/cache"
//
//	// Capacity 1000, entries expire after 5 minutes by default.
//	c, err := cache.New[string, *User](1000, 5*time.Minute)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	c.Set("user:123", &User{ID: 123})
//	c.Set("pinned", &User{ID: 1}, 0) // never expires
//
//	if user, ok := c.Get("user:123"); ok {
//		fmt.Println(user.ID)
//	}
//
// Separate concerns should use separate cache instances rather than a shared
// keyspace, so that eviction pressure in one namespace does not starve another.
//
// # Metrics
//
//	stats := c.Stats()
//	fmt.Printf("hit rate: %.1f%% (evictions: %d)\n", stats.HitRate, stats.Evictions)
package cache
