package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/chatkit/core/cache"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects max size below 1", func(t *testing.T) {
		t.Parallel()

		_, err := cache.New[string, int](0, time.Minute)
		require.ErrorIs(t, err, cache.ErrInvalidMaxSize)

		_, err = cache.New[string, int](-5, time.Minute)
		require.ErrorIs(t, err, cache.ErrInvalidMaxSize)
	})

	t.Run("rejects negative default TTL", func(t *testing.T) {
		t.Parallel()

		_, err := cache.New[string, int](10, -time.Second)
		require.ErrorIs(t, err, cache.ErrInvalidTTL)
	})

	t.Run("accepts zero default TTL", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New[string, int](10, 0)
		require.NoError(t, err)
		require.NotNil(t, c)
	})
}

func TestCache_LRUEviction(t *testing.T) {
	t.Parallel()

	t.Run("evicts first-inserted key when capacity exceeded", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New[string, int](3, 0)
		require.NoError(t, err)

		c.Set("a", 1)
		c.Set("b", 2)
		c.Set("c", 3)
		c.Set("d", 4)

		_, ok := c.Get("a")
		assert.False(t, ok, "a should have been evicted")
		assert.True(t, c.Has("b"))
		assert.True(t, c.Has("c"))
		assert.True(t, c.Has("d"))
		assert.Equal(t, uint64(1), c.Stats().Evictions)
	})

	t.Run("read protects a key from eviction", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New[string, int](3, 0)
		require.NoError(t, err)

		c.Set("a", 1)
		c.Set("b", 2)
		c.Set("c", 3)

		_, ok := c.Get("a")
		require.True(t, ok)

		c.Set("d", 4) // "b" is now least recently used

		assert.True(t, c.Has("a"))
		assert.False(t, c.Has("b"))
		assert.True(t, c.Has("c"))
		assert.True(t, c.Has("d"))
	})

	t.Run("overwrite refreshes recency without duplication", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New[string, int](2, 0)
		require.NoError(t, err)

		c.Set("a", 1)
		c.Set("b", 2)
		c.Set("a", 10) // "b" becomes least recently used
		c.Set("c", 3)

		assert.Equal(t, 2, c.Len())
		v, ok := c.Get("a")
		require.True(t, ok)
		assert.Equal(t, 10, v)
		assert.False(t, c.Has("b"))
	})

	t.Run("works with capacity of 1", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New[string, int](1, 0)
		require.NoError(t, err)

		c.Set("a", 1)
		c.Set("b", 2)

		assert.False(t, c.Has("a"))
		v, ok := c.Get("b")
		require.True(t, ok)
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("has does not refresh recency", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New[string, int](2, 0)
		require.NoError(t, err)

		c.Set("a", 1)
		c.Set("b", 2)
		require.True(t, c.Has("a")) // must not protect "a"
		c.Set("c", 3)

		assert.False(t, c.Has("a"))
		assert.True(t, c.Has("b"))
	})
}

func TestCache_TTL(t *testing.T) {
	t.Parallel()

	t.Run("entry absent after TTL elapses", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New[string, string](10, time.Minute)
		require.NoError(t, err)

		c.Set("k", "v", 50*time.Millisecond)

		v, ok := c.Get("k")
		require.True(t, ok)
		assert.Equal(t, "v", v)

		time.Sleep(80 * time.Millisecond)

		_, ok = c.Get("k")
		assert.False(t, ok)
		assert.False(t, c.Has("k"))
	})

	t.Run("zero TTL never expires", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New[string, string](10, 30*time.Millisecond)
		require.NoError(t, err)

		c.Set("k", "v", 0)
		time.Sleep(60 * time.Millisecond)

		_, ok := c.Get("k")
		assert.True(t, ok)
	})

	t.Run("default TTL applies when omitted", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New[string, string](10, 40*time.Millisecond)
		require.NoError(t, err)

		c.Set("k", "v")
		time.Sleep(70 * time.Millisecond)

		_, ok := c.Get("k")
		assert.False(t, ok)
	})

	t.Run("delete reports true for expired but present entries", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New[string, string](10, 0)
		require.NoError(t, err)

		c.Set("k", "v", 10*time.Millisecond)
		time.Sleep(30 * time.Millisecond)

		assert.True(t, c.Delete("k"))
		assert.False(t, c.Delete("k"))
	})
}

func TestCache_Prune(t *testing.T) {
	t.Parallel()

	c, err := cache.New[string, int](10, 0)
	require.NoError(t, err)

	c.Set("short1", 1, 20*time.Millisecond)
	c.Set("short2", 2, 20*time.Millisecond)
	c.Set("forever", 3, 0)

	time.Sleep(50 * time.Millisecond)

	removed := c.Prune()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Has("forever"))

	assert.Zero(t, c.Prune())
}

func TestCache_Stats(t *testing.T) {
	t.Parallel()

	t.Run("hit rate is zero with no accesses", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New[string, int](10, 0)
		require.NoError(t, err)

		assert.Zero(t, c.Stats().HitRate)
	})

	t.Run("hit rate reflects hits and misses", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New[string, int](10, 0)
		require.NoError(t, err)

		c.Set("a", 1)
		c.Get("a")       // hit
		c.Get("a")       // hit
		c.Get("a")       // hit
		c.Get("missing") // miss

		stats := c.Stats()
		assert.Equal(t, uint64(3), stats.Hits)
		assert.Equal(t, uint64(1), stats.Misses)
		assert.InDelta(t, 75.0, stats.HitRate, 0.001)
	})

	t.Run("has does not affect hit rate", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New[string, int](10, 0)
		require.NoError(t, err)

		c.Set("a", 1)
		c.Has("a")
		c.Has("missing")

		stats := c.Stats()
		assert.Zero(t, stats.Hits)
		assert.Zero(t, stats.Misses)
		assert.Zero(t, stats.HitRate)
	})
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	c, err := cache.New[string, int](10, 0)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")

	c.Clear()

	assert.Zero(t, c.Len())
	assert.False(t, c.Has("a"))
	// Counters survive a clear.
	assert.Equal(t, uint64(1), c.Stats().Hits)
}
