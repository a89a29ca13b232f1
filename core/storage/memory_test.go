package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/chatkit/core/session"
	"github.com/dmitrymomot/chatkit/core/storage"
)

func testRecord(id string) *storage.Record {
	now := time.Now()
	return &storage.Record{
		ID:             id,
		Status:         session.StatusActive,
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(time.Minute),
		Messages: []session.Message{
			{Role: session.RoleUser, Content: "hi", CreatedAt: now},
		},
	}
}

func TestMemoryStore_CRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	t.Cleanup(store.Close)

	t.Run("get returns nil for absent key", func(t *testing.T) {
		rec, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		rec := testRecord("s1")
		require.NoError(t, store.Set(ctx, "s1", rec, 0))

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, rec, got)

		ok, err := store.Has(ctx, "s1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("delete reports presence", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "s2", testRecord("s2"), 0))

		deleted, err := store.Delete(ctx, "s2")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = store.Delete(ctx, "s2")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("keys and count track live entries", func(t *testing.T) {
		fresh := storage.NewMemoryStore()
		t.Cleanup(fresh.Close)

		require.NoError(t, fresh.Set(ctx, "a", testRecord("a"), 0))
		require.NoError(t, fresh.Set(ctx, "b", testRecord("b"), 0))

		keys, err := fresh.Keys(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, keys)

		count, err := fresh.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		require.NoError(t, fresh.Clear(ctx))
		count, err = fresh.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestMemoryStore_TTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	t.Cleanup(store.Close)

	require.NoError(t, store.Set(ctx, "s1", testRecord("s1"), 30*time.Millisecond))

	rec, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, rec)

	time.Sleep(80 * time.Millisecond)

	rec, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	ok, err := store.Has(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Meta(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	assert.True(t, store.Healthy(context.Background()))
	assert.Equal(t, storage.TypeMemory, store.Type())
}
