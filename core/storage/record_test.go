package storage_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/chatkit/core/session"
	"github.com/dmitrymomot/chatkit/core/storage"
)

func TestRecord_WireFormat(t *testing.T) {
	t.Parallel()

	t.Run("timestamps serialize as text and reconstruct", func(t *testing.T) {
		t.Parallel()

		disconnected := time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
		rec := testRecord("s1")
		rec.Status = session.StatusDisconnected
		rec.DisconnectedAt = &disconnected

		data, err := rec.MarshalBinary()
		require.NoError(t, err)
		assert.Contains(t, string(data), `"2026-08-25T10:30:00Z"`,
			"timestamps must be wire-safe text, not binary")

		var got storage.Record
		require.NoError(t, got.UnmarshalBinary(data))
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, rec.Status, got.Status)
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
		require.NotNil(t, got.DisconnectedAt)
		assert.True(t, disconnected.Equal(*got.DisconnectedAt))
		require.Len(t, got.Messages, 1)
		assert.Equal(t, rec.Messages[0].Role, got.Messages[0].Role)
		assert.Equal(t, rec.Messages[0].Content, got.Messages[0].Content)
	})

	t.Run("unmarshal rejects malformed payloads", func(t *testing.T) {
		t.Parallel()

		var rec storage.Record
		err := rec.UnmarshalBinary([]byte("{not json"))
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "unmarshal record"))
	})
}

func TestNewRecord(t *testing.T) {
	t.Parallel()

	now := time.Now()
	info := session.Info{
		ID:             "s1",
		Status:         session.StatusActive,
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(time.Minute),
		MessageCount:   2,
		Metadata:       map[string]string{"client": "ios"},
	}
	messages := []session.Message{
		{Role: session.RoleUser, Content: "hi", CreatedAt: now},
		{Role: session.RoleAssistant, Content: "hello", CreatedAt: now},
	}

	rec := storage.NewRecord(info, messages)

	assert.Equal(t, "s1", rec.ID)
	assert.Equal(t, session.StatusActive, rec.Status)
	assert.Len(t, rec.Messages, 2)
	assert.Equal(t, "ios", rec.Metadata["client"])
	assert.Nil(t, rec.DisconnectedAt)
}
