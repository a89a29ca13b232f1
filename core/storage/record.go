package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrymomot/chatkit/core/session"
)

// Record is the persisted snapshot of a session. Timestamps serialize to
// RFC 3339 text on the wire and are reconstructed as time.Time on read, so
// records survive process restarts and can be shared across instances.
type Record struct {
	ID             string            `json:"id"`
	Status         session.Status    `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	LastActivityAt time.Time         `json:"last_activity_at"`
	ExpiresAt      time.Time         `json:"expires_at"`
	DisconnectedAt *time.Time        `json:"disconnected_at,omitempty"`
	Messages       []session.Message `json:"messages"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// NewRecord builds a record from a session snapshot and its history.
func NewRecord(info session.Info, messages []session.Message) *Record {
	return &Record{
		ID:             info.ID,
		Status:         info.Status,
		CreatedAt:      info.CreatedAt,
		LastActivityAt: info.LastActivityAt,
		ExpiresAt:      info.ExpiresAt,
		Messages:       messages,
		Metadata:       info.Metadata,
	}
}

// MarshalBinary implements encoding.BinaryMarshaler so records can be handed
// directly to the Redis client.
func (r *Record) MarshalBinary() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("storage: marshal record %q: %w", r.ID, err)
	}
	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *Record) UnmarshalBinary(data []byte) error {
	if err := json.Unmarshal(data, r); err != nil {
		return fmt.Errorf("storage: unmarshal record: %w", err)
	}
	return nil
}
