package session

import (
	"time"

	"github.com/dmitrymomot/chatkit/pkg/ringbuf"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single conversation history entry.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Status is the lifecycle state of a session.
type Status string

const (
	// StatusActive means the connection is live and the expiry timer is armed.
	StatusActive Status = "active"
	// StatusDisconnected means the connection dropped and the session is
	// waiting out its grace period before destruction.
	StatusDisconnected Status = "disconnected"
)

// Session holds per-connection conversational state. Sessions are exclusively
// owned by their Manager: all mutation goes through Manager methods, which
// serialize access. Callers must not retain a *Session across manager
// operations that may destroy it.
type Session struct {
	// ID is the stable per-connection identifier assigned by the transport.
	ID string

	Status         Status
	CreatedAt      time.Time
	LastActivityAt time.Time

	// ExpiresAt is always LastActivityAt + TTL while the session is active.
	ExpiresAt time.Time

	// DisconnectedAt is zero unless Status is StatusDisconnected.
	DisconnectedAt time.Time

	// Metadata holds optional application-specific key/value pairs.
	Metadata map[string]string

	history *ringbuf.Buffer[Message]

	// Exactly one of these is armed at a time: expiryTimer while active,
	// graceTimer while disconnected.
	expiryTimer *time.Timer
	graceTimer  *time.Timer
}

// IsExpired reports whether an active session has outlived its expiry
// timestamp. Disconnected sessions are governed by the grace timer instead.
func (s *Session) IsExpired() bool {
	return s.Status == StatusActive && time.Now().After(s.ExpiresAt)
}

// Info is a point-in-time snapshot of a session, safe to hand to callers
// outside the manager's lock.
type Info struct {
	ID             string            `json:"id"`
	Status         Status            `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	LastActivityAt time.Time         `json:"last_activity_at"`
	ExpiresAt      time.Time         `json:"expires_at"`
	MessageCount   int               `json:"message_count"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

func (s *Session) snapshot() Info {
	meta := make(map[string]string, len(s.Metadata))
	for k, v := range s.Metadata {
		meta[k] = v
	}
	return Info{
		ID:             s.ID,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
		LastActivityAt: s.LastActivityAt,
		ExpiresAt:      s.ExpiresAt,
		MessageCount:   s.history.Len(),
		Metadata:       meta,
	}
}

func (s *Session) stopTimers() {
	if s.expiryTimer != nil {
		s.expiryTimer.Stop()
		s.expiryTimer = nil
	}
	if s.graceTimer != nil {
		s.graceTimer.Stop()
		s.graceTimer = nil
	}
}
