package session

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/chatkit/pkg/ringbuf"
)

// Manager owns the per-connection session state machine. It arms an expiry
// timer per active session and a grace timer per disconnected session, and
// runs a periodic sweep that destroys active sessions whose expiry timestamp
// has passed even if their timer drifted.
//
// Operations on absent or expired sessions return sentinel values (nil, false,
// empty) rather than errors: session loss is routine and callers are expected
// to surface it as "session expired", not as a failure.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	cfg    Config
	logger *slog.Logger

	running   bool
	sweepStop chan struct{}
	sweepDone chan struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the structured logger for lifecycle events.
// Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a session manager from the given configuration.
// Call Start to begin the background sweep and Stop to release all sessions
// and timers.
func NewManager(cfg Config, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Manager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Start launches the periodic sweep. It is a no-op if already running.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}
	m.running = true
	m.sweepStop = make(chan struct{})
	m.sweepDone = make(chan struct{})

	go m.sweepLoop(m.sweepStop, m.sweepDone)
}

// Stop cancels the sweep and every per-session timer, then releases all
// sessions. Safe to call multiple times.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	stop, done := m.sweepStop, m.sweepDone
	m.mu.Unlock()

	close(stop)
	<-done

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		s.stopTimers()
	}
	m.sessions = make(map[string]*Session)
}

// Create allocates a new active session for id with empty history and an
// armed expiry timer. If a session already exists for id it is returned
// unchanged, preserving its history.
func (m *Manager) Create(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		m.logger.Warn("session already exists, returning existing",
			slog.String("session_id", id),
			slog.String("status", string(s.Status)))
		return s
	}

	now := time.Now()
	history, err := ringbuf.New[Message](m.cfg.MaxHistory)
	if err != nil {
		// Unreachable: MaxHistory is validated in NewManager.
		panic(err)
	}

	s := &Session{
		ID:             id,
		Status:         StatusActive,
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(m.cfg.TTL),
		Metadata:       make(map[string]string),
		history:        history,
	}
	s.expiryTimer = time.AfterFunc(m.cfg.TTL, func() { m.expire(id) })
	m.sessions[id] = s

	m.logger.Debug("session created", slog.String("session_id", id))
	return s
}

// MarkDisconnected transitions an active session to disconnected: the expiry
// timer is cancelled and a grace timer armed in its place. Returns false if
// the session is absent or already disconnected.
func (m *Manager) MarkDisconnected(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || s.Status == StatusDisconnected {
		return false
	}

	if s.expiryTimer != nil {
		s.expiryTimer.Stop()
		s.expiryTimer = nil
	}
	s.Status = StatusDisconnected
	s.DisconnectedAt = time.Now()
	s.graceTimer = time.AfterFunc(m.cfg.GracePeriod, func() { m.graceElapsed(id) })

	m.logger.Debug("session disconnected", slog.String("session_id", id))
	return true
}

// Reconnect restores a disconnected session to active within its grace
// period: the grace timer is cancelled, activity and expiry timestamps are
// refreshed, and the expiry timer re-armed. Returns nil unless the session
// exists and is currently disconnected.
func (m *Manager) Reconnect(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || s.Status != StatusDisconnected {
		return nil
	}

	if s.graceTimer != nil {
		s.graceTimer.Stop()
		s.graceTimer = nil
	}

	now := time.Now()
	s.Status = StatusActive
	s.DisconnectedAt = time.Time{}
	s.LastActivityAt = now
	s.ExpiresAt = now.Add(m.cfg.TTL)
	s.expiryTimer = time.AfterFunc(m.cfg.TTL, func() { m.expire(id) })

	m.logger.Debug("session reconnected", slog.String("session_id", id))
	return s
}

// AddMessage appends a message to an active session's bounded history and
// refreshes its activity and expiry. Once the history is at capacity the
// oldest entry is silently dropped. Returns nil if there is no active,
// unexpired session for id; callers must treat that as "session expired",
// not as a hard error.
func (m *Manager) AddMessage(id string, role Role, content string) *Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || s.Status != StatusActive {
		return nil
	}
	if s.IsExpired() {
		m.destroyLocked(s, "expired")
		return nil
	}

	now := time.Now()
	msg := Message{Role: role, Content: content, CreatedAt: now}
	s.history.Push(msg)
	m.touchLocked(s, now)

	return &msg
}

// Touch refreshes an active session's activity and expiry timestamps without
// appending to its history. Returns false if there is no active session.
func (m *Manager) Touch(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || s.Status != StatusActive {
		return false
	}
	if s.IsExpired() {
		m.destroyLocked(s, "expired")
		return false
	}

	m.touchLocked(s, time.Now())
	return true
}

// History returns the session's conversation history oldest-first, or an
// empty slice if there is no live session. An expired-but-unswept session
// found here is destroyed as a side effect.
func (m *Manager) History(id string) []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return []Message{}
	}
	if s.IsExpired() {
		m.destroyLocked(s, "expired")
		return []Message{}
	}

	return s.history.ToSlice()
}

// Info returns a snapshot of the session, or false if there is no live
// session for id. Like History, it lazily destroys an expired session.
func (m *Manager) Info(id string) (Info, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Info{}, false
	}
	if s.IsExpired() {
		m.destroyLocked(s, "expired")
		return Info{}, false
	}

	return s.snapshot(), true
}

// SetMetadata stores an application-specific key/value pair on a live
// session. Returns false if the session is absent.
func (m *Manager) SetMetadata(id, key, value string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return false
	}
	s.Metadata[key] = value
	return true
}

// Destroy cancels the session's timers and removes it. Idempotent: returns
// false if the session was already gone.
func (m *Manager) Destroy(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return false
	}
	m.destroyLocked(s, "explicit")
	return true
}

// ActiveCount returns the number of active, unexpired sessions by full scan.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, s := range m.sessions {
		if s.Status == StatusActive && !s.IsExpired() {
			count++
		}
	}
	return count
}

// DisconnectedCount returns the number of sessions waiting out their grace
// period.
func (m *Manager) DisconnectedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, s := range m.sessions {
		if s.Status == StatusDisconnected {
			count++
		}
	}
	return count
}

// Len returns the total number of tracked sessions, including expired ones
// not yet swept.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// touchLocked refreshes activity/expiry and re-arms the expiry timer.
// Caller must hold m.mu and have verified the session is active.
func (m *Manager) touchLocked(s *Session, now time.Time) {
	s.LastActivityAt = now
	s.ExpiresAt = now.Add(m.cfg.TTL)
	if s.expiryTimer != nil {
		s.expiryTimer.Reset(m.cfg.TTL)
	}
}

// expire is the expiry timer callback. The timer may race an explicit
// destroy, a disconnect, or a touch that refreshed ExpiresAt while this
// callback waited on the lock; all of those make it a no-op.
func (m *Manager) expire(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || s.Status != StatusActive {
		return
	}
	if remaining := time.Until(s.ExpiresAt); remaining > 0 {
		// Touched after the timer fired; push the deadline out again.
		s.expiryTimer.Reset(remaining)
		return
	}
	m.destroyLocked(s, "expired")
}

// graceElapsed is the grace timer callback. A reconnect that won the race
// makes it a no-op.
func (m *Manager) graceElapsed(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || s.Status != StatusDisconnected {
		return
	}
	m.destroyLocked(s, "grace elapsed")
}

// sweepLoop periodically destroys active sessions whose expiry passed without
// their timer firing. Belt and suspenders against timer drift.
func (m *Manager) sweepLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Manager) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	removed := 0
	for _, s := range m.sessions {
		if s.Status == StatusActive && now.After(s.ExpiresAt) {
			m.destroyLocked(s, "swept")
			removed++
		}
	}
	if removed > 0 {
		m.logger.Debug("sweep destroyed expired sessions", slog.Int("count", removed))
	}
}

// destroyLocked removes a session and cancels its timers. Caller must hold
// m.mu. Safe against double destruction since callers re-check presence.
func (m *Manager) destroyLocked(s *Session, reason string) {
	s.stopTimers()
	delete(m.sessions, s.ID)
	m.logger.Debug("session destroyed",
		slog.String("session_id", s.ID),
		slog.String("reason", reason))
}
