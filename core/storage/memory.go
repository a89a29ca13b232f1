package storage

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	rec       *Record
	expiresAt time.Time // zero means no expiry
	timer     *time.Timer
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore is the in-process storage adapter. Each entry carries its own
// expiry timer plus a lazy TTL check on read, so expired records disappear
// even if a timer is delayed. MemoryStore is always healthy and its
// operations never fail.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry)}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	if e.expired(time.Now()) {
		m.removeLocked(key, e)
		return nil, nil
	}
	return e.rec, nil
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, key string, rec *Record, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.entries[key]; ok && old.timer != nil {
		old.timer.Stop()
	}

	e := &memoryEntry{rec: rec}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
		e.timer = time.AfterFunc(ttl, func() { m.evict(key) })
	}
	m.entries[key] = e
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	m.removeLocked(key, e)
	return true, nil
}

// Has implements Store.
func (m *MemoryStore) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	if e.expired(time.Now()) {
		m.removeLocked(key, e)
		return false, nil
	}
	return true, nil
}

// Keys implements Store.
func (m *MemoryStore) Keys(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	keys := make([]string, 0, len(m.entries))
	for k, e := range m.entries {
		if !e.expired(now) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Clear implements Store.
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	m.entries = make(map[string]*memoryEntry)
	return nil
}

// Count implements Store.
func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	count := 0
	for _, e := range m.entries {
		if !e.expired(now) {
			count++
		}
	}
	return count, nil
}

// Healthy implements Store. The in-memory adapter is always healthy.
func (m *MemoryStore) Healthy(_ context.Context) bool { return true }

// Type implements Store.
func (m *MemoryStore) Type() BackendType { return TypeMemory }

// Close stops all pending expiry timers. The store remains usable.
func (m *MemoryStore) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
}

func (m *MemoryStore) evict(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || !e.expired(time.Now()) {
		// The entry was replaced after this timer was armed.
		return
	}
	delete(m.entries, key)
}

func (m *MemoryStore) removeLocked(key string, e *memoryEntry) {
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(m.entries, key)
}
