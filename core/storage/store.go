package storage

import (
	"context"
	"time"
)

// BackendType tags a storage adapter implementation.
type BackendType string

const (
	TypeMemory BackendType = "memory"
	TypeRedis  BackendType = "redis"
)

// Store is the session persistence contract shared by the in-memory and
// Redis-backed adapters. Absent keys are expected at high frequency, so Get
// returns (nil, nil) and Has/Delete return false rather than an error; errors
// signal operational failures of the backend itself.
type Store interface {
	// Get returns the record for key, or (nil, nil) when absent or expired.
	Get(ctx context.Context, key string) (*Record, error)
	// Set stores the record under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, rec *Record, ttl time.Duration) error
	// Delete removes key and reports whether it was present.
	Delete(ctx context.Context, key string) (bool, error)
	// Has reports whether key is present and unexpired.
	Has(ctx context.Context, key string) (bool, error)
	// Keys lists all stored keys, unprefixed.
	Keys(ctx context.Context) ([]string, error)
	// Clear removes every record owned by this store.
	Clear(ctx context.Context) error
	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
	// Healthy reports whether the backend is reachable.
	Healthy(ctx context.Context) bool
	// Type identifies the adapter.
	Type() BackendType
}
