package storage

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultScanBatchSize = 1000

// RedisStore is the durable storage adapter backed by a Redis-compatible
// server. Records are serialized as JSON under a configurable key prefix so
// multiple applications can share one database.
type RedisStore struct {
	client    redis.UniversalClient
	prefix    string
	scanBatch int64

	// pingLatency holds the duration of the last health probe in nanoseconds.
	pingLatency atomic.Int64
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix sets the key namespace prefix. Default "chatkit:session:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithScanBatchSize sets the SCAN page size used by Keys, Clear, and Count.
func WithScanBatchSize(size int64) RedisOption {
	return func(s *RedisStore) {
		if size > 0 {
			s.scanBatch = size
		}
	}
}

// NewRedisStore creates a Redis-backed store using the given client. The
// client's own connect and request timeouts bound every operation, so a
// failing backend surfaces as an error within bounded time instead of
// hanging the caller.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		prefix:    "chatkit:session:",
		scanBatch: defaultScanBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) (*Record, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: redis get %q: %w", key, err)
	}

	var rec Record
	if err := rec.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Set implements Store. Redis treats a zero expiration as "no expiry",
// matching the Store contract.
func (s *RedisStore) Set(ctx context.Context, key string, rec *Record, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(key), rec, ttl).Err(); err != nil {
		return fmt.Errorf("storage: redis set %q: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("storage: redis del %q: %w", key, err)
	}
	return n > 0, nil
}

// Has implements Store.
func (s *RedisStore) Has(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("storage: redis exists %q: %w", key, err)
	}
	return n > 0, nil
}

// Keys implements Store, scanning the key namespace and returning keys with
// the prefix stripped.
func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", s.scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val()[len(s.prefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("storage: redis scan: %w", err)
	}
	return keys, nil
}

// Clear implements Store, deleting every key in the namespace.
func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", s.scanBatch).Iterator()
	batch := make([]string, 0, s.scanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if int64(len(batch)) >= s.scanBatch {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("storage: redis clear: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("storage: redis scan: %w", err)
	}
	if len(batch) > 0 {
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("storage: redis clear: %w", err)
		}
	}
	return nil
}

// Count implements Store.
func (s *RedisStore) Count(ctx context.Context) (int, error) {
	count := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", s.scanBatch).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("storage: redis scan: %w", err)
	}
	return count, nil
}

// Healthy implements Store via a PING round trip and records its latency.
func (s *RedisStore) Healthy(ctx context.Context) bool {
	start := time.Now()
	if err := s.client.Ping(ctx).Err(); err != nil {
		return false
	}
	s.pingLatency.Store(int64(time.Since(start)))
	return true
}

// PingLatency returns the duration of the last successful health probe.
func (s *RedisStore) PingLatency() time.Duration {
	return time.Duration(s.pingLatency.Load())
}

// Type implements Store.
func (s *RedisStore) Type() BackendType { return TypeRedis }

func (s *RedisStore) key(key string) string { return s.prefix + key }
