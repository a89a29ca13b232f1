package storage

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Facade selects between a durable store and an in-memory store, degrading
// transparently when the durable backend fails. Any operational error from
// the durable adapter is logged, flips the façade onto the in-memory adapter,
// and the operation is replayed there — callers never see durable-layer
// errors. The cost is losing cross-instance consistency until
// AttemptReconnection succeeds.
//
// Errors from the in-memory adapter are not swallowed: there is no further
// fallback tier. In practice MemoryStore operations do not fail.
type Facade struct {
	mu      sync.RWMutex
	durable Store // nil when in-memory storage was configured as primary
	memory  Store
	active  Store

	// usingFallback is true only when the durable backend was the configured
	// preference and the façade degraded to memory — not when memory was
	// simply chosen by configuration.
	usingFallback bool

	logger *slog.Logger
}

// FacadeOption configures a Facade.
type FacadeOption func(*Facade)

// WithFacadeLogger sets the structured logger for fallback events.
// Defaults to a discarding logger.
func WithFacadeLogger(logger *slog.Logger) FacadeOption {
	return func(f *Facade) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMemoryStore replaces the default in-memory adapter. Intended for tests
// that need to observe or fault the fallback tier.
func WithMemoryStore(store Store) FacadeOption {
	return func(f *Facade) {
		if store != nil {
			f.memory = store
		}
	}
}

// NewFacade creates a façade. When durable is non-nil, its connectivity is
// probed once: on success it becomes the active store, otherwise the façade
// starts on the in-memory adapter with the fallback flag set. A nil durable
// store means in-memory was the configured choice and no fallback flag is
// raised.
func NewFacade(ctx context.Context, durable Store, opts ...FacadeOption) *Facade {
	f := &Facade{
		durable: durable,
		memory:  NewMemoryStore(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}

	switch {
	case durable == nil:
		f.active = f.memory
	case durable.Healthy(ctx):
		f.active = durable
	default:
		f.active = f.memory
		f.usingFallback = true
		f.logger.WarnContext(ctx, "durable storage unreachable at startup, using in-memory fallback",
			slog.String("backend", string(durable.Type())))
	}
	return f
}

// New builds a façade from configuration: a Redis-backed durable store when
// cfg.RedisEnabled and a client are provided, an in-memory primary otherwise.
func New(ctx context.Context, cfg Config, durable Store, opts ...FacadeOption) *Facade {
	if !cfg.RedisEnabled {
		durable = nil
	}
	return NewFacade(ctx, durable, opts...)
}

// Get implements Store.
func (f *Facade) Get(ctx context.Context, key string) (*Record, error) {
	return fallbackOp(f, ctx, "get", func(s Store) (*Record, error) {
		return s.Get(ctx, key)
	})
}

// Set implements Store.
func (f *Facade) Set(ctx context.Context, key string, rec *Record, ttl time.Duration) error {
	_, err := fallbackOp(f, ctx, "set", func(s Store) (struct{}, error) {
		return struct{}{}, s.Set(ctx, key, rec, ttl)
	})
	return err
}

// Delete implements Store.
func (f *Facade) Delete(ctx context.Context, key string) (bool, error) {
	return fallbackOp(f, ctx, "delete", func(s Store) (bool, error) {
		return s.Delete(ctx, key)
	})
}

// Has implements Store.
func (f *Facade) Has(ctx context.Context, key string) (bool, error) {
	return fallbackOp(f, ctx, "has", func(s Store) (bool, error) {
		return s.Has(ctx, key)
	})
}

// Keys implements Store.
func (f *Facade) Keys(ctx context.Context) ([]string, error) {
	return fallbackOp(f, ctx, "keys", func(s Store) ([]string, error) {
		return s.Keys(ctx)
	})
}

// Clear implements Store.
func (f *Facade) Clear(ctx context.Context) error {
	_, err := fallbackOp(f, ctx, "clear", func(s Store) (struct{}, error) {
		return struct{}{}, s.Clear(ctx)
	})
	return err
}

// Count implements Store.
func (f *Facade) Count(ctx context.Context) (int, error) {
	return fallbackOp(f, ctx, "count", func(s Store) (int, error) {
		return s.Count(ctx)
	})
}

// Healthy implements Store, reporting the health of the active adapter.
func (f *Facade) Healthy(ctx context.Context) bool {
	return f.current().Healthy(ctx)
}

// Type implements Store, reporting the active adapter's type.
func (f *Facade) Type() BackendType {
	return f.current().Type()
}

// IsUsingFallback reports whether the façade degraded from a configured
// durable backend to the in-memory adapter.
func (f *Facade) IsUsingFallback() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.usingFallback
}

// AttemptReconnection re-probes the durable backend and switches back to it
// on success, clearing the fallback flag. Returns true when the façade is on
// durable storage afterwards; immediately true when it already was.
func (f *Facade) AttemptReconnection(ctx context.Context) bool {
	f.mu.RLock()
	durable, active := f.durable, f.active
	f.mu.RUnlock()

	if durable == nil {
		return false
	}
	if active == durable {
		return true
	}
	if !durable.Healthy(ctx) {
		return false
	}

	f.mu.Lock()
	f.active = f.durable
	f.usingFallback = false
	f.mu.Unlock()

	f.logger.InfoContext(ctx, "durable storage reconnected",
		slog.String("backend", string(durable.Type())))
	return true
}

func (f *Facade) current() Store {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.active
}

func (f *Facade) failover(ctx context.Context, op string, err error) {
	f.mu.Lock()
	f.active = f.memory
	f.usingFallback = true
	f.mu.Unlock()

	f.logger.WarnContext(ctx, "durable storage operation failed, falling back to in-memory",
		slog.String("operation", op),
		slog.Any("error", err))
}

// fallbackOp runs fn against the active store. A failure on the durable path
// triggers failover and replays fn on the in-memory adapter; in-memory
// failures propagate unchanged.
func fallbackOp[T any](f *Facade, ctx context.Context, op string, fn func(Store) (T, error)) (T, error) {
	st := f.current()
	v, err := fn(st)
	if err != nil && st != f.memory {
		f.failover(ctx, op, err)
		return fn(f.memory)
	}
	return v, err
}
