package chat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/chatkit/core/session"
	"github.com/dmitrymomot/chatkit/core/storage"
)

// Service is the inbound boundary of the chat core: the transport layer
// reports connection events and message text, the service drives the session
// manager and the completion engine, and optionally snapshots session state
// to a storage backend after each exchange.
type Service struct {
	sessions *session.Manager
	engine   Engine
	store    storage.Store
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the structured logger. Defaults to a discarding
// logger.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStorage enables persisting a session snapshot after every exchange so
// conversations survive restarts and can be shared across instances. Each
// snapshot is written with the session's remaining TTL.
func WithStorage(store storage.Store) ServiceOption {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// NewService wires a session manager to a completion engine.
func NewService(sessions *session.Manager, engine Engine, opts ...ServiceOption) (*Service, error) {
	if sessions == nil {
		return nil, ErrMissingSessionManager
	}
	if engine == nil {
		return nil, ErrMissingEngine
	}

	s := &Service{
		sessions: sessions,
		engine:   engine,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// OnConnect establishes a session for a connection id: a session still in
// its disconnect grace period is reconnected with history intact, otherwise
// a fresh one is created.
func (s *Service) OnConnect(id string) session.Info {
	if sess := s.sessions.Reconnect(id); sess == nil {
		s.sessions.Create(id)
	}
	info, _ := s.sessions.Info(id)
	return info
}

// OnDisconnect marks the session disconnected, starting its grace period.
func (s *Service) OnDisconnect(id string) bool {
	return s.sessions.MarkDisconnected(id)
}

// OnMessage appends the user message, asks the engine for a reply with the
// full bounded history as context, and appends the reply. Returns
// ErrSessionExpired when no live session exists for id.
func (s *Service) OnMessage(ctx context.Context, id, text string) (string, error) {
	if msg := s.sessions.AddMessage(id, session.RoleUser, text); msg == nil {
		return "", ErrSessionExpired
	}

	reply, err := s.engine.GenerateReply(ctx, s.sessions.History(id))
	if err != nil {
		return "", fmt.Errorf("chat: generate reply: %w", err)
	}

	s.sessions.AddMessage(id, session.RoleAssistant, reply)
	s.persist(ctx, id)
	return reply, nil
}

// OnMessageStream is the streaming variant of OnMessage. Chunks are relayed
// as the engine produces them; the accumulated text is appended to the
// session history once the final chunk arrives.
func (s *Service) OnMessageStream(ctx context.Context, id, text string) (<-chan Chunk, error) {
	engine, ok := s.engine.(StreamingEngine)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	if msg := s.sessions.AddMessage(id, session.RoleUser, text); msg == nil {
		return nil, ErrSessionExpired
	}

	stream, err := engine.StreamReply(ctx, s.sessions.History(id))
	if err != nil {
		return nil, fmt.Errorf("chat: stream reply: %w", err)
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)

		var reply strings.Builder
		for chunk := range stream {
			reply.WriteString(chunk.Text)
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
			if chunk.Done {
				s.sessions.AddMessage(id, session.RoleAssistant, reply.String())
				s.persist(ctx, id)
			}
		}
	}()
	return out, nil
}

// History exposes the session's conversation history to the transport.
func (s *Service) History(id string) []session.Message {
	return s.sessions.History(id)
}

// Info exposes a session snapshot to the transport.
func (s *Service) Info(id string) (session.Info, bool) {
	return s.sessions.Info(id)
}

// persist snapshots the session into the storage backend. Failures are
// logged, not propagated: persistence is an availability optimization, and
// the façade already absorbs durable-backend errors.
func (s *Service) persist(ctx context.Context, id string) {
	if s.store == nil {
		return
	}

	info, ok := s.sessions.Info(id)
	if !ok {
		return
	}

	rec := storage.NewRecord(info, s.sessions.History(id))
	if err := s.store.Set(ctx, id, rec, time.Until(info.ExpiresAt)); err != nil {
		s.logger.WarnContext(ctx, "failed to persist session snapshot",
			slog.String("session_id", id),
			slog.Any("error", err))
	}
}
