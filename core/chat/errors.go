package chat

import "errors"

var (
	// ErrSessionExpired signals that a message arrived for an absent or
	// expired session. Gateways should surface it as a distinct
	// "session expired" notice so clients re-establish instead of treating
	// it as an internal failure.
	ErrSessionExpired = errors.New("chat: session expired")
	// ErrStreamingUnsupported is returned by OnMessageStream when the
	// configured engine does not implement StreamingEngine.
	ErrStreamingUnsupported = errors.New("chat: engine does not support streaming")
	// ErrMissingSessionManager is returned when constructing a service
	// without a session manager.
	ErrMissingSessionManager = errors.New("chat: session manager is required")
	// ErrMissingEngine is returned when constructing a service without a
	// completion engine.
	ErrMissingEngine = errors.New("chat: engine is required")
)
