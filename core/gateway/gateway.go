package gateway

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/chatkit/core/chat"
)

// Frame types sent to clients.
const (
	TypeMessage        = "message"
	TypeSessionExpired = "session_expired"
	TypeError          = "error"
)

// Envelope is the JSON frame written to clients.
type Envelope struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

// Gateway terminates WebSocket connections and drives the chat service:
// each connection maps to one session, inbound text frames become
// OnMessage calls, and replies are written back as JSON envelopes. A
// rejected message on an expired session produces a session_expired frame
// instead of closing the connection, so clients can re-establish.
type Gateway struct {
	svc      *chat.Service
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the structured logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithCheckOrigin overrides the upgrader's origin policy.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(g *Gateway) {
		if fn != nil {
			g.upgrader.CheckOrigin = fn
		}
	}
}

// New creates a gateway in front of the chat service.
func New(svc *chat.Service, opts ...Option) (*Gateway, error) {
	if svc == nil {
		return nil, ErrMissingService
	}

	g := &Gateway{
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// ServeHTTP implements http.Handler. The connection id is taken from the
// connection_id query parameter so a reconnecting client can resume its
// session within the grace period; absent that, a fresh id is minted.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("connection_id")
	if id == "" {
		id = uuid.NewString()
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	g.svc.OnConnect(id)
	defer g.svc.OnDisconnect(id)

	g.logger.Debug("connection established", slog.String("connection_id", id))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.logger.Debug("connection closed unexpectedly",
					slog.String("connection_id", id),
					slog.Any("error", err))
			}
			return
		}

		env := g.handle(r, id, string(data))
		if err := conn.WriteJSON(env); err != nil {
			g.logger.Debug("write failed, dropping connection",
				slog.String("connection_id", id),
				slog.Any("error", err))
			return
		}
	}
}

func (g *Gateway) handle(r *http.Request, id, text string) Envelope {
	reply, err := g.svc.OnMessage(r.Context(), id, text)
	switch {
	case errors.Is(err, chat.ErrSessionExpired):
		return Envelope{Type: TypeSessionExpired}
	case err != nil:
		g.logger.Error("reply generation failed",
			slog.String("connection_id", id),
			slog.Any("error", err))
		return Envelope{Type: TypeError, Content: "failed to generate reply"}
	default:
		return Envelope{Type: TypeMessage, Content: reply}
	}
}
