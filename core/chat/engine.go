package chat

import (
	"context"

	"github.com/dmitrymomot/chatkit/core/session"
)

// Engine generates assistant replies from conversation history. The history
// is ordered oldest-first, exactly as the session manager stores it. Wire
// format and provider choice are the implementation's concern.
type Engine interface {
	GenerateReply(ctx context.Context, history []session.Message) (string, error)
}

// Chunk is one increment of a streamed reply. The final chunk has Done set;
// its Text may be empty.
type Chunk struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// StreamingEngine is an Engine that can additionally deliver replies
// incrementally. The returned channel is closed after the Done chunk.
type StreamingEngine interface {
	Engine
	StreamReply(ctx context.Context, history []session.Message) (<-chan Chunk, error)
}
