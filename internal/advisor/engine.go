package advisor

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/agrimind/agri-ai-platform/pkg/logging"
)

// ErrEmptyMessage is returned by Chat when the message is blank.
var ErrEmptyMessage = errors.New("advisor: empty message")

// ChatResponse is the reply produced for a single user message.
type ChatResponse struct {
	Response   string  `json:"response"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
}

// TranscriptSink receives conversation turns for durable retention.
// Append failures must not fail the chat itself.
type TranscriptSink interface {
	Append(ctx context.Context, conversationID string, msg ChatMessage) error
}

// Engine answers agricultural questions for one conversation. It keeps the
// full in-memory transcript and optionally mirrors turns to a sink.
// Safe for concurrent use.
type Engine struct {
	mu         sync.Mutex
	rng        *rand.Rand
	kb         *KnowledgeBase
	classifier *IntentClassifier
	history    []ChatMessage
	now        func() time.Time

	conversationID string
	sink           TranscriptSink
	logger         *logging.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithTranscriptSink mirrors conversation turns to a durable store under
// the given conversation ID.
func WithTranscriptSink(sink TranscriptSink, conversationID string) EngineOption {
	return func(e *Engine) {
		e.sink = sink
		e.conversationID = conversationID
	}
}

// NewEngine builds a conversation engine. A nil rng seeds from the clock; a
// nil kb falls back to the built-in knowledge base.
func NewEngine(rng *rand.Rand, kb *KnowledgeBase, logger *logging.Logger, opts ...EngineOption) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if kb == nil {
		kb = DefaultKnowledge()
	}
	if logger == nil {
		logger = logging.Default()
	}
	e := &Engine{
		rng:        rng,
		kb:         kb,
		classifier: NewIntentClassifier(),
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Chat classifies the message, builds a reply, and records both turns in
// the transcript.
func (e *Engine) Chat(ctx context.Context, message string) (ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return ChatResponse{}, ErrEmptyMessage
	}

	intent, confidence := e.classifier.Classify(ctx, message)

	e.mu.Lock()
	response := e.buildResponse(intent, message)
	ts := e.now().UTC().Format(time.RFC3339)

	userMsg := ChatMessage{Role: RoleUser, Content: message, Timestamp: ts}
	botMsg := ChatMessage{
		Role:      RoleAssistant,
		Content:   response,
		Timestamp: ts,
		Metadata: map[string]any{
			"intent":     string(intent),
			"confidence": confidence,
		},
	}
	e.history = append(e.history, userMsg, botMsg)
	e.mu.Unlock()

	if e.sink != nil {
		for _, msg := range []ChatMessage{userMsg, botMsg} {
			if err := e.sink.Append(ctx, e.conversationID, msg); err != nil {
				e.logger.Warn("transcript append failed",
					"conversation_id", e.conversationID, "error", err)
			}
		}
	}

	return ChatResponse{
		Response:   response,
		Intent:     string(intent),
		Confidence: confidence,
		Timestamp:  ts,
	}, nil
}

// History returns a copy of the conversation transcript in order.
func (e *Engine) History() []ChatMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]ChatMessage, len(e.history))
	copy(out, e.history)
	return out
}

// ClearHistory discards the in-memory transcript.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = nil
}
