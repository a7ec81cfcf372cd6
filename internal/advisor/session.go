package advisor

import (
	cryptorand "crypto/rand"
	"encoding/hex"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agrimind/agri-ai-platform/pkg/logging"
)

// SessionManager hands out one Engine per chat session and routes follow-up
// messages back to the right conversation.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Engine

	rng    *rand.Rand
	kb     *KnowledgeBase
	sink   TranscriptSink
	now    func() time.Time
	logger *logging.Logger
}

// NewSessionManager builds a registry. The rng seeds per-session engines so
// a fixed seed yields reproducible conversations; nil seeds from the clock.
// The sink is optional.
func NewSessionManager(rng *rand.Rand, kb *KnowledgeBase, sink TranscriptSink, logger *logging.Logger) *SessionManager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if kb == nil {
		kb = DefaultKnowledge()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionManager{
		sessions: make(map[string]*Engine),
		rng:      rng,
		kb:       kb,
		sink:     sink,
		now:      time.Now,
		logger:   logger,
	}
}

// Session returns the engine for the given ID, creating it on first use.
// An empty ID gets a freshly generated one. The resolved ID and whether the
// session was newly created are returned alongside the engine.
func (m *SessionManager) Session(id string) (*Engine, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = generateSessionID()
	}
	eng, ok := m.sessions[id]
	created := !ok
	if !ok {
		opts := []EngineOption{WithClock(m.now)}
		if m.sink != nil {
			opts = append(opts, WithTranscriptSink(m.sink, id))
		}
		child := rand.New(rand.NewSource(m.rng.Int63()))
		eng = NewEngine(child, m.kb, m.logger, opts...)
		m.sessions[id] = eng
		m.logger.Info("chat session created", "session_id", id)
	}
	return eng, id, created
}

// Lookup returns the engine for an existing session, or false.
func (m *SessionManager) Lookup(id string) (*Engine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	eng, ok := m.sessions[id]
	return eng, ok
}

// Drop removes a session from the registry.
func (m *SessionManager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len reports the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func generateSessionID() string {
	buf := make([]byte, 16)
	if _, err := cryptorand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}
