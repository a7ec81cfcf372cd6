package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const defaultTranscriptTTL = 24 * time.Hour

// TranscriptStore retains chat transcripts in Redis as per-session lists.
// It implements TranscriptSink.
type TranscriptStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewTranscriptStore builds a Redis-backed transcript store. A non-positive
// ttl falls back to 24h.
func NewTranscriptStore(client *redis.Client, ttl time.Duration, tracer trace.Tracer) *TranscriptStore {
	if client == nil {
		panic("advisor: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultTranscriptTTL
	}
	if tracer == nil {
		tracer = otel.Tracer("agrimind.internal.advisor.transcripts")
	}
	return &TranscriptStore{
		redis:  client,
		ttl:    ttl,
		tracer: tracer,
	}
}

// Append pushes one turn onto the session's transcript and refreshes its TTL.
func (s *TranscriptStore) Append(ctx context.Context, sessionID string, msg ChatMessage) error {
	ctx, span := s.tracer.Start(ctx, "advisor.append_transcript")
	defer span.End()

	data, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("advisor: failed to marshal message: %w", err)
	}
	key := transcriptKey(sessionID)
	if err := s.redis.RPush(ctx, key, data).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("advisor: failed to persist message: %w", err)
	}
	if err := s.redis.Expire(ctx, key, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("advisor: failed to refresh transcript ttl: %w", err)
	}
	return nil
}

// Load returns the full stored transcript for a session, oldest first.
// An unknown session yields an empty transcript.
func (s *TranscriptStore) Load(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.load_transcript")
	defer span.End()

	raw, err := s.redis.LRange(ctx, transcriptKey(sessionID), 0, -1).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("advisor: failed to load transcript: %w", err)
	}

	out := make([]ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("advisor: failed to decode message: %w", err)
		}
		out = append(out, msg)
	}
	return out, nil
}

// Clear drops a session's stored transcript.
func (s *TranscriptStore) Clear(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "advisor.clear_transcript")
	defer span.End()

	if err := s.redis.Del(ctx, transcriptKey(sessionID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("advisor: failed to clear transcript: %w", err)
	}
	return nil
}

func transcriptKey(sessionID string) string {
	return fmt.Sprintf("chat:transcript:%s", sessionID)
}
