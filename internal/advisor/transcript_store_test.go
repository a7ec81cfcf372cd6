package advisor

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*TranscriptStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTranscriptStore(client, time.Hour, nil), mr
}

func TestTranscriptAppendAndLoad(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	msgs := []ChatMessage{
		{Role: RoleUser, Content: "hello", Timestamp: "2026-08-28T09:00:00Z"},
		{Role: RoleAssistant, Content: "Hello! How can I help?", Timestamp: "2026-08-28T09:00:00Z",
			Metadata: map[string]any{"intent": "greeting", "confidence": 0.85}},
	}
	for _, msg := range msgs {
		require.NoError(t, store.Append(ctx, "sess-1", msg))
	}

	got, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, RoleUser, got[0].Role)
	assert.Equal(t, "hello", got[0].Content)
	assert.Equal(t, "greeting", got[1].Metadata["intent"])
}

func TestTranscriptLoadUnknownSession(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTranscriptTTLRefreshed(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "sess-1", ChatMessage{Role: RoleUser, Content: "hi"}))
	ttl := mr.TTL(transcriptKey("sess-1"))
	assert.Equal(t, time.Hour, ttl)

	mr.FastForward(30 * time.Minute)
	require.NoError(t, store.Append(ctx, "sess-1", ChatMessage{Role: RoleUser, Content: "again"}))
	assert.Equal(t, time.Hour, mr.TTL(transcriptKey("sess-1")))
}

func TestTranscriptClear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "sess-1", ChatMessage{Role: RoleUser, Content: "hi"}))
	require.NoError(t, store.Clear(ctx, "sess-1"))

	got, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTranscriptExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "sess-1", ChatMessage{Role: RoleUser, Content: "hi"}))
	mr.FastForward(2 * time.Hour)

	got, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
