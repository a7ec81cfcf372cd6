package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(0), cfg.RandomSeed)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.TranscriptTTL)
	assert.Nil(t, cfg.CORSAllowedOrigins)
	assert.Zero(t, cfg.ChatRateLimit)
	assert.Equal(t, 10, cfg.ChatRateBurst)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KNOWLEDGE_PATH", "/etc/agrimind/knowledge.json")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("TRANSCRIPT_TTL", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CHAT_RATE_LIMIT", "2.5")
	t.Setenv("CHAT_RATE_BURST", "20")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/etc/agrimind/knowledge.json", cfg.KnowledgePath)
	assert.Equal(t, int64(42), cfg.RandomSeed)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, time.Hour, cfg.TranscriptTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 2.5, cfg.ChatRateLimit)
	assert.Equal(t, 20, cfg.ChatRateBurst)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("RANDOM_SEED", "not-a-number")
	t.Setenv("REDIS_TLS", "maybe")
	t.Setenv("TRANSCRIPT_TTL", "soon")

	cfg := Load()

	assert.Equal(t, int64(0), cfg.RandomSeed)
	assert.False(t, cfg.RedisTLS)
	assert.Equal(t, 24*time.Hour, cfg.TranscriptTTL)
}
