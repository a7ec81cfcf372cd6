package main

import (
	"context"
	"crypto/tls"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/agrimind/agri-ai-platform/internal/advisor"
	"github.com/agrimind/agri-ai-platform/internal/api/router"
	appconfig "github.com/agrimind/agri-ai-platform/internal/config"
	"github.com/agrimind/agri-ai-platform/internal/observability/metrics"
	"github.com/agrimind/agri-ai-platform/internal/prediction"
	"github.com/agrimind/agri-ai-platform/pkg/logging"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting agrimind API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// A zero seed keeps the models time-seeded; fixing it makes every
	// prediction and chat reply reproducible across restarts.
	var rng *rand.Rand
	if cfg.RandomSeed != 0 {
		rng = rand.New(rand.NewSource(cfg.RandomSeed))
		logger.Info("using fixed random seed", "seed", cfg.RandomSeed)
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Prediction models
	manager := prediction.NewManager(rng, time.Now)
	predictionHandler := prediction.NewHandler(manager,
		metrics.NewPredictionMetrics(registry), logger.Component("prediction"))

	// Advisory chatbot
	kb := advisor.LoadKnowledge(cfg.KnowledgePath, logger)

	var sink advisor.TranscriptSink
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unreachable, transcripts stay in memory only", "error", err)
		} else {
			sink = advisor.NewTranscriptStore(client, cfg.TranscriptTTL, nil)
			logger.Info("redis transcript retention enabled",
				"addr", cfg.RedisAddr, "ttl", cfg.TranscriptTTL)
		}
		defer client.Close()
	}

	sessions := advisor.NewSessionManager(rng, kb, sink, logger.Component("advisor"))
	advisorHandler := advisor.NewHandler(sessions,
		metrics.NewChatMetrics(registry), logger.Component("advisor"))

	r := router.New(&router.Config{
		Logger:             logger,
		PredictionHandler:  predictionHandler,
		AdvisorHandler:     advisorHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ChatRateLimit:      cfg.ChatRateLimit,
		ChatRateBurst:      cfg.ChatRateBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
