package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/agrimind/agri-ai-platform/internal/advisor"
	httpmiddleware "github.com/agrimind/agri-ai-platform/internal/http/middleware"
	"github.com/agrimind/agri-ai-platform/internal/prediction"
	"github.com/agrimind/agri-ai-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	PredictionHandler  *prediction.Handler
	AdvisorHandler     *advisor.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Requests/sec and burst per IP for the chat endpoints; zero disables
	// rate limiting.
	ChatRateLimit float64
	ChatRateBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", handleHealth)
	r.Get("/", handleHealth)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.PredictionHandler != nil {
			api.Get("/models", cfg.PredictionHandler.Models)
			api.Route("/predict", func(r chi.Router) {
				r.Post("/yield", cfg.PredictionHandler.Yield)
				r.Post("/disease", cfg.PredictionHandler.Disease)
				r.Post("/pest", cfg.PredictionHandler.Pest)
				r.Post("/irrigation", cfg.PredictionHandler.Irrigation)
				r.Post("/price", cfg.PredictionHandler.Price)
			})
		}
		if cfg.AdvisorHandler != nil {
			api.Route("/chat", func(r chi.Router) {
				if cfg.ChatRateLimit > 0 {
					r.Use(httpmiddleware.RateLimit(cfg.ChatRateLimit, cfg.ChatRateBurst))
				}
				r.Post("/", cfg.AdvisorHandler.Chat)
				r.Get("/history", cfg.AdvisorHandler.History)
				r.Post("/clear", cfg.AdvisorHandler.Clear)
				r.Get("/ws", cfg.AdvisorHandler.HandleWebSocket)
			})
		}
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "healthy",
		"service": "agrimind",
	})
}
