package prediction

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/agrimind/agri-ai-platform/internal/observability/metrics"
	"github.com/agrimind/agri-ai-platform/pkg/logging"
)

// Handler wires HTTP requests to the prediction models.
type Handler struct {
	manager *Manager
	metrics *metrics.PredictionMetrics
	logger  *logging.Logger
}

// NewHandler creates a prediction handler.
func NewHandler(manager *Manager, m *metrics.PredictionMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		manager: manager,
		metrics: m,
		logger:  logger,
	}
}

// Yield handles POST /api/predict/yield.
func (h *Handler) Yield(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.manager.PredictYield)
}

// Disease handles POST /api/predict/disease.
func (h *Handler) Disease(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.manager.DetectDisease)
}

// Pest handles POST /api/predict/pest.
func (h *Handler) Pest(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.manager.PredictPest)
}

// Irrigation handles POST /api/predict/irrigation.
func (h *Handler) Irrigation(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.manager.RecommendIrrigation)
}

// Price handles POST /api/predict/price.
func (h *Handler) Price(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.manager.PredictPrice)
}

// Models handles GET /api/models.
func (h *Handler) Models(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"models": h.manager.ModelsInfo()})
}

// serve decodes the feature mapping, evaluates the model and writes the
// result. An empty body is a valid empty mapping; every feature defaults.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, predict func(Features) Result) {
	features := Features{}
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&features); err != nil && !errors.Is(err, io.EOF) {
			h.logger.Error("failed to decode feature mapping", "error", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	start := time.Now()
	result := predict(features)
	h.metrics.ObservePrediction(result.ModelUsed, "ok")
	h.metrics.ObserveDuration(result.ModelUsed, time.Since(start).Seconds())

	h.logger.Debug("prediction served",
		"model", result.ModelUsed,
		"confidence", result.Confidence,
	)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
