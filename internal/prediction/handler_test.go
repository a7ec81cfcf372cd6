package prediction

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrimind/agri-ai-platform/internal/observability/metrics"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	m := metrics.NewPredictionMetrics(prometheus.NewRegistry())
	return NewHandler(NewManager(seeded(1), nil), m, nil)
}

func TestHandlerYield(t *testing.T) {
	h := newTestHandler(t)

	body := `{"crop":"wheat","temperature":24,"rainfall":150,"soil_ph":6.5,"nitrogen":400,"irrigation_type":"drip"}`
	req := httptest.NewRequest(http.MethodPost, "/api/predict/yield", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Yield(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var result Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "CropYieldPredictor_v1", result.ModelUsed)
	assert.InDelta(t, 0.95, result.Confidence, 0.001)
}

func TestHandlerEmptyBodyUsesDefaults(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/predict/irrigation", strings.NewReader(""))
	rr := httptest.NewRecorder()

	h.Irrigation(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "SmartIrrigationAdvisor_v1", result.ModelUsed)
}

func TestHandlerMalformedBody(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/predict/pest", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()

	h.Pest(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlerDiseaseHealthy(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/predict/disease",
		strings.NewReader(`{"affected_area_pct":0,"spot_density":0}`))
	rr := httptest.NewRecorder()

	h.Disease(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "Healthy", result.Prediction)
	assert.Equal(t, 0.92, result.Confidence)
}

func TestHandlerModels(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
	rr := httptest.NewRecorder()

	h.Models(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var payload struct {
		Models []ModelInfo `json:"models"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.Len(t, payload.Models, 5)
}

func TestHandlerPrice(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/predict/price",
		strings.NewReader(`{"commodity":"rice","days_ahead":7}`))
	rr := httptest.NewRecorder()

	h.Price(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.InDelta(t, 0.83, result.Confidence, 0.001)
}
