package prediction

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestYieldPredictorDefaults(t *testing.T) {
	p := NewYieldPredictor(seeded(1))

	result := p.Predict(Features{})

	assert.Equal(t, "CropYieldPredictor_v1", result.ModelUsed)
	assert.InDelta(t, 0.6, result.Confidence, 0.001, "no optional features -> base confidence")
	assert.Equal(t, "wheat", result.Details["crop"])
	assert.NotEmpty(t, result.Timestamp)
}

func TestYieldPredictorConfidenceScalesWithFeatures(t *testing.T) {
	p := NewYieldPredictor(seeded(1))

	partial := p.Predict(Features{"temperature": 24.0, "rainfall": 150.0})
	full := p.Predict(Features{
		"temperature":     24.0,
		"rainfall":        150.0,
		"soil_ph":         6.5,
		"nitrogen":        400.0,
		"irrigation_type": "drip",
	})

	assert.InDelta(t, 0.74, partial.Confidence, 0.001)
	assert.InDelta(t, 0.95, full.Confidence, 0.001)
}

func TestYieldPredictorIrrigationOrdering(t *testing.T) {
	// Same seed, same inputs except irrigation method: drip (x1.20) must
	// strictly beat rainfed (x0.75).
	base := Features{
		"crop":        "wheat",
		"temperature": 24.0,
		"rainfall":    150.0,
		"soil_ph":     6.5,
		"nitrogen":    400.0,
	}

	drip := Features{"irrigation_type": "drip"}
	rainfed := Features{"irrigation_type": "rainfed"}
	for k, v := range base {
		drip[k] = v
		rainfed[k] = v
	}

	dripResult := NewYieldPredictor(seeded(7)).Predict(drip)
	rainfedResult := NewYieldPredictor(seeded(7)).Predict(rainfed)

	require.IsType(t, float64(0), dripResult.Prediction)
	assert.Greater(t, dripResult.Prediction.(float64), rainfedResult.Prediction.(float64))
}

func TestYieldPredictorFactors(t *testing.T) {
	p := NewYieldPredictor(seeded(3))

	result := p.Predict(Features{
		"temperature": 24.0,
		"rainfall":    150.0,
		"soil_ph":     6.5,
		"nitrogen":    400.0,
	})

	factors := result.Details["factors"].(map[string]any)
	assert.Equal(t, 1.0, factors["temperature_effect"], "optimum temperature")
	assert.InDelta(t, 1.033, factors["rainfall_effect"].(float64), 0.001, "plateau region")
	assert.Equal(t, 1.0, factors["soil_ph_effect"], "optimum pH")
	assert.Equal(t, 1.2, factors["fertilizer_effect"], "saturated nitrogen")
}

func TestYieldPredictorEffectClamps(t *testing.T) {
	p := NewYieldPredictor(seeded(3))

	result := p.Predict(Features{
		"temperature": 90.0,
		"rainfall":    5000.0,
		"soil_ph":     14.0,
		"nitrogen":    0.0,
	})

	factors := result.Details["factors"].(map[string]any)
	assert.Equal(t, 0.5, factors["temperature_effect"])
	assert.Equal(t, 0.4, factors["rainfall_effect"])
	assert.Equal(t, 0.7, factors["soil_ph_effect"])
	assert.Equal(t, 0.7, factors["fertilizer_effect"])
}

func TestYieldPredictorRecommendations(t *testing.T) {
	tests := []struct {
		name     string
		features Features
		want     string
	}{
		{
			name:     "heat stress",
			features: Features{"temperature": 38.0},
			want:     "Consider shade nets or adjust planting time to avoid heat stress",
		},
		{
			name:     "cold stress",
			features: Features{"temperature": 10.0},
			want:     "Use mulching or row covers to maintain optimal temperature",
		},
		{
			name:     "low rainfall",
			features: Features{"rainfall": 20.0},
			want:     "Increase irrigation frequency to compensate for low rainfall",
		},
		{
			name:     "acidic soil",
			features: Features{"soil_ph": 4.0},
			want:     "Apply lime to increase soil pH",
		},
		{
			name:     "alkaline soil",
			features: Features{"soil_ph": 9.0},
			want:     "Add sulfur or organic matter to lower soil pH",
		},
		{
			name:     "rainfed",
			features: Features{"irrigation_type": "rainfed"},
			want:     "Consider installing drip irrigation for 20-30% yield improvement",
		},
		{
			name:     "favorable",
			features: Features{"temperature": 24.0, "rainfall": 150.0, "soil_ph": 6.5},
			want:     "Current conditions are favorable for optimal yield",
		},
	}

	p := NewYieldPredictor(seeded(4))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := p.Predict(tt.features)
			recs := result.Details["recommendations"].([]string)
			assert.Contains(t, recs, tt.want)
		})
	}
}

func TestYieldPredictorReproducible(t *testing.T) {
	features := Features{"crop": "rice", "temperature": 28.0}

	a := NewYieldPredictor(seeded(99)).Predict(features)
	b := NewYieldPredictor(seeded(99)).Predict(features)

	assert.Equal(t, a.Prediction, b.Prediction)
}

func TestYieldPredictorConfidenceBounds(t *testing.T) {
	p := NewYieldPredictor(seeded(5))
	for _, f := range []Features{{}, {"temperature": -100.0}, {"crop": "unknown-crop"}} {
		result := p.Predict(f)
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
	}
}
