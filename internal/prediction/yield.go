package prediction

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

const yieldModelName = "CropYieldPredictor_v1"

// yieldFeatureKeys are the optional inputs that raise confidence when provided.
var yieldFeatureKeys = []string{"temperature", "rainfall", "soil_ph", "nitrogen", "irrigation_type"}

var baseYields = map[string]float64{
	"wheat":     4.0,
	"rice":      5.0,
	"maize":     6.0,
	"soybean":   2.5,
	"cotton":    2.0,
	"sugarcane": 70.0,
	"potato":    30.0,
	"tomato":    35.0,
}

var irrigationEffects = map[string]float64{
	"drip":      1.20,
	"sprinkler": 1.10,
	"flood":     1.0,
	"rainfed":   0.75,
}

// YieldPredictor estimates crop yield from environmental and agronomic
// factors using a multiplicative factor model over a per-crop base yield.
type YieldPredictor struct {
	rng *lockedRand
	now func() time.Time
}

// NewYieldPredictor creates a yield predictor. A nil rng is time-seeded.
func NewYieldPredictor(rng *rand.Rand) *YieldPredictor {
	return &YieldPredictor{rng: newLockedRand(rng), now: time.Now}
}

// Predict returns the estimated yield in tons per hectare for the given
// feature mapping. Missing features fall back to defaults; unknown crops use
// the wheat baseline.
func (p *YieldPredictor) Predict(features Features) Result {
	crop := strings.ToLower(features.String("crop", "wheat"))
	baseYield, ok := baseYields[crop]
	if !ok {
		baseYield = 4.0
	}

	// Temperature effect, optimum around 24°C.
	temp := features.Float("temperature", 25)
	tempEffect := clamp(1-math.Abs(temp-24)*0.015, 0.5, 1.2)

	// Rainfall effect: ramps up to 50mm, plateaus to 200mm, decays beyond.
	rainfall := features.Float("rainfall", 100)
	var rainEffect float64
	switch {
	case rainfall < 50:
		rainEffect = 0.6 + (rainfall/50)*0.3
	case rainfall < 200:
		rainEffect = 0.9 + (rainfall-50)/150*0.2
	default:
		rainEffect = 1.1 - (rainfall-200)/500*0.3
	}
	rainEffect = clamp(rainEffect, 0.4, 1.2)

	// Soil pH effect, optimum 6.5.
	ph := features.Float("soil_ph", 6.5)
	phEffect := clamp(1-math.Abs(ph-6.5)*0.08, 0.7, 1.1)

	// Fertilizer effect saturates at 1.2.
	nitrogen := features.Float("nitrogen", 200)
	fertEffect := math.Min(1.2, 0.7+(nitrogen/400)*0.5)

	irrigationType := strings.ToLower(features.String("irrigation_type", "flood"))
	irrEffect, ok := irrigationEffects[irrigationType]
	if !ok {
		irrEffect = 1.0
	}

	predicted := baseYield * tempEffect * rainEffect * phEffect * fertEffect * irrEffect
	predicted *= p.rng.Uniform(0.95, 1.05)

	provided := 0
	for _, key := range yieldFeatureKeys {
		if features.Has(key) {
			provided++
		}
	}
	confidence := 0.6 + float64(provided)/5*0.35

	yieldLow := predicted * 0.85
	yieldHigh := predicted * 1.15

	return newResult(round2(predicted), round2(confidence), map[string]any{
		"crop":                   crop,
		"yield_per_hectare_tons": round2(predicted),
		"yield_range":            fmt.Sprintf("%.2f - %.2f tons/ha", round2(yieldLow), round2(yieldHigh)),
		"factors": map[string]any{
			"temperature_effect": round3(tempEffect),
			"rainfall_effect":    round3(rainEffect),
			"soil_ph_effect":     round3(phEffect),
			"fertilizer_effect":  round3(fertEffect),
			"irrigation_effect":  round3(irrEffect),
		},
		"recommendations": yieldRecommendations(features, tempEffect, rainEffect, phEffect),
	}, yieldModelName, p.now)
}

// yieldRecommendations suggests corrective actions for weak effect factors.
func yieldRecommendations(features Features, tempEffect, rainEffect, phEffect float64) []string {
	var recs []string

	if tempEffect < 0.85 {
		if features.Float("temperature", 25) > 30 {
			recs = append(recs, "Consider shade nets or adjust planting time to avoid heat stress")
		} else {
			recs = append(recs, "Use mulching or row covers to maintain optimal temperature")
		}
	}

	if rainEffect < 0.8 {
		if features.Float("rainfall", 100) < 80 {
			recs = append(recs, "Increase irrigation frequency to compensate for low rainfall")
		} else {
			recs = append(recs, "Ensure proper drainage to prevent waterlogging")
		}
	}

	if phEffect < 0.9 {
		if features.Float("soil_ph", 6.5) < 6.0 {
			recs = append(recs, "Apply lime to increase soil pH")
		} else {
			recs = append(recs, "Add sulfur or organic matter to lower soil pH")
		}
	}

	if strings.ToLower(features.String("irrigation_type", "")) == "rainfed" {
		recs = append(recs, "Consider installing drip irrigation for 20-30% yield improvement")
	}

	if len(recs) == 0 {
		recs = append(recs, "Current conditions are favorable for optimal yield")
	}
	return recs
}
