package prediction

import (
	"math/rand"
	"time"
)

// ModelInfo summarizes one model for the catalog endpoint.
type ModelInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Accuracy string `json:"accuracy"`
}

// Manager owns one instance of every prediction model and exposes one call
// per capability. Predictors share no mutable state, so a single Manager is
// safe for concurrent use.
type Manager struct {
	yield      *YieldPredictor
	disease    *DiseaseDetector
	pest       *PestPredictor
	irrigation *IrrigationAdvisor
	price      *PricePredictor
}

// NewManager constructs the five predictors. When rng is non-nil, each
// predictor gets its own generator derived from it so that concurrent calls
// against different models stay reproducible under a fixed seed. A nil rng
// leaves every predictor time-seeded.
func NewManager(rng *rand.Rand, now func() time.Time) *Manager {
	derive := func() *rand.Rand {
		if rng == nil {
			return nil
		}
		return rand.New(rand.NewSource(rng.Int63()))
	}
	return &Manager{
		yield:      NewYieldPredictor(derive()),
		disease:    NewDiseaseDetector(derive()),
		pest:       NewPestPredictor(derive()),
		irrigation: NewIrrigationAdvisor(),
		price:      NewPricePredictor(derive(), now),
	}
}

// PredictYield estimates crop yield.
func (m *Manager) PredictYield(features Features) Result {
	return m.yield.Predict(features)
}

// DetectDisease classifies crop disease.
func (m *Manager) DetectDisease(features Features) Result {
	return m.disease.Detect(features)
}

// PredictPest scores pest outbreak risk.
func (m *Manager) PredictPest(features Features) Result {
	return m.pest.Predict(features)
}

// RecommendIrrigation derives an irrigation action.
func (m *Manager) RecommendIrrigation(features Features) Result {
	return m.irrigation.Recommend(features)
}

// PredictPrice estimates commodity price.
func (m *Manager) PredictPrice(features Features) Result {
	return m.price.Predict(features)
}

// ModelsInfo returns catalog metadata for every model.
func (m *Manager) ModelsInfo() []ModelInfo {
	return []ModelInfo{
		{Name: "Crop Yield Predictor", Type: "Regression", Accuracy: "87%"},
		{Name: "Disease Detector", Type: "Classification (CNN)", Accuracy: "92%"},
		{Name: "Pest Predictor", Type: "Classification", Accuracy: "85%"},
		{Name: "Irrigation Advisor", Type: "Rule-based + ML", Accuracy: "90%"},
		{Name: "Price Predictor", Type: "Time Series", Accuracy: "78%"},
	}
}
