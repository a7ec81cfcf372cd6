package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIrrigationAdvisorNoDeficit(t *testing.T) {
	a := NewIrrigationAdvisor()

	// Soil moisture at the crop optimum: no action, zero water.
	result := a.Recommend(Features{"crop": "maize", "soil_moisture": 60.0})

	assert.Equal(t, "No Irrigation Needed", result.Prediction)
	assert.Equal(t, "none", result.Details["urgency"])
	assert.Equal(t, 0.0, result.Details["water_amount_mm"])
	assert.Equal(t, 0.88, result.Confidence)
}

func TestIrrigationAdvisorUrgencyTiers(t *testing.T) {
	tests := []struct {
		name         string
		soilMoisture float64
		wantAction   string
		wantUrgency  string
	}{
		{"severe deficit", 30, "Irrigate Immediately", "high"},       // deficit 35
		{"moderate deficit", 50, "Irrigate Within 6 Hours", "medium"}, // deficit 15
		{"mild deficit", 58, "Irrigate Within 24 Hours", "low"},       // deficit 7
		{"no deficit", 66, "No Irrigation Needed", "none"},            // deficit -1
	}

	a := NewIrrigationAdvisor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.Recommend(Features{"crop": "tomato", "soil_moisture": tt.soilMoisture})
			assert.Equal(t, tt.wantAction, result.Prediction)
			assert.Equal(t, tt.wantUrgency, result.Details["urgency"])
		})
	}
}

func TestIrrigationAdvisorEvapotranspirationClamped(t *testing.T) {
	a := NewIrrigationAdvisor()

	cold := a.Recommend(Features{"temperature": -10.0, "humidity": 100.0})
	hot := a.Recommend(Features{"temperature": 50.0, "humidity": 0.0})

	coldET := cold.Details["current_conditions"].(map[string]any)["evapotranspiration_mm"].(float64)
	hotET := hot.Details["current_conditions"].(map[string]any)["evapotranspiration_mm"].(float64)

	assert.Equal(t, 2.0, coldET)
	assert.LessOrEqual(t, hotET, 10.0)
}

func TestIrrigationAdvisorUnknownCropDefaults(t *testing.T) {
	a := NewIrrigationAdvisor()

	result := a.Recommend(Features{"crop": "dragonfruit", "soil_moisture": 60.0})

	cond := result.Details["current_conditions"].(map[string]any)
	assert.Equal(t, 60.0, cond["optimal_moisture_pct"])
	info := result.Details["crop_info"].(map[string]any)
	assert.Equal(t, 5.0, info["daily_water_need_mm"])
}

func TestIrrigationAdvisorBestTime(t *testing.T) {
	a := NewIrrigationAdvisor()

	mild := a.Recommend(Features{"temperature": 25.0})
	hot := a.Recommend(Features{"temperature": 34.0})

	assert.Equal(t, "Morning (6-10 AM)", mild.Details["best_time"])
	assert.Equal(t, "Early morning (5-7 AM) or evening (5-7 PM)", hot.Details["best_time"])
}

func TestIrrigationAdvisorWaterSavingTips(t *testing.T) {
	a := NewIrrigationAdvisor()

	flood := a.Recommend(Features{"irrigation_type": "flood", "temperature": 34.0})
	tips := flood.Details["water_saving_tips"].([]string)

	assert.Contains(t, tips, "Switch to drip irrigation to save 30-50% water")
	assert.Contains(t, tips, "Apply mulch to reduce evaporation by 25%")
	// Two generic tips are always present.
	assert.Contains(t, tips, "Irrigate during cooler hours to reduce water loss")
	assert.Contains(t, tips, "Use soil moisture sensors for precision irrigation")

	sprinkler := a.Recommend(Features{"irrigation_type": "sprinkler"})
	assert.Contains(t, sprinkler.Details["water_saving_tips"].([]string),
		"Consider drip irrigation for water-sensitive crops")
}
