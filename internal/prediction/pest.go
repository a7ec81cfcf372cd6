package prediction

import (
	"fmt"
	"math/rand"
	"time"
)

const pestModelName = "PestPredictor_v1"

// pestProfile holds the temperature and humidity bands favorable to a pest.
type pestProfile struct {
	name        string
	tempLow     float64
	tempHigh    float64
	humidityLow float64
	humidityHi  float64
}

// pestProfiles is ordered; ties on the maximum score resolve to the earliest
// entry, matching the declaration-order contract.
var pestProfiles = []pestProfile{
	{"aphids", 18, 28, 50, 80},
	{"whiteflies", 22, 32, 40, 70},
	{"thrips", 20, 30, 30, 60},
	{"caterpillars", 20, 28, 50, 80},
	{"mites", 25, 35, 20, 50},
	{"locusts", 25, 38, 30, 60},
}

var pestControls = map[string]string{
	"aphids":       "Release ladybugs or lacewings as biological control",
	"whiteflies":   "Use yellow sticky traps around crop perimeter",
	"thrips":       "Apply spinosad for organic control",
	"caterpillars": "Use Bt (Bacillus thuringiensis) spray",
	"mites":        "Increase humidity and apply miticide if severe",
	"locusts":      "Report to agricultural authorities if swarm detected",
}

// PestPredictor scores pest outbreak risk from temperature and humidity
// range membership. The season feature is informational only.
type PestPredictor struct {
	rng *lockedRand
	now func() time.Time
}

// NewPestPredictor creates a pest risk predictor. A nil rng is time-seeded.
func NewPestPredictor(rng *rand.Rand) *PestPredictor {
	return &PestPredictor{rng: newLockedRand(rng), now: time.Now}
}

// Predict scores all tracked pests and reports the overall risk tier for the
// highest-scoring one. Scores stay within [0,1].
func (p *PestPredictor) Predict(features Features) Result {
	temperature := features.Float("temperature", 25)
	humidity := features.Float("humidity", 60)

	pestRisks := make(map[string]float64, len(pestProfiles))
	highestPest := pestProfiles[0].name
	highestRisk := -1.0

	for _, profile := range pestProfiles {
		tempRisk := 0.5
		if temperature >= profile.tempLow && temperature <= profile.tempHigh {
			tempRisk = 1.0
		}
		humRisk := 0.5
		if humidity >= profile.humidityLow && humidity <= profile.humidityHi {
			humRisk = 1.0
		}

		score := round2(tempRisk * humRisk * p.rng.Uniform(0.7, 1.0))
		pestRisks[profile.name] = score
		if score > highestRisk {
			highestRisk = score
			highestPest = profile.name
		}
	}

	var riskLevel string
	switch {
	case highestRisk > 0.8:
		riskLevel = "High"
	case highestRisk > 0.5:
		riskLevel = "Medium"
	default:
		riskLevel = "Low"
	}

	allRisks := make(map[string]any, len(pestRisks))
	for name, score := range pestRisks {
		allRisks[titleCase(name)] = score
	}

	return newResult(riskLevel, round2(0.7+highestRisk*0.25), map[string]any{
		"overall_risk":       riskLevel,
		"highest_risk_pest":  titleCase(highestPest),
		"highest_risk_score": highestRisk,
		"all_pest_risks":     allRisks,
		"environmental_conditions": map[string]any{
			"temperature":         temperature,
			"humidity":            humidity,
			"favorable_for_pests": highestRisk > 0.6,
		},
		"recommendations": pestRecommendations(highestPest, highestRisk),
	}, pestModelName, p.now)
}

// pestRecommendations grades generic advice by risk and appends the
// pest-specific control method.
func pestRecommendations(pest string, risk float64) []string {
	var recs []string

	switch {
	case risk > 0.7:
		recs = append(recs,
			fmt.Sprintf("High risk of %s - Start preventive treatment immediately", pest),
			"Install monitoring traps to track pest population")
	case risk > 0.5:
		recs = append(recs,
			fmt.Sprintf("Moderate risk of %s - Increase monitoring frequency", pest),
			"Prepare organic control measures (neem oil, traps)")
	default:
		recs = append(recs, "Low pest risk - Continue regular monitoring")
	}

	if control, ok := pestControls[pest]; ok {
		recs = append(recs, control)
	}
	return recs
}
