package prediction

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

const priceModelName = "MarketPricePredictor_v1"

var basePrices = map[string]float64{
	"wheat":     2200,
	"rice":      3500,
	"maize":     1800,
	"soybean":   4500,
	"cotton":    6000,
	"sugarcane": 350,
	"potato":    1500,
	"tomato":    2500,
	"onion":     2000,
}

// PricePredictor estimates commodity prices from a seasonal factor and a
// randomized short-term trend. The estimate is stateless: each call draws a
// fresh trend rather than extrapolating persisted history.
type PricePredictor struct {
	rng *lockedRand
	now func() time.Time
}

// NewPricePredictor creates a price predictor. A nil rng is time-seeded and
// a nil now falls back to time.Now; the clock drives the seasonal factor.
func NewPricePredictor(rng *rand.Rand, now func() time.Time) *PricePredictor {
	if now == nil {
		now = time.Now
	}
	return &PricePredictor{rng: newLockedRand(rng), now: now}
}

// Predict estimates the price per quintal for the commodity, with a range
// that widens as days_ahead grows.
func (p *PricePredictor) Predict(features Features) Result {
	commodity := strings.ToLower(features.String("commodity", "wheat"))
	daysAhead := features.Float("days_ahead", 7)

	basePrice, ok := basePrices[commodity]
	if !ok {
		basePrice = 2000
	}

	month := float64(p.now().Month())
	seasonalFactor := 1 + 0.15*math.Sin(2*math.Pi*month/12)

	trend := p.rng.Uniform(-0.05, 0.08)

	predicted := basePrice * seasonalFactor * (1 + trend)

	volatility := 0.05 + (daysAhead/30)*0.1
	priceLow := predicted * (1 - volatility)
	priceHigh := predicted * (1 + volatility)

	var sentiment, recommendation string
	switch {
	case trend > 0.03:
		sentiment = "Bullish"
		recommendation = "Good time to sell"
	case trend < -0.03:
		sentiment = "Bearish"
		recommendation = "Consider holding or wait for better prices"
	default:
		sentiment = "Neutral"
		recommendation = "Market is stable, sell based on your needs"
	}

	return newResult(round2(predicted), math.Max(0.6, 0.9-daysAhead*0.01), map[string]any{
		"commodity":                 titleCase(commodity),
		"predicted_price_per_quintal": round2(predicted),
		"price_range":               fmt.Sprintf("₹%.0f - ₹%.0f", math.Round(priceLow), math.Round(priceHigh)),
		"prediction_period_days":    daysAhead,
		"market_sentiment":          sentiment,
		"recommendation":            recommendation,
		"factors": map[string]any{
			"seasonal_effect": fmt.Sprintf("%+.1f%%", (seasonalFactor-1)*100),
			"trend":           fmt.Sprintf("%+.1f%%", trend*100),
		},
	}, priceModelName, p.now)
}
