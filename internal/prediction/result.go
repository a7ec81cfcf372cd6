package prediction

import (
	"math"
	"time"
)

// Result is the uniform envelope returned by every prediction model.
// Confidence is always within [0,1] and the timestamp is stamped at
// construction. Results are never mutated after being returned.
type Result struct {
	Prediction any            `json:"prediction"`
	Confidence float64        `json:"confidence"`
	Details    map[string]any `json:"details"`
	ModelUsed  string         `json:"model_used"`
	Timestamp  string         `json:"timestamp"`
}

// newResult builds a Result, clamping confidence and stamping the timestamp.
func newResult(pred any, confidence float64, details map[string]any, model string, now func() time.Time) Result {
	if now == nil {
		now = time.Now
	}
	return Result{
		Prediction: pred,
		Confidence: clamp(confidence, 0, 1),
		Details:    details,
		ModelUsed:  model,
		Timestamp:  now().UTC().Format(time.RFC3339),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
