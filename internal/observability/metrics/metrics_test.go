package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestPredictionMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPredictionMetrics(reg)
	m.ObservePrediction("CropYieldPredictor_v1", "ok")
	m.ObserveDuration("CropYieldPredictor_v1", 0.002)
}

func TestChatMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)
	m.ObserveMessage("greeting")
	m.ObserveSession()
}

func TestMetricsNilSafe(t *testing.T) {
	var p *PredictionMetrics
	p.ObservePrediction("model", "ok")
	p.ObserveDuration("model", 0.1)

	var c *ChatMetrics
	c.ObserveMessage("general")
	c.ObserveSession()
}
