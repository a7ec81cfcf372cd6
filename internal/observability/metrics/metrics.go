package metrics

import "github.com/prometheus/client_golang/prometheus"

// PredictionMetrics exposes counters/histograms for the prediction models.
type PredictionMetrics struct {
	predictionsTotal *prometheus.CounterVec
	predictionTime   *prometheus.HistogramVec
}

func NewPredictionMetrics(reg prometheus.Registerer) *PredictionMetrics {
	m := &PredictionMetrics{
		predictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrimind",
			Subsystem: "prediction",
			Name:      "requests_total",
			Help:      "Total prediction requests by model",
		}, []string{"model", "status"}),
		predictionTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agrimind",
			Subsystem: "prediction",
			Name:      "duration_seconds",
			Help:      "Latency of prediction evaluation",
			Buckets:   prometheus.DefBuckets,
		}, []string{"model"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.predictionsTotal, m.predictionTime)
	return m
}

func (m *PredictionMetrics) ObservePrediction(model, status string) {
	if m == nil {
		return
	}
	m.predictionsTotal.WithLabelValues(model, status).Inc()
}

func (m *PredictionMetrics) ObserveDuration(model string, seconds float64) {
	if m == nil {
		return
	}
	m.predictionTime.WithLabelValues(model).Observe(seconds)
}

// ChatMetrics exposes counters for the advisory dialogue engine.
type ChatMetrics struct {
	messagesTotal *prometheus.CounterVec
	sessionsTotal prometheus.Counter
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrimind",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Total chat turns by resolved intent",
		}, []string{"intent"}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrimind",
			Subsystem: "chat",
			Name:      "sessions_total",
			Help:      "Total conversation sessions created",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.sessionsTotal)
	return m
}

func (m *ChatMetrics) ObserveMessage(intent string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(intent).Inc()
}

func (m *ChatMetrics) ObserveSession() {
	if m == nil {
		return
	}
	m.sessionsTotal.Inc()
}
