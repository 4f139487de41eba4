package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Classification outcomes
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds the service's Prometheus collectors
type Metrics struct {
	classifications *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "promptclf",
			Name:      "classifications_total",
			Help:      "Classification requests by outcome.",
		}, []string{"outcome"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "promptclf",
			Name:      "provider_latency_seconds",
			Help:      "Completion provider call latency.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"provider"}),
	}

	if reg != nil {
		reg.MustRegister(m.classifications, m.providerLatency)
	}
	return m
}

// ObserveClassification records one classification and its provider latency
func (m *Metrics) ObserveClassification(provider string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.classifications.WithLabelValues(outcome).Inc()
	m.providerLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
}
