package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveClassification(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveClassification("openai/gpt-4o-mini", 120*time.Millisecond, nil)
	m.ObserveClassification("openai/gpt-4o-mini", 80*time.Millisecond, nil)
	m.ObserveClassification("openai/gpt-4o-mini", time.Second, errors.New("upstream"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.classifications.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.classifications.WithLabelValues(OutcomeError)))

	count, err := testutil.GatherAndCount(reg, "promptclf_provider_latency_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	expected := `
# HELP promptclf_classifications_total Classification requests by outcome.
# TYPE promptclf_classifications_total counter
promptclf_classifications_total{outcome="error"} 1
promptclf_classifications_total{outcome="success"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "promptclf_classifications_total"))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveClassification("x", time.Millisecond, nil)
	})
}

func TestNew_Unregistered(t *testing.T) {
	m := New(nil)

	m.ObserveClassification("x", time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.classifications.WithLabelValues(OutcomeSuccess)))
}
