package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveVisibility(t *testing.T) {
	m := New("test", prometheus.NewRegistry())

	m.ObserveVisibility(2, 5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.MenuEvaluations.WithLabelValues("visible")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.MenuEvaluations.WithLabelValues("hidden")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveVisibility(1, 1)
		m.CacheResult("hit")
		m.UploadResult("ok")
	})
}
