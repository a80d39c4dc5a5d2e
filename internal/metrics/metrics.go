package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for menu visibility.
type Metrics struct {
	// MenuEvaluations counts menus evaluated for public display, by result.
	MenuEvaluations *prometheus.CounterVec

	// CacheLookups counts venue menu cache lookups, by result (hit|miss|error).
	CacheLookups *prometheus.CounterVec

	// SnapshotUploads counts published venue snapshots, by status.
	SnapshotUploads *prometheus.CounterVec

	// PublishDuration is the time taken by one publisher run.
	PublishDuration prometheus.Histogram
}

// New creates the metrics and registers them with reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MenuEvaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "menu_evaluations_total",
				Help:      "Total number of menus evaluated against their schedules",
			},
			[]string{"result"},
		),

		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "menu_cache_lookups_total",
				Help:      "Total number of venue menu cache lookups",
			},
			[]string{"result"},
		),

		SnapshotUploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_uploads_total",
				Help:      "Total number of venue menu snapshots uploaded",
			},
			[]string{"status"},
		),

		PublishDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "publish_run_duration_seconds",
				Help:      "Time to publish all venue snapshots",
				Buckets:   []float64{.05, .1, .5, 1, 2, 5, 10, 30},
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.MenuEvaluations, m.CacheLookups, m.SnapshotUploads, m.PublishDuration)
	}

	return m
}

// ObserveVisibility records how many of total menus were visible.
func (m *Metrics) ObserveVisibility(visible, total int) {
	if m == nil {
		return
	}
	m.MenuEvaluations.WithLabelValues("visible").Add(float64(visible))
	m.MenuEvaluations.WithLabelValues("hidden").Add(float64(total - visible))
}

func (m *Metrics) CacheResult(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) UploadResult(status string) {
	if m == nil {
		return
	}
	m.SnapshotUploads.WithLabelValues(status).Inc()
}
