package vellum

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the runtime's Prometheus metrics. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	renderSeconds prometheus.Histogram
	updateSeconds prometheus.Histogram
}

// NewMetrics registers and returns the runtime metrics. An empty namespace
// defaults to "vellum"; a nil registry uses the default registerer.
func NewMetrics(namespace string, registry prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "vellum"
	}
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		renderSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Render pass duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		updateSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "update",
			Name:      "duration_seconds",
			Help:      "Update (re-render and diff) duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) observeRender(start time.Time) {
	if m != nil {
		m.renderSeconds.Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) observeUpdate(start time.Time) {
	if m != nil {
		m.updateSeconds.Observe(time.Since(start).Seconds())
	}
}
