package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the pipeline's Prometheus collectors.
type Metrics struct {
	RendersTotal     *prometheus.CounterVec
	FallbackAttempts prometheus.Counter
	RenderDuration   prometheus.Histogram
}

// NewMetrics registers the pipeline collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chartscout_renders_total",
			Help: "Render requests by terminal status and chart kind.",
		}, []string{"status", "kind"}),
		FallbackAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chartscout_fallback_attempts_total",
			Help: "Fallback candidates consumed after a failure.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chartscout_render_duration_seconds",
			Help:    "End-to-end render request duration.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.RendersTotal, m.FallbackAttempts, m.RenderDuration)
	}
	return m
}
