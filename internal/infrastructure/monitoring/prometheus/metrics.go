// Package prometheus exposes the engine's operational metrics.  A nil
// *Metrics is a valid no-op collector, so instrumented code never branches
// on whether metrics are enabled.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's instrument set, registered on a private
// registry so tests and embedded uses never collide with the default one.
type Metrics struct {
	registry *prometheus.Registry

	decisions       *prometheus.CounterVec
	windows         *prometheus.CounterVec
	cascadeDepth    prometheus.Histogram
	scoringDuration prometheus.Histogram
	confidence      prometheus.Histogram
}

// New registers the instrument set under the given namespace.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "kosha"
	}
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Cascade decisions by outcome.",
		}, []string{"decision"}),
		windows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_total",
			Help:      "Segmentation window outcomes.",
		}, []string{"outcome"}),
		cascadeDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cascade_iterations",
			Help:      "Iterations consumed per chunk before termination.",
			Buckets:   []float64{1, 2, 3, 4, 5},
		}),
		scoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_duration_seconds",
			Help:      "Wall time of one cascade run.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		confidence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "text_confidence",
			Help:      "Final confidence per processed text.",
			Buckets:   []float64{.1, .2, .3, .4, .5, .6, .7, .8, .9, 1},
		}),
	}
	registry.MustRegister(m.decisions, m.windows, m.cascadeDepth, m.scoringDuration, m.confidence)
	return m
}

// ObserveDecision counts one cascade decision.
func (m *Metrics) ObserveDecision(decision string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(decision).Inc()
}

// ObserveCascade records the depth and duration of one cascade run.
func (m *Metrics) ObserveCascade(iterations int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.cascadeDepth.Observe(float64(iterations))
	m.scoringDuration.Observe(elapsed.Seconds())
}

// ObserveWindow counts one segmentation window outcome ("token" or
// "verbatim").
func (m *Metrics) ObserveWindow(outcome string) {
	if m == nil {
		return
	}
	m.windows.WithLabelValues(outcome).Inc()
}

// ObserveConfidence records the final confidence of one processed text.
func (m *Metrics) ObserveConfidence(confidence float64) {
	if m == nil {
		return
	}
	m.confidence.Observe(confidence)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
