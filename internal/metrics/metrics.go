// Package metrics provides observability for the planning engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the application.
type Metrics struct {
	// Projection latencies by kind ("supply", "demand")
	ProjectionLatency *prometheus.HistogramVec

	// Gap outcomes by terminal severity
	GapSeverity *prometheus.CounterVec

	// Default substitutions reported during analyses
	AssumptionNotes prometheus.Counter

	// Full gap analysis latency including both projections
	AnalysisLatency prometheus.Histogram

	// HTTP traffic by route and status
	HTTPRequests *prometheus.CounterVec
}

// New creates a Metrics instance with all collectors registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		ProjectionLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "healthforce_projection_duration_seconds",
			Help:    "Duration of projection runs by kind",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"kind"}),

		GapSeverity: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "healthforce_gap_severity_total",
			Help: "Projected years by gap severity",
		}, []string{"severity"}),

		AssumptionNotes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "healthforce_assumption_notes_total",
			Help: "Default substitutions applied for missing or degenerate data",
		}),

		AnalysisLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "healthforce_gap_analysis_duration_seconds",
			Help:    "Duration of full gap analyses including both projections",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "healthforce_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "status"}),
	}
}

// ObserveProjection records the duration of one projection run.
func (m *Metrics) ObserveProjection(kind string, d time.Duration) {
	if m != nil {
		m.ProjectionLatency.WithLabelValues(kind).Observe(d.Seconds())
	}
}

// CountSeverity records one projected year's severity outcome.
func (m *Metrics) CountSeverity(severity string) {
	if m != nil {
		m.GapSeverity.WithLabelValues(severity).Inc()
	}
}

// CountNotes records assumption notes emitted by an analysis.
func (m *Metrics) CountNotes(n int) {
	if m != nil && n > 0 {
		m.AssumptionNotes.Add(float64(n))
	}
}

// ObserveAnalysis records the duration of a full gap analysis.
func (m *Metrics) ObserveAnalysis(d time.Duration) {
	if m != nil {
		m.AnalysisLatency.Observe(d.Seconds())
	}
}

// CountRequest records one handled HTTP request.
func (m *Metrics) CountRequest(route, status string) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(route, status).Inc()
	}
}
