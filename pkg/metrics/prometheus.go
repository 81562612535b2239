package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	reportsBuilt *prometheus.CounterVec
	archetypes   *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	lastPrice    *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		reportsBuilt: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moonpulse_reports_built_total",
				Help: "Total number of reports routed to a backend",
			},
			[]string{"backend", "symbol"},
		),
		archetypes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moonpulse_archetypes_total",
				Help: "Total classifications by archetype",
			},
			[]string{"archetype"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moonpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "moonpulse_last_price",
				Help: "Last recorded price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moonpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordReportBuilt records a report routed to a backend.
func (r *Recorder) RecordReportBuilt(backend, symbol string) {
	r.reportsBuilt.WithLabelValues(backend, symbol).Inc()
}

// RecordArchetype records one classification outcome.
func (r *Recorder) RecordArchetype(archetype string) {
	r.archetypes.WithLabelValues(archetype).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
