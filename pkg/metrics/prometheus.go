package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	judgmentsTotal *prometheus.CounterVec
	confidence     prometheus.Histogram
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		judgmentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "horary_judgments_total",
				Help: "Total number of judgments by verdict",
			},
			[]string{"verdict"},
		),
		confidence: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "horary_judgment_confidence",
				Help:    "Distribution of judgment confidence scores",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "horary_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "horary_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordJudgment records one judgment outcome.
func (r *Recorder) RecordJudgment(verdict string) {
	r.judgmentsTotal.WithLabelValues(verdict).Inc()
}

// RecordConfidence records a judgment confidence score.
func (r *Recorder) RecordConfidence(confidence int) {
	r.confidence.Observe(float64(confidence))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
