package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	received   *prometheus.CounterVec
	dispatched *prometheus.CounterVec
	duplicates *prometheus.CounterVec
	dropped    *prometheus.CounterVec
	errors     *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	streamUp   prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		received: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "delistradar_announcements_received_total",
				Help: "Total number of raw announcements received from feeds",
			},
			[]string{"source"},
		),
		dispatched: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "delistradar_alerts_dispatched_total",
				Help: "Total number of delisting alerts dispatched",
			},
			[]string{"source"},
		),
		duplicates: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "delistradar_duplicates_total",
				Help: "Total number of announcements skipped as already notified",
			},
			[]string{"source"},
		),
		dropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "delistradar_dropped_total",
				Help: "Total number of announcements dropped before dispatch",
			},
			[]string{"source", "reason"},
		),
		errors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "delistradar_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "delistradar_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		streamUp: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "delistradar_stream_connected",
				Help: "Whether the announcement stream is connected (1) or not (0)",
			},
		),
	}
}

func (r *Recorder) RecordReceived(source string) {
	r.received.WithLabelValues(source).Inc()
}

func (r *Recorder) RecordDispatched(source string) {
	r.dispatched.WithLabelValues(source).Inc()
}

func (r *Recorder) RecordDuplicate(source string) {
	r.duplicates.WithLabelValues(source).Inc()
}

func (r *Recorder) RecordDropped(source, reason string) {
	r.dropped.WithLabelValues(source, reason).Inc()
}

func (r *Recorder) RecordError(kind string) {
	r.errors.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

func (r *Recorder) RecordStreamUp(up bool) {
	if up {
		r.streamUp.Set(1)
		return
	}
	r.streamUp.Set(0)
}
