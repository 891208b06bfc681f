// Package metrics records fingerseq operation timings as Prometheus metrics.
//
// Each Recorder owns its registry, so the metrics of one bench run can be
// written to a node_exporter textfile without touching the global registry.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder collects operation durations and sequence sizes of a bench run.
type Recorder struct {
	registry *prometheus.Registry

	opDuration *prometheus.HistogramVec
	opCount    *prometheus.CounterVec
	seqSize    *prometheus.GaugeVec
}

// NewRecorder creates a recorder whose metrics carry the given run label.
func NewRecorder(runID string) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"run": runID}, reg))

	return &Recorder{
		registry: reg,
		opDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fingerseq_op_duration_seconds",
			Help:    "A histogram of sequence operation latencies",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 14),
		}, []string{"op", "size"}),
		opCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fingerseq_ops_total",
			Help: "The total number of timed sequence operations",
		}, []string{"op"}),
		seqSize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fingerseq_sequence_size",
			Help: "Number of elements in the sequence an operation last ran on",
		}, []string{"op"}),
	}
}

// Observe records one run of op on a sequence of size elements.
func (r *Recorder) Observe(op string, size int, d time.Duration) {
	r.opDuration.WithLabelValues(op, fmt.Sprint(size)).Observe(d.Seconds())
	r.opCount.WithLabelValues(op).Inc()
	r.seqSize.WithLabelValues(op).Set(float64(size))
}

// Time runs fn and records its duration under op.
func (r *Recorder) Time(op string, size int, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	r.Observe(op, size, d)
	return d
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is written atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
