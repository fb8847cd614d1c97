package harness

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder observes one validated file's outcome. The harness itself
// stays decoupled from any particular metrics backend; PrometheusRecorder
// is the concrete implementation internal/metrics wires into the
// `validate --metrics-addr` CLI flag.
type Recorder interface {
	Observe(status Status, elapsed time.Duration)
}

// NoopRecorder discards every observation; the harness's zero value
// when no metrics endpoint was requested.
type NoopRecorder struct{}

func (NoopRecorder) Observe(Status, time.Duration) {}

// PrometheusRecorder backs validate --metrics-addr (spec §2 DOMAIN
// STACK): a counter per status and a latency histogram, both labeled
// by nothing else since component identity has unbounded cardinality.
type PrometheusRecorder struct {
	Counts  *prometheus.CounterVec
	Latency prometheus.Histogram
}

// NewPrometheusRecorder registers its collectors against reg and
// returns a ready Recorder.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		Counts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zkvm",
			Subsystem: "harness",
			Name:      "results_total",
			Help:      "Validation results by status.",
		}, []string{"status"}),
		Latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zkvm",
			Subsystem: "harness",
			Name:      "solve_seconds",
			Help:      "Solver invocation latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(r.Counts, r.Latency)
	return r
}

func (r *PrometheusRecorder) Observe(status Status, elapsed time.Duration) {
	r.Counts.WithLabelValues(string(status)).Inc()
	r.Latency.Observe(elapsed.Seconds())
}
