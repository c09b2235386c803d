package observability

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newton",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newton",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	estimatorRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newton",
			Subsystem: "estimator",
			Name:      "runs_total",
			Help:      "Estimator invocations by final outcome.",
		},
		[]string{"source", "outcome"},
	)
	estimatorIterations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newton",
			Subsystem: "estimator",
			Name:      "iterations_total",
			Help:      "Newton refinement steps performed.",
		},
		[]string{"source"},
	)
	estimatorResidual = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "newton",
			Subsystem: "estimator",
			Name:      "last_abs_residual",
			Help:      "Absolute residual of the most recent finite estimate.",
		},
		[]string{"source"},
	)
)

const (
	OutcomeFinite    = "finite"
	OutcomeNonFinite = "non_finite"
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, estimatorRuns, estimatorIterations, estimatorResidual)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordEstimate counts one estimator run. The residual gauge only moves for
// finite results.
func RecordEstimate(source string, steps int, value, result float64) string {
	RegisterMetrics()
	outcome := Outcome(result)
	estimatorRuns.WithLabelValues(source, outcome).Inc()
	if steps > 0 {
		estimatorIterations.WithLabelValues(source).Add(float64(steps))
	}
	if outcome == OutcomeFinite {
		estimatorResidual.WithLabelValues(source).Set(math.Abs(result*result - value))
	}
	return outcome
}

func Outcome(result float64) string {
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return OutcomeNonFinite
	}
	return OutcomeFinite
}

// WriteTextfile dumps the default registry in the node_exporter textfile
// collector format.
func WriteTextfile(path string) error {
	RegisterMetrics()
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
