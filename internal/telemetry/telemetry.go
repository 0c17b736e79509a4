// Package telemetry provides the engine's loggers and Prometheus metrics.
package telemetry

import (
	"io"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewLogger returns a stderr logger with the given component prefix, e.g.
// "[BRIDGE] " or "[DISPATCH] ".
func NewLogger(prefix string) *log.Logger {
	return log.New(os.Stderr, prefix, log.LstdFlags)
}

// NewSilentLogger returns a logger that discards everything. Used when a
// component is constructed without an explicit logger and quiet mode is on.
func NewSilentLogger(prefix string) *log.Logger {
	return log.New(io.Discard, prefix, log.LstdFlags)
}

// Metrics bundles the engine's counters and histograms. One instance per
// process; Register builds it against a registry so tests can use their own.
type Metrics struct {
	PlansInterpreted prometheus.Counter
	PlansDeclined    prometheus.Counter
	PlansRejected    prometheus.Counter
	OperationsTotal  *prometheus.CounterVec
	BatchDuration    prometheus.Histogram
	BridgeFailures   prometheus.Counter
}

// Register creates and registers the metric set.
func Register(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PlansInterpreted: factory.NewCounter(prometheus.CounterOpts{
			Name: "magic_agent_plans_interpreted_total",
			Help: "Plans produced by the interpreter.",
		}),
		PlansDeclined: factory.NewCounter(prometheus.CounterOpts{
			Name: "magic_agent_plans_declined_total",
			Help: "Requests the interpreter declined as impossible.",
		}),
		PlansRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "magic_agent_plans_rejected_total",
			Help: "Plans rejected by validation before dispatch.",
		}),
		OperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "magic_agent_operations_total",
			Help: "Dispatched operations by outcome status.",
		}, []string{"status"}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "magic_agent_batch_duration_seconds",
			Help:    "Wall time spent applying one plan.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		BridgeFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "magic_agent_bridge_failures_total",
			Help: "Bridge processes that entered the failed state.",
		}),
	}
}

// Default registers the metric set on the default Prometheus registry.
func Default() *Metrics {
	return Register(prometheus.DefaultRegisterer)
}
