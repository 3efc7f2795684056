package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/debnit/MsmeBazaar-sub001/internal/domain"
)

// Metrics instruments match runs. All methods are nil-safe so the engine can
// run unmetered in tests.
type Metrics struct {
	runs           *prometheus.CounterVec
	remoteFailures prometheus.Counter
	duration       prometheus.Histogram
}

// NewMetrics registers the engine metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "matchmaking_runs_total",
			Help: "Match runs by scoring methodology.",
		}, []string{"methodology"}),
		remoteFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "matchmaking_remote_failures_total",
			Help: "Remote scorer calls that failed or timed out.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchmaking_find_matches_duration_seconds",
			Help:    "End-to-end FindMatches duration.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 15},
		}),
	}
}

// ObserveRun records one completed match run.
func (m *Metrics) ObserveRun(methodology domain.Methodology, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(string(methodology)).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// RemoteFailure records one failed remote scoring call.
func (m *Metrics) RemoteFailure() {
	if m == nil {
		return
	}
	m.remoteFailures.Inc()
}
