package observability

import (
	"net/http"

	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records simulation outcomes and search shape.
type Metrics struct {
	Runs     *prometheus.CounterVec
	Steps    prometheus.Histogram
	Frontier prometheus.Histogram
	Pruned   prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ntmtrace_runs_total",
				Help: "Total number of simulations by outcome",
			},
			[]string{"outcome"},
		),
		Steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ntmtrace_run_steps",
			Help:    "Reported step count per simulation",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		Frontier: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ntmtrace_frontier_size",
			Help:    "Configurations per explored level",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		Pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ntmtrace_pruned_total",
			Help: "Transitions discarded because the head left the tape",
		}),
		gatherer: reg,
	}
	reg.MustRegister(m.Runs, m.Steps, m.Frontier, m.Pruned)
	return m
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLevel: func(e domain.LevelEvent) {
			m.Frontier.Observe(float64(e.FrontierSize))
		},
		OnPrune: func(domain.PruneEvent) {
			m.Pruned.Inc()
		},
		OnOutcome: func(e domain.OutcomeEvent) {
			m.Runs.WithLabelValues(string(e.Outcome)).Inc()
			m.Steps.Observe(float64(e.Steps))
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
