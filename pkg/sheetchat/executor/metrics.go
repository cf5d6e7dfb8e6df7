package executor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts executed actions and cascade strategy attempts. A nil
// *Metrics records nothing.
type Metrics struct {
	// actionsTotal counts executed actions.
	// Labels: kind, outcome (succeeded, failed)
	actionsTotal *prometheus.CounterVec

	// strategiesTotal counts cascade strategy attempts.
	// Labels: cascade, strategy, result (succeeded, failed)
	strategiesTotal *prometheus.CounterVec
}

// NewMetrics registers the executor counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		actionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sheetchat",
			Subsystem: "executor",
			Name:      "actions_total",
			Help:      "Total executed actions by kind and outcome",
		}, []string{"kind", "outcome"}),
		strategiesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sheetchat",
			Subsystem: "executor",
			Name:      "strategy_attempts_total",
			Help:      "Total cascade strategy attempts by cascade, strategy and result",
		}, []string{"cascade", "strategy", "result"}),
	}
}

func (m *Metrics) recordAction(kind string, succeeded bool) {
	if m == nil {
		return
	}
	m.actionsTotal.WithLabelValues(kind, resultLabel(succeeded)).Inc()
}

func (m *Metrics) recordStrategy(cascade, strategy string, succeeded bool) {
	if m == nil {
		return
	}
	m.strategiesTotal.WithLabelValues(cascade, strategy, resultLabel(succeeded)).Inc()
}

func resultLabel(succeeded bool) string {
	if succeeded {
		return "succeeded"
	}
	return "failed"
}
