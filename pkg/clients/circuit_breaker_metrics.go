package clients

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BreakerMetrics records circuit breaker state for Prometheus.
type BreakerMetrics struct {
	// State values: 0=closed, 1=half-open, 2=open
	State       *prometheus.GaugeVec
	Transitions *prometheus.CounterVec
}

// NewBreakerMetrics creates breaker metrics registered on reg.
func NewBreakerMetrics(reg prometheus.Registerer) *BreakerMetrics {
	m := &BreakerMetrics{
		State: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Current state of circuit breaker (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_state_transitions_total",
				Help: "Total number of circuit breaker state transitions",
			},
			[]string{"name", "from", "to"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.State, m.Transitions)
	}
	return m
}

// OnStateChange matches CircuitBreakerConfig.OnStateChange.
func (m *BreakerMetrics) OnStateChange(name string, from, to CircuitBreakerState) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(name, from.String(), to.String()).Inc()
	m.State.WithLabelValues(name).Set(float64(to))
}
