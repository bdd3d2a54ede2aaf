package resolver

import (
	"github.com/buker/go-graphql/internal/records"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts resolver calls per operation and outcome.
type Metrics struct {
	// Operations is labelled by operation name and outcome (ok, not_found, error).
	Operations *prometheus.CounterVec
}

// NewMetrics registers the resolver collectors, plus a gauge reporting the
// size of store, with reg.
func NewMetrics(reg prometheus.Registerer, store *records.Store) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphql",
			Name:      "resolver_operations_total",
			Help:      "Resolver calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}
	reg.MustRegister(m.Operations)
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "graphql",
		Name:      "stored_messages",
		Help:      "Number of messages held in memory.",
	}, func() float64 {
		return float64(store.Len())
	}))
	return m
}

func (m *Metrics) observe(operation string, err error) {
	outcome := "ok"
	switch {
	case records.IsNotFound(err):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
}
