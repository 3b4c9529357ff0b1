package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use as a nil pointer, which turns recording off.
type Metrics struct {
	transactions *prometheus.CounterVec
	statements   *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg. A nil reg keeps them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		transactions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rent_transactions_total",
			Help: "Units of work by outcome.",
		}, []string{"outcome"}),
		statements: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rent_statement_duration_seconds",
			Help:    "Duration of statements issued by the data access engine.",
			Buckets: prometheus.DefBuckets,
		}, []string{"table", "op"}),
	}
	// both outcomes are exported from the start, at zero
	for _, outcome := range []string{"commit", "rollback"} {
		m.transactions.WithLabelValues(outcome)
	}
	return m
}

func (m *Metrics) transaction(outcome string) {
	if m == nil {
		return
	}
	m.transactions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) statement(table string, op string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.statements.WithLabelValues(table, op).Observe(elapsed.Seconds())
}
