// Package metrics exposes prometheus collectors for the expense and
// settlement flows. The module is a library, so collectors are registered
// against an injected Registerer rather than the global default.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors incremented by the service layer.
// A nil *Metrics is valid and drops all observations.
type Metrics struct {
	// ExpensesCreated counts committed expenses by category.
	ExpensesCreated *prometheus.CounterVec

	// ExpensesRejected counts failed commits by rejection reason.
	ExpensesRejected *prometheus.CounterVec

	// SettlementsRecorded counts successful settlements.
	SettlementsRecorded prometheus.Counter

	// SettlementsFailed counts settlements rejected for insufficient debt
	// or unknown users.
	SettlementsFailed prometheus.Counter
}

// New registers the splitledger collectors with reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ExpensesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitledger",
			Name:      "expenses_created_total",
			Help:      "Committed expenses by category.",
		}, []string{"category"}),
		ExpensesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitledger",
			Name:      "expenses_rejected_total",
			Help:      "Rejected expense commits by reason.",
		}, []string{"reason"}),
		SettlementsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "splitledger",
			Name:      "settlements_recorded_total",
			Help:      "Successful settlements.",
		}),
		SettlementsFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "splitledger",
			Name:      "settlements_failed_total",
			Help:      "Failed settlement attempts.",
		}),
	}
}

// ExpenseCreated records a committed expense. Safe on a nil receiver.
func (m *Metrics) ExpenseCreated(category string) {
	if m == nil {
		return
	}
	m.ExpensesCreated.WithLabelValues(category).Inc()
}

// ExpenseRejected records a failed commit. Safe on a nil receiver.
func (m *Metrics) ExpenseRejected(reason string) {
	if m == nil {
		return
	}
	m.ExpensesRejected.WithLabelValues(reason).Inc()
}

// SettlementRecorded records a successful settlement. Safe on a nil receiver.
func (m *Metrics) SettlementRecorded() {
	if m == nil {
		return
	}
	m.SettlementsRecorded.Inc()
}

// SettlementFailed records a failed settlement. Safe on a nil receiver.
func (m *Metrics) SettlementFailed() {
	if m == nil {
		return
	}
	m.SettlementsFailed.Inc()
}
