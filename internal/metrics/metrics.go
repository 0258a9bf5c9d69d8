package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_payments_total",
			Help: "Payments by outcome (success, declined, duplicate)",
		},
		[]string{"outcome"},
	)

	SettlementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_settlements_total",
			Help: "Purchase settlements by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	WithdrawalRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_withdrawal_requests_total",
			Help: "Withdrawal requests by outcome (requested, approved, rejected)",
		},
		[]string{"outcome"},
	)

	LedgerRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_ledger_retries_total",
			Help: "Ledger mutations retried after serialization or deadlock errors",
		},
		[]string{"operation"},
	)

	LedgerOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallet_ledger_operation_duration_seconds",
			Help:    "Duration of ledger mutations including retries",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2},
		},
		[]string{"operation"},
	)

	OpenIncidents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wallet_settlement_incidents_open",
			Help: "Open settlement incidents seen by the last reconciliation pass",
		},
	)
)

// ObserveDuration records the time since start for a ledger operation.
func ObserveDuration(operation string, start time.Time) {
	LedgerOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
