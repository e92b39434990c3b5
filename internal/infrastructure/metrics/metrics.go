package metrics

import (
	"time"

	"friendloan-backend/internal/domain/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OperationsTotal counts ledger operations by outcome (ok or an error kind).
var OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "friendloan",
	Subsystem: "ledger",
	Name:      "operations_total",
	Help:      "Total ledger operations by outcome.",
}, []string{"operation", "outcome"})

var OperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "friendloan",
	Subsystem: "ledger",
	Name:      "operation_duration_seconds",
	Help:      "Ledger operation latency, transaction included.",
	Buckets:   prometheus.DefBuckets,
}, []string{"operation"})

var LoansStarted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "friendloan",
	Subsystem: "ledger",
	Name:      "loans_started_total",
	Help:      "Total loans activated.",
})

var AuditPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "friendloan",
	Subsystem: "audit",
	Name:      "publish_failures_total",
	Help:      "Committed audit records that could not be published.",
})

// Observe records one finished operation.
func Observe(operation string, start time.Time, err error) {
	OperationsTotal.WithLabelValues(operation, errs.Label(err)).Inc()
	OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// IdempotencyOutcomes counts how the idempotency middleware settled each
// mutating request.
var IdempotencyOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "friendloan",
	Subsystem: "http",
	Name:      "idempotency_outcomes_total",
	Help:      "Mutating requests by idempotency outcome.",
}, []string{"outcome"})
