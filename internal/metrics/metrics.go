// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_ledger_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallet_ledger_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RequestsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_ledger_requests_created_total",
			Help: "Total number of deposit and withdrawal requests created",
		},
		[]string{"kind"},
	)

	ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_ledger_validations_total",
			Help: "Total number of validate/reject attempts by outcome",
		},
		[]string{"kind", "outcome"},
	)
)

// Request kinds.
const (
	KindDeposit    = "deposit"
	KindWithdrawal = "withdrawal"
)

// Validation outcomes besides the terminal statuses themselves.
const (
	OutcomeAlreadyProcessed  = "already_processed"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeNotFound          = "not_found"
	OutcomeFailed            = "failed"
)

func RecordHTTPRequest(method, route, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

func RecordRequestCreated(kind string) {
	RequestsCreatedTotal.WithLabelValues(kind).Inc()
}

func RecordValidation(kind, outcome string) {
	ValidationsTotal.WithLabelValues(kind, outcome).Inc()
}
