// Package metrics holds the service-level Prometheus collectors. The
// HTTP layer has its own request metrics in the middleware package.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ravikant-m/voicebank/internal/domain"
)

var (
	// TransfersCompleted counts committed transfers.
	TransfersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicebank_transfers_completed_total",
		Help: "Total number of transfers committed",
	})

	// TransferFailures counts rejected transfers by reason.
	TransferFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicebank_transfer_failures_total",
		Help: "Total number of transfers rejected",
	}, []string{"reason"})

	// TransferAmount observes committed transfer amounts.
	TransferAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voicebank_transfer_amount",
		Help:    "Committed transfer amounts",
		Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
	})

	// OTPIssued counts one-time codes generated.
	OTPIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicebank_otp_issued_total",
		Help: "Total number of one-time codes issued",
	})

	// Registrations counts accounts created.
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicebank_registrations_total",
		Help: "Total number of accounts registered",
	})

	// LoginFailures counts failed login attempts.
	LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicebank_login_failures_total",
		Help: "Total number of failed logins",
	})

	// ChatRequests counts assistant turns by outcome.
	ChatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicebank_chat_requests_total",
		Help: "Total number of assistant chat turns",
	}, []string{"outcome"})
)

// TransferFailureReason maps an error to a bounded label value.
func TransferFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrSenderNotFound):
		return "sender_not_found"
	case errors.Is(err, domain.ErrReceiverNotFound):
		return "receiver_not_found"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return "concurrency_conflict"
	case errors.Is(err, domain.ErrStoreTimeout):
		return "store_timeout"
	default:
		return "internal"
	}
}
