package usecase

import "time"

const (
	// TransferTimeout caps the transactional write path of a transfer.
	// On expiry the whole transfer fails with domain.ErrStoreTimeout
	// and no partial effect is visible.
	TransferTimeout = 10 * time.Second

	// DefaultHistoryLimit is used when the caller does not supply one.
	DefaultHistoryLimit = 10

	// MaxHistoryLimit caps caller-supplied limits to prevent unbounded reads.
	MaxHistoryLimit = 100

	// OpeningBalance is credited to every newly registered account.
	OpeningBalance = "50000"

	// OTPLength is the number of digits in a one-time code.
	OTPLength = 6
)
