package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxTransferAmount bounds a single transfer.
const MaxTransferAmount = "1000000000"

// Transfer is one logical money movement: the sender is addressed by
// account ID, the receiver by phone number. A committed transfer
// produces exactly two ledger entries.
type Transfer struct {
	SenderAccountID string
	ReceiverPhone   string
	Amount          decimal.Decimal
}

// Validate checks the amount bounds. Account existence and balance are
// checked against the store by the transfer service.
func (t *Transfer) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	max, _ := decimal.NewFromString(MaxTransferAmount)
	if t.Amount.GreaterThan(max) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxTransferAmount)
	}

	return nil
}
