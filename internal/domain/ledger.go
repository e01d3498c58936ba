package domain

import "github.com/shopspring/decimal"

// BalanceMismatch reports an account whose stored balance disagrees
// with the replay of its ledger entries.
type BalanceMismatch struct {
	AccountID string
	Balance   decimal.Decimal
	Replayed  decimal.Decimal
}
