package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	EntryTransferIn  EntryKind = "transfer_in"
	EntryTransferOut EntryKind = "transfer_out"
	EntryCredit      EntryKind = "credit"
	EntryDebit       EntryKind = "debit"
)

// IsInflow reports whether entries of this kind increase the balance.
func (k EntryKind) IsInflow() bool {
	return k == EntryTransferIn || k == EntryCredit
}

// Entry is one immutable ledger record. Amount is always positive;
// the kind carries the direction. BalanceAfter is the account balance
// at the instant the entry was written and is never recomputed.
type Entry struct {
	ID           string
	AccountID    string
	Kind         EntryKind
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Description  string
	CreatedAt    time.Time
}

// Signed returns the amount with the sign implied by the entry kind.
func (e *Entry) Signed() decimal.Decimal {
	if e.Kind.IsInflow() {
		return e.Amount
	}
	return e.Amount.Neg()
}

// ReplayBalance folds entries (oldest first) over an initial balance.
// For a consistent ledger the result equals the account's current balance.
func ReplayBalance(initial decimal.Decimal, entries []*Entry) decimal.Decimal {
	balance := initial
	for _, e := range entries {
		balance = balance.Add(e.Signed())
	}
	return balance
}
