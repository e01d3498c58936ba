package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateDebit(t *testing.T) {
	acc := &Account{ID: "acc-1", Balance: decimal.NewFromInt(100)}

	if err := acc.ValidateDebit(decimal.NewFromInt(100)); err != nil {
		t.Errorf("debit to exactly zero should be allowed, got %v", err)
	}

	if err := acc.ValidateDebit(decimal.NewFromInt(101)); err != ErrInsufficientBalance {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestAccount_ApplyDebitCredit(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(50000)}

	after := acc.ApplyDebit(decimal.NewFromInt(15000))
	if !after.Equal(decimal.NewFromInt(35000)) {
		t.Errorf("expected 35000 after debit, got %s", after)
	}

	after = acc.ApplyCredit(decimal.NewFromInt(15000))
	if !after.Equal(decimal.NewFromInt(65000)) {
		t.Errorf("expected 65000 after credit, got %s", after)
	}

	// Apply* must not mutate the account itself.
	if !acc.Balance.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("balance mutated to %s", acc.Balance)
	}
}
