package usecase

import (
	"context"

	"github.com/ravikant-m/voicebank/internal/domain"
)

// LedgerUseCase verifies ledger-wide invariants.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// ConsistencyReport is the result of a ledger replay check.
type ConsistencyReport struct {
	Consistent bool
	Mismatches []domain.BalanceMismatch
}

// CheckConsistency replays every account's entries and compares the
// result to its stored balance.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	mismatches, err := uc.ledgerRepo.FindInconsistent(ctx)
	if err != nil {
		return nil, err
	}

	return &ConsistencyReport{
		Consistent: len(mismatches) == 0,
		Mismatches: mismatches,
	}, nil
}
