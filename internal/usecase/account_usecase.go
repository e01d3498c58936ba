package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ravikant-m/voicebank/internal/domain"
)

// AccountUseCase handles read-only account queries.
type AccountUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, entryRepo EntryRepository) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetBalance returns the current balance of an account.
func (uc *AccountUseCase) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// ListTransactions returns ledger entries for an account, newest first.
// The limit defaults to DefaultHistoryLimit and is capped at
// MaxHistoryLimit regardless of what the caller asks for.
func (uc *AccountUseCase) ListTransactions(ctx context.Context, accountID string, limit int) ([]*domain.Entry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	return uc.entryRepo.ListByAccount(ctx, accountID, limit)
}
