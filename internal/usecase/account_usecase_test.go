package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ravikant-m/voicebank/internal/domain"
	"github.com/ravikant-m/voicebank/internal/usecase"
	"github.com/ravikant-m/voicebank/internal/usecase/mocks"
)

func TestAccountUseCase_GetBalance(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{ID: "acc-1", Phone: "9000000001", Balance: decimal.NewFromInt(1234)})

	uc := usecase.NewAccountUseCase(accountRepo, mocks.NewMockEntryRepository())

	balance, err := uc.GetBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(1234)) {
		t.Errorf("expected 1234, got %s", balance)
	}

	_, err = uc.GetBalance(context.Background(), "acc-unknown")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_ListTransactions(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	entryRepo := mocks.NewMockEntryRepository()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		entryRepo.Create(context.Background(), nil, &domain.Entry{
			ID:        string(rune('a' + i)),
			AccountID: "acc-1",
			Kind:      domain.EntryTransferIn,
			Amount:    decimal.NewFromInt(int64(i + 1)),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	uc := usecase.NewAccountUseCase(accountRepo, entryRepo)

	t.Run("default limit", func(t *testing.T) {
		entries, err := uc.ListTransactions(context.Background(), "acc-1", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != usecase.DefaultHistoryLimit {
			t.Errorf("expected %d entries, got %d", usecase.DefaultHistoryLimit, len(entries))
		}
	})

	t.Run("newest first", func(t *testing.T) {
		entries, err := uc.ListTransactions(context.Background(), "acc-1", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 1; i < len(entries); i++ {
			if entries[i].CreatedAt.After(entries[i-1].CreatedAt) {
				t.Errorf("entries not newest-first at index %d", i)
			}
		}
	})

	t.Run("cap enforced", func(t *testing.T) {
		limited := false
		entryRepo.ListByAccountFunc = func(ctx context.Context, accountID string, limit int) ([]*domain.Entry, error) {
			limited = limit == usecase.MaxHistoryLimit
			return nil, nil
		}
		defer func() { entryRepo.ListByAccountFunc = nil }()

		if _, err := uc.ListTransactions(context.Background(), "acc-1", 100000); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !limited {
			t.Error("caller-supplied limit was not capped")
		}
	})
}
