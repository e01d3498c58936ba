package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ravikant-m/voicebank/internal/domain"
)

// TransferUseCase moves money between two accounts. The debit, the
// credit and both ledger appends commit as one transaction or not at
// all; row locks are taken in sorted account-ID order.
type TransferUseCase struct {
	txManager   TransactionManager
	retrier     Retrier
	accountRepo AccountRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		retrier:     retrier,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
	}
}

// TransferInput identifies the sender by account ID and the receiver
// by phone number.
type TransferInput struct {
	SenderAccountID string
	ReceiverPhone   string
	Amount          decimal.Decimal
}

// TransferOutput carries the sender's new balance and the sender-side
// ledger entry for UI confirmation.
type TransferOutput struct {
	NewBalance decimal.Decimal
	Entry      *domain.Entry
}

// Transfer validates and executes one transfer. Validation failures
// are reported in a fixed order: amount, sender, balance, receiver.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferOutput, error) {
	t := &domain.Transfer{
		SenderAccountID: input.SenderAccountID,
		ReceiverPhone:   input.ReceiverPhone,
		Amount:          input.Amount,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	sender, err := uc.accountRepo.GetByID(ctx, input.SenderAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrSenderNotFound
		}
		return nil, err
	}

	// Advisory check outside the transaction; re-validated under lock.
	if err := sender.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	receiver, err := uc.accountRepo.GetByPhone(ctx, input.ReceiverPhone)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrReceiverNotFound
		}
		return nil, err
	}

	if receiver.ID == sender.ID {
		return nil, domain.ErrSameAccount
	}

	ctx, cancel := context.WithTimeout(ctx, TransferTimeout)
	defer cancel()

	var out *TransferOutput
	err = uc.retrier.Retry(ctx, func() error {
		res, err := uc.commitTransfer(ctx, sender.ID, receiver.ID, input.ReceiverPhone, input.Amount)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (uc *TransferUseCase) commitTransfer(ctx context.Context, senderID, receiverID, receiverPhone string, amount decimal.Decimal) (*TransferOutput, error) {
	ids := []string{senderID, receiverID}
	sort.Strings(ids)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if len(accounts) != len(ids) {
		return nil, domain.ErrReceiverNotFound
	}

	var sender, receiver *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case senderID:
			sender = a
		case receiverID:
			receiver = a
		}
	}
	if sender == nil || receiver == nil {
		return nil, domain.ErrAccountNotFound
	}

	// Authoritative balance check against the locked row.
	if err := sender.ValidateDebit(amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	senderBalance := sender.ApplyDebit(amount)
	receiverBalance := receiver.ApplyCredit(amount)

	outEntry := &domain.Entry{
		ID:           uc.idGen.Generate(),
		AccountID:    sender.ID,
		Kind:         domain.EntryTransferOut,
		Amount:       amount,
		BalanceAfter: senderBalance,
		Description:  "Transfer to " + receiverPhone,
		CreatedAt:    now,
	}
	inEntry := &domain.Entry{
		ID:           uc.idGen.Generate(),
		AccountID:    receiver.ID,
		Kind:         domain.EntryTransferIn,
		Amount:       amount,
		BalanceAfter: receiverBalance,
		Description:  "Transfer from " + sender.Phone,
		CreatedAt:    now,
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, sender.ID, senderBalance, now); err != nil {
		return nil, err
	}
	if err := uc.accountRepo.UpdateBalance(ctx, tx, receiver.ID, receiverBalance, now); err != nil {
		return nil, err
	}
	if err := uc.entryRepo.Create(ctx, tx, outEntry); err != nil {
		return nil, err
	}
	if err := uc.entryRepo.Create(ctx, tx, inEntry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &TransferOutput{NewBalance: senderBalance, Entry: outEntry}, nil
}
