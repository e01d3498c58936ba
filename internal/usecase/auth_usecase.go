package usecase

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/ravikant-m/voicebank/internal/domain"
)

// AuthUseCase handles OTP issuance, registration and login. One-time
// codes live in a TTL-bounded store keyed by phone, never in process
// memory.
type AuthUseCase struct {
	otpStore    OTPStore
	accountRepo AccountRepository
	entryRepo   EntryRepository
	txManager   TransactionManager
	idGen       IDGenerator
	tokens      TokenIssuer
	otpTTL      time.Duration
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(
	otpStore OTPStore,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	txManager TransactionManager,
	idGen IDGenerator,
	tokens TokenIssuer,
	otpTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		otpStore:    otpStore,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		txManager:   txManager,
		idGen:       idGen,
		tokens:      tokens,
		otpTTL:      otpTTL,
	}
}

// SendOTP generates a one-time code for the phone and stores it with a
// TTL. The code is returned so the demo can surface it in place of an
// SMS gateway.
func (uc *AuthUseCase) SendOTP(ctx context.Context, phone string) (string, error) {
	if err := domain.ValidatePhone(phone); err != nil {
		return "", err
	}

	code, err := generateOTP()
	if err != nil {
		return "", err
	}

	if err := uc.otpStore.Put(ctx, phone, code, uc.otpTTL); err != nil {
		return "", err
	}

	return code, nil
}

// VerifyOTP checks the code for the phone. On success the code is
// consumed and the registered account for that phone is returned, or
// nil if the phone has no account yet.
func (uc *AuthUseCase) VerifyOTP(ctx context.Context, phone, code string) (*domain.Account, error) {
	stored, err := uc.otpStore.Get(ctx, phone)
	if err != nil {
		return nil, err
	}
	if stored == "" || stored != code {
		return nil, domain.ErrInvalidOTP
	}

	// One shot: a verified code cannot be replayed.
	if err := uc.otpStore.Delete(ctx, phone); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return account, nil
}

// RegisterInput holds new account details.
type RegisterInput struct {
	Phone string
	Name  string
	PIN   string
}

// Register creates an account with the opening balance and a matching
// opening credit entry, committed together. The PIN is stored hashed.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if err := domain.ValidatePhone(input.Phone); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidatePIN(input.PIN); err != nil {
		return nil, err
	}

	if _, err := uc.accountRepo.GetByPhone(ctx, input.Phone); err == nil {
		return nil, domain.ErrPhoneTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(input.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	opening := decimal.RequireFromString(OpeningBalance)

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Phone:     input.Phone,
		Name:      input.Name,
		PINHash:   string(pinHash),
		Balance:   opening,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return nil, err
	}

	// The opening credit anchors ledger replay at zero.
	if err := uc.entryRepo.Create(ctx, tx, &domain.Entry{
		ID:           uc.idGen.Generate(),
		AccountID:    account.ID,
		Kind:         domain.EntryCredit,
		Amount:       opening,
		BalanceAfter: opening,
		Description:  "Opening balance",
		CreatedAt:    now,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}

// Login verifies phone and PIN and returns a session token.
func (uc *AuthUseCase) Login(ctx context.Context, phone, pin string) (string, *domain.Account, error) {
	account, err := uc.accountRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PINHash), []byte(pin)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(account)
	if err != nil {
		return "", nil, err
	}

	return token, account, nil
}

func generateOTP() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint32(buf[:]) % 1000000
	return fmt.Sprintf("%0*d", OTPLength, n), nil
}
