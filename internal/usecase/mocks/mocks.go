// Package mocks provides hand-written fakes for the usecase ports.
// Each method can be overridden through its corresponding Func field;
// without an override the fakes behave like a small in-memory store.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ravikant-m/voicebank/internal/domain"
	"github.com/ravikant-m/voicebank/internal/usecase"
)

// MockAccountRepository is an in-memory AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	byPhone  map[string]string

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByPhoneFunc        func(ctx context.Context, phone string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
		byPhone:  make(map[string]string),
	}
}

// Seed inserts an account directly, bypassing any Func overrides.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	m.byPhone[account.Phone] = account.ID
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byPhone[account.Phone]; ok {
		return domain.ErrPhoneTaken
	}
	m.accounts[account.ID] = account
	m.byPhone[account.Phone] = account.ID
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	if m.GetByPhoneFunc != nil {
		return m.GetByPhoneFunc(ctx, phone)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.byPhone[phone]; ok {
		copied := *m.accounts[id]
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			copied := *acc
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.Version++
		acc.UpdatedAt = updatedAt
	}
	return nil
}

// MockEntryRepository is an in-memory EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.Entry

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	ListByAccountFunc func(ctx context.Context, accountID string, limit int) ([]*domain.Entry, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockEntryRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]*domain.Entry, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Entry
	// Insertion order is oldest-first; walk backwards for newest-first.
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if m.entries[i].AccountID == accountID {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

// All returns every entry for an account, oldest first.
func (m *MockEntryRepository) All(accountID string) []*domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Entry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out
}

// MockTransactionManager serializes transactions with a mutex so that
// concurrent callers see the same exclusion a row lock would give.
type MockTransactionManager struct {
	mu sync.Mutex

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	return &mockTx{release: m.mu.Unlock}, nil
}

type mockTx struct {
	once    sync.Once
	release func()
}

func (t *mockTx) Commit(ctx context.Context) error {
	t.once.Do(t.release)
	return nil
}

func (t *mockTx) Rollback(ctx context.Context) error {
	t.once.Do(t.release)
	return nil
}

// MockRetrier runs the operation once, or as overridden.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator produces sequential IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

// MockOTPStore is an in-memory OTPStore; TTLs are recorded but only
// enforced when Expire is called.
type MockOTPStore struct {
	mu    sync.Mutex
	codes map[string]string

	PutFunc    func(ctx context.Context, phone, code string, ttl time.Duration) error
	GetFunc    func(ctx context.Context, phone string) (string, error)
	DeleteFunc func(ctx context.Context, phone string) error
}

func NewMockOTPStore() *MockOTPStore {
	return &MockOTPStore{codes: make(map[string]string)}
}

func (m *MockOTPStore) Put(ctx context.Context, phone, code string, ttl time.Duration) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, phone, code, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[phone] = code
	return nil
}

func (m *MockOTPStore) Get(ctx context.Context, phone string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, phone)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[phone], nil
}

func (m *MockOTPStore) Delete(ctx context.Context, phone string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, phone)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, phone)
	return nil
}

// Expire drops the code for a phone, simulating TTL expiry.
func (m *MockOTPStore) Expire(phone string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, phone)
}

// MockAssistantClient is a scripted AssistantClient.
type MockAssistantClient struct {
	SendFunc func(ctx context.Context, sessionID, systemPrompt, message string) (string, error)
}

func NewMockAssistantClient() *MockAssistantClient {
	return &MockAssistantClient{}
}

func (m *MockAssistantClient) Send(ctx context.Context, sessionID, systemPrompt, message string) (string, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, sessionID, systemPrompt, message)
	}
	return "", nil
}

// MockTokenIssuer issues predictable tokens.
type MockTokenIssuer struct {
	IssueFunc func(account *domain.Account) (string, error)
}

func NewMockTokenIssuer() *MockTokenIssuer {
	return &MockTokenIssuer{}
}

func (m *MockTokenIssuer) Issue(account *domain.Account) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(account)
	}
	return "token-" + account.ID, nil
}

// MockLedgerRepository is a scripted LedgerRepository.
type MockLedgerRepository struct {
	FindInconsistentFunc func(ctx context.Context) ([]domain.BalanceMismatch, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) FindInconsistent(ctx context.Context) ([]domain.BalanceMismatch, error) {
	if m.FindInconsistentFunc != nil {
		return m.FindInconsistentFunc(ctx)
	}
	return nil, nil
}
