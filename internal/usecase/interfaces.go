package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ravikant-m/voicebank/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Account, error)
	// GetByIDsForUpdate locks the rows in ascending ID order so that
	// concurrent transfers over the same account pair cannot deadlock.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	// ListByAccount returns entries newest-first, bounded by limit.
	ListByAccount(ctx context.Context, accountID string, limit int) ([]*domain.Entry, error)
}

// LedgerRepository defines ledger-wide consistency checks.
type LedgerRepository interface {
	// FindInconsistent returns accounts whose stored balance does not
	// equal the replay of their ledger entries.
	FindInconsistent(ctx context.Context) ([]domain.BalanceMismatch, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient store failures. When it
// gives up it surfaces domain.ErrConcurrencyConflict or
// domain.ErrStoreTimeout so callers can tell retryable outcomes apart.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// OTPStore holds one-time codes keyed by phone, each bounded by a TTL.
type OTPStore interface {
	Put(ctx context.Context, phone, code string, ttl time.Duration) error
	// Get returns the stored code, or "" if absent or expired.
	Get(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// AssistantClient talks to the external conversational service. The
// transport and provider are opaque to the core: text in, text out.
type AssistantClient interface {
	Send(ctx context.Context, sessionID, systemPrompt, message string) (string, error)
}

// TokenIssuer mints session tokens after a successful login.
type TokenIssuer interface {
	Issue(account *domain.Account) (string, error)
}
