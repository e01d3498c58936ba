package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ravikant-m/voicebank/internal/domain"
	"github.com/ravikant-m/voicebank/internal/usecase"
)

const accountColumns = "id, phone, name, pin_hash, balance, version, created_at, updated_at"

// AccountRepository implements usecase.AccountRepository on pgx.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account, inside tx when one is given.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	const q = `INSERT INTO accounts (id, phone, name, pin_hash, balance, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(tx).Exec(ctx, q,
		account.ID,
		account.Phone,
		account.Name,
		account.PINHash,
		decimalToNumeric(account.Balance),
		account.Version,
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return domain.ErrPhoneTaken
	}

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+accountColumns+" FROM accounts WHERE id = $1", id)
	return scanAccount(row)
}

// GetByPhone retrieves an account by its phone number.
func (r *AccountRepository) GetByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+accountColumns+" FROM accounts WHERE phone = $1", phone)
	return scanAccount(row)
}

// GetByIDsForUpdate locks and returns the rows in ascending ID order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	const q = "SELECT " + accountColumns + " FROM accounts WHERE id = ANY($1::text[]) ORDER BY id FOR UPDATE"

	rows, err := r.exec(tx).Query(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// UpdateBalance sets the balance and bumps the row version.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	const q = `UPDATE accounts SET balance = $2, version = version + 1, updated_at = $3 WHERE id = $1`

	tag, err := r.exec(tx).Exec(ctx, q, id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func (r *AccountRepository) exec(tx usecase.Transaction) querier {
	if tx != nil {
		return tx.(*Tx).PgxTx()
	}
	return r.pool
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		a         domain.Account
		balance   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&a.ID, &a.Phone, &a.Name, &a.PINHash, &balance, &a.Version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	a.Balance = numericToDecimal(balance)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
