package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ravikant-m/voicebank/internal/domain"
	"github.com/ravikant-m/voicebank/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository on pgx. The
// ledger_entries table is append-only; there is no update or delete
// path.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create appends a ledger entry, inside tx when one is given.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	const q = `INSERT INTO ledger_entries (id, account_id, kind, amount, balance_after, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var run querier = r.pool
	if tx != nil {
		run = tx.(*Tx).PgxTx()
	}

	_, err := run.Exec(ctx, q,
		entry.ID,
		entry.AccountID,
		string(entry.Kind),
		decimalToNumeric(entry.Amount),
		decimalToNumeric(entry.BalanceAfter),
		entry.Description,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// ListByAccount returns entries for an account, newest first. Ties on
// created_at fall back to ID order so the sequence is stable.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]*domain.Entry, error) {
	const q = `SELECT id, account_id, kind, amount, balance_after, description, created_at
		FROM ledger_entries WHERE account_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, q, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		var (
			e            domain.Entry
			kind         string
			amount       pgtype.Numeric
			balanceAfter pgtype.Numeric
			createdAt    pgtype.Timestamptz
		)
		if err := rows.Scan(&e.ID, &e.AccountID, &kind, &amount, &balanceAfter, &e.Description, &createdAt); err != nil {
			return nil, err
		}
		e.Kind = domain.EntryKind(kind)
		e.Amount = numericToDecimal(amount)
		e.BalanceAfter = numericToDecimal(balanceAfter)
		e.CreatedAt = createdAt.Time
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
