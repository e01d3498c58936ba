package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ravikant-m/voicebank/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// FindInconsistent compares every account's balance against the signed
// sum of its ledger entries. Accounts always carry an opening credit
// entry, so a consistent account replays exactly from zero.
func (r *LedgerRepository) FindInconsistent(ctx context.Context) ([]domain.BalanceMismatch, error) {
	const q = `
		SELECT a.id, a.balance, COALESCE(SUM(
			CASE WHEN e.kind IN ('transfer_in', 'credit') THEN e.amount ELSE -e.amount END
		), 0) AS replayed
		FROM accounts a
		LEFT JOIN ledger_entries e ON e.account_id = a.id
		GROUP BY a.id, a.balance
		HAVING a.balance <> COALESCE(SUM(
			CASE WHEN e.kind IN ('transfer_in', 'credit') THEN e.amount ELSE -e.amount END
		), 0)`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mismatches []domain.BalanceMismatch
	for rows.Next() {
		var (
			m        domain.BalanceMismatch
			balance  pgtype.Numeric
			replayed pgtype.Numeric
		)
		if err := rows.Scan(&m.AccountID, &balance, &replayed); err != nil {
			return nil, err
		}
		m.Balance = numericToDecimal(balance)
		m.Replayed = numericToDecimal(replayed)
		mismatches = append(mismatches, m)
	}

	return mismatches, rows.Err()
}
