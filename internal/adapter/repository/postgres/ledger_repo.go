package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finbook/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// AccountDrifts compares every account's balance against the signed sum of
// its entries in one pass. Accounts with no entries compare against zero.
func (r *LedgerRepository) AccountDrifts(ctx context.Context) ([]usecase.AccountDrift, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.balance, COALESCE(SUM(e.signed_amount), 0)
		 FROM accounts a
		 LEFT JOIN ledger_entries e ON e.account_id = a.id
		 GROUP BY a.id, a.balance
		 ORDER BY a.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drifts []usecase.AccountDrift

	for rows.Next() {
		var (
			drift             usecase.AccountDrift
			balance, entrySum pgtype.Numeric
		)

		if err := rows.Scan(&drift.AccountID, &balance, &entrySum); err != nil {
			return nil, err
		}

		drift.Balance = numericToDecimal(balance)
		drift.EntrySum = numericToDecimal(entrySum)
		drifts = append(drifts, drift)
	}

	return drifts, rows.Err()
}
