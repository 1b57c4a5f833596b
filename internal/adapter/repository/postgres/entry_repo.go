package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `id, account_id, kind, reversed_kind, amount, date, category_ref,
	related_record_id, description, previous_balance, current_balance,
	account_version, created_at`

// ListByAccount lists entries for an account, newest first.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM ledger_entries
		 WHERE account_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		accountID, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByRecord lists the entries a record produced, including reversal
// entries that reference it, in commit order.
func (r *EntryRepository) ListByRecord(ctx context.Context, recordID string) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM ledger_entries
		 WHERE related_record_id = $1
		 ORDER BY created_at ASC, id ASC`,
		recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// BalanceAt returns the signed entry sum up to and including a point in
// time, which reproduces the balance the account had then.
func (r *EntryRepository) BalanceAt(ctx context.Context, accountID string, at time.Time) (decimal.Decimal, error) {
	var sum pgtype.Numeric

	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(signed_amount), 0) FROM ledger_entries
		 WHERE account_id = $1 AND date <= $2`,
		accountID, timeToPgTimestamptz(at)).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func scanEntries(rows pgx.Rows) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry

	for rows.Next() {
		var (
			entry                            domain.LedgerEntry
			kind, reversedKind               string
			amount, prevBalance, currBalance pgtype.Numeric
			date, createdAt                  pgtype.Timestamptz
		)

		err := rows.Scan(&entry.ID, &entry.AccountID, &kind, &reversedKind,
			&amount, &date, &entry.CategoryRef, &entry.RelatedRecordID,
			&entry.Description, &prevBalance, &currBalance,
			&entry.AccountVersion, &createdAt)
		if err != nil {
			return nil, err
		}

		entry.Kind = domain.MovementKind(kind)
		entry.ReversedKind = domain.MovementKind(reversedKind)
		entry.Amount = numericToDecimal(amount)
		entry.Date = date.Time
		entry.PreviousBalance = numericToDecimal(prevBalance)
		entry.CurrentBalance = numericToDecimal(currBalance)
		entry.CreatedAt = createdAt.Time

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
