package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finbook/internal/domain"
)

// RecordRepository implements usecase.RecordRepository.
type RecordRepository struct {
	pool *pgxpool.Pool
}

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{pool: pool}
}

const recordColumns = `id, kind, account_id, from_account_id, to_account_id, amount,
	category_ref, date, notes, voided, created_at, updated_at`

// GetByID retrieves a record by ID.
func (r *RecordRepository) GetByID(ctx context.Context, id string) (*domain.DomainRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM domain_records WHERE id = $1`, id)

	return scanRecord(row)
}

// ListByAccount lists records touching an account, newest first. Transfers
// match on either side.
func (r *RecordRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.DomainRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recordColumns+` FROM domain_records
		 WHERE account_id = $1 OR from_account_id = $1 OR to_account_id = $1
		 ORDER BY date DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		accountID, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.DomainRecord

	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

// UpdateDetails edits the non-financial fields of a record.
func (r *RecordRepository) UpdateDetails(ctx context.Context, id string, date time.Time, categoryRef, notes string, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE domain_records
		 SET date = $2, category_ref = $3, notes = $4, updated_at = $5
		 WHERE id = $1`,
		id, timeToPgTimestamptz(date), categoryRef, notes, timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func scanRecord(row rowScanner) (*domain.DomainRecord, error) {
	var (
		record                     domain.DomainRecord
		kind                       string
		amount                     pgtype.Numeric
		date, createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&record.ID, &kind, &record.AccountID, &record.FromAccountID,
		&record.ToAccountID, &amount, &record.CategoryRef, &date,
		&record.Notes, &record.Voided, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	record.Kind = domain.MovementKind(kind)
	record.Amount = numericToDecimal(amount)
	record.Date = date.Time
	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return &record, nil
}
