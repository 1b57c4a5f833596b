package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/infrastructure/metrics"
)

// Store implements usecase.Store on PostgreSQL. Reads are plain snapshots;
// ConditionalCommit applies the whole bundle in one transaction with
// version-checked account updates, so a concurrent writer that got there
// first fails the commit instead of being overwritten.
type Store struct {
	pool    *pgxpool.Pool
	metrics *metrics.Metrics
}

// NewStore creates a new Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// WithMetrics records commit queries into the shared registry.
func (s *Store) WithMetrics(m *metrics.Metrics) *Store {
	s.metrics = m
	return s
}

const accountColumns = `id, name, kind, balance, credit_limit, active, version, created_at, updated_at`

// GetAccount retrieves a current snapshot of the account.
func (s *Store) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	return scanAccount(row)
}

// GetAccounts retrieves snapshots for the ids that exist.
func (s *Store) GetAccounts(ctx context.Context, ids []string) ([]*domain.Account, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0, len(ids))

	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// ConditionalCommit applies the commit in one transaction. Every account
// update carries the version the movement was computed against; if any
// UPDATE matches zero rows the version went stale and the whole transaction
// rolls back with domain.ErrVersionConflict.
func (s *Store) ConditionalCommit(ctx context.Context, commit domain.Commit) (err error) {
	if s.metrics != nil {
		start := time.Now()
		defer func() {
			s.metrics.DBQueries.WithLabelValues("conditional_commit", "accounts").Inc()
			s.metrics.DBDuration.WithLabelValues("conditional_commit", "accounts").Observe(time.Since(start).Seconds())
			if err != nil && !errors.Is(err, domain.ErrVersionConflict) && !errors.Is(err, domain.ErrRecordVoided) {
				s.metrics.DBErrors.WithLabelValues("conditional_commit").Inc()
			}
		}()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin commit: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()

	for _, u := range commit.Updates {
		tag, err := tx.Exec(ctx,
			`UPDATE accounts
			 SET balance = $2, version = version + 1, updated_at = $3
			 WHERE id = $1 AND version = $4`,
			u.AccountID, decimalToNumeric(u.NewBalance), timeToPgTimestamptz(now), u.ExpectedVersion)
		if err != nil {
			return fmt.Errorf("update account %s: %w", u.AccountID, err)
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrVersionConflict
		}
	}

	if commit.Record != nil {
		if err := insertRecord(ctx, tx, commit.Record); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	if commit.VoidRecordID != "" {
		tag, err := tx.Exec(ctx,
			`UPDATE domain_records SET voided = TRUE, updated_at = $2
			 WHERE id = $1 AND NOT voided`,
			commit.VoidRecordID, timeToPgTimestamptz(now))
		if err != nil {
			return fmt.Errorf("void record %s: %w", commit.VoidRecordID, err)
		}

		// A concurrent reversal voided it first.
		if tag.RowsAffected() == 0 {
			return domain.ErrRecordVoided
		}
	}

	for _, entry := range commit.Entries {
		if err := insertEntry(ctx, tx, entry); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
	}

	if commit.Event != nil {
		if err := insertEvent(ctx, tx, commit.Event); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func insertRecord(ctx context.Context, tx pgx.Tx, record *domain.DomainRecord) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO domain_records
		 (id, kind, account_id, from_account_id, to_account_id, amount,
		  category_ref, date, notes, voided, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		record.ID, string(record.Kind), record.AccountID, record.FromAccountID,
		record.ToAccountID, decimalToNumeric(record.Amount), record.CategoryRef,
		timeToPgTimestamptz(record.Date), record.Notes, record.Voided,
		timeToPgTimestamptz(record.CreatedAt), timeToPgTimestamptz(record.UpdatedAt))

	return err
}

func insertEntry(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO ledger_entries
		 (id, account_id, kind, reversed_kind, amount, signed_amount, date,
		  category_ref, related_record_id, description, previous_balance,
		  current_balance, account_version, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		entry.ID, entry.AccountID, string(entry.Kind), string(entry.ReversedKind),
		decimalToNumeric(entry.Amount), decimalToNumeric(entry.SignedAmount()),
		timeToPgTimestamptz(entry.Date), entry.CategoryRef, entry.RelatedRecordID,
		entry.Description, decimalToNumeric(entry.PreviousBalance),
		decimalToNumeric(entry.CurrentBalance), entry.AccountVersion,
		timeToPgTimestamptz(entry.CreatedAt))

	return err
}

func insertEvent(ctx context.Context, tx pgx.Tx, event *domain.ChangeEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO outbox_events
		 (id, aggregate_id, aggregate_type, event_type, payload, created_at, published)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.AggregateID, event.AggregateType, event.EventType,
		payload, timeToPgTimestamptz(event.CreatedAt), event.Published)

	return err
}
