package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
)

// Store is the versioned read / conditional write surface the coordinator
// requires from persistence. GetAccounts returns plain snapshots (no locks);
// ConditionalCommit applies a whole movement atomically, failing with
// domain.ErrVersionConflict when any account version went stale.
type Store interface {
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	GetAccounts(ctx context.Context, ids []string) ([]*domain.Account, error)
	ConditionalCommit(ctx context.Context, commit domain.Commit) error
}

// AccountRepository defines data access for accounts outside the commit path.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	Archive(ctx context.Context, id string, updatedAt time.Time) error
}

// RecordRepository defines data access for domain records.
type RecordRepository interface {
	GetByID(ctx context.Context, id string) (*domain.DomainRecord, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.DomainRecord, error)
	UpdateDetails(ctx context.Context, id string, date time.Time, categoryRef, notes string, updatedAt time.Time) error
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
	ListByRecord(ctx context.Context, recordID string) ([]*domain.LedgerEntry, error)
	BalanceAt(ctx context.Context, accountID string, at time.Time) (decimal.Decimal, error)
}

// LedgerRepository defines ledger-wide aggregate queries.
type LedgerRepository interface {
	AccountDrifts(ctx context.Context) ([]AccountDrift, error)
}

// AccountDrift compares an account's stored balance against the signed sum
// of its ledger entries.
type AccountDrift struct {
	AccountID string
	Balance   decimal.Decimal
	EntrySum  decimal.Decimal
}

// OutboxRepository defines data access for change events awaiting publication.
type OutboxRepository interface {
	GetUnpublished(ctx context.Context, limit int) ([]*domain.ChangeEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for read paths.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
