package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
)

// MemStore is an in-memory implementation of the store contract with the
// same conditional-commit semantics as the postgres store: every account
// update is version-checked under one lock and the whole commit applies
// all-or-nothing. It doubles as the account/record/entry/ledger repositories
// so unit tests can drive full flows without a database.
type MemStore struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	records  map[string]*domain.DomainRecord
	entries  []*domain.LedgerEntry
	events   []*domain.ChangeEvent

	// CommitErr fails every ConditionalCommit when set, for failure injection.
	CommitErr error
	// BeforeCommit runs outside the lock before each commit attempt, to
	// widen race windows in concurrency tests.
	BeforeCommit func()
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		accounts: make(map[string]*domain.Account),
		records:  make(map[string]*domain.DomainRecord),
	}
}

// PutAccount seeds an account.
func (s *MemStore) PutAccount(account *domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *account
	s.accounts[account.ID] = &cp
}

// GetAccount returns a snapshot of the account.
func (s *MemStore) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	cp := *acc

	return &cp, nil
}

// GetAccounts returns snapshots for the ids that exist.
func (s *MemStore) GetAccounts(ctx context.Context, ids []string) ([]*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		if acc, ok := s.accounts[id]; ok {
			cp := *acc
			accounts = append(accounts, &cp)
		}
	}

	return accounts, nil
}

// ConditionalCommit applies the commit atomically, rejecting it with
// domain.ErrVersionConflict if any account version went stale.
func (s *MemStore) ConditionalCommit(ctx context.Context, commit domain.Commit) error {
	if s.BeforeCommit != nil {
		s.BeforeCommit()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CommitErr != nil {
		return s.CommitErr
	}

	for _, u := range commit.Updates {
		acc, ok := s.accounts[u.AccountID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, u.AccountID)
		}

		if acc.Version != u.ExpectedVersion {
			return domain.ErrVersionConflict
		}
	}

	if commit.VoidRecordID != "" {
		rec, ok := s.records[commit.VoidRecordID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, commit.VoidRecordID)
		}

		// A concurrent reversal voided it first.
		if rec.Voided {
			return domain.ErrRecordVoided
		}
	}

	now := time.Now().UTC()

	for _, u := range commit.Updates {
		acc := s.accounts[u.AccountID]
		acc.Balance = u.NewBalance
		acc.Version++
		acc.UpdatedAt = now
	}

	if commit.Record != nil {
		cp := *commit.Record
		s.records[cp.ID] = &cp
	}

	if commit.VoidRecordID != "" {
		rec := s.records[commit.VoidRecordID]
		rec.Voided = true
		rec.UpdatedAt = now
	}

	for _, entry := range commit.Entries {
		cp := *entry
		s.entries = append(s.entries, &cp)
	}

	if commit.Event != nil {
		cp := *commit.Event
		s.events = append(s.events, &cp)
	}

	return nil
}

// Create implements usecase.AccountRepository.
func (s *MemStore) Create(ctx context.Context, account *domain.Account) error {
	s.PutAccount(account)
	return nil
}

// GetByID implements usecase.AccountRepository. Record lookups go through
// RecordRepo instead.
func (s *MemStore) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.GetAccount(ctx, id)
}

// List implements usecase.AccountRepository.
func (s *MemStore) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var accounts []*domain.Account
	for i, id := range ids {
		if i < offset {
			continue
		}

		if len(accounts) >= limit {
			break
		}

		cp := *s.accounts[id]
		accounts = append(accounts, &cp)
	}

	return accounts, nil
}

// Archive implements usecase.AccountRepository.
func (s *MemStore) Archive(ctx context.Context, id string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	acc.Active = false
	acc.UpdatedAt = updatedAt

	return nil
}

// Record returns a snapshot of a stored record.
func (s *MemStore) Record(id string) *domain.DomainRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil
	}

	cp := *rec

	return &cp
}

// Records returns snapshots of all stored records.
func (s *MemStore) Records() []*domain.DomainRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.DomainRecord, 0, len(s.records))
	for _, rec := range s.records {
		cp := *rec
		out = append(out, &cp)
	}

	return out
}

// EntriesFor returns the entries appended for one account, in commit order.
func (s *MemStore) EntriesFor(accountID string) []*domain.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.LedgerEntry
	for _, e := range s.entries {
		if e.AccountID == accountID {
			cp := *e
			out = append(out, &cp)
		}
	}

	return out
}

// Events returns all change events written so far.
func (s *MemStore) Events() []*domain.ChangeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.ChangeEvent, 0, len(s.events))
	for _, ev := range s.events {
		cp := *ev
		out = append(out, &cp)
	}

	return out
}

// SignedSum returns the signed sum of an account's entries, for checking
// the balance invariant in tests.
func (s *MemStore) SignedSum(accountID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := decimal.Zero
	for _, e := range s.entries {
		if e.AccountID == accountID {
			sum = sum.Add(e.SignedAmount())
		}
	}

	return sum
}

// RecordRepo adapts the store to usecase.RecordRepository.
func (s *MemStore) RecordRepo() usecase.RecordRepository {
	return &memRecordRepo{store: s}
}

type memRecordRepo struct {
	store *MemStore
}

func (r *memRecordRepo) GetByID(ctx context.Context, id string) (*domain.DomainRecord, error) {
	rec := r.store.Record(id)
	if rec == nil {
		return nil, domain.ErrRecordNotFound
	}

	return rec, nil
}

func (r *memRecordRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.DomainRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ids := make([]string, 0, len(r.store.records))
	for id, rec := range r.store.records {
		if rec.AccountID == accountID || rec.FromAccountID == accountID || rec.ToAccountID == accountID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var records []*domain.DomainRecord
	for i, id := range ids {
		if i < offset {
			continue
		}

		if len(records) >= limit {
			break
		}

		cp := *r.store.records[id]
		records = append(records, &cp)
	}

	return records, nil
}

func (r *memRecordRepo) UpdateDetails(ctx context.Context, id string, date time.Time, categoryRef, notes string, updatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.records[id]
	if !ok {
		return domain.ErrRecordNotFound
	}

	rec.Date = date
	rec.CategoryRef = categoryRef
	rec.Notes = notes
	rec.UpdatedAt = updatedAt

	return nil
}

// LedgerRepo adapts the store to usecase.LedgerRepository.
func (s *MemStore) LedgerRepo() usecase.LedgerRepository {
	return &memLedgerRepo{store: s}
}

type memLedgerRepo struct {
	store *MemStore
}

func (r *memLedgerRepo) AccountDrifts(ctx context.Context) ([]usecase.AccountDrift, error) {
	r.store.mu.Lock()

	ids := make([]string, 0, len(r.store.accounts))
	for id := range r.store.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	balances := make(map[string]decimal.Decimal, len(ids))
	for _, id := range ids {
		balances[id] = r.store.accounts[id].Balance
	}
	r.store.mu.Unlock()

	drifts := make([]usecase.AccountDrift, 0, len(ids))
	for _, id := range ids {
		drifts = append(drifts, usecase.AccountDrift{
			AccountID: id,
			Balance:   balances[id],
			EntrySum:  r.store.SignedSum(id),
		})
	}

	return drifts, nil
}
