package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/infrastructure/metrics"
)

// AccountUseCase handles account lifecycle: open, read, archive. Accounts
// are archived, never deleted, so their ledger history stays intact.
type AccountUseCase struct {
	accountRepo AccountRepository
	coordinator *Coordinator
	idGen       IDGenerator
	cache       Cache
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, coordinator *Coordinator, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		coordinator: coordinator,
		idGen:       idGen,
	}
}

// WithCache enables cached account reads.
func (uc *AccountUseCase) WithCache(cache Cache) *AccountUseCase {
	uc.cache = cache
	return uc
}

// WithMetrics records account lifecycle events into the shared registry.
func (uc *AccountUseCase) WithMetrics(m *metrics.Metrics) *AccountUseCase {
	uc.metrics = m
	return uc
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	Name           string
	Kind           domain.AccountKind
	CreditLimit    decimal.Decimal
	OpeningBalance decimal.Decimal
}

// OpenAccount creates an account. A non-zero opening balance is recorded as
// an adjustment movement through the coordinator, so the ledger-sum
// invariant holds from the first entry.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	if !input.Kind.Valid() {
		return nil, domain.ErrInvalidAccountKind
	}

	// Opening balances are booked as positive adjustment entries; existing
	// debt has no entry kind to carry it and is rejected up front.
	if input.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", domain.ErrInvalidAmount)
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:          uc.idGen.Generate(),
		Name:        input.Name,
		Kind:        input.Kind,
		Balance:     decimal.Zero,
		CreditLimit: input.CreditLimit,
		Active:      true,
		Version:     0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if input.OpeningBalance.IsPositive() {
		result, err := uc.coordinator.Execute(ctx, domain.NewOpeningAdjustment(account.ID, input.OpeningBalance, now))
		if err != nil {
			return nil, err
		}

		account.Balance = result.Balances[account.ID]
		account.Version++
	}

	if uc.metrics != nil {
		uc.metrics.AccountsOpened.Inc()
		balance, _ := account.Balance.Float64()
		uc.metrics.AccountBalance.WithLabelValues(account.ID, string(account.Kind)).Set(balance)
	}

	return account, nil
}

// GetAccount retrieves an account by ID, serving from cache when enabled.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, accountCacheKey(id)); err == nil {
			var account domain.Account
			if err := json.Unmarshal([]byte(cached), &account); err == nil {
				return &account, nil
			}
		}
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(account); err == nil {
			_ = uc.cache.Set(ctx, accountCacheKey(id), string(data), AccountCacheTTL)
		}
	}

	return account, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// ArchiveAccount soft-deletes an account. Its records and entries remain.
func (uc *AccountUseCase) ArchiveAccount(ctx context.Context, id string) error {
	if _, err := uc.accountRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.accountRepo.Archive(ctx, id, time.Now().UTC()); err != nil {
		return err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, accountCacheKey(id))
	}

	if uc.metrics != nil {
		uc.metrics.AccountsArchived.Inc()
	}

	return nil
}
