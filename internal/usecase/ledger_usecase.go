package usecase

import (
	"context"
	"errors"

	"github.com/iho/finbook/internal/infrastructure/metrics"
)

// ErrInconsistentLedger is returned when some account's balance does not
// equal the signed sum of its ledger entries.
var ErrInconsistentLedger = errors.New("ledger is inconsistent: balance does not match entry sum")

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
	metrics    *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// WithMetrics records consistency check outcomes into the shared registry.
func (uc *LedgerUseCase) WithMetrics(m *metrics.Metrics) *LedgerUseCase {
	uc.metrics = m
	return uc
}

// CheckConsistency verifies that every account's balance equals the signed
// sum of its entries, returning the accounts that drifted.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) ([]AccountDrift, error) {
	drifts, err := uc.ledgerRepo.AccountDrifts(ctx)
	if err != nil {
		return nil, err
	}

	var broken []AccountDrift
	for _, d := range drifts {
		if !d.Balance.Equal(d.EntrySum) {
			broken = append(broken, d)
		}
	}

	if uc.metrics != nil {
		uc.metrics.ConsistencyChecks.Inc()
		if len(broken) > 0 {
			uc.metrics.InconsistentChecks.Inc()
		}
	}

	if len(broken) > 0 {
		return broken, ErrInconsistentLedger
	}

	return nil, nil
}
