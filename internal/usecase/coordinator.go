package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/infrastructure/metrics"
)

// Retry defaults for the optimistic commit loop.
const (
	defaultMaxAttempts     = 5
	defaultInitialInterval = 20 * time.Millisecond
	defaultMaxInterval     = 500 * time.Millisecond
	defaultMaxElapsedTime  = 10 * time.Second
)

// Coordinator executes movements atomically: read account snapshots with
// their versions, validate, compute new balances, and hand the store one
// conditional commit covering every write. A version conflict discards all
// local state and restarts from the read; validation rejections and store
// failures abort immediately. No lock is ever held between read and commit.
type Coordinator struct {
	store           Store
	idGen           IDGenerator
	logger          zerolog.Logger
	metrics         *metrics.Metrics
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
}

// NewCoordinator creates a Coordinator with the default retry budget.
func NewCoordinator(store Store, idGen IDGenerator, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		store:           store,
		idGen:           idGen,
		logger:          logger,
		maxAttempts:     defaultMaxAttempts,
		initialInterval: defaultInitialInterval,
		maxInterval:     defaultMaxInterval,
		maxElapsedTime:  defaultMaxElapsedTime,
	}
}

// WithMetrics records movement outcomes into the shared registry.
func (c *Coordinator) WithMetrics(m *metrics.Metrics) *Coordinator {
	c.metrics = m
	return c
}

// WithRetryBudget overrides the maximum number of commit attempts.
func (c *Coordinator) WithRetryBudget(attempts int) *Coordinator {
	if attempts > 0 {
		c.maxAttempts = attempts
	}

	return c
}

// Execute runs one movement to completion. Validation rejections are
// terminal and returned verbatim; version conflicts are retried with
// exponential backoff up to the budget, then surfaced as
// domain.ErrConflict. The caller bounds the whole loop through ctx.
func (c *Coordinator) Execute(ctx context.Context, req domain.MovementRequest) (*domain.MovementResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	for _, leg := range req.Legs {
		if err := domain.ValidateAmount(leg.Amount); err != nil {
			return nil, err
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = c.maxInterval
	b.MaxElapsedTime = c.maxElapsedTime

	start := time.Now()

	var result *domain.MovementResult

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++

		res, err := c.attempt(ctx, req)
		if err == nil {
			result = res
			return nil
		}

		if !errors.Is(err, domain.ErrVersionConflict) {
			return backoff.Permanent(err)
		}

		if c.metrics != nil {
			c.metrics.CommitConflicts.Inc()
		}

		if attempt >= c.maxAttempts {
			return backoff.Permanent(fmt.Errorf("%w: gave up after %d attempts", domain.ErrConflict, attempt))
		}

		c.logger.Warn().
			Int("attempt", attempt).
			Strs("accounts", req.AccountIDs()).
			Msg("commit conflicted with concurrent writer, retrying")

		return err
	}, backoff.WithContext(b, ctx))
	if err != nil {
		// The loop can also end on a conflict when ctx or the elapsed-time
		// cap expires mid-retry; the caller sees that as a conflict too.
		if errors.Is(err, domain.ErrVersionConflict) {
			err = fmt.Errorf("%w: retry budget exhausted", domain.ErrConflict)
		}

		if c.metrics != nil {
			c.metrics.MovementErrors.WithLabelValues(errorLabel(err)).Inc()
		}

		return nil, err
	}

	if c.metrics != nil {
		kind := req.Legs[0].Kind
		if kind == domain.KindReversal {
			c.metrics.MovementsReversed.Inc()
		} else {
			c.metrics.MovementsCommitted.WithLabelValues(string(kind)).Inc()
		}

		c.metrics.MovementDuration.Observe(time.Since(start).Seconds())
		c.metrics.CommitRetries.Observe(float64(attempt))
		amount, _ := req.Legs[0].Amount.Float64()
		c.metrics.MovementAmount.Observe(amount)
	}

	return result, nil
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrCreditLimitExceeded):
		return "credit_limit_exceeded"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrAccountInactive):
		return "account_inactive"
	case errors.Is(err, domain.ErrRecordVoided):
		return "record_voided"
	default:
		return "other"
	}
}

// attempt performs one read-validate-compute-commit cycle against fresh
// snapshots. All state is local; nothing survives a failed commit.
func (c *Coordinator) attempt(ctx context.Context, req domain.MovementRequest) (*domain.MovementResult, error) {
	ids := req.AccountIDs()

	accounts, err := c.store.GetAccounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.ID] = acc
	}

	for _, id := range ids {
		if byID[id] == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
		}
	}

	for _, leg := range req.Legs {
		if err := domain.ValidateMovement(byID[leg.AccountID], leg); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	commit := domain.Commit{VoidRecordID: req.VoidRecordID}

	relatedRecordID := req.VoidRecordID
	if req.Record != nil {
		record := *req.Record
		record.ID = c.idGen.Generate()
		record.CreatedAt = now
		record.UpdatedAt = now
		commit.Record = &record
		relatedRecordID = record.ID
	}

	result := &domain.MovementResult{
		RecordID: relatedRecordID,
		Balances: make(map[string]decimal.Decimal, len(ids)),
	}

	for _, leg := range req.Legs {
		acc := byID[leg.AccountID]
		newBalance := acc.ProjectedBalance(leg.Delta())

		entry := &domain.LedgerEntry{
			ID:              c.idGen.Generate(),
			AccountID:       acc.ID,
			Kind:            leg.Kind,
			ReversedKind:    leg.ReversedKind,
			Amount:          leg.Amount,
			Date:            req.Date,
			RelatedRecordID: relatedRecordID,
			Description:     req.Description,
			PreviousBalance: acc.Balance,
			CurrentBalance:  newBalance,
			AccountVersion:  acc.Version + 1,
			CreatedAt:       now,
		}
		if req.Record != nil {
			entry.CategoryRef = req.Record.CategoryRef
		}

		commit.Entries = append(commit.Entries, entry)
		commit.Updates = append(commit.Updates, domain.AccountUpdate{
			AccountID:       acc.ID,
			NewBalance:      newBalance,
			ExpectedVersion: acc.Version,
		})

		result.EntryIDs = append(result.EntryIDs, entry.ID)
		result.Balances[acc.ID] = newBalance
	}

	commit.Event = c.changeEvent(req, relatedRecordID, ids, now)

	if err := c.store.ConditionalCommit(ctx, commit); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Coordinator) changeEvent(req domain.MovementRequest, recordID string, accountIDs []string, now time.Time) *domain.ChangeEvent {
	eventType := domain.EventTypeMovementCommitted
	kind := string(req.Legs[0].Kind)

	if req.Legs[0].Kind == domain.KindReversal {
		eventType = domain.EventTypeMovementReversed
	}

	return &domain.ChangeEvent{
		ID:            c.idGen.Generate(),
		AggregateID:   recordID,
		AggregateType: domain.AggregateTypeRecord,
		EventType:     eventType,
		Payload: map[string]any{
			"record_id":   recordID,
			"kind":        kind,
			"account_ids": accountIDs,
			"amount":      req.Legs[0].Amount.String(),
		},
		CreatedAt: now,
	}
}
