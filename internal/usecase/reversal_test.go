package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
	"github.com/iho/finbook/internal/usecase/mocks"
)

func newReversalEngine(store *mocks.MemStore) *usecase.ReversalEngine {
	coordinator := usecase.NewCoordinator(store, mocks.NewSequentialIDGenerator(), zerolog.Nop())
	return usecase.NewReversalEngine(coordinator, store.RecordRepo())
}

func TestReversalEngine_ExpenseReversalRestoresBalance(t *testing.T) {
	store := mocks.NewMemStore()
	seedAccount(store, "acc-1", domain.AccountBank, 100)

	coordinator := usecase.NewCoordinator(store, mocks.NewSequentialIDGenerator(), zerolog.Nop())
	engine := usecase.NewReversalEngine(coordinator, store.RecordRepo())
	ctx := context.Background()

	committed, err := coordinator.Execute(ctx,
		domain.NewExpenseMovement("acc-1", "rent", decimal.NewFromInt(60), testDate, ""))
	require.NoError(t, err)

	result, err := engine.Reverse(ctx, usecase.ReverseInput{
		RecordID: committed.RecordID,
		Notes:    "booked against wrong account",
	})
	require.NoError(t, err)

	assert.True(t, result.Balances["acc-1"].Equal(decimal.NewFromInt(100)))

	acc, _ := store.GetAccount(ctx, "acc-1")
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(100)))

	entries := store.EntriesFor("acc-1")
	require.Len(t, entries, 2)

	reversal := entries[1]
	assert.Equal(t, domain.KindReversal, reversal.Kind)
	assert.Equal(t, domain.KindExpense, reversal.ReversedKind)
	assert.True(t, reversal.Amount.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, committed.RecordID, reversal.RelatedRecordID)

	// Net effect of the pair is zero and the invariant still holds.
	assert.True(t, entries[0].SignedAmount().Add(reversal.SignedAmount()).IsZero())
	assert.True(t, store.SignedSum("acc-1").Equal(acc.Balance))

	record := store.Record(committed.RecordID)
	require.NotNil(t, record)
	assert.True(t, record.Voided)
}

func TestReversalEngine_NoNewRecordCreated(t *testing.T) {
	store := mocks.NewMemStore()
	seedAccount(store, "acc-1", domain.AccountBank, 100)

	engine := newReversalEngine(store)
	coordinator := usecase.NewCoordinator(store, mocks.NewSequentialIDGenerator(), zerolog.Nop())
	ctx := context.Background()

	committed, err := coordinator.Execute(ctx,
		domain.NewIncomeMovement("acc-1", "salary", decimal.NewFromInt(40), testDate, ""))
	require.NoError(t, err)

	result, err := engine.Reverse(ctx, usecase.ReverseInput{RecordID: committed.RecordID})
	require.NoError(t, err)

	// The reversal references the original record instead of minting one.
	assert.Equal(t, committed.RecordID, result.RecordID)
	assert.Len(t, store.Records(), 1)
}

func TestReversalEngine_DoubleReversalRejected(t *testing.T) {
	store := mocks.NewMemStore()
	seedAccount(store, "acc-1", domain.AccountBank, 100)

	coordinator := usecase.NewCoordinator(store, mocks.NewSequentialIDGenerator(), zerolog.Nop())
	engine := usecase.NewReversalEngine(coordinator, store.RecordRepo())
	ctx := context.Background()

	committed, err := coordinator.Execute(ctx,
		domain.NewExpenseMovement("acc-1", "rent", decimal.NewFromInt(60), testDate, ""))
	require.NoError(t, err)

	_, err = engine.Reverse(ctx, usecase.ReverseInput{RecordID: committed.RecordID})
	require.NoError(t, err)

	_, err = engine.Reverse(ctx, usecase.ReverseInput{RecordID: committed.RecordID})
	require.ErrorIs(t, err, domain.ErrRecordVoided)

	acc, _ := store.GetAccount(ctx, "acc-1")
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(100)))
	assert.Len(t, store.EntriesFor("acc-1"), 2)
}

func TestReversalEngine_RacedDoubleReversalRejected(t *testing.T) {
	store := mocks.NewMemStore()
	seedAccount(store, "acc-1", domain.AccountBank, 100)

	coordinator := usecase.NewCoordinator(store, mocks.NewSequentialIDGenerator(), zerolog.Nop())
	engine := usecase.NewReversalEngine(coordinator, store.RecordRepo())
	ctx := context.Background()

	committed, err := coordinator.Execute(ctx,
		domain.NewExpenseMovement("acc-1", "rent", decimal.NewFromInt(60), testDate, ""))
	require.NoError(t, err)

	// Both reversals read the record while it is still un-voided: a full
	// second reversal runs between the first one's read and its commit. The
	// first commit then hits a version conflict, and its retry must be
	// rejected on the already-voided record instead of crediting again.
	var winnerErr error
	interleaved := false
	store.BeforeCommit = func() {
		if interleaved {
			return
		}
		interleaved = true

		_, winnerErr = engine.Reverse(ctx, usecase.ReverseInput{RecordID: committed.RecordID})
	}

	_, loserErr := engine.Reverse(ctx, usecase.ReverseInput{RecordID: committed.RecordID})

	require.NoError(t, winnerErr)
	require.ErrorIs(t, loserErr, domain.ErrRecordVoided)

	acc, _ := store.GetAccount(ctx, "acc-1")
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(100)))
	assert.Len(t, store.EntriesFor("acc-1"), 2)
	assert.True(t, store.SignedSum("acc-1").Equal(acc.Balance))
}

func TestReversalEngine_UnknownRecord(t *testing.T) {
	store := mocks.NewMemStore()
	engine := newReversalEngine(store)

	_, err := engine.Reverse(context.Background(), usecase.ReverseInput{RecordID: "ghost"})
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestReversalEngine_TransferReversalRestoresBothAccounts(t *testing.T) {
	store := mocks.NewMemStore()
	seedAccount(store, "acc-1", domain.AccountBank, 100)
	seedAccount(store, "acc-2", domain.AccountCash, 20)

	coordinator := usecase.NewCoordinator(store, mocks.NewSequentialIDGenerator(), zerolog.Nop())
	engine := usecase.NewReversalEngine(coordinator, store.RecordRepo())
	ctx := context.Background()

	committed, err := coordinator.Execute(ctx,
		domain.NewTransferMovement("acc-1", "acc-2", decimal.NewFromInt(30), testDate, ""))
	require.NoError(t, err)

	result, err := engine.Reverse(ctx, usecase.ReverseInput{RecordID: committed.RecordID})
	require.NoError(t, err)

	assert.True(t, result.Balances["acc-1"].Equal(decimal.NewFromInt(100)))
	assert.True(t, result.Balances["acc-2"].Equal(decimal.NewFromInt(20)))

	for _, id := range []string{"acc-1", "acc-2"} {
		entries := store.EntriesFor(id)
		require.Len(t, entries, 2)
		assert.Equal(t, domain.KindReversal, entries[1].Kind)

		acc, _ := store.GetAccount(ctx, id)
		assert.True(t, store.SignedSum(id).Equal(acc.Balance))
	}

	from := store.EntriesFor("acc-1")[1]
	to := store.EntriesFor("acc-2")[1]
	assert.Equal(t, domain.KindTransferOut, from.ReversedKind)
	assert.Equal(t, domain.KindTransferIn, to.ReversedKind)
}

func TestReversalEngine_CreditUsageReversalFreesLimit(t *testing.T) {
	store := mocks.NewMemStore()
	store.PutAccount(&domain.Account{
		ID:          "card",
		Kind:        domain.AccountCredit,
		Balance:     decimal.Zero,
		CreditLimit: decimal.NewFromInt(100),
		Active:      true,
	})

	coordinator := usecase.NewCoordinator(store, mocks.NewSequentialIDGenerator(), zerolog.Nop())
	engine := usecase.NewReversalEngine(coordinator, store.RecordRepo())
	ctx := context.Background()

	committed, err := coordinator.Execute(ctx,
		domain.NewCreditUsageMovement("card", decimal.NewFromInt(90), testDate, ""))
	require.NoError(t, err)

	result, err := engine.Reverse(ctx, usecase.ReverseInput{RecordID: committed.RecordID})
	require.NoError(t, err)
	assert.True(t, result.Balances["card"].IsZero())

	reversal := store.EntriesFor("card")[1]
	assert.Equal(t, domain.KindCreditUsage, reversal.ReversedKind)
	assert.True(t, reversal.SignedAmount().Equal(decimal.NewFromInt(90)))

	// The freed limit is usable again.
	_, err = coordinator.Execute(ctx,
		domain.NewCreditUsageMovement("card", decimal.NewFromInt(95), testDate, ""))
	require.NoError(t, err)
}

func TestReversalEngine_EmitsReversedEvent(t *testing.T) {
	store := mocks.NewMemStore()
	seedAccount(store, "acc-1", domain.AccountBank, 100)

	coordinator := usecase.NewCoordinator(store, mocks.NewSequentialIDGenerator(), zerolog.Nop())
	engine := usecase.NewReversalEngine(coordinator, store.RecordRepo())
	ctx := context.Background()

	committed, err := coordinator.Execute(ctx,
		domain.NewExpenseMovement("acc-1", "rent", decimal.NewFromInt(10), testDate, ""))
	require.NoError(t, err)

	_, err = engine.Reverse(ctx, usecase.ReverseInput{RecordID: committed.RecordID})
	require.NoError(t, err)

	events := store.Events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventTypeMovementCommitted, events[0].EventType)
	assert.Equal(t, domain.EventTypeMovementReversed, events[1].EventType)
}
