package usecase

import (
	"context"
	"time"

	"github.com/iho/finbook/internal/domain"
)

// ReversalEngine derives the algebraic inverse of a committed record and
// applies it through the coordinator, so reversals get the same atomicity
// and retry guarantees as the movements they undo. The original record is
// voided inside the same conditional commit.
type ReversalEngine struct {
	coordinator *Coordinator
	recordRepo  RecordRepository
}

// NewReversalEngine creates a new ReversalEngine.
func NewReversalEngine(coordinator *Coordinator, recordRepo RecordRepository) *ReversalEngine {
	return &ReversalEngine{
		coordinator: coordinator,
		recordRepo:  recordRepo,
	}
}

// ReverseInput represents input for reversing a record.
type ReverseInput struct {
	RecordID string
	Notes    string
}

// Reverse voids the record and restores every balance it touched to its
// pre-movement value. Reversing an already-voided record is rejected.
func (e *ReversalEngine) Reverse(ctx context.Context, input ReverseInput) (*domain.MovementResult, error) {
	record, err := e.recordRepo.GetByID(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}

	if record.Voided {
		return nil, domain.ErrRecordVoided
	}

	req := domain.NewReversalMovement(record, time.Now().UTC(), input.Notes)

	return e.coordinator.Execute(ctx, req)
}
