package eventpublisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase/mocks"
)

type capturingPublisher struct {
	mu     sync.Mutex
	events []*domain.ChangeEvent
	err    error
}

func (p *capturingPublisher) Publish(ctx context.Context, event *domain.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}

	p.events = append(p.events, event)

	return nil
}

func (p *capturingPublisher) published() []*domain.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*domain.ChangeEvent(nil), p.events...)
}

func TestEventPublisher_DrainsAndMarks(t *testing.T) {
	ctrl := gomock.NewController(t)
	outbox := mocks.NewMockOutboxRepository(ctrl)
	sink := &capturingPublisher{}

	batch := []*domain.ChangeEvent{
		{ID: "ev-1", EventType: domain.EventTypeMovementCommitted},
		{ID: "ev-2", EventType: domain.EventTypeMovementReversed},
	}

	var once sync.Once

	outbox.EXPECT().GetUnpublished(gomock.Any(), 100).DoAndReturn(
		func(ctx context.Context, limit int) ([]*domain.ChangeEvent, error) {
			var out []*domain.ChangeEvent
			once.Do(func() { out = batch })
			return out, nil
		}).AnyTimes()
	outbox.EXPECT().MarkPublished(gomock.Any(), "ev-1", gomock.Any()).Return(nil)
	outbox.EXPECT().MarkPublished(gomock.Any(), "ev-2", gomock.Any()).Return(nil)
	outbox.EXPECT().DeletePublished(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ep := NewEventPublisher(Config{
		OutboxRepo: outbox,
		Publisher:  sink,
		Logger:     zerolog.Nop(),
		Interval:   10 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := ep.Start(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	got := sink.published()
	if len(got) != 2 || got[0].ID != "ev-1" || got[1].ID != "ev-2" {
		t.Fatalf("unexpected published events: %+v", got)
	}
}

func TestEventPublisher_PublishFailureIsNotMarked(t *testing.T) {
	ctrl := gomock.NewController(t)
	outbox := mocks.NewMockOutboxRepository(ctrl)
	sink := &capturingPublisher{err: errors.New("redis down")}

	var once sync.Once

	outbox.EXPECT().GetUnpublished(gomock.Any(), 100).DoAndReturn(
		func(ctx context.Context, limit int) ([]*domain.ChangeEvent, error) {
			var out []*domain.ChangeEvent
			once.Do(func() {
				out = []*domain.ChangeEvent{{ID: "ev-1"}}
			})
			return out, nil
		}).AnyTimes()
	outbox.EXPECT().DeletePublished(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	// No MarkPublished expectation: a failed publish must leave the event
	// unpublished so the next cycle retries it.

	ep := NewEventPublisher(Config{
		OutboxRepo: outbox,
		Publisher:  sink,
		Logger:     zerolog.Nop(),
		Interval:   10 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_ = ep.Start(ctx)

	if len(sink.published()) != 0 {
		t.Fatalf("expected no published events")
	}
}
