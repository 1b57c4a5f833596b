package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finbook/internal/domain"
)

// OutboxRepository implements usecase.OutboxRepository. Events are written
// by the store inside the same transaction as the movement; this repository
// only drains and prunes them.
type OutboxRepository struct {
	pool *pgxpool.Pool
}

// NewOutboxRepository creates a new OutboxRepository.
func NewOutboxRepository(pool *pgxpool.Pool) *OutboxRepository {
	return &OutboxRepository{pool: pool}
}

// GetUnpublished retrieves unpublished events, oldest first.
func (r *OutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.ChangeEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, aggregate_id, aggregate_type, event_type, payload,
		        created_at, published_at, published
		 FROM outbox_events
		 WHERE NOT published
		 ORDER BY created_at ASC
		 LIMIT $1`,
		int32(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.ChangeEvent

	for rows.Next() {
		var (
			event       domain.ChangeEvent
			payload     []byte
			createdAt   pgtype.Timestamptz
			publishedAt pgtype.Timestamptz
		)

		err := rows.Scan(&event.ID, &event.AggregateID, &event.AggregateType,
			&event.EventType, &payload, &createdAt, &publishedAt, &event.Published)
		if err != nil {
			return nil, err
		}

		if payload != nil {
			_ = json.Unmarshal(payload, &event.Payload)
		}

		event.CreatedAt = createdAt.Time
		if publishedAt.Valid {
			t := publishedAt.Time
			event.PublishedAt = &t
		}

		events = append(events, &event)
	}

	return events, rows.Err()
}

// MarkPublished marks an event as published.
func (r *OutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE outbox_events SET published = TRUE, published_at = $2 WHERE id = $1`,
		id, timeToPgTimestamptz(publishedAt))

	return err
}

// DeletePublished deletes published events older than the given time.
func (r *OutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM outbox_events WHERE published AND created_at < $1`,
		timeToPgTimestamptz(before))

	return err
}
