package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/iho/finbook/internal/domain"
)

// EventPublisher broadcasts change events over Redis pub/sub. Live views
// subscribe to the aggregate-type channel and re-read state on each message;
// the events themselves carry no authoritative data.
type EventPublisher struct {
	client  *redis.Client
	channel string
}

// NewEventPublisher creates a publisher on the given channel prefix.
func NewEventPublisher(client *redis.Client) *EventPublisher {
	return &EventPublisher{
		client:  client,
		channel: "finbook:events:",
	}
}

type eventMessage struct {
	ID            string         `json:"id"`
	AggregateID   string         `json:"aggregate_id"`
	AggregateType string         `json:"aggregate_type"`
	EventType     string         `json:"event_type"`
	Payload       map[string]any `json:"payload,omitempty"`
}

// Publish sends one change event to its aggregate-type channel.
func (p *EventPublisher) Publish(ctx context.Context, event *domain.ChangeEvent) error {
	data, err := json.Marshal(eventMessage{
		ID:            event.ID,
		AggregateID:   event.AggregateID,
		AggregateType: event.AggregateType,
		EventType:     event.EventType,
		Payload:       event.Payload,
	})
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, p.channel+event.AggregateType, data).Err()
}
