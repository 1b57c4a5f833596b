package domain

import "time"

// Event types
const (
	EventTypeMovementCommitted = "movement.committed"
	EventTypeMovementReversed  = "movement.reversed"
	EventTypeAccountOpened     = "account.opened"
	EventTypeAccountArchived   = "account.archived"
)

// Aggregate types
const (
	AggregateTypeAccount = "account"
	AggregateTypeRecord  = "record"
)

// ChangeEvent is the "record changed" notification written in the same
// commit as the change it describes and later drained to subscribers.
// The engine never pushes updates itself; live views consume these.
type ChangeEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// MovementCommittedEvent payload
type MovementCommittedEvent struct {
	RecordID   string   `json:"record_id"`
	Kind       string   `json:"kind"`
	AccountIDs []string `json:"account_ids"`
	Amount     string   `json:"amount"`
}

// MovementReversedEvent payload
type MovementReversedEvent struct {
	OriginalRecordID string   `json:"original_record_id"`
	AccountIDs       []string `json:"account_ids"`
	Amount           string   `json:"amount"`
}

// AccountOpenedEvent payload
type AccountOpenedEvent struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
}
