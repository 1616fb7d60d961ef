package events

import (
	"encoding/json"
	"fmt"
	"time"

	"taskboard/internal/domain/event"
)

// Envelope is the wire form of a committed event as published to subscribers.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EntityVersion int64           `json:"entity_version"`
	CreatedBy     *string         `json:"created_by"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

func NewEnvelope(e event.Event) (Envelope, error) {
	payload, err := json.Marshal(e.Body)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal event body: %w", err)
	}

	var createdBy *string
	if e.CreatedBy.Valid {
		s := e.CreatedBy.UUID.String()
		createdBy = &s
	}

	return Envelope{
		EventID:       e.ID.String(),
		EventType:     string(e.Type),
		AggregateType: e.EntityName,
		AggregateID:   e.EntityID.String(),
		EntityVersion: e.EntityVersion,
		CreatedBy:     createdBy,
		OccurredAt:    e.CreatedAt,
		Payload:       payload,
	}, nil
}
