package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ChangeType is the kind of mutation an event records.
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// Aggregate is implemented by every entity whose mutations are event sourced.
type Aggregate interface {
	AggregateID() uuid.UUID
	EntityName() string
	EntityVersion() int64
}

// Event represents the events table: an append-only record of one aggregate mutation.
// ID and CreatedAt are assigned by the event log on append.
type Event struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Type          ChangeType     `gorm:"type:varchar(10);not null" json:"type"`
	EntityName    string         `gorm:"column:entity;type:varchar(50);not null;index:idx_events_entity,priority:1" json:"entity"`
	EntityID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_events_entity,priority:2" json:"entity_id"`
	EntityVersion int64          `gorm:"not null" json:"entity_version"`
	CreatedBy     uuid.NullUUID  `gorm:"type:uuid" json:"created_by"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime:false;index:idx_events_created_at" json:"created_at"`
	Body          map[string]any `gorm:"type:jsonb;serializer:json;not null" json:"body"`
}

func (Event) TableName() string {
	return "events"
}

func InsertEventOf(a Aggregate, actor uuid.NullUUID) (Event, error) {
	body, err := snapshot(a)
	if err != nil {
		return Event{}, err
	}
	return newEvent(ChangeInsert, a, actor, body), nil
}

func UpdateEventOf(a Aggregate, actor uuid.NullUUID) (Event, error) {
	body, err := snapshot(a)
	if err != nil {
		return Event{}, err
	}
	return newEvent(ChangeUpdate, a, actor, body), nil
}

// DeleteEventOf records only the identifier of the removed aggregate.
func DeleteEventOf(a Aggregate, actor uuid.NullUUID) Event {
	return newEvent(ChangeDelete, a, actor, map[string]any{"id": a.AggregateID().String()})
}

func newEvent(t ChangeType, a Aggregate, actor uuid.NullUUID, body map[string]any) Event {
	return Event{
		Type:          t,
		EntityName:    a.EntityName(),
		EntityID:      a.AggregateID(),
		EntityVersion: a.EntityVersion(),
		CreatedBy:     actor,
		Body:          body,
	}
}

// snapshot converts the aggregate into a generic field map through its JSON encoding.
func snapshot(a Aggregate) (map[string]any, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s snapshot: %w", a.EntityName(), err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("failed to decode %s snapshot: %w", a.EntityName(), err)
	}
	return body, nil
}
