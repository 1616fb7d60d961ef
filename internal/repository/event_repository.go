package repository

import (
	"context"
	"time"

	"taskboard/internal/domain/event"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresEventRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEventRepository returns the event log. now supplies created_at for appended
// events and must be non-decreasing.
func NewEventRepository(db *gorm.DB, now func() time.Time) EventRepository {
	return &PostgresEventRepository{db: db, now: now}
}

func (r *PostgresEventRepository) Append(ctx context.Context, e *event.Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = r.now()
	}
	res := r.db.WithContext(ctx).Create(e)
	if res.Error != nil {
		return translate("append event", res.Error)
	}
	return nil
}

func (r *PostgresEventRepository) History(ctx context.Context, entityName string, entityID uuid.UUID) ([]event.Event, error) {
	var events []event.Event
	err := r.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entityName, entityID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, translate("load event history", err)
	}
	return events, nil
}

func (r *PostgresEventRepository) List(ctx context.Context) ([]event.Event, error) {
	var events []event.Event
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, translate("list events", err)
	}
	return events, nil
}

func (r *PostgresEventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&event.Event{}).Count(&count).Error; err != nil {
		return 0, translate("count events", err)
	}
	return count, nil
}
