package repository

import (
	"fmt"

	"taskboard/internal/domain/event"
	"taskboard/internal/domain/task"
	"taskboard/internal/domain/user"

	"gorm.io/gorm"
)

// Models lists every table owned by the persistence layer.
func Models() []interface{} {
	return []interface{}{
		&task.Task{},
		&user.User{},
		&event.Event{},
	}
}

// InitSchema creates the aggregate tables and the event log. On postgres it also
// installs a trigger that rejects UPDATE and DELETE on the events table.
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	fnRejectMutation := `
	CREATE OR REPLACE FUNCTION fn_events_append_only()
	RETURNS trigger LANGUAGE plpgsql AS $$
	BEGIN
		RAISE EXCEPTION 'events is append-only (% rejected)', TG_OP;
	END;
	$$;`

	if err := db.Exec(fnRejectMutation).Error; err != nil {
		return fmt.Errorf("failed to create function fn_events_append_only: %w", err)
	}

	// Dropped first so the migration can be re-run.
	triggerSQL := `
	DROP TRIGGER IF EXISTS tr_events_append_only ON events;
	CREATE TRIGGER tr_events_append_only
	BEFORE UPDATE OR DELETE ON events
	FOR EACH ROW
	EXECUTE PROCEDURE fn_events_append_only();`

	if err := db.Exec(triggerSQL).Error; err != nil {
		return fmt.Errorf("failed to create trigger tr_events_append_only: %w", err)
	}

	return nil
}
