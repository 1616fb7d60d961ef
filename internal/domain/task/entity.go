package task

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the workflow state of a task.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown task status %q", raw)
	}
	return s, nil
}

// EntityName and EntityVersion are recorded on every event written for a task.
// Bump EntityVersion whenever the persisted shape of Task changes.
const (
	EntityName    = "Task"
	EntityVersion = int64(1)
)

// Task represents the tasks table. ID is uuid.Nil until the task is first persisted.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      Status     `gorm:"type:varchar(20);not null;index:idx_tasks_status" json:"status"`
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index:idx_tasks_assignee_id" json:"assignee_id"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t Task) AggregateID() uuid.UUID {
	return t.ID
}

func (Task) EntityName() string {
	return EntityName
}

func (Task) EntityVersion() int64 {
	return EntityVersion
}
