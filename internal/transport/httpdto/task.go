package httpdto

import (
	"time"

	"taskboard/internal/domain/task"

	"github.com/google/uuid"
)

// TaskRequest is the body of task create and update calls. ID is accepted only
// so a create carrying one can be rejected.
type TaskRequest struct {
	ID          *uuid.UUID `json:"id"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
}

func (r TaskRequest) ToTask() task.Task {
	t := task.Task{
		Title:       r.Title,
		Description: r.Description,
		Status:      task.Status(r.Status),
		AssigneeID:  r.AssigneeID,
	}
	if r.ID != nil {
		t.ID = *r.ID
	}
	return t
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
}

func FromTask(t task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		AssigneeID:  t.AssigneeID,
	}
}

func FromTaskSlice(items []task.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(items))
	for _, t := range items {
		out = append(out, FromTask(t))
	}
	return out
}
