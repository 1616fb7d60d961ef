package services

import (
	"context"
	"fmt"

	"taskboard/internal/domain/task"
	taskboard_errors "taskboard/pkg/errors"

	"github.com/google/uuid"
)

// TaskFilter narrows a task listing. Nil fields are ignored.
type TaskFilter struct {
	Status   *task.Status
	Assignee *uuid.UUID
}

// TaskService holds the business rules for tasks on top of the persistence port.
type TaskService struct {
	store TaskPersistence
}

func NewTaskService(store TaskPersistence) *TaskService {
	return &TaskService{store: store}
}

// Create stores a new task. The caller must not supply an id; an empty status
// defaults to OPEN.
func (s *TaskService) Create(ctx context.Context, t task.Task) (task.Task, error) {
	if t.ID != uuid.Nil {
		return task.Task{}, fmt.Errorf("%w: task id must not be set", taskboard_errors.ErrMalformedRequest)
	}
	if t.Status == "" {
		t.Status = task.StatusOpen
	}
	if !t.Status.Valid() {
		return task.Task{}, fmt.Errorf("%w: unknown status %q", taskboard_errors.ErrMalformedRequest, t.Status)
	}
	return s.store.Upsert(ctx, t)
}

// Update replaces the mutable fields of the task with the given id.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, t task.Task) (task.Task, error) {
	if id == uuid.Nil {
		return task.Task{}, fmt.Errorf("%w: task id is required", taskboard_errors.ErrMalformedRequest)
	}
	if !t.Status.Valid() {
		return task.Task{}, fmt.Errorf("%w: unknown status %q", taskboard_errors.ErrMalformedRequest, t.Status)
	}
	t.ID = id
	return s.store.Upsert(ctx, t)
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

func (s *TaskService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *TaskService) GetAll(ctx context.Context) ([]task.Task, error) {
	return s.store.GetAll(ctx)
}

func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (task.Task, bool, error) {
	return s.store.GetByID(ctx, id)
}

func (s *TaskService) GetByStatus(ctx context.Context, status task.Status) ([]task.Task, error) {
	return s.store.GetByStatus(ctx, status)
}

func (s *TaskService) GetByAssignee(ctx context.Context, userID uuid.UUID) ([]task.Task, error) {
	return s.store.GetByAssignee(ctx, userID)
}

// List applies the filter. With both fields set the status query runs first and
// its result is narrowed to the assignee.
func (s *TaskService) List(ctx context.Context, f TaskFilter) ([]task.Task, error) {
	switch {
	case f.Status != nil && f.Assignee != nil:
		byStatus, err := s.store.GetByStatus(ctx, *f.Status)
		if err != nil {
			return nil, err
		}
		out := make([]task.Task, 0, len(byStatus))
		for _, t := range byStatus {
			if t.AssigneeID != nil && *t.AssigneeID == *f.Assignee {
				out = append(out, t)
			}
		}
		return out, nil
	case f.Status != nil:
		return s.store.GetByStatus(ctx, *f.Status)
	case f.Assignee != nil:
		return s.store.GetByAssignee(ctx, *f.Assignee)
	default:
		return s.store.GetAll(ctx)
	}
}
