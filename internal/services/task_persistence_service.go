package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskboard/internal/domain/event"
	"taskboard/internal/domain/task"
	"taskboard/internal/events"
	"taskboard/internal/repository"
	taskboard_errors "taskboard/pkg/errors"
	"taskboard/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ TaskPersistence = (*TaskPersistenceService)(nil)

// TaskPersistenceService stores tasks and records every change in the event log.
// Reads go through tasks; mutations run inside the transactor.
type TaskPersistenceService struct {
	tasks     repository.TaskRepository
	tx        repository.Transactor
	publisher events.Publisher
	now       func() time.Time
	log       *logger.Logger
}

func NewTaskPersistenceService(
	tasks repository.TaskRepository,
	tx repository.Transactor,
	publisher events.Publisher,
	now func() time.Time,
	log *logger.Logger,
) *TaskPersistenceService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &TaskPersistenceService{tasks: tasks, tx: tx, publisher: publisher, now: now, log: log}
}

func (s *TaskPersistenceService) GetAll(ctx context.Context) ([]task.Task, error) {
	return s.tasks.GetAll(ctx)
}

func (s *TaskPersistenceService) GetByID(ctx context.Context, id uuid.UUID) (task.Task, bool, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if errors.Is(err, taskboard_errors.ErrNotFound) {
		return task.Task{}, false, nil
	}
	if err != nil {
		return task.Task{}, false, err
	}
	return t, true, nil
}

func (s *TaskPersistenceService) GetByStatus(ctx context.Context, status task.Status) ([]task.Task, error) {
	return s.tasks.GetByStatus(ctx, status)
}

func (s *TaskPersistenceService) GetByAssignee(ctx context.Context, userID uuid.UUID) ([]task.Task, error) {
	return s.tasks.GetByAssignee(ctx, userID)
}

// Upsert creates the task when it has no id and updates it otherwise.
func (s *TaskPersistenceService) Upsert(ctx context.Context, t task.Task) (task.Task, error) {
	if t.ID == uuid.Nil {
		return s.create(ctx, t)
	}
	return s.update(ctx, t)
}

func (s *TaskPersistenceService) create(ctx context.Context, t task.Task) (task.Task, error) {
	var appended []event.Event
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, st repository.Stores) error {
		now := s.now()
		t.ID = uuid.New()
		t.CreatedAt = now
		t.UpdatedAt = now
		if err := st.Tasks.Create(ctx, &t); err != nil {
			return taskboard_errors.NewStorageError("create task", err)
		}

		e, err := event.InsertEventOf(t, noActor)
		if err != nil {
			return taskboard_errors.NewStorageError("build insert event", err)
		}
		if err := st.Events.Append(ctx, &e); err != nil {
			return taskboard_errors.NewStorageError("append insert event", err)
		}
		appended = append(appended, e)
		return nil
	})
	if err != nil {
		return task.Task{}, err
	}

	s.log.DebugCtx(ctx, "task created", zap.String("task_id", t.ID.String()))
	publishCommitted(ctx, s.publisher, s.log, appended)
	return t, nil
}

func (s *TaskPersistenceService) update(ctx context.Context, t task.Task) (task.Task, error) {
	var (
		updated  task.Task
		appended []event.Event
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, st repository.Stores) error {
		existing, err := st.Tasks.GetByIDForUpdate(ctx, t.ID)
		if err != nil {
			return taskLookupError(t.ID, err)
		}

		existing.Title = t.Title
		existing.Description = t.Description
		existing.Status = t.Status
		existing.AssigneeID = t.AssigneeID
		existing.UpdatedAt = s.now()
		if err := st.Tasks.Update(ctx, existing); err != nil {
			return taskLookupError(t.ID, err)
		}

		e, err := event.UpdateEventOf(existing, noActor)
		if err != nil {
			return taskboard_errors.NewStorageError("build update event", err)
		}
		if err := st.Events.Append(ctx, &e); err != nil {
			return taskboard_errors.NewStorageError("append update event", err)
		}
		updated = existing
		appended = append(appended, e)
		return nil
	})
	if err != nil {
		return task.Task{}, err
	}

	s.log.DebugCtx(ctx, "task updated", zap.String("task_id", updated.ID.String()))
	publishCommitted(ctx, s.publisher, s.log, appended)
	return updated, nil
}

// Delete records a DELETE event and removes the row in one transaction, then
// checks that the row is really gone.
func (s *TaskPersistenceService) Delete(ctx context.Context, id uuid.UUID) error {
	var appended []event.Event
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, st repository.Stores) error {
		existing, err := st.Tasks.GetByIDForUpdate(ctx, id)
		if err != nil {
			return taskLookupError(id, err)
		}

		e := event.DeleteEventOf(existing, noActor)
		if err := st.Events.Append(ctx, &e); err != nil {
			return taskboard_errors.NewStorageError("append delete event", err)
		}
		if err := st.Tasks.Delete(ctx, id); err != nil {
			return taskLookupError(id, err)
		}
		appended = append(appended, e)
		return nil
	})
	if err != nil {
		return err
	}
	publishCommitted(ctx, s.publisher, s.log, appended)

	stillThere, err := s.tasks.Exists(ctx, id)
	if err != nil {
		return err
	}
	if stillThere {
		err := fmt.Errorf("%w: task %s still stored after delete", taskboard_errors.ErrConsistencyViolation, id)
		s.log.ErrorCtx(ctx, "delete left the task row behind", zap.String("task_id", id.String()), zap.Error(err))
		return err
	}

	s.log.DebugCtx(ctx, "task deleted", zap.String("task_id", id.String()))
	return nil
}

// Clear deletes every task, appending one DELETE event per row.
func (s *TaskPersistenceService) Clear(ctx context.Context) error {
	var (
		ids      []uuid.UUID
		appended []event.Event
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, st repository.Stores) error {
		all, err := st.Tasks.GetAllForUpdate(ctx)
		if err != nil {
			return err
		}
		if len(all) == 0 {
			return nil
		}

		ids = make([]uuid.UUID, 0, len(all))
		appended = make([]event.Event, 0, len(all))
		for _, t := range all {
			e := event.DeleteEventOf(t, noActor)
			if err := st.Events.Append(ctx, &e); err != nil {
				return taskboard_errors.NewStorageError("append delete event", err)
			}
			ids = append(ids, t.ID)
			appended = append(appended, e)
		}

		n, err := st.Tasks.DeleteByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return fmt.Errorf("%w: deleted %d of %d locked tasks", taskboard_errors.ErrConsistencyViolation, n, len(ids))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, taskboard_errors.ErrConsistencyViolation) {
			s.log.ErrorCtx(ctx, "clear rolled back", zap.Error(err))
		}
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	publishCommitted(ctx, s.publisher, s.log, appended)

	remaining, err := s.tasks.CountByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if remaining > 0 {
		err := fmt.Errorf("%w: %d tasks still stored after clear", taskboard_errors.ErrConsistencyViolation, remaining)
		s.log.ErrorCtx(ctx, "clear left task rows behind", zap.Int64("remaining", remaining), zap.Error(err))
		return err
	}

	s.log.DebugCtx(ctx, "tasks cleared", zap.Int("count", len(ids)))
	return nil
}

func taskLookupError(id uuid.UUID, err error) error {
	if errors.Is(err, taskboard_errors.ErrNotFound) {
		return fmt.Errorf("%w: %s", taskboard_errors.ErrTaskNotFound, id)
	}
	return taskboard_errors.NewStorageError("lookup task", err)
}
