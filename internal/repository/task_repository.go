package repository

import (
	"context"

	"taskboard/internal/domain/task"
	taskboard_errors "taskboard/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresTaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &PostgresTaskRepository{db: db}
}

func (r *PostgresTaskRepository) Create(ctx context.Context, t *task.Task) error {
	res := r.db.WithContext(ctx).Create(t)
	return translate("create task", res.Error)
}

func (r *PostgresTaskRepository) GetAll(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, translate("list tasks", err)
	}
	return tasks, nil
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	var t task.Task
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return task.Task{}, translate("get task", err)
	}
	return t, nil
}

func (r *PostgresTaskRepository) GetByStatus(ctx context.Context, status task.Status) ([]task.Task, error) {
	var tasks []task.Task
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, translate("list tasks by status", err)
	}
	return tasks, nil
}

func (r *PostgresTaskRepository) GetByAssignee(ctx context.Context, userID uuid.UUID) ([]task.Task, error) {
	var tasks []task.Task
	err := r.db.WithContext(ctx).
		Where("assignee_id = ?", userID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, translate("list tasks by assignee", err)
	}
	return tasks, nil
}

// Update writes the mutable columns only; id and created_at are never touched.
func (r *PostgresTaskRepository) Update(ctx context.Context, t task.Task) error {
	res := r.db.WithContext(ctx).
		Model(&task.Task{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"title":       t.Title,
			"description": t.Description,
			"status":      t.Status,
			"assignee_id": t.AssigneeID,
			"updated_at":  t.UpdatedAt,
		})
	if res.Error != nil {
		return translate("update task", res.Error)
	}
	if res.RowsAffected == 0 {
		return taskboard_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&task.Task{}, "id = ?", id)
	if res.Error != nil {
		return translate("delete task", res.Error)
	}
	if res.RowsAffected == 0 {
		return taskboard_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresTaskRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (task.Task, error) {
	var t task.Task
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return task.Task{}, translate("lock task", err)
	}
	return t, nil
}

func (r *PostgresTaskRepository) GetAllForUpdate(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, translate("lock tasks", err)
	}
	return tasks, nil
}

func (r *PostgresTaskRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Delete(&task.Task{}, "id IN ?", ids)
	if res.Error != nil {
		return 0, translate("delete tasks", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *PostgresTaskRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&task.Task{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, translate("check task", err)
	}
	return count > 0, nil
}

func (r *PostgresTaskRepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&task.Task{}).
		Where("id IN ?", ids).
		Count(&count).Error
	if err != nil {
		return 0, translate("count tasks", err)
	}
	return count, nil
}

func (r *PostgresTaskRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&task.Task{}).Count(&count).Error; err != nil {
		return 0, translate("count tasks", err)
	}
	return count, nil
}
