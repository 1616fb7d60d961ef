package services_test

import (
	"context"
	"testing"

	"taskboard/internal/domain/task"
	"taskboard/internal/services"
	taskboard_errors "taskboard/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		input      task.Task
		wantErr    error
		wantStatus task.Status
	}{
		{
			name:       "defaults status to open",
			input:      task.Task{Title: "no status"},
			wantStatus: task.StatusOpen,
		},
		{
			name:       "keeps given status",
			input:      task.Task{Title: "started", Status: task.StatusInProgress},
			wantStatus: task.StatusInProgress,
		},
		{
			name:    "rejects supplied id",
			input:   task.Task{ID: uuid.New(), Title: "has id"},
			wantErr: taskboard_errors.ErrMalformedRequest,
		},
		{
			name:    "rejects unknown status",
			input:   task.Task{Title: "bad", Status: "BLOCKED"},
			wantErr: taskboard_errors.ErrMalformedRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			svc := services.NewTaskService(h.taskStore)

			got, err := svc.Create(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, h.taskCount(t))
				assert.Zero(t, h.eventCount(t))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, int64(1), h.eventCount(t))
		})
	}
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	svc := services.NewTaskService(h.taskStore)

	created, err := svc.Create(ctx, task.Task{Title: "first"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, task.Task{Title: "second", Status: task.StatusDone})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "second", updated.Title)

	_, err = svc.Update(ctx, uuid.Nil, task.Task{Title: "x", Status: task.StatusOpen})
	assert.ErrorIs(t, err, taskboard_errors.ErrMalformedRequest)

	_, err = svc.Update(ctx, created.ID, task.Task{Title: "x"})
	assert.ErrorIs(t, err, taskboard_errors.ErrMalformedRequest)

	_, err = svc.Update(ctx, uuid.New(), task.Task{Title: "x", Status: task.StatusOpen})
	assert.ErrorIs(t, err, taskboard_errors.ErrTaskNotFound)
}

func TestTaskService_List(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	svc := services.NewTaskService(h.taskStore)

	alice := uuid.New()
	bob := uuid.New()
	for _, tk := range []task.Task{
		{Title: "alice open", Status: task.StatusOpen, AssigneeID: &alice},
		{Title: "alice done", Status: task.StatusDone, AssigneeID: &alice},
		{Title: "bob open", Status: task.StatusOpen, AssigneeID: &bob},
		{Title: "unassigned", Status: task.StatusOpen},
	} {
		_, err := svc.Create(ctx, tk)
		require.NoError(t, err)
	}

	open := task.StatusOpen
	tests := []struct {
		name   string
		filter services.TaskFilter
		want   []string
	}{
		{"no filter", services.TaskFilter{}, []string{"alice open", "alice done", "bob open", "unassigned"}},
		{"status", services.TaskFilter{Status: &open}, []string{"alice open", "bob open", "unassigned"}},
		{"assignee", services.TaskFilter{Assignee: &alice}, []string{"alice open", "alice done"}},
		{"status and assignee", services.TaskFilter{Status: &open, Assignee: &alice}, []string{"alice open"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.filter)
			require.NoError(t, err)
			titles := make([]string, 0, len(got))
			for _, tk := range got {
				titles = append(titles, tk.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestTaskService_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	svc := services.NewTaskService(h.taskStore)

	a, err := svc.Create(ctx, task.Task{Title: "a"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, task.Task{Title: "b"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	_, found, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, svc.Clear(ctx))
	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
