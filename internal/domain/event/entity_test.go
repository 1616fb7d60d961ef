package event_test

import (
	"testing"
	"time"

	"taskboard/internal/domain/event"
	"taskboard/internal/domain/task"
	"taskboard/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTask() task.Task {
	assignee := uuid.New()
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return task.Task{
		ID:          uuid.New(),
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Minute),
		Title:       "Write report",
		Description: "quarterly numbers",
		Status:      task.StatusInProgress,
		AssigneeID:  &assignee,
	}
}

func TestInsertEventOf_Task(t *testing.T) {
	tk := sampleTask()

	e, err := event.InsertEventOf(tk, uuid.NullUUID{})
	require.NoError(t, err)

	assert.Equal(t, event.ChangeInsert, e.Type)
	assert.Equal(t, "Task", e.EntityName)
	assert.Equal(t, tk.ID, e.EntityID)
	assert.Equal(t, int64(1), e.EntityVersion)
	assert.False(t, e.CreatedBy.Valid)
	assert.Equal(t, uuid.Nil, e.ID, "id is assigned by the event log")
	assert.True(t, e.CreatedAt.IsZero(), "created_at is assigned by the event log")

	assert.Equal(t, tk.ID.String(), e.Body["id"])
	assert.Equal(t, "Write report", e.Body["title"])
	assert.Equal(t, "quarterly numbers", e.Body["description"])
	assert.Equal(t, "IN_PROGRESS", e.Body["status"])
	assert.Equal(t, tk.AssigneeID.String(), e.Body["assignee_id"])
	assert.Equal(t, "2024-03-01T09:30:00Z", e.Body["created_at"])
	assert.Equal(t, "2024-03-01T09:31:00Z", e.Body["updated_at"])
	assert.Len(t, e.Body, 7)
}

func TestUpdateEventOf_Task_NilAssignee(t *testing.T) {
	tk := sampleTask()
	tk.AssigneeID = nil
	actor := uuid.NullUUID{UUID: uuid.New(), Valid: true}

	e, err := event.UpdateEventOf(tk, actor)
	require.NoError(t, err)

	assert.Equal(t, event.ChangeUpdate, e.Type)
	assert.Equal(t, actor, e.CreatedBy)
	v, ok := e.Body["assignee_id"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestDeleteEventOf_OnlyCarriesID(t *testing.T) {
	tk := sampleTask()

	e := event.DeleteEventOf(tk, uuid.NullUUID{})

	assert.Equal(t, event.ChangeDelete, e.Type)
	assert.Equal(t, "Task", e.EntityName)
	assert.Equal(t, map[string]any{"id": tk.ID.String()}, e.Body)
}

func TestInsertEventOf_User(t *testing.T) {
	u := user.User{ID: uuid.New(), CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Name: "alice"}

	e, err := event.InsertEventOf(u, uuid.NullUUID{})
	require.NoError(t, err)

	assert.Equal(t, "User", e.EntityName)
	assert.Equal(t, u.ID, e.EntityID)
	assert.Equal(t, map[string]any{
		"id":         u.ID.String(),
		"created_at": "2024-01-02T03:04:05Z",
		"name":       "alice",
	}, e.Body)
}

func TestFactory_IsDeterministic(t *testing.T) {
	tk := sampleTask()

	a, err := event.UpdateEventOf(tk, uuid.NullUUID{})
	require.NoError(t, err)
	b, err := event.UpdateEventOf(tk, uuid.NullUUID{})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
