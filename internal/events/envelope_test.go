package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"taskboard/internal/domain/event"
	"taskboard/internal/domain/user"
	"taskboard/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	u := user.User{ID: uuid.New(), CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Name: "alice"}
	e, err := event.InsertEventOf(u, uuid.NullUUID{})
	require.NoError(t, err)
	e.ID = uuid.New()
	e.CreatedAt = time.Date(2024, 1, 2, 3, 4, 6, 0, time.UTC)

	env, err := events.NewEnvelope(e)
	require.NoError(t, err)

	assert.Equal(t, e.ID.String(), env.EventID)
	assert.Equal(t, "INSERT", env.EventType)
	assert.Equal(t, "User", env.AggregateType)
	assert.Equal(t, u.ID.String(), env.AggregateID)
	assert.Equal(t, int64(1), env.EntityVersion)
	assert.Nil(t, env.CreatedBy)
	assert.True(t, env.OccurredAt.Equal(e.CreatedAt))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "alice", payload["name"])
	assert.Equal(t, u.ID.String(), payload["id"])
}

func TestNewEnvelope_WithActor(t *testing.T) {
	actor := uuid.New()
	e := event.DeleteEventOf(user.User{ID: uuid.New()}, uuid.NullUUID{UUID: actor, Valid: true})

	env, err := events.NewEnvelope(e)
	require.NoError(t, err)
	require.NotNil(t, env.CreatedBy)
	assert.Equal(t, actor.String(), *env.CreatedBy)
	assert.Equal(t, "DELETE", env.EventType)
}

func TestChannelFor(t *testing.T) {
	assert.Equal(t, "taskboard:events:task", events.ChannelFor("", "Task"))
	assert.Equal(t, "audit:user", events.ChannelFor("audit", "User"))
}
