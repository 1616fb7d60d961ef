package services_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"taskboard/internal/domain/event"
	"taskboard/internal/repository"
	"taskboard/internal/services"
	"taskboard/internal/testutil"
	"taskboard/pkg/clock"
	"taskboard/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

type harness struct {
	db     *gorm.DB
	clock  *clock.Monotonic
	tasks  repository.TaskRepository
	users  repository.UserRepository
	events repository.EventRepository
	tx     repository.Transactor
	pub    *recordingPublisher
	logs   *observer.ObservedLogs
	log    *logger.Logger

	taskStore *services.TaskPersistenceService
	userStore *services.UserPersistenceService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.OpenDB(t)
	clk := clock.NewMonotonic()
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{Logger: zap.New(core)}

	h := &harness{
		db:     db,
		clock:  clk,
		tasks:  repository.NewTaskRepository(db),
		users:  repository.NewUserRepository(db),
		events: repository.NewEventRepository(db, clk.Now),
		tx:     repository.NewTransactor(db, clk.Now),
		pub:    &recordingPublisher{},
		logs:   logs,
		log:    log,
	}
	h.taskStore = services.NewTaskPersistenceService(h.tasks, h.tx, h.pub, clk.Now, log)
	h.userStore = services.NewUserPersistenceService(h.users, h.tx, h.pub, clk.Now, log)
	return h
}

func (h *harness) eventCount(t *testing.T) int64 {
	t.Helper()
	n, err := h.events.Count(context.Background())
	require.NoError(t, err)
	return n
}

func (h *harness) history(t *testing.T, entity string, id uuid.UUID) []event.Event {
	t.Helper()
	evts, err := h.events.History(context.Background(), entity, id)
	require.NoError(t, err)
	return evts
}

func (h *harness) taskCount(t *testing.T) int64 {
	t.Helper()
	n, err := h.tasks.Count(context.Background())
	require.NoError(t, err)
	return n
}

func (h *harness) userCount(t *testing.T) int64 {
	t.Helper()
	n, err := h.users.Count(context.Background())
	require.NoError(t, err)
	return n
}

// recordingPublisher keeps every published event; err, when set, is returned
// after recording.
type recordingPublisher struct {
	mu        sync.Mutex
	published []event.Event
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, evts []event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, evts...)
	return p.err
}

func (p *recordingPublisher) events() []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.Event(nil), p.published...)
}

// failingEvents makes every append inside a transaction fail.
type failingEvents struct {
	repository.EventRepository
	err error
}

func (f failingEvents) Append(context.Context, *event.Event) error {
	return f.err
}

type sabotagedTransactor struct {
	inner repository.Transactor
	err   error
}

func (s sabotagedTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, stores repository.Stores) error) error {
	return s.inner.WithinTransaction(ctx, func(ctx context.Context, st repository.Stores) error {
		st.Events = failingEvents{EventRepository: st.Events, err: s.err}
		return fn(ctx, st)
	})
}

// stickyTasks reports rows as still present after they were deleted.
type stickyTasks struct {
	repository.TaskRepository
}

func (stickyTasks) Exists(context.Context, uuid.UUID) (bool, error) {
	return true, nil
}

func (stickyTasks) CountByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	return int64(len(ids)), nil
}

type stickyUsers struct {
	repository.UserRepository
}

func (stickyUsers) Exists(context.Context, uuid.UUID) (bool, error) {
	return true, nil
}

func (stickyUsers) CountByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	return int64(len(ids)), nil
}

// snapshotOf is the body an INSERT or UPDATE event is expected to carry for v.
func snapshotOf(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}
