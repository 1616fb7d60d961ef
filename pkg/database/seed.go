package database

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/domain/task"
	"taskboard/internal/domain/user"
	"taskboard/internal/services"
	taskboard_errors "taskboard/pkg/errors"
)

// SeedConfig holds the sample data created by SeedDevelopment.
type SeedConfig struct {
	UserNames []string
	Tasks     []SeedTask
}

type SeedTask struct {
	Title       string
	Description string
	Status      task.Status
	Assignee    string
}

func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		UserNames: []string{"alice", "bob", "carol"},
		Tasks: []SeedTask{
			{Title: "Set up CI", Description: "lint, test and build on every push", Status: task.StatusDone, Assignee: "alice"},
			{Title: "Write API docs", Status: task.StatusInProgress, Assignee: "bob"},
			{Title: "Plan next sprint", Status: task.StatusOpen, Assignee: "carol"},
			{Title: "Triage bug reports", Status: task.StatusOpen},
		},
	}
}

// SeedResult holds what SeedDevelopment created or found.
type SeedResult struct {
	Users        []user.User
	Tasks        []task.Task
	SkippedTasks bool
}

// SeedDevelopment creates the configured users and tasks through the services
// so that every row gets its INSERT event. Existing users are reused; tasks are
// only created into an empty task table.
func SeedDevelopment(ctx context.Context, users *services.UserService, tasks *services.TaskService, cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}
	result := &SeedResult{}

	existing, err := users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	byName := make(map[string]user.User, len(existing))
	for _, u := range existing {
		byName[u.Name] = u
	}

	for _, name := range cfg.UserNames {
		if u, ok := byName[name]; ok {
			result.Users = append(result.Users, u)
			continue
		}
		created, err := users.Create(ctx, user.User{Name: name})
		if errors.Is(err, taskboard_errors.ErrDuplicateName) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", name, err)
		}
		byName[name] = created
		result.Users = append(result.Users, created)
	}

	currentTasks, err := tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(currentTasks) > 0 {
		result.SkippedTasks = true
		return result, nil
	}

	for _, st := range cfg.Tasks {
		t := task.Task{Title: st.Title, Description: st.Description, Status: st.Status}
		if u, ok := byName[st.Assignee]; ok {
			id := u.ID
			t.AssigneeID = &id
		}
		created, err := tasks.Create(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("failed to seed task %q: %w", st.Title, err)
		}
		result.Tasks = append(result.Tasks, created)
	}

	return result, nil
}
