package ports

import (
	"context"

	"tasktracker/internal/core/domain"
)

type TaskRepository interface {
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	// MaxPosition returns the highest position in the owner's column, found is
	// false when the column has no task yet.
	MaxPosition(ctx context.Context, ownerID, workspaceID string, status domain.TaskStatus) (position int64, found bool, err error)
	CreateTask(ctx context.Context, task domain.Task) (domain.Task, error)
	// UpdateOwnedTask loads the task matching both id and ownerID, applies
	// input and persists it. A task owned by someone else is ErrTaskNotFound.
	UpdateOwnedTask(ctx context.Context, id, ownerID string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteOwnedTask(ctx context.Context, id, ownerID string) error
	// MoveTasks applies every move in one transaction. Moves targeting tasks
	// not owned by ownerID are skipped.
	MoveTasks(ctx context.Context, ownerID string, moves []domain.TaskMove) error
}

type TaskService interface {
	ListTasks(ctx context.Context, userID string, workspaceID *string) ([]domain.Task, error)
	CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id, userID string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id, userID string) error
	ReorderTasks(ctx context.Context, userID string, moves []domain.TaskMove) error
}

// TaskCache is a best-effort accelerator for a user's full task list. Its
// methods never fail: a broken backend behaves like an empty cache.
type TaskCache interface {
	GetTasks(ctx context.Context, userID string) ([]domain.Task, bool)
	SetTasks(ctx context.Context, userID string, tasks []domain.Task)
	Invalidate(ctx context.Context, userID string)
}
