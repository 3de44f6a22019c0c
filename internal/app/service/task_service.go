package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type TaskService struct {
	taskRepository      ports.TaskRepository
	workspaceRepository ports.WorkspaceRepository
	cache               ports.TaskCache
}

func NewTaskService(
	taskRepository ports.TaskRepository,
	workspaceRepository ports.WorkspaceRepository,
	cache ports.TaskCache,
) *TaskService {
	return &TaskService{
		taskRepository:      taskRepository,
		workspaceRepository: workspaceRepository,
		cache:               cache,
	}
}

// ListTasks returns the caller's tasks. Only the unfiltered listing goes
// through the cache; a workspace-scoped listing always reads the database.
func (s *TaskService) ListTasks(ctx context.Context, userID string, workspaceID *string) ([]domain.Task, error) {
	if workspaceID == nil {
		if tasks, ok := s.cache.GetTasks(ctx, userID); ok {
			return tasks, nil
		}
	}

	tasks, err := s.taskRepository.ListTasks(ctx, domain.TaskFilter{OwnerID: userID, WorkspaceID: workspaceID})
	if err != nil {
		return nil, err
	}

	if workspaceID == nil {
		s.cache.SetTasks(ctx, userID, tasks)
	}
	return tasks, nil
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Status == "" {
		input.Status = domain.TaskStatusTodo
	}
	if input.Priority == "" {
		input.Priority = domain.TaskPriorityMedium
	}
	if err := validateCreateTask(input); err != nil {
		return domain.Task{}, err
	}

	workspace, err := s.workspaceRepository.GetWorkspace(ctx, input.WorkspaceID)
	if err != nil {
		return domain.Task{}, err
	}
	if !workspace.HasAccess(userID) {
		return domain.Task{}, domain.ErrWorkspaceNotFound
	}

	maxPosition, found, err := s.taskRepository.MaxPosition(ctx, userID, input.WorkspaceID, input.Status)
	if err != nil {
		return domain.Task{}, fmt.Errorf("compute task position: %w", err)
	}

	task, err := s.taskRepository.CreateTask(ctx, domain.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Color:       input.Color,
		Position:    domain.NextPosition(maxPosition, found),
		DueDate:     input.DueDate,
		OwnerID:     userID,
		WorkspaceID: input.WorkspaceID,
		CreatedAt:   timestamp(),
	})
	if err != nil {
		return domain.Task{}, err
	}

	s.cache.Invalidate(ctx, userID)
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id, userID string, input domain.UpdateTaskInput) (domain.Task, error) {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		input.Title = &title
	}
	if err := validateUpdateTask(input); err != nil {
		return domain.Task{}, err
	}

	task, err := s.taskRepository.UpdateOwnedTask(ctx, id, userID, input)
	if err != nil {
		return domain.Task{}, err
	}

	s.cache.Invalidate(ctx, userID)
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id, userID string) error {
	if err := s.taskRepository.DeleteOwnedTask(ctx, id, userID); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, userID)
	return nil
}

// ReorderTasks persists the column and position of every card touched by a
// drag-and-drop. The whole batch commits or none of it does.
func (s *TaskService) ReorderTasks(ctx context.Context, userID string, moves []domain.TaskMove) error {
	for i, move := range moves {
		if strings.TrimSpace(move.ID) == "" {
			return fmt.Errorf("%w: tasks[%d] has no id", domain.ErrValidation, i)
		}
		if !move.Status.Valid() {
			return fmt.Errorf("%w: tasks[%d] has invalid status %q", domain.ErrValidation, i, move.Status)
		}
		if move.Position < 0 {
			return fmt.Errorf("%w: tasks[%d] has negative position", domain.ErrValidation, i)
		}
	}

	if len(moves) > 0 {
		if err := s.taskRepository.MoveTasks(ctx, userID, moves); err != nil {
			return err
		}
	}

	s.cache.Invalidate(ctx, userID)
	return nil
}

func validateCreateTask(input domain.CreateTaskInput) error {
	if input.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.WorkspaceID) == "" {
		return fmt.Errorf("%w: workspace id is required", domain.ErrValidation)
	}
	if !input.Status.Valid() {
		return fmt.Errorf("%w: invalid status %q", domain.ErrValidation, input.Status)
	}
	if !input.Priority.Valid() {
		return fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, input.Priority)
	}
	return nil
}

func validateUpdateTask(input domain.UpdateTaskInput) error {
	if input.Empty() {
		return fmt.Errorf("%w: no field to update", domain.ErrValidation)
	}
	if input.Title != nil && *input.Title == "" {
		return fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
	}
	if input.Status != nil && !input.Status.Valid() {
		return fmt.Errorf("%w: invalid status %q", domain.ErrValidation, *input.Status)
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, *input.Priority)
	}
	return nil
}

var _ ports.TaskService = (*TaskService)(nil)

// timestamp matches the millisecond precision of the DATETIME(3) columns so a
// freshly created row compares equal to its stored copy.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
