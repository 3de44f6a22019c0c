package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type WorkspaceService struct {
	workspaceRepository ports.WorkspaceRepository
	cache               ports.TaskCache
}

func NewWorkspaceService(workspaceRepository ports.WorkspaceRepository, cache ports.TaskCache) *WorkspaceService {
	return &WorkspaceService{workspaceRepository: workspaceRepository, cache: cache}
}

func (s *WorkspaceService) ListWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error) {
	return s.workspaceRepository.ListWorkspaces(ctx, userID)
}

func (s *WorkspaceService) CreateWorkspace(ctx context.Context, userID, name string) (domain.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Workspace{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	return s.workspaceRepository.CreateWorkspace(ctx, newWorkspace(userID, name), nil)
}

// CreateDemoWorkspace seeds the onboarding board: three cards in every column.
func (s *WorkspaceService) CreateDemoWorkspace(ctx context.Context, userID string) (domain.Workspace, error) {
	workspace := newWorkspace(userID, demoWorkspaceName)
	tasks := demoTasks(userID, workspace.ID, workspace.CreatedAt)

	created, err := s.workspaceRepository.CreateWorkspace(ctx, workspace, tasks)
	if err != nil {
		return domain.Workspace{}, err
	}

	s.cache.Invalidate(ctx, userID)
	return created, nil
}

// GetWorkspace hides workspaces the caller cannot see behind
// ErrWorkspaceNotFound, so existence does not leak.
func (s *WorkspaceService) GetWorkspace(ctx context.Context, id, userID string) (domain.Workspace, error) {
	workspace, err := s.workspaceRepository.GetWorkspace(ctx, id)
	if err != nil {
		return domain.Workspace{}, err
	}
	if !workspace.HasAccess(userID) {
		return domain.Workspace{}, domain.ErrWorkspaceNotFound
	}
	return workspace, nil
}

func (s *WorkspaceService) RenameWorkspace(ctx context.Context, id, userID, name string) (domain.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Workspace{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	return s.workspaceRepository.RenameWorkspace(ctx, id, userID, name)
}

func (s *WorkspaceService) DeleteWorkspace(ctx context.Context, id, userID string) error {
	owners, err := s.workspaceRepository.DeleteWorkspace(ctx, id, userID)
	if err != nil {
		return err
	}

	// Members may have had tasks in the workspace too.
	for _, ownerID := range owners {
		s.cache.Invalidate(ctx, ownerID)
	}
	return nil
}

func newWorkspace(userID, name string) domain.Workspace {
	return domain.Workspace{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerID:   userID,
		MemberIDs: []string{userID},
		CreatedAt: timestamp(),
	}
}

var (
	_ ports.WorkspaceService = (*WorkspaceService)(nil)
	_ ports.DemoSeeder       = (*WorkspaceService)(nil)
)
