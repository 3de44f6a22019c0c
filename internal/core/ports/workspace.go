package ports

import (
	"context"

	"tasktracker/internal/core/domain"
)

type WorkspaceRepository interface {
	ListWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error)
	// CreateWorkspace stores the workspace, its members and the given tasks
	// atomically.
	CreateWorkspace(ctx context.Context, workspace domain.Workspace, tasks []domain.Task) (domain.Workspace, error)
	GetWorkspace(ctx context.Context, id string) (domain.Workspace, error)
	RenameWorkspace(ctx context.Context, id, ownerID, name string) (domain.Workspace, error)
	// DeleteWorkspace removes the workspace and every task in it, returning the
	// distinct owners of the removed tasks.
	DeleteWorkspace(ctx context.Context, id, ownerID string) ([]string, error)
}

type WorkspaceService interface {
	ListWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error)
	CreateWorkspace(ctx context.Context, userID, name string) (domain.Workspace, error)
	CreateDemoWorkspace(ctx context.Context, userID string) (domain.Workspace, error)
	GetWorkspace(ctx context.Context, id, userID string) (domain.Workspace, error)
	RenameWorkspace(ctx context.Context, id, userID, name string) (domain.Workspace, error)
	DeleteWorkspace(ctx context.Context, id, userID string) error
}
