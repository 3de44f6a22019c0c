package mapper

import (
	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

func ToWorkspaceItems(workspaces []domain.Workspace) []dto.WorkspaceItem {
	items := make([]dto.WorkspaceItem, 0, len(workspaces))
	for _, workspace := range workspaces {
		items = append(items, ToWorkspaceItem(workspace))
	}
	return items
}

func ToWorkspaceItem(workspace domain.Workspace) dto.WorkspaceItem {
	members := make([]string, len(workspace.MemberIDs))
	copy(members, workspace.MemberIDs)

	return dto.WorkspaceItem{
		ID:        workspace.ID,
		Name:      workspace.Name,
		Owner:     workspace.OwnerID,
		Members:   members,
		CreatedAt: formatTime(workspace.CreatedAt),
	}
}
