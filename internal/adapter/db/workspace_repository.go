package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

const listWorkspacesQuery = `
SELECT DISTINCT w.id, w.name, w.owner_id, w.created_at
FROM workspaces w
LEFT JOIN workspace_members m ON m.workspace_id = w.id
WHERE w.owner_id = ? OR m.user_id = ?
ORDER BY w.created_at DESC;
`

const insertWorkspaceQuery = `
INSERT INTO workspaces (id, name, owner_id, created_at)
VALUES (:id, :name, :owner_id, :created_at);
`

const insertMemberQuery = `INSERT INTO workspace_members (workspace_id, user_id) VALUES (?, ?);`

type WorkspaceRepository struct {
	db *sqlx.DB
}

type workspaceRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	OwnerID   string    `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
}

type memberRow struct {
	WorkspaceID string `db:"workspace_id"`
	UserID      string `db:"user_id"`
}

var _ ports.WorkspaceRepository = (*WorkspaceRepository)(nil)

func NewWorkspaceRepository(db *sqlx.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

func (r *WorkspaceRepository) ListWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error) {
	var rows []workspaceRow
	if err := r.db.SelectContext(ctx, &rows, listWorkspacesQuery, userID, userID); err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	if len(rows) == 0 {
		return []domain.Workspace{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	members, err := r.loadMembers(ctx, r.db, ids...)
	if err != nil {
		return nil, err
	}

	workspaces := make([]domain.Workspace, 0, len(rows))
	for _, row := range rows {
		workspaces = append(workspaces, mapWorkspaceRowToDomain(row, members[row.ID]))
	}
	return workspaces, nil
}

func (r *WorkspaceRepository) CreateWorkspace(ctx context.Context, workspace domain.Workspace, tasks []domain.Task) (domain.Workspace, error) {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		row := workspaceRow{
			ID:        workspace.ID,
			Name:      workspace.Name,
			OwnerID:   workspace.OwnerID,
			CreatedAt: workspace.CreatedAt,
		}
		if _, err := tx.NamedExecContext(ctx, insertWorkspaceQuery, row); err != nil {
			return fmt.Errorf("insert workspace: %w", err)
		}

		for _, member := range workspace.MemberIDs {
			if _, err := tx.ExecContext(ctx, insertMemberQuery, workspace.ID, member); err != nil {
				return fmt.Errorf("insert workspace member: %w", err)
			}
		}

		if len(tasks) == 0 {
			return nil
		}
		taskRows := make([]taskRow, 0, len(tasks))
		for _, task := range tasks {
			taskRows = append(taskRows, mapDomainTaskToTaskRow(task))
		}
		if _, err := tx.NamedExecContext(ctx, insertTaskQuery, taskRows); err != nil {
			return fmt.Errorf("insert workspace tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Workspace{}, err
	}
	return workspace, nil
}

func (r *WorkspaceRepository) GetWorkspace(ctx context.Context, id string) (domain.Workspace, error) {
	return r.getWorkspace(ctx, r.db, id, "")
}

func (r *WorkspaceRepository) RenameWorkspace(ctx context.Context, id, ownerID, name string) (domain.Workspace, error) {
	var workspace domain.Workspace
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		current, err := r.getWorkspace(ctx, tx, id, " FOR UPDATE")
		if err != nil {
			return err
		}
		if !current.IsOwner(ownerID) {
			return domain.ErrWorkspaceNotFound
		}

		if _, err := tx.ExecContext(ctx, `UPDATE workspaces SET name = ? WHERE id = ?;`, name, id); err != nil {
			return fmt.Errorf("rename workspace: %w", err)
		}
		current.Name = name
		workspace = current
		return nil
	})
	if err != nil {
		return domain.Workspace{}, err
	}
	return workspace, nil
}

func (r *WorkspaceRepository) DeleteWorkspace(ctx context.Context, id, ownerID string) ([]string, error) {
	var owners []string
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		current, err := r.getWorkspace(ctx, tx, id, " FOR UPDATE")
		if err != nil {
			return err
		}
		if !current.IsOwner(ownerID) {
			return domain.ErrWorkspaceNotFound
		}

		if err := tx.SelectContext(ctx, &owners, `SELECT DISTINCT owner_id FROM tasks WHERE workspace_id = ?;`, id); err != nil {
			return fmt.Errorf("select task owners: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE workspace_id = ?;`, id); err != nil {
			return fmt.Errorf("delete workspace tasks: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM workspace_members WHERE workspace_id = ?;`, id); err != nil {
			return fmt.Errorf("delete workspace members: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM workspaces WHERE id = ?;`, id); err != nil {
			return fmt.Errorf("delete workspace: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return owners, nil
}

func (r *WorkspaceRepository) getWorkspace(ctx context.Context, q sqlx.QueryerContext, id, lock string) (domain.Workspace, error) {
	var row workspaceRow
	err := sqlx.GetContext(ctx, q, &row, `SELECT id, name, owner_id, created_at FROM workspaces WHERE id = ?`+lock+`;`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Workspace{}, domain.ErrWorkspaceNotFound
	}
	if err != nil {
		return domain.Workspace{}, fmt.Errorf("select workspace: %w", err)
	}

	members, err := r.loadMembers(ctx, q, id)
	if err != nil {
		return domain.Workspace{}, err
	}
	return mapWorkspaceRowToDomain(row, members[id]), nil
}

func (r *WorkspaceRepository) loadMembers(ctx context.Context, q sqlx.QueryerContext, workspaceIDs ...string) (map[string][]string, error) {
	query, args, err := sqlx.In(`SELECT workspace_id, user_id FROM workspace_members WHERE workspace_id IN (?);`, workspaceIDs)
	if err != nil {
		return nil, fmt.Errorf("build members query: %w", err)
	}

	var rows []memberRow
	if err := sqlx.SelectContext(ctx, q, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select workspace members: %w", err)
	}

	members := make(map[string][]string, len(workspaceIDs))
	for _, row := range rows {
		members[row.WorkspaceID] = append(members[row.WorkspaceID], row.UserID)
	}
	return members, nil
}

func mapWorkspaceRowToDomain(row workspaceRow, members []string) domain.Workspace {
	if members == nil {
		members = []string{}
	}
	return domain.Workspace{
		ID:        row.ID,
		Name:      row.Name,
		OwnerID:   row.OwnerID,
		MemberIDs: members,
		CreatedAt: row.CreatedAt,
	}
}
