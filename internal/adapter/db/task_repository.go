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

const taskColumns = `id, title, description, status, priority, color, position, due_date, owner_id, workspace_id, created_at`

const insertTaskQuery = `
INSERT INTO tasks (id, title, description, status, priority, color, position, due_date, owner_id, workspace_id, created_at)
VALUES (:id, :title, :description, :status, :priority, :color, :position, :due_date, :owner_id, :workspace_id, :created_at);
`

const maxPositionQuery = `
SELECT MAX(position)
FROM tasks
WHERE owner_id = ? AND workspace_id = ? AND status = ?;
`

const selectOwnedTaskForUpdateQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND owner_id = ? FOR UPDATE;`

const updateTaskQuery = `
UPDATE tasks
SET title = :title, description = :description, status = :status, priority = :priority,
    color = :color, due_date = :due_date
WHERE id = :id AND owner_id = :owner_id;
`

const moveTaskQuery = `UPDATE tasks SET status = ?, position = ? WHERE id = ? AND owner_id = ?;`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Status      string         `db:"status"`
	Priority    string         `db:"priority"`
	Color       sql.NullString `db:"color"`
	Position    int64          `db:"position"`
	DueDate     sql.NullTime   `db:"due_date"`
	OwnerID     string         `db:"owner_id"`
	WorkspaceID string         `db:"workspace_id"`
	CreatedAt   time.Time      `db:"created_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListTasks orders by position, newest first among equal positions.
func (r *TaskRepository) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = ?`
	args := []any{filter.OwnerID}
	if filter.WorkspaceID != nil {
		query += ` AND workspace_id = ?`
		args = append(args, *filter.WorkspaceID)
	}
	query += ` ORDER BY position ASC, created_at DESC;`

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}
	return tasks, nil
}

func (r *TaskRepository) MaxPosition(ctx context.Context, ownerID, workspaceID string, status domain.TaskStatus) (int64, bool, error) {
	var position sql.NullInt64
	if err := r.db.GetContext(ctx, &position, maxPositionQuery, ownerID, workspaceID, string(status)); err != nil {
		return 0, false, fmt.Errorf("select max position: %w", err)
	}
	return position.Int64, position.Valid, nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	if _, err := r.db.NamedExecContext(ctx, insertTaskQuery, mapDomainTaskToTaskRow(task)); err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) UpdateOwnedTask(ctx context.Context, id, ownerID string, input domain.UpdateTaskInput) (domain.Task, error) {
	var updated domain.Task
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var row taskRow
		err := tx.GetContext(ctx, &row, selectOwnedTaskForUpdateQuery, id, ownerID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		if err != nil {
			return fmt.Errorf("select task: %w", err)
		}

		updated = input.Apply(mapTaskRowToDomainTask(row))
		if _, err := tx.NamedExecContext(ctx, updateTaskQuery, mapDomainTaskToTaskRow(updated)); err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return updated, nil
}

func (r *TaskRepository) DeleteOwnedTask(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND owner_id = ?;`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) MoveTasks(ctx context.Context, ownerID string, moves []domain.TaskMove) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, moveTaskQuery)
		if err != nil {
			return fmt.Errorf("prepare move: %w", err)
		}
		defer stmt.Close()

		for _, move := range moves {
			if _, err := stmt.ExecContext(ctx, string(move.Status), move.Position, move.ID, ownerID); err != nil {
				return fmt.Errorf("move task %s: %w", move.ID, err)
			}
		}
		return nil
	})
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      domain.TaskStatus(row.Status),
		Priority:    domain.TaskPriority(row.Priority),
		Position:    row.Position,
		OwnerID:     row.OwnerID,
		WorkspaceID: row.WorkspaceID,
		CreatedAt:   row.CreatedAt,
	}

	if row.Color.Valid {
		value := row.Color.String
		task.Color = &value
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}

	return task
}

func mapDomainTaskToTaskRow(task domain.Task) taskRow {
	row := taskRow{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		Position:    task.Position,
		OwnerID:     task.OwnerID,
		WorkspaceID: task.WorkspaceID,
		CreatedAt:   task.CreatedAt,
	}

	if task.Color != nil {
		row.Color = sql.NullString{String: *task.Color, Valid: true}
	}

	if task.DueDate != nil {
		row.DueDate = sql.NullTime{Time: *task.DueDate, Valid: true}
	}

	return row
}
