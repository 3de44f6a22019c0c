package domain

import "time"

// PositionGap is the spacing between neighbouring tasks in a column. The wide
// gap lets a client drop a card between two others by picking a midpoint.
const PositionGap int64 = 1024

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusInReview   TaskStatus = "in-review"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists the board columns in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusInReview,
	TaskStatusCompleted,
}

func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	Color       *string
	Position    int64
	DueDate     *time.Time
	OwnerID     string
	WorkspaceID string
	CreatedAt   time.Time
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	Color       *string
	DueDate     *time.Time
	WorkspaceID string
}

// UpdateTaskInput carries a partial update. Nil pointers leave the field
// untouched; the *Set flags distinguish "clear" from "not supplied" for
// nullable fields.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	Color       *string
	ColorSet    bool
	DueDate     *time.Time
	DueDateSet  bool
}

func (in UpdateTaskInput) Empty() bool {
	return in.Title == nil &&
		in.Description == nil &&
		in.Status == nil &&
		in.Priority == nil &&
		!in.ColorSet &&
		!in.DueDateSet
}

// Apply returns a copy of t with the supplied fields replaced.
func (in UpdateTaskInput) Apply(t Task) Task {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.ColorSet {
		t.Color = in.Color
	}
	if in.DueDateSet {
		t.DueDate = in.DueDate
	}
	return t
}

// TaskMove is one entry of a drag-and-drop batch.
type TaskMove struct {
	ID       string
	Status   TaskStatus
	Position int64
}

type TaskFilter struct {
	OwnerID     string
	WorkspaceID *string
}

// NextPosition returns the position for a task appended to a column whose
// current maximum is maxPosition. found is false for an empty column.
func NextPosition(maxPosition int64, found bool) int64 {
	if !found {
		return PositionGap
	}
	return maxPosition + PositionGap
}
