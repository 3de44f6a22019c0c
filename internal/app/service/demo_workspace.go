package service

import (
	"time"

	"github.com/google/uuid"

	"tasktracker/internal/core/domain"
)

const demoWorkspaceName = "🚀 Getting Started"

type demoCard struct {
	title       string
	description string
	color       string
	priority    domain.TaskPriority
	dueInDays   int
}

var demoBoard = map[domain.TaskStatus][]demoCard{
	domain.TaskStatusTodo: {
		{"📝 Create your first task", "Use the + button on any column to add a card. Only the title is required.", "#6366f1", domain.TaskPriorityHigh, 1},
		{"🎨 Give a card a color", "Colors make it easy to spot related work across columns.", "#8b5cf6", domain.TaskPriorityLow, 2},
		{"📅 Set a due date", "Cards with a due date show up on the timeline view.", "#a855f7", domain.TaskPriorityMedium, 3},
	},
	domain.TaskStatusInProgress: {
		{"🖱️ Drag this card to another column", "Drag and drop moves a card between columns and remembers its position.", "#f59e0b", domain.TaskPriorityHigh, 1},
		{"🔀 Reorder cards inside a column", "Drop a card between two others to change its place.", "#f97316", domain.TaskPriorityMedium, 2},
		{"👀 Try the other views", "The same tasks are available as a list, a table and a timeline.", "#ef4444", domain.TaskPriorityLow, 4},
	},
	domain.TaskStatusInReview: {
		{"🗂️ Create a workspace", "Workspaces keep the tasks of different projects apart.", "#10b981", domain.TaskPriorityMedium, 5},
		{"✏️ Rename this workspace", "Owners can rename or delete a workspace at any time.", "#14b8a6", domain.TaskPriorityLow, 6},
		{"🔍 Filter by priority", "Priorities are low, medium or high.", "#06b6d4", domain.TaskPriorityMedium, 7},
	},
	domain.TaskStatusCompleted: {
		{"✅ Sign up", "Your account is ready.", "#22c55e", domain.TaskPriorityMedium, 0},
		{"📧 Verify your email", "Your email address is confirmed.", "#84cc16", domain.TaskPriorityMedium, 0},
		{"🎉 Open your first board", "You are looking at it.", "#eab308", domain.TaskPriorityLow, 0},
	},
}

func demoTasks(userID, workspaceID string, now time.Time) []domain.Task {
	tasks := make([]domain.Task, 0, 12)
	for _, status := range domain.TaskStatuses {
		for i, card := range demoBoard[status] {
			color := card.color
			task := domain.Task{
				ID:          uuid.NewString(),
				Title:       card.title,
				Description: card.description,
				Status:      status,
				Priority:    card.priority,
				Color:       &color,
				Position:    int64(i+1) * domain.PositionGap,
				OwnerID:     userID,
				WorkspaceID: workspaceID,
				CreatedAt:   now,
			}
			if card.dueInDays > 0 {
				due := now.AddDate(0, 0, card.dueInDays)
				task.DueDate = &due
			}
			tasks = append(tasks, task)
		}
	}
	return tasks
}
