package mapper

import (
	"time"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

// timeLayout renders timestamps in UTC with millisecond precision.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		Position:    task.Position,
		Owner:       task.OwnerID,
		WorkspaceID: task.WorkspaceID,
		CreatedAt:   formatTime(task.CreatedAt),
	}

	if task.Color != nil {
		value := *task.Color
		item.Color = &value
	}

	if task.DueDate != nil {
		value := formatTime(*task.DueDate)
		item.DueDate = &value
	}

	return item
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
