package dto

type TaskItem struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Color       *string `json:"color"`
	Position    int64   `json:"position"`
	DueDate     *string `json:"dueDate"`
	Owner       string  `json:"owner"`
	WorkspaceID string  `json:"workspaceId"`
	CreatedAt   string  `json:"createdAt"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,maxbytes=65535"`
	Status      *string `json:"status" binding:"omitempty,oneof=todo in-progress in-review completed"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"dueDate" binding:"omitempty,taskdate"`
	Color       *string `json:"color" binding:"omitempty,max=32"`
	WorkspaceID string  `json:"workspaceId" binding:"required,uuid"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,maxbytes=65535"`
	Status      *string `json:"status" binding:"omitempty,oneof=todo in-progress in-review completed"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"dueDate" binding:"omitempty,taskdate"`
	Color       *string `json:"color" binding:"omitempty,max=32"`
}

type TaskMoveItem struct {
	ID       string `json:"_id" binding:"required"`
	Status   string `json:"status" binding:"required,oneof=todo in-progress in-review completed"`
	Position *int64 `json:"position" binding:"required,gte=0"`
}

type BatchUpdateTasksRequest struct {
	Tasks []TaskMoveItem `json:"tasks" binding:"dive"`
}
