package dto

type WorkspaceItem struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Owner     string   `json:"owner"`
	Members   []string `json:"members"`
	CreatedAt string   `json:"createdAt"`
}

type WorkspaceRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}
