package dto

type TaskItem struct {
	ID          string  `json:"_id"`
	User        string  `json:"user"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type TaskListResponse struct {
	Tasks []TaskItem `json:"tasks"`
	Count int        `json:"count"`
}

type TaskResponse struct {
	Message string   `json:"message,omitempty"`
	Task    TaskItem `json:"task"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
