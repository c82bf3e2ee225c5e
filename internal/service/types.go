package service

// StatusPending is the only status the client assigns itself, on creation.
const StatusPending = "pending"

// Task represents a single task item as returned by the API.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// TaskInput is the request body of create and update.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Input returns the task's editable fields as a TaskInput.
func (t Task) Input() TaskInput {
	return TaskInput{Title: t.Title, Description: t.Description, Status: t.Status}
}
