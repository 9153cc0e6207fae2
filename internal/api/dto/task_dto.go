package dto

import (
	"github.com/spec-kit/planner-service/internal/domain"
)

// CreateTaskRequest payload.
type CreateTaskRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Type  string `json:"type" validate:"omitempty,oneof=task meeting deadline holiday news"`
}

// UpdateTaskRequest carries a partial update. Absent fields and explicit
// JSON nulls both decode to nil and leave the field unchanged.
type UpdateTaskRequest struct {
	Title  *string `json:"title" validate:"omitempty,min=1,max=200"`
	Date   *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Type   *string `json:"type" validate:"omitempty,oneof=task meeting deadline holiday news"`
	Status *string `json:"status" validate:"omitempty,oneof=todo done"`
}

// TaskResponse is the public task shape.
type TaskResponse struct {
	ID     string            `json:"id"`
	Title  string            `json:"title"`
	Date   string            `json:"date"`
	Type   domain.TaskType   `json:"type"`
	Status domain.TaskStatus `json:"status"`
	Source domain.TaskSource `json:"source"`
}

// NewTaskResponse maps a task to its public shape.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:     task.ID,
		Title:  task.Title,
		Date:   task.Date,
		Type:   task.Type,
		Status: task.Status,
		Source: task.Source,
	}
}

// NewTaskListResponse maps a task slice, never returning JSON null.
func NewTaskListResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i]))
	}
	return out
}
