package dto

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
)

// SubtaskPayload represents a subtask in requests and responses.
type SubtaskPayload struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// CreateTaskRequest represents the request body for creating a task.
type CreateTaskRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Status      string           `json:"status,omitempty"`
	Priority    string           `json:"priority,omitempty"`
	Type        string           `json:"type,omitempty"`
	Points      int              `json:"points,omitempty"`
	ProjectID   string           `json:"projectId"`
	DueDate     *time.Time       `json:"dueDate,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	Subtasks    []SubtaskPayload `json:"subtasks,omitempty"`
}

// UpdateTaskRequest represents the request body for updating a task.
// Absent fields are left unchanged. An explicit null dueDate clears it;
// a subtasks array replaces the stored list wholesale.
type UpdateTaskRequest struct {
	Title       *string                    `json:"title,omitempty"`
	Description *string                    `json:"description,omitempty"`
	Status      *string                    `json:"status,omitempty"`
	Priority    *string                    `json:"priority,omitempty"`
	Type        *string                    `json:"type,omitempty"`
	Points      *int                       `json:"points,omitempty"`
	DueDate     Optional[time.Time]        `json:"dueDate,omitempty"`
	Notes       *string                    `json:"notes,omitempty"`
	Subtasks    Optional[[]SubtaskPayload] `json:"subtasks,omitempty"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	Type        string           `json:"type"`
	Points      int              `json:"points"`
	ProjectID   string           `json:"projectId"`
	OwnerID     string           `json:"ownerId"`
	DueDate     *time.Time       `json:"dueDate,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	Subtasks    []SubtaskPayload `json:"subtasks"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ToSubtasks converts subtask payloads to model subtasks.
func ToSubtasks(payloads []SubtaskPayload) []model.Subtask {
	subtasks := make([]model.Subtask, len(payloads))
	for i, p := range payloads {
		subtasks[i] = model.Subtask{Title: p.Title, Completed: p.Completed}
	}
	return subtasks
}

// ToTaskResponse converts a Task model to TaskResponse DTO.
func ToTaskResponse(task *model.Task) *TaskResponse {
	subtasks := make([]SubtaskPayload, len(task.Subtasks))
	for i, s := range task.Subtasks {
		subtasks[i] = SubtaskPayload{Title: s.Title, Completed: s.Completed}
	}

	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		Type:        string(task.Type),
		Points:      task.Points,
		ProjectID:   task.ProjectID,
		OwnerID:     task.OwnerID,
		DueDate:     task.DueDate,
		Notes:       task.Notes,
		Subtasks:    subtasks,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskListResponse converts a slice of Task models to DTOs.
func ToTaskListResponse(tasks []*model.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = *ToTaskResponse(task)
	}
	return responses
}
