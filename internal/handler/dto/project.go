package dto

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
)

// CreateProjectRequest represents the request body for creating a project.
type CreateProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// UpdateProjectRequest represents the request body for updating a project.
// Absent fields are left unchanged; an explicit null dueDate clears it.
type UpdateProjectRequest struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	DueDate     Optional[time.Time] `json:"dueDate,omitempty"`
}

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	OwnerID     string     `json:"ownerId"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ProjectPointsResponse represents a project's points rollup.
type ProjectPointsResponse struct {
	ProjectID       string `json:"projectId"`
	TotalPoints     int64  `json:"totalPoints"`
	CompletedPoints int64  `json:"completedPoints"`
}

// ToProjectResponse converts a Project model to ProjectResponse DTO.
func ToProjectResponse(project *model.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		DueDate:     project.DueDate,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToProjectListResponse converts a slice of Project models to DTOs.
func ToProjectListResponse(projects []*model.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(projects))
	for i, project := range projects {
		responses[i] = *ToProjectResponse(project)
	}
	return responses
}

// ToProjectPointsResponse converts a ProjectPoints model to its DTO.
func ToProjectPointsResponse(points *model.ProjectPoints) *ProjectPointsResponse {
	return &ProjectPointsResponse{
		ProjectID:       points.ProjectID,
		TotalPoints:     points.TotalPoints,
		CompletedPoints: points.CompletedPoints,
	}
}
