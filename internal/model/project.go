package model

import "time"

// Project is an owner-scoped unit of work grouping tasks.
// OwnerID is set at creation and never changes; every query that touches a
// project filters by both id and owner so a foreign project is
// indistinguishable from a missing one.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	OwnerID     string     `json:"ownerId"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ProjectPoints is the per-project effort rollup.
// CompletedPoints counts only tasks whose status is Done.
type ProjectPoints struct {
	ProjectID       string `json:"projectId"`
	TotalPoints     int64  `json:"totalPoints"`
	CompletedPoints int64  `json:"completedPoints"`
}
