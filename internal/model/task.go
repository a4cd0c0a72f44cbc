package model

import "time"

// TaskStatus represents the workflow state of a task.
// Transitions are unrestricted; a task can be set to any status directly.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

// IsValid checks if the status is one of the known states.
func (s TaskStatus) IsValid() bool {
	return s == StatusToDo || s == StatusInProgress || s == StatusDone
}

// TaskPriority represents the urgency of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// IsValid checks if the priority is one of the known levels.
func (p TaskPriority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// TaskType categorizes the kind of work a task represents.
type TaskType string

const (
	TypeNewFeature  TaskType = "New Feature"
	TypeEnhancement TaskType = "Enhancement"
	TypeBug         TaskType = "Bug"
)

// IsValid checks if the type is one of the known categories.
func (t TaskType) IsValid() bool {
	return t == TypeNewFeature || t == TypeEnhancement || t == TypeBug
}

// Subtask is an entry embedded in a task's checklist. Subtasks have no
// independent identity; the whole list is replaced on every subtask update.
type Subtask struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task is a unit of work belonging to exactly one project and one user.
// ProjectID and OwnerID are immutable after creation.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Type        TaskType     `json:"type"`
	Points      int          `json:"points"`
	ProjectID   string       `json:"projectId"`
	OwnerID     string       `json:"ownerId"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	Subtasks    []Subtask    `json:"subtasks"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// AllSubtasksDone reports whether every subtask is completed.
// Returns false for an empty checklist. Clients use this for the
// "mark complete when all subtasks are done" affordance; the server never
// transitions status automatically.
func (t *Task) AllSubtasksDone() bool {
	if len(t.Subtasks) == 0 {
		return false
	}
	for _, st := range t.Subtasks {
		if !st.Completed {
			return false
		}
	}
	return true
}

// IsDone reports whether the task counts toward completed points.
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}
