package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/cache"
	"github.com/taskdeck/taskdeck/internal/metrics"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// Task service errors.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidTitle    = errors.New("task title is required")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidTaskType = errors.New("invalid task type")
	ErrInvalidPoints   = errors.New("points must be zero or positive")
	ErrProjectRequired = errors.New("project id is required")

	ErrInvalidSubtaskTitle = errors.New("subtask title is required")
)

const maxTaskTitleLength = 200

// normalizeSubtasks trims subtask titles and rejects blank ones.
// A nil list normalizes to an empty slice so the stored JSON is
// always an array.
func normalizeSubtasks(subtasks []model.Subtask) ([]model.Subtask, error) {
	normalized := make([]model.Subtask, 0, len(subtasks))
	for _, st := range subtasks {
		st.Title = strings.TrimSpace(st.Title)
		if st.Title == "" {
			return nil, ErrInvalidSubtaskTitle
		}
		normalized = append(normalized, st)
	}
	return normalized, nil
}

// TaskService handles task business logic.
type TaskService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	metrics metrics.Recorder
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *repository.Repository, cache *cache.Cache, recorder metrics.Recorder) *TaskService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TaskService{
		repo:    repo,
		cache:   cache,
		metrics: recorder,
	}
}

// CreateTaskInput defines input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Type        string
	Points      int
	ProjectID   string
	OwnerID     string
	DueDate     *time.Time
	Notes       string
	Subtasks    []model.Subtask
}

// CreateTask creates a new task inside a project the caller owns.
// The project reference is validated at creation and is immutable after.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || len(title) > maxTaskTitleLength {
		return nil, ErrInvalidTitle
	}

	if input.ProjectID == "" {
		return nil, ErrProjectRequired
	}

	status := model.StatusToDo
	if input.Status != "" {
		status = model.TaskStatus(input.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
	}

	priority := model.PriorityMedium
	if input.Priority != "" {
		priority = model.TaskPriority(input.Priority)
		if !priority.IsValid() {
			return nil, ErrInvalidPriority
		}
	}

	taskType := model.TypeNewFeature
	if input.Type != "" {
		taskType = model.TaskType(input.Type)
		if !taskType.IsValid() {
			return nil, ErrInvalidTaskType
		}
	}

	if input.Points < 0 {
		return nil, ErrInvalidPoints
	}

	subtasks, err := normalizeSubtasks(input.Subtasks)
	if err != nil {
		return nil, err
	}

	// The project must exist and belong to the caller. A foreign
	// project is reported exactly like a missing one.
	if _, err := s.repo.GetProject(ctx, input.ProjectID, input.OwnerID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	task := &model.Task{
		ID:          newID(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      status,
		Priority:    priority,
		Type:        taskType,
		Points:      input.Points,
		ProjectID:   input.ProjectID,
		OwnerID:     input.OwnerID,
		DueDate:     input.DueDate,
		Notes:       strings.TrimSpace(input.Notes),
		Subtasks:    subtasks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.metrics.IncTaskCreated()

	// Invalidate the project rollup
	_ = s.cache.InvalidateProjectPoints(ctx, task.ProjectID, task.OwnerID)

	return task, nil
}

// GetTask retrieves a task owned by the caller.
func (s *TaskService) GetTask(ctx context.Context, id, ownerID string) (*model.Task, error) {
	task, err := s.repo.GetTask(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// ListTasksInput defines input for listing tasks.
type ListTasksInput struct {
	OwnerID   string
	ProjectID string // Optional filter
}

// ListTasks retrieves the caller's tasks, newest first,
// optionally restricted to one project.
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]*model.Task, error) {
	return s.repo.ListTasks(ctx, repository.TaskFilter{
		OwnerID:   input.OwnerID,
		ProjectID: input.ProjectID,
	})
}

// UpdateTaskInput defines input for updating a task.
// Nil pointer fields are left unchanged. Subtasks, when present,
// replace the stored list wholesale.
type UpdateTaskInput struct {
	ID           string
	OwnerID      string
	Title        *string
	Description  *string
	Status       *string
	Priority     *string
	Type         *string
	Points       *int
	DueDate      *time.Time
	ClearDueDate bool // If true, set due_date to nil
	Notes        *string
	Subtasks     []model.Subtask
	HasSubtasks  bool // Distinguishes "replace with empty" from "unchanged"
}

// UpdateTask updates a task's mutable fields. The project reference
// cannot be changed.
func (s *TaskService) UpdateTask(ctx context.Context, input UpdateTaskInput) (*model.Task, error) {
	task, err := s.repo.GetTask(ctx, input.ID, input.OwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || len(title) > maxTaskTitleLength {
			return nil, ErrInvalidTitle
		}
		task.Title = title
	}

	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}

	if input.Status != nil {
		status := model.TaskStatus(*input.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
		task.Status = status
	}

	if input.Priority != nil {
		priority := model.TaskPriority(*input.Priority)
		if !priority.IsValid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = priority
	}

	if input.Type != nil {
		taskType := model.TaskType(*input.Type)
		if !taskType.IsValid() {
			return nil, ErrInvalidTaskType
		}
		task.Type = taskType
	}

	if input.Points != nil {
		if *input.Points < 0 {
			return nil, ErrInvalidPoints
		}
		task.Points = *input.Points
	}

	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if input.Notes != nil {
		task.Notes = strings.TrimSpace(*input.Notes)
	}

	if input.HasSubtasks {
		subtasks, err := normalizeSubtasks(input.Subtasks)
		if err != nil {
			return nil, err
		}
		task.Subtasks = subtasks
	}

	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	s.metrics.IncTaskUpdated()

	// Invalidate the project rollup
	_ = s.cache.InvalidateProjectPoints(ctx, task.ProjectID, task.OwnerID)

	return task, nil
}

// DeleteTask removes a task the caller owns.
func (s *TaskService) DeleteTask(ctx context.Context, id, ownerID string) error {
	// Fetch first so we know which project rollup to invalidate.
	task, err := s.repo.GetTask(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := s.repo.DeleteTask(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	s.metrics.IncTaskDeleted()

	// Invalidate the project rollup
	_ = s.cache.InvalidateProjectPoints(ctx, task.ProjectID, task.OwnerID)

	return nil
}
