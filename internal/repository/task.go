package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskdeck/taskdeck/internal/model"
)

// Common errors for task repository operations.
var (
	ErrTaskNotFound = errors.New("task not found")
)

// TaskFilter defines filters for listing tasks.
type TaskFilter struct {
	OwnerID   string
	ProjectID string // optional; empty means all projects
}

// CreateTask inserts a new task into the database.
// Subtasks are persisted as a JSONB document array.
func (r *Repository) CreateTask(ctx context.Context, task *model.Task) error {
	subtasks, err := marshalSubtasks(task.Subtasks)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (id, title, description, status, priority, type, points, project_id, owner_id, due_date, notes, subtasks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.pool.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Type,
		task.Points,
		task.ProjectID,
		task.OwnerID,
		task.DueDate,
		task.Notes,
		subtasks,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetTask retrieves a task by id, scoped to its owner.
// Same not-found masking as projects: a foreign task reads as absent.
func (r *Repository) GetTask(ctx context.Context, id, ownerID string) (*model.Task, error) {
	query := `
		SELECT id, title, description, status, priority, type, points, project_id, owner_id, due_date, notes, subtasks, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND owner_id = $2
	`

	task, err := scanTask(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// ListTasks retrieves tasks owned by the given user, newest first,
// optionally filtered to a single project.
func (r *Repository) ListTasks(ctx context.Context, filter TaskFilter) ([]*model.Task, error) {
	query := `
		SELECT id, title, description, status, priority, type, points, project_id, owner_id, due_date, notes, subtasks, created_at, updated_at
		FROM tasks
		WHERE owner_id = $1
	`
	args := []any{filter.OwnerID}

	if filter.ProjectID != "" {
		query += " AND project_id = $2"
		args = append(args, filter.ProjectID)
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTask updates a task's mutable fields, scoped to its owner.
// The project reference is immutable and is not part of the update set.
func (r *Repository) UpdateTask(ctx context.Context, task *model.Task) error {
	subtasks, err := marshalSubtasks(task.Subtasks)
	if err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET title = $3, description = $4, status = $5, priority = $6, type = $7, points = $8, due_date = $9, notes = $10, subtasks = $11, updated_at = $12
		WHERE id = $1 AND owner_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Type,
		task.Points,
		task.DueDate,
		task.Notes,
		subtasks,
		task.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// DeleteTask removes a task, scoped to its owner.
func (r *Repository) DeleteTask(ctx context.Context, id, ownerID string) error {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND owner_id = $2
	`

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// ProjectPoints sums task points for a project, scoped to its owner.
// A project with no tasks yields zeros, not an error, so the query does not
// distinguish "no tasks" from "no such project" - callers resolve the
// project first when that distinction matters.
func (r *Repository) ProjectPoints(ctx context.Context, projectID, ownerID string) (*model.ProjectPoints, error) {
	query := `
		SELECT
			COALESCE(SUM(points), 0),
			COALESCE(SUM(points) FILTER (WHERE status = 'Done'), 0)
		FROM tasks
		WHERE project_id = $1 AND owner_id = $2
	`

	points := &model.ProjectPoints{ProjectID: projectID}
	err := r.pool.QueryRow(ctx, query, projectID, ownerID).Scan(
		&points.TotalPoints,
		&points.CompletedPoints,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate project points: %w", err)
	}

	return points, nil
}

// scanTask scans a single row into a Task model.
func scanTask(row pgx.Row) (*model.Task, error) {
	var task model.Task
	var subtasks []byte

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.Type,
		&task.Points,
		&task.ProjectID,
		&task.OwnerID,
		&task.DueDate,
		&task.Notes,
		&subtasks,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(subtasks) > 0 {
		if err := json.Unmarshal(subtasks, &task.Subtasks); err != nil {
			return nil, fmt.Errorf("failed to decode subtasks: %w", err)
		}
	}
	if task.Subtasks == nil {
		task.Subtasks = []model.Subtask{}
	}

	return &task, nil
}

// marshalSubtasks encodes the subtask list for the JSONB column.
// A nil list is stored as an empty array so reads always see a list.
func marshalSubtasks(subtasks []model.Subtask) ([]byte, error) {
	if subtasks == nil {
		subtasks = []model.Subtask{}
	}
	data, err := json.Marshal(subtasks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode subtasks: %w", err)
	}
	return data, nil
}
