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

// Project service errors.
var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidProjectName = errors.New("project name is required")
)

const maxProjectNameLength = 200

// ProjectService handles project business logic.
type ProjectService struct {
	repo      *repository.Repository
	cache     *cache.Cache
	pointsTTL time.Duration
	metrics   metrics.Recorder
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo *repository.Repository, cache *cache.Cache, pointsTTL time.Duration, recorder metrics.Recorder) *ProjectService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ProjectService{
		repo:      repo,
		cache:     cache,
		pointsTTL: pointsTTL,
		metrics:   recorder,
	}
}

// CreateProjectInput defines input for creating a project.
type CreateProjectInput struct {
	Name        string
	Description string
	DueDate     *time.Time
	OwnerID     string
}

// CreateProject creates a new project owned by the caller.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*model.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > maxProjectNameLength {
		return nil, ErrInvalidProjectName
	}

	now := time.Now().UTC()
	project := &model.Project{
		ID:          newID(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		OwnerID:     input.OwnerID,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.metrics.IncProjectCreated()

	return project, nil
}

// GetProject retrieves a project owned by the caller.
func (s *ProjectService) GetProject(ctx context.Context, id, ownerID string) (*model.Project, error) {
	project, err := s.repo.GetProject(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// ListProjects retrieves all projects owned by the caller, newest first.
func (s *ProjectService) ListProjects(ctx context.Context, ownerID string) ([]*model.Project, error) {
	return s.repo.ListProjects(ctx, ownerID)
}

// UpdateProjectInput defines input for updating a project.
// Nil pointer fields are left unchanged.
type UpdateProjectInput struct {
	ID           string
	OwnerID      string
	Name         *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool // If true, set due_date to nil
}

// UpdateProject updates a project's mutable fields.
func (s *ProjectService) UpdateProject(ctx context.Context, input UpdateProjectInput) (*model.Project, error) {
	project, err := s.repo.GetProject(ctx, input.ID, input.OwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || len(name) > maxProjectNameLength {
			return nil, ErrInvalidProjectName
		}
		project.Name = name
	}

	if input.Description != nil {
		project.Description = strings.TrimSpace(*input.Description)
	}

	if input.ClearDueDate {
		project.DueDate = nil
	} else if input.DueDate != nil {
		project.DueDate = input.DueDate
	}

	project.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateProject(ctx, project); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	s.metrics.IncProjectUpdated()

	return project, nil
}

// DeleteProject removes a project. Tasks that reference it are left in
// place and keep their project id.
func (s *ProjectService) DeleteProject(ctx context.Context, id, ownerID string) error {
	if err := s.repo.DeleteProject(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	s.metrics.IncProjectDeleted()

	// Drop any cached rollup for the removed project
	_ = s.cache.InvalidateProjectPoints(ctx, id, ownerID)

	return nil
}

// ProjectPoints computes the points rollup for a project: the sum of
// points across its tasks and the sum across tasks marked Done.
// Results are cached briefly; task writes invalidate the cache.
func (s *ProjectService) ProjectPoints(ctx context.Context, id, ownerID string) (*model.ProjectPoints, error) {
	// Resolve the project first so an unknown or foreign id is a
	// not-found, never a zero rollup.
	if _, err := s.repo.GetProject(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	if cached, err := s.cache.GetProjectPoints(ctx, id, ownerID); err == nil {
		s.metrics.IncPointsCacheHit()
		return cached, nil
	}
	s.metrics.IncPointsCacheMiss()

	points, err := s.repo.ProjectPoints(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	// A failed cache write is ignored; the next miss recomputes.
	_ = s.cache.SetProjectPoints(ctx, ownerID, points, s.pointsTTL)

	return points, nil
}
