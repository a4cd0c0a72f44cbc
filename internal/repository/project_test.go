package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/testutil"
)

func TestRepository_CreateAndGetProject(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	project := testutil.NewTestProject(t, "owner-a")
	project.Description = "roadmap work"

	if err := repo.CreateProject(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}

	loaded, err := repo.GetProject(ctx, project.ID, "owner-a")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if loaded.Name != project.Name {
		t.Errorf("name mismatch: got %q, want %q", loaded.Name, project.Name)
	}
	if loaded.Description != "roadmap work" {
		t.Errorf("description mismatch: got %q", loaded.Description)
	}
	if loaded.DueDate != nil {
		t.Error("due date should be nil")
	}
}

func TestRepository_GetProject_WrongOwner(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	project := testutil.NewTestProject(t, "owner-a")
	if err := repo.CreateProject(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}

	// Another user's lookup must read as absence, not denial.
	if _, err := repo.GetProject(ctx, project.ID, "owner-b"); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound for foreign owner, got %v", err)
	}
}

func TestRepository_ListProjects_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	mine := testutil.NewTestProject(t, "owner-a")
	theirs := testutil.NewTestProject(t, "owner-b")

	if err := repo.CreateProject(ctx, mine); err != nil {
		t.Fatalf("create project: %v", err)
	}
	if err := repo.CreateProject(ctx, theirs); err != nil {
		t.Fatalf("create project: %v", err)
	}

	projects, err := repo.ListProjects(ctx, "owner-a")
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	if projects[0].ID != mine.ID {
		t.Errorf("unexpected project: %q", projects[0].ID)
	}
}

func TestRepository_UpdateProject(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	project := testutil.NewTestProject(t, "owner-a")
	if err := repo.CreateProject(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}

	due := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)
	project.Name = "Renamed"
	project.DueDate = &due
	project.UpdatedAt = time.Now().UTC()

	if err := repo.UpdateProject(ctx, project); err != nil {
		t.Fatalf("update project: %v", err)
	}

	loaded, err := repo.GetProject(ctx, project.ID, "owner-a")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if loaded.Name != "Renamed" {
		t.Errorf("name mismatch: got %q", loaded.Name)
	}
	if loaded.DueDate == nil || !loaded.DueDate.Equal(due) {
		t.Errorf("due date mismatch: got %v, want %v", loaded.DueDate, due)
	}

	// Clearing the due date stores null.
	project.DueDate = nil
	if err := repo.UpdateProject(ctx, project); err != nil {
		t.Fatalf("update project: %v", err)
	}
	loaded, err = repo.GetProject(ctx, project.ID, "owner-a")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if loaded.DueDate != nil {
		t.Errorf("expected cleared due date, got %v", loaded.DueDate)
	}
}

func TestRepository_UpdateProject_WrongOwner(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	project := testutil.NewTestProject(t, "owner-a")
	if err := repo.CreateProject(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}

	foreign := *project
	foreign.OwnerID = "owner-b"
	foreign.Name = "Hijacked"

	if err := repo.UpdateProject(ctx, &foreign); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}

	loaded, err := repo.GetProject(ctx, project.ID, "owner-a")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if loaded.Name != project.Name {
		t.Error("foreign update must not modify the project")
	}
}

func TestRepository_DeleteProject(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	project := testutil.NewTestProject(t, "owner-a")
	if err := repo.CreateProject(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}

	if err := repo.DeleteProject(ctx, project.ID, "owner-b"); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound for foreign delete, got %v", err)
	}

	if err := repo.DeleteProject(ctx, project.ID, "owner-a"); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	if _, err := repo.GetProject(ctx, project.ID, "owner-a"); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound after delete, got %v", err)
	}
}

func TestRepository_DeleteProject_LeavesTasks(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	project := testutil.NewTestProject(t, "owner-a")
	if err := repo.CreateProject(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}

	task := testutil.NewTestTask(t, project.ID, "owner-a")
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := repo.DeleteProject(ctx, project.ID, "owner-a"); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	// Orphaned tasks survive project deletion; there is no cascade.
	loaded, err := repo.GetTask(ctx, task.ID, "owner-a")
	if err != nil {
		t.Fatalf("get task after project delete: %v", err)
	}
	if loaded.ProjectID != project.ID {
		t.Errorf("task should still reference the deleted project, got %q", loaded.ProjectID)
	}
}
