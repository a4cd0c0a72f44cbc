package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/testutil"
)

func TestRepository_CreateAndGetTask(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	task := testutil.NewTestTask(t, "project-1", "owner-a")
	task.Points = 5
	task.Notes = "spike first"
	task.Subtasks = []model.Subtask{
		{Title: "write proposal", Completed: true},
		{Title: "review", Completed: false},
	}

	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	loaded, err := repo.GetTask(ctx, task.ID, "owner-a")
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if loaded.Title != task.Title {
		t.Errorf("title mismatch: got %q, want %q", loaded.Title, task.Title)
	}
	if loaded.Status != model.StatusToDo || loaded.Priority != model.PriorityMedium || loaded.Type != model.TypeNewFeature {
		t.Errorf("defaults mismatch: %q/%q/%q", loaded.Status, loaded.Priority, loaded.Type)
	}
	if loaded.Points != 5 {
		t.Errorf("points mismatch: got %d", loaded.Points)
	}
	if len(loaded.Subtasks) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(loaded.Subtasks))
	}
	if loaded.Subtasks[0].Title != "write proposal" || !loaded.Subtasks[0].Completed {
		t.Errorf("subtask mismatch: %+v", loaded.Subtasks[0])
	}
	if loaded.Subtasks[1].Completed {
		t.Error("second subtask should not be completed")
	}
}

func TestRepository_GetTask_WrongOwner(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	task := testutil.NewTestTask(t, "project-1", "owner-a")
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if _, err := repo.GetTask(ctx, task.ID, "owner-b"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for foreign owner, got %v", err)
	}
}

func TestRepository_ListTasks_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	base := time.Now().UTC().Add(-time.Hour)
	var ids []string
	for i := 0; i < 3; i++ {
		task := testutil.NewTestTask(t, "project-1", "owner-a")
		task.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		task.UpdatedAt = task.CreatedAt
		if err := repo.CreateTask(ctx, task); err != nil {
			t.Fatalf("create task: %v", err)
		}
		ids = append(ids, task.ID)
	}

	tasks, err := repo.ListTasks(ctx, TaskFilter{OwnerID: "owner-a"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	// Most recently created first.
	for i, want := range []string{ids[2], ids[1], ids[0]} {
		if tasks[i].ID != want {
			t.Errorf("position %d: got %q, want %q", i, tasks[i].ID, want)
		}
	}
}

func TestRepository_ListTasks_ProjectFilter(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	inProject := testutil.NewTestTask(t, "project-1", "owner-a")
	elsewhere := testutil.NewTestTask(t, "project-2", "owner-a")
	foreign := testutil.NewTestTask(t, "project-1", "owner-b")

	for _, task := range []*model.Task{inProject, elsewhere, foreign} {
		if err := repo.CreateTask(ctx, task); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	tasks, err := repo.ListTasks(ctx, TaskFilter{OwnerID: "owner-a", ProjectID: "project-1"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].ID != inProject.ID {
		t.Errorf("unexpected task: %q", tasks[0].ID)
	}
}

func TestRepository_UpdateTask(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	task := testutil.NewTestTask(t, "project-1", "owner-a")
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	task.Status = model.StatusDone
	task.Priority = model.PriorityHigh
	task.Points = 8
	task.Subtasks = []model.Subtask{{Title: "only one", Completed: true}}
	task.UpdatedAt = time.Now().UTC()

	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}

	loaded, err := repo.GetTask(ctx, task.ID, "owner-a")
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if loaded.Status != model.StatusDone || loaded.Priority != model.PriorityHigh || loaded.Points != 8 {
		t.Errorf("update not applied: %q/%q/%d", loaded.Status, loaded.Priority, loaded.Points)
	}
	if len(loaded.Subtasks) != 1 || loaded.Subtasks[0].Title != "only one" {
		t.Errorf("subtasks should be replaced wholesale: %+v", loaded.Subtasks)
	}
}

func TestRepository_UpdateTask_WrongOwner(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	task := testutil.NewTestTask(t, "project-1", "owner-a")
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	foreign := *task
	foreign.OwnerID = "owner-b"
	foreign.Title = "Hijacked"

	if err := repo.UpdateTask(ctx, &foreign); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestRepository_DeleteTask(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	task := testutil.NewTestTask(t, "project-1", "owner-a")
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := repo.DeleteTask(ctx, task.ID, "owner-b"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for foreign delete, got %v", err)
	}

	if err := repo.DeleteTask(ctx, task.ID, "owner-a"); err != nil {
		t.Fatalf("delete task: %v", err)
	}

	if _, err := repo.GetTask(ctx, task.ID, "owner-a"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound after delete, got %v", err)
	}
}

func TestRepository_ProjectPoints(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	fixtures := []struct {
		points int
		status model.TaskStatus
	}{
		{3, model.StatusDone},
		{5, model.StatusToDo},
		{8, model.StatusDone},
	}

	for _, f := range fixtures {
		task := testutil.NewTestTask(t, "project-1", "owner-a")
		task.Points = f.points
		task.Status = f.status
		if err := repo.CreateTask(ctx, task); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	// A foreign task in the same project must not count.
	foreign := testutil.NewTestTask(t, "project-1", "owner-b")
	foreign.Points = 100
	foreign.Status = model.StatusDone
	if err := repo.CreateTask(ctx, foreign); err != nil {
		t.Fatalf("create task: %v", err)
	}

	points, err := repo.ProjectPoints(ctx, "project-1", "owner-a")
	if err != nil {
		t.Fatalf("project points: %v", err)
	}
	if points.TotalPoints != 16 {
		t.Errorf("total points: got %d, want 16", points.TotalPoints)
	}
	if points.CompletedPoints != 11 {
		t.Errorf("completed points: got %d, want 11", points.CompletedPoints)
	}
}

func TestRepository_ProjectPoints_Empty(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	points, err := repo.ProjectPoints(ctx, "empty-project", "owner-a")
	if err != nil {
		t.Fatalf("project points: %v", err)
	}
	if points.TotalPoints != 0 || points.CompletedPoints != 0 {
		t.Errorf("expected zeros, got %d/%d", points.TotalPoints, points.CompletedPoints)
	}
}
