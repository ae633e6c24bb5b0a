package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dom "taskmanager/internal/domain"
)

type taskFixture struct {
	svc        *TaskService
	tasks      *fakeTasks
	categories *fakeCategories
	tags       *fakeTags
}

func newTaskFixture() taskFixture {
	f := taskFixture{tasks: newFakeTasks(), categories: newFakeCategories(), tags: newFakeTags()}
	f.svc = NewTaskService(f.tasks, f.categories, f.tags)
	return f
}

func TestTaskCreateDefaultsAndBlankTitle(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()

	got, err := f.svc.Create(ctx, 1, dom.Task{Title: "  Write report "}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.UserID != 1 || got.Title != "Write report" || got.Status != dom.DefaultTaskStatus {
		t.Fatalf("unexpected task %+v", got)
	}

	_, err = f.svc.Create(ctx, 1, dom.Task{Title: "   "}, nil)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields["title"][0] != msgBlank {
		t.Fatalf("expected blank title error, got %v", err)
	}
}

func TestTaskCreateRejectsForeignReferences(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()
	own, _ := f.categories.Create(ctx, dom.Category{UserID: 1, Name: "mine"})
	foreign, _ := f.categories.Create(ctx, dom.Category{UserID: 2, Name: "theirs"})
	ownTag, _ := f.tags.Create(ctx, dom.Tag{UserID: 1, Name: "a"})
	foreignTag, _ := f.tags.Create(ctx, dom.Tag{UserID: 2, Name: "b"})

	if _, err := f.svc.Create(ctx, 1, dom.Task{Title: "ok", CategoryID: &own.ID}, []int64{ownTag.ID}); err != nil {
		t.Fatalf("own refs: %v", err)
	}

	_, err := f.svc.Create(ctx, 1, dom.Task{Title: "x", CategoryID: &foreign.ID}, []int64{ownTag.ID, foreignTag.ID, 99})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := verr.Fields["category"]; len(got) != 1 || got[0] != invalidPK(foreign.ID) {
		t.Fatalf("category errors %v", got)
	}
	if got := verr.Fields["tag_ids"]; len(got) != 2 || got[0] != invalidPK(foreignTag.ID) || got[1] != invalidPK(99) {
		t.Fatalf("tag_ids errors %v", got)
	}
}

func TestTaskUpdateAppliesPatch(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()
	cat, _ := f.categories.Create(ctx, dom.Category{UserID: 1, Name: "c"})
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	created, _ := f.svc.Create(ctx, 1, dom.Task{Title: "t", Description: "d", DueDate: &due, CategoryID: &cat.ID}, nil)

	prio := 3
	got, err := f.svc.Update(ctx, 1, created.ID, dom.TaskPatch{
		Priority:      &prio,
		ClearDueDate:  true,
		ClearCategory: true,
	}, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Priority != 3 || got.DueDate != nil || got.CategoryID != nil {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.Title != "t" || got.Description != "d" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if f.tasks.lastTagIDs != nil {
		t.Fatal("absent tag_ids must reach the repo as nil")
	}

	empty := []int64{}
	if _, err := f.svc.Update(ctx, 1, created.ID, dom.TaskPatch{}, &empty); err != nil {
		t.Fatalf("clear tags: %v", err)
	}
	if f.tasks.lastTagIDs == nil || len(*f.tasks.lastTagIDs) != 0 {
		t.Fatal("empty tag_ids must reach the repo as an empty slice")
	}
}

func TestTaskUpdateScopedToOwner(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()
	created, _ := f.svc.Create(ctx, 1, dom.Task{Title: "t"}, nil)
	title := "stolen"
	if _, err := f.svc.Update(ctx, 2, created.ID, dom.TaskPatch{Title: &title}, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := f.svc.Delete(ctx, 2, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.svc.GetByID(ctx, 2, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskListTrimsSearch(t *testing.T) {
	f := newTaskFixture()
	if _, err := f.svc.List(context.Background(), 1, dom.TaskFilter{Search: "  milk "}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if f.tasks.lastFilter.Search != "milk" {
		t.Fatalf("search not trimmed: %q", f.tasks.lastFilter.Search)
	}
}
