package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dom "taskmanager/internal/domain"
	"taskmanager/internal/repo"
)

type TaskService struct {
	tasks      repo.TaskRepo
	categories repo.CategoryRepo
	tags       repo.TagRepo
}

func NewTaskService(tasks repo.TaskRepo, categories repo.CategoryRepo, tags repo.TagRepo) *TaskService {
	return &TaskService{tasks: tasks, categories: categories, tags: tags}
}

func (s *TaskService) List(ctx context.Context, userID int64, f dom.TaskFilter) ([]dom.Task, error) {
	f.Search = strings.TrimSpace(f.Search)
	return s.tasks.List(ctx, userID, f)
}

func (s *TaskService) GetByID(ctx context.Context, userID, id int64) (dom.Task, error) {
	t, err := s.tasks.GetByID(ctx, userID, id)
	return t, notFound(err)
}

// Create stores t for userID. Empty status and zero priority take the model
// defaults; tagIDs nil or empty means no tags.
func (s *TaskService) Create(ctx context.Context, userID int64, t dom.Task, tagIDs []int64) (dom.Task, error) {
	t.UserID = userID
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return dom.Task{}, newFieldError("title", msgBlank)
	}
	if t.Status == "" {
		t.Status = dom.DefaultTaskStatus
	}
	if err := s.checkRefs(ctx, userID, t.CategoryID, tagIDs); err != nil {
		return dom.Task{}, err
	}
	return s.tasks.Create(ctx, t, tagIDs)
}

// Update applies patch to the user's task. tagIDs nil keeps the current tag
// set, an empty slice clears it, anything else replaces it.
func (s *TaskService) Update(ctx context.Context, userID, id int64, patch dom.TaskPatch, tagIDs *[]int64) (dom.Task, error) {
	existing, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		return dom.Task{}, notFound(err)
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return dom.Task{}, newFieldError("title", msgBlank)
		}
		patch.Title = &title
	}
	patch.Apply(&existing)

	var ids []int64
	if tagIDs != nil {
		ids = *tagIDs
	}
	var catID *int64
	if !patch.ClearCategory {
		catID = patch.CategoryID
	}
	if err := s.checkRefs(ctx, userID, catID, ids); err != nil {
		return dom.Task{}, err
	}

	t, err := s.tasks.Update(ctx, existing, tagIDs)
	return t, notFound(err)
}

func (s *TaskService) Delete(ctx context.Context, userID, id int64) error {
	return notFound(s.tasks.Delete(ctx, userID, id))
}

// checkRefs verifies that the referenced category and tags belong to userID.
func (s *TaskService) checkRefs(ctx context.Context, userID int64, categoryID *int64, tagIDs []int64) error {
	verr := &ValidationError{Fields: map[string][]string{}}
	if categoryID != nil {
		if _, err := s.categories.GetByID(ctx, userID, *categoryID); err != nil {
			if !errors.Is(err, repo.ErrNotFound) {
				return err
			}
			verr.Fields["category"] = []string{invalidPK(*categoryID)}
		}
	}
	if len(tagIDs) > 0 {
		owned, err := s.tags.OwnedIDs(ctx, userID, tagIDs)
		if err != nil {
			return err
		}
		have := make(map[int64]struct{}, len(owned))
		for _, id := range owned {
			have[id] = struct{}{}
		}
		for _, id := range tagIDs {
			if _, ok := have[id]; !ok {
				verr.Fields["tag_ids"] = append(verr.Fields["tag_ids"], invalidPK(id))
			}
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func invalidPK(id int64) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}
