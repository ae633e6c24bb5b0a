package service

import (
	"context"
	"errors"
	"strings"

	dom "taskmanager/internal/domain"
	"taskmanager/internal/repo"
)

type SubtaskService struct {
	repo repo.SubtaskRepo
}

func NewSubtaskService(r repo.SubtaskRepo) *SubtaskService {
	return &SubtaskService{repo: r}
}

// List returns subtasks of the user's tasks, optionally only those of taskID.
func (s *SubtaskService) List(ctx context.Context, userID int64, taskID *int64) ([]dom.Subtask, error) {
	return s.repo.List(ctx, userID, taskID)
}

func (s *SubtaskService) GetByID(ctx context.Context, userID, id int64) (dom.Subtask, error) {
	st, err := s.repo.GetByID(ctx, userID, id)
	return st, notFound(err)
}

// Create attaches a subtask to taskID. The task is looked up before the body
// is validated: a missing or foreign task fails with ErrTaskNotOwned even when
// description is absent.
func (s *SubtaskService) Create(ctx context.Context, userID, taskID int64, description *string, completed bool) (dom.Subtask, error) {
	owned, err := s.repo.TaskOwned(ctx, userID, taskID)
	if err != nil {
		return dom.Subtask{}, err
	}
	if !owned {
		return dom.Subtask{}, ErrTaskNotOwned
	}
	if description == nil {
		return dom.Subtask{}, newFieldError("description", msgRequired)
	}
	desc := strings.TrimSpace(*description)
	if desc == "" {
		return dom.Subtask{}, newFieldError("description", msgBlank)
	}
	st, err := s.repo.Create(ctx, userID, dom.Subtask{
		TaskID:      taskID,
		Description: desc,
		IsCompleted: completed,
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Subtask{}, ErrTaskNotOwned
		}
		return dom.Subtask{}, err
	}
	return st, nil
}

func (s *SubtaskService) Update(ctx context.Context, userID, id int64, description *string, completed *bool) (dom.Subtask, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return dom.Subtask{}, notFound(err)
	}
	if description != nil {
		existing.Description = strings.TrimSpace(*description)
		if existing.Description == "" {
			return dom.Subtask{}, newFieldError("description", msgBlank)
		}
	}
	if completed != nil {
		existing.IsCompleted = *completed
	}
	st, err := s.repo.Update(ctx, userID, existing)
	return st, notFound(err)
}

func (s *SubtaskService) Delete(ctx context.Context, userID, id int64) error {
	return notFound(s.repo.Delete(ctx, userID, id))
}
