package service

import (
	"context"
	"strings"

	dom "taskmanager/internal/domain"
	"taskmanager/internal/repo"
)

type TagService struct {
	repo repo.TagRepo
}

func NewTagService(r repo.TagRepo) *TagService {
	return &TagService{repo: r}
}

func (s *TagService) List(ctx context.Context, userID int64) ([]dom.Tag, error) {
	return s.repo.List(ctx, userID)
}

func (s *TagService) GetByID(ctx context.Context, userID, id int64) (dom.Tag, error) {
	t, err := s.repo.GetByID(ctx, userID, id)
	return t, notFound(err)
}

func (s *TagService) Create(ctx context.Context, userID int64, name string) (dom.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dom.Tag{}, newFieldError("name", msgBlank)
	}
	return s.repo.Create(ctx, dom.Tag{UserID: userID, Name: name})
}

func (s *TagService) Update(ctx context.Context, userID, id int64, name *string) (dom.Tag, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return dom.Tag{}, notFound(err)
	}
	if name != nil {
		existing.Name = strings.TrimSpace(*name)
		if existing.Name == "" {
			return dom.Tag{}, newFieldError("name", msgBlank)
		}
	}
	t, err := s.repo.Update(ctx, existing)
	return t, notFound(err)
}

func (s *TagService) Delete(ctx context.Context, userID, id int64) error {
	return notFound(s.repo.Delete(ctx, userID, id))
}
