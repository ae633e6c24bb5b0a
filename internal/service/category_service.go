package service

import (
	"context"
	"strings"

	dom "taskmanager/internal/domain"
	"taskmanager/internal/repo"
)

type CategoryService struct {
	repo repo.CategoryRepo
}

func NewCategoryService(r repo.CategoryRepo) *CategoryService {
	return &CategoryService{repo: r}
}

func (s *CategoryService) List(ctx context.Context, userID int64) ([]dom.Category, error) {
	return s.repo.List(ctx, userID)
}

func (s *CategoryService) GetByID(ctx context.Context, userID, id int64) (dom.Category, error) {
	c, err := s.repo.GetByID(ctx, userID, id)
	return c, notFound(err)
}

// Create stores a category owned by userID.
func (s *CategoryService) Create(ctx context.Context, userID int64, name, color string) (dom.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dom.Category{}, newFieldError("name", msgBlank)
	}
	return s.repo.Create(ctx, dom.Category{
		UserID: userID,
		Name:   name,
		Color:  color,
	})
}

// Update changes the given fields; nil leaves a field as is.
func (s *CategoryService) Update(ctx context.Context, userID, id int64, name, color *string) (dom.Category, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return dom.Category{}, notFound(err)
	}
	if name != nil {
		existing.Name = strings.TrimSpace(*name)
		if existing.Name == "" {
			return dom.Category{}, newFieldError("name", msgBlank)
		}
	}
	if color != nil {
		existing.Color = *color
	}
	c, err := s.repo.Update(ctx, existing)
	return c, notFound(err)
}

func (s *CategoryService) Delete(ctx context.Context, userID, id int64) error {
	return notFound(s.repo.Delete(ctx, userID, id))
}
