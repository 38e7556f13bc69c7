package services

import (
	"context"

	"github.com/cadenceapp/cadence/internal/core/domain"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

type CategoryInput struct {
	UserID string
	Name   string
	Color  string
	Icon   string
}

func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	category, err := domain.NewCategory(input.UserID, input.Name, input.Color, input.Icon)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ListByUserID(ctx context.Context, userID string) ([]*domain.Category, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	category, err := s.owned(ctx, id, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := category.Update(input.Name, input.Color, input.Icon); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *CategoryService) owned(ctx context.Context, id, userID string) (*domain.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}
