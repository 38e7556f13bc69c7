package services

import (
	"context"
	"fmt"

	"github.com/cadenceapp/cadence/internal/core/domain"
)

type ActivityService struct {
	repo         domain.ActivityRepository
	categoryRepo domain.CategoryRepository
	metricRepo   domain.MetricRepository
}

func NewActivityService(repo domain.ActivityRepository, categoryRepo domain.CategoryRepository, metricRepo domain.MetricRepository) *ActivityService {
	return &ActivityService{
		repo:         repo,
		categoryRepo: categoryRepo,
		metricRepo:   metricRepo,
	}
}

type CreateActivityInput struct {
	UserID      string
	CategoryID  string
	Title       string
	Description string
	Unit        string
	Color       string
	Icon        string
}

type UpdateActivityInput struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Unit        string
	Color       string
	Icon        string
	Version     int
}

func (s *ActivityService) Create(ctx context.Context, input CreateActivityInput) (*domain.Activity, error) {
	if input.CategoryID != "" {
		category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category.UserID != input.UserID {
			return nil, domain.ErrCategoryNotFound
		}
	}

	activity, err := domain.NewActivity(input.UserID, input.CategoryID, input.Title, input.Description, input.Unit, input.Color, input.Icon)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *ActivityService) GetByID(ctx context.Context, id, userID string) (*domain.Activity, error) {
	return s.owned(ctx, id, userID)
}

func (s *ActivityService) ListByUserID(ctx context.Context, userID string) ([]*domain.Activity, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *ActivityService) Update(ctx context.Context, input UpdateActivityInput) error {
	activity, err := s.owned(ctx, input.ID, input.UserID)
	if err != nil {
		return err
	}

	if input.Version > 0 && activity.Version != input.Version {
		return fmt.Errorf("%w: client v%d vs server v%d", domain.ErrActivityConflict, input.Version, activity.Version)
	}

	title := mergeString(input.Title, activity.Title)
	desc := mergeString(input.Description, activity.Description)
	unit := mergeString(input.Unit, activity.Unit)
	color := mergeString(input.Color, activity.Color)
	icon := mergeString(input.Icon, activity.Icon)

	if err := activity.Update(title, desc, unit, color, icon); err != nil {
		return err
	}

	return s.repo.Update(ctx, activity)
}

func (s *ActivityService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *ActivityService) AddMetric(ctx context.Context, activityID, userID, name, unit, aggregation string) (*domain.Metric, error) {
	if _, err := s.owned(ctx, activityID, userID); err != nil {
		return nil, err
	}

	metric, err := domain.NewMetric(activityID, name, unit, aggregation)
	if err != nil {
		return nil, err
	}

	if err := s.metricRepo.Create(ctx, metric); err != nil {
		return nil, err
	}
	return metric, nil
}

func (s *ActivityService) ListMetrics(ctx context.Context, activityID, userID string) ([]*domain.Metric, error) {
	if _, err := s.owned(ctx, activityID, userID); err != nil {
		return nil, err
	}
	return s.metricRepo.ListByActivityID(ctx, activityID)
}

func (s *ActivityService) owned(ctx context.Context, id, userID string) (*domain.Activity, error) {
	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity.UserID != userID {
		return nil, domain.ErrActivityNotFound
	}
	return activity, nil
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}
