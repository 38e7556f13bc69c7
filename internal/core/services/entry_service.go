package services

import (
	"context"
	"time"

	"github.com/cadenceapp/cadence/internal/core/domain"
	"github.com/cadenceapp/cadence/internal/core/workers"
)

type EntryService struct {
	repo         domain.EntryRepository
	activityRepo domain.ActivityRepository
	worker       *workers.StreakWorker
}

func NewEntryService(repo domain.EntryRepository, activityRepo domain.ActivityRepository, worker *workers.StreakWorker) *EntryService {
	return &EntryService{
		repo:         repo,
		activityRepo: activityRepo,
		worker:       worker,
	}
}

type MetricValueInput struct {
	MetricID string
	Value    float64
}

type CreateEntryInput struct {
	ActivityID string
	UserID     string
	LoggedAt   time.Time
	Notes      string
	Values     []MetricValueInput
}

type UpdateEntryInput struct {
	ID      string
	UserID  string
	Notes   string
	Values  []MetricValueInput
	Version int
}

func (s *EntryService) Create(ctx context.Context, input CreateEntryInput) (*domain.ProgressEntry, error) {
	entry := domain.NewProgressEntry(input.ActivityID, input.UserID, input.LoggedAt, metricValues(input.Values))
	entry.Notes = input.Notes

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	activity, err := s.activityRepo.GetByID(ctx, entry.ActivityID)
	if err != nil {
		return nil, err
	}
	if activity.UserID != entry.UserID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.worker.Enqueue(entry.ActivityID)

	return entry, nil
}

func (s *EntryService) Update(ctx context.Context, input UpdateEntryInput) (*domain.ProgressEntry, error) {
	existing, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && existing.Version != input.Version {
		return nil, domain.ErrEntryConflict
	}

	existing.Notes = input.Notes
	if input.Values != nil {
		existing.Values = metricValues(input.Values)
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.worker.Enqueue(existing.ActivityID)

	return existing, nil
}

func (s *EntryService) GetByID(ctx context.Context, id, userID string) (*domain.ProgressEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return entry, nil
}

func (s *EntryService) List(ctx context.Context, scope domain.EntryScope) ([]*domain.ProgressEntry, error) {
	if scope.ActivityID != "" {
		activity, err := s.activityRepo.GetByID(ctx, scope.ActivityID)
		if err != nil {
			return nil, err
		}
		if activity.UserID != scope.UserID {
			return nil, domain.ErrUnauthorized
		}
	}
	return s.repo.List(ctx, scope)
}

func (s *EntryService) Delete(ctx context.Context, id, userID string) error {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if entry.UserID != userID {
		return domain.ErrUnauthorized
	}

	activityID := entry.ActivityID

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.worker.Enqueue(activityID)

	return nil
}

func metricValues(in []MetricValueInput) []domain.MetricValue {
	if in == nil {
		return nil
	}
	out := make([]domain.MetricValue, len(in))
	for i, v := range in {
		out[i] = domain.MetricValue{MetricID: v.MetricID, Value: v.Value}
	}
	return out
}
