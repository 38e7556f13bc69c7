package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cadenceapp/cadence/internal/core/domain"
	"github.com/cadenceapp/cadence/internal/core/stats"
)

type GoalService struct {
	repo         domain.GoalRepository
	activityRepo domain.ActivityRepository
	entryRepo    domain.EntryRepository
	userRepo     domain.UserRepository
}

func NewGoalService(repo domain.GoalRepository, activityRepo domain.ActivityRepository, entryRepo domain.EntryRepository, userRepo domain.UserRepository) *GoalService {
	return &GoalService{
		repo:         repo,
		activityRepo: activityRepo,
		entryRepo:    entryRepo,
		userRepo:     userRepo,
	}
}

type CreateGoalInput struct {
	UserID     string
	ActivityID string
	MetricID   string
	Title      string
	Target     float64
	Period     stats.Period
	StartDate  stats.DateKey
	EndDate    stats.DateKey
}

func (s *GoalService) Create(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	activity, err := s.activityRepo.GetByID(ctx, input.ActivityID)
	if err != nil {
		return nil, err
	}
	if activity.UserID != input.UserID {
		return nil, domain.ErrActivityNotFound
	}

	goal, err := domain.NewGoal(input.UserID, input.ActivityID, input.MetricID, input.Title, input.Target, input.Period, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) ListByUserID(ctx context.Context, userID string, activeOnly bool) ([]*domain.Goal, error) {
	return s.repo.ListByUserID(ctx, userID, activeOnly)
}

// Progress sums the goal's metric over [startDate, min(endDate, today)]
// in the user's timezone and derives the completion figures.
func (s *GoalService) Progress(ctx context.Context, goalID, userID string) (*domain.GoalProgressReport, error) {
	goal, err := s.owned(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	loc := user.Location()
	now := time.Now()

	from, err := goal.StartDate.Time(loc)
	if err != nil {
		return nil, fmt.Errorf("goal service: bad start date: %w", err)
	}

	upper := goal.EndDate
	if today := stats.Today(loc, now); today < upper {
		upper = today
	}
	upperDay, err := upper.Time(loc)
	if err != nil {
		return nil, fmt.Errorf("goal service: bad end date: %w", err)
	}
	// Inclusive upper bound: everything before the next local midnight.
	to := upperDay.AddDate(0, 0, 1).Add(-time.Nanosecond)

	sum, err := s.entryRepo.SumMetricInRange(ctx, goal.MetricID, from, to)
	if err != nil {
		return nil, err
	}

	progress, err := stats.ComputeGoalProgress(goal.Window(sum), loc, now)
	if err != nil {
		return nil, err
	}

	return &domain.GoalProgressReport{
		Goal:            goal,
		CurrentProgress: sum,
		Progress:        progress,
	}, nil
}

func (s *GoalService) Deactivate(ctx context.Context, goalID, userID string) error {
	goal, err := s.owned(ctx, goalID, userID)
	if err != nil {
		return err
	}

	goal.Deactivate()
	return s.repo.Update(ctx, goal)
}

func (s *GoalService) Delete(ctx context.Context, goalID, userID string) error {
	if _, err := s.owned(ctx, goalID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, goalID)
}

func (s *GoalService) owned(ctx context.Context, id, userID string) (*domain.Goal, error) {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	return goal, nil
}
