package services

import (
	"context"
	"time"

	"github.com/cadenceapp/cadence/internal/core/domain"
	"github.com/cadenceapp/cadence/internal/core/stats"
)

// StatsService turns raw query rows (entry timestamps, scalar
// aggregates) into derived statistics via the pure stats package. It
// holds no state of its own; every request recomputes from storage.
type StatsService struct {
	activityRepo domain.ActivityRepository
	entryRepo    domain.EntryRepository
	userRepo     domain.UserRepository
	groupRepo    domain.GroupRepository
}

func NewStatsService(activityRepo domain.ActivityRepository, entryRepo domain.EntryRepository, userRepo domain.UserRepository, groupRepo domain.GroupRepository) *StatsService {
	return &StatsService{
		activityRepo: activityRepo,
		entryRepo:    entryRepo,
		userRepo:     userRepo,
		groupRepo:    groupRepo,
	}
}

func (s *StatsService) ActivityStats(ctx context.Context, activityID, userID string) (*domain.ActivityStats, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.UserID != userID {
		return nil, domain.ErrActivityNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.statsFor(ctx, activity, user.Location())
}

func (s *StatsService) Dashboard(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	loc := user.Location()

	activities, err := s.activityRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &domain.DashboardStats{
		UserID:     userID,
		Timezone:   user.Timezone,
		Activities: make([]domain.ActivityStats, 0, len(activities)),
	}

	for _, activity := range activities {
		if activity.ArchivedAt != nil {
			continue
		}
		st, err := s.statsFor(ctx, activity, loc)
		if err != nil {
			return nil, err
		}
		dashboard.Activities = append(dashboard.Activities, *st)
	}

	return dashboard, nil
}

// GroupStats merges the entry days of every member: the group
// streak survives as long as someone logged each day.
func (s *StatsService) GroupStats(ctx context.Context, groupID, userID string) (*domain.GroupStats, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	member, err := s.groupRepo.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrNotMember
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	loc := user.Location()

	members, err := s.groupRepo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	timestamps, err := s.entryRepo.EntryTimestamps(ctx, domain.EntryScope{GroupID: groupID})
	if err != nil {
		return nil, err
	}

	return &domain.GroupStats{
		GroupID:     group.ID,
		GroupName:   group.Name,
		MemberCount: len(members),
		Streaks:     stats.ComputeStreaks(localDayKeys(timestamps, loc), loc, time.Now()),
	}, nil
}

func (s *StatsService) statsFor(ctx context.Context, activity *domain.Activity, loc *time.Location) (*domain.ActivityStats, error) {
	scope := domain.EntryScope{UserID: activity.UserID, ActivityID: activity.ID}

	timestamps, err := s.entryRepo.EntryTimestamps(ctx, scope)
	if err != nil {
		return nil, err
	}
	days := localDayKeys(timestamps, loc)

	facts, err := s.entryRepo.Facts(ctx, scope)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	var firstKey stats.DateKey
	if facts.FirstEntryAt != nil {
		firstKey = stats.ToDateKey(*facts.FirstEntryAt, loc)
	}

	engagement, err := stats.ComputeEngagement(facts.TotalEntries, firstKey, len(days), loc, now)
	if err != nil {
		return nil, err
	}

	return &domain.ActivityStats{
		ActivityID:    activity.ID,
		ActivityTitle: activity.Title,
		Streaks:       stats.ComputeStreaks(days, loc, now),
		Engagement:    engagement,
	}, nil
}

// localDayKeys buckets raw entry instants into distinct calendar days in
// loc. Two entries on the same local day collapse into one key even when
// they fall on different UTC days.
func localDayKeys(timestamps []time.Time, loc *time.Location) []stats.DateKey {
	seen := make(map[stats.DateKey]struct{}, len(timestamps))
	keys := make([]stats.DateKey, 0, len(timestamps))
	for _, ts := range timestamps {
		k := stats.ToDateKey(ts, loc)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}
