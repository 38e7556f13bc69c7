package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cadenceapp/cadence/internal/core/domain"
	"github.com/cadenceapp/cadence/internal/core/stats"
)

type ActivityRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type EntryRepository interface {
	EntryTimestamps(ctx context.Context, scope domain.EntryScope) ([]time.Time, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type StreakJob struct {
	ActivityID string
}

// StreakWorker refreshes the cached streak columns on activities after
// entry writes, off the request path. Jobs are deduplicated only by the
// channel buffer; recomputing twice is harmless since the computation is
// pure.
type StreakWorker struct {
	activityRepo ActivityRepository
	entryRepo    EntryRepository
	userRepo     UserRepository
	jobs         chan StreakJob
	log          zerolog.Logger
}

func NewStreakWorker(aRepo ActivityRepository, eRepo EntryRepository, uRepo UserRepository, log zerolog.Logger) *StreakWorker {
	return &StreakWorker{
		activityRepo: aRepo,
		entryRepo:    eRepo,
		userRepo:     uRepo,
		jobs:         make(chan StreakJob, 100),
		log:          log.With().Str("component", "streak_worker").Logger(),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		w.log.Info().Msg("streak worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.log.Info().Msg("streak worker shutting down")
				return
			}
		}
	}()
}

func (w *StreakWorker) Enqueue(activityID string) {
	select {
	case w.jobs <- StreakJob{ActivityID: activityID}:
	default:
		w.log.Warn().Str("activity_id", activityID).Msg("streak queue full, dropping job")
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	activity, err := w.activityRepo.GetByID(ctx, job.ActivityID)
	if err != nil {
		w.log.Error().Err(err).Str("activity_id", job.ActivityID).Msg("fetching activity failed")
		return
	}

	user, err := w.userRepo.GetByID(ctx, activity.UserID)
	if err != nil {
		w.log.Error().Err(err).Str("user_id", activity.UserID).Msg("fetching user failed")
		return
	}
	loc := user.Location()

	timestamps, err := w.entryRepo.EntryTimestamps(ctx, domain.EntryScope{
		UserID:     activity.UserID,
		ActivityID: activity.ID,
	})
	if err != nil {
		w.log.Error().Err(err).Str("activity_id", job.ActivityID).Msg("fetching entry timestamps failed")
		return
	}

	// Raw instants are bucketed into the user's local calendar days here;
	// ComputeStreaks deduplicates the keys.
	keys := make([]stats.DateKey, len(timestamps))
	for i, ts := range timestamps {
		keys[i] = stats.ToDateKey(ts, loc)
	}

	result := stats.ComputeStreaks(keys, loc, time.Now())

	if activity.CurrentStreak == result.CurrentStreak && activity.LongestStreak == result.LongestStreak {
		return
	}

	if err := w.activityRepo.UpdateStreaks(ctx, activity.ID, result.CurrentStreak, result.LongestStreak); err != nil {
		w.log.Error().Err(err).Str("activity_id", activity.ID).Msg("updating streaks failed")
		return
	}

	w.log.Debug().
		Str("activity_id", activity.ID).
		Int("current", result.CurrentStreak).
		Int("longest", result.LongestStreak).
		Msg("streaks refreshed")
}
