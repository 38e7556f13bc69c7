package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cadenceapp/cadence/internal/core/domain"
)

var _ domain.ActivityRepository = (*CachedActivityRepository)(nil)

// CachedActivityRepository decorates an ActivityRepository with a Redis
// read-through cache for per-user activity lists. Writes invalidate the
// owning user's cached list.
type CachedActivityRepository struct {
	next   domain.ActivityRepository
	cache  *redis.Client
	logger zerolog.Logger
}

func NewCachedActivityRepository(next domain.ActivityRepository, cache *redis.Client, logger zerolog.Logger) *CachedActivityRepository {
	return &CachedActivityRepository{
		next:   next,
		cache:  cache,
		logger: logger.With().Str("component", "activity_cache").Logger(),
	}
}

func (r *CachedActivityRepository) cacheKey(userID string) string {
	return fmt.Sprintf("activities:%s", userID)
}

func (r *CachedActivityRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		r.logger.Warn().Err(err).Str("user_id", userID).Msg("cache invalidation failed")
	}
}

func (r *CachedActivityRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Activity, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var activities []*domain.Activity
		if err := json.Unmarshal([]byte(val), &activities); err == nil {
			return activities, nil
		}

		r.logger.Warn().Str("user_id", userID).Msg("corrupted cache entry, cleaning up key")
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		r.logger.Warn().Err(err).Msg("cache read error")
	}

	activities, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(activities); err == nil {
		if setErr := r.cache.Set(ctx, key, data, 30*time.Minute).Err(); setErr != nil {
			r.logger.Warn().Err(setErr).Msg("cache write error")
		}
	}

	return activities, nil
}

func (r *CachedActivityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	if err := r.next.Create(ctx, activity); err != nil {
		return err
	}
	r.invalidate(ctx, activity.UserID)
	return nil
}

func (r *CachedActivityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	if err := r.next.Update(ctx, activity); err != nil {
		return err
	}
	r.invalidate(ctx, activity.UserID)
	return nil
}

func (r *CachedActivityRepository) Delete(ctx context.Context, id string) error {
	activity, err := r.next.GetByID(ctx, id)
	if err == nil && activity != nil {
		defer r.invalidate(ctx, activity.UserID)
	}

	return r.next.Delete(ctx, id)
}

func (r *CachedActivityRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	activity, err := r.next.GetByID(ctx, id)
	if err == nil && activity != nil {
		defer r.invalidate(ctx, activity.UserID)
	}

	return r.next.UpdateStreaks(ctx, id, current, longest)
}
