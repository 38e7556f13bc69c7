package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cadenceapp/cadence/internal/core/domain"
)

type PostgresActivityRepository struct {
	db *sqlx.DB
}

func NewPostgresActivityRepository(db *sqlx.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (
			id, user_id, category_id, title, description, unit,
			color, icon, sort_order, version, current_streak, longest_streak,
			created_at, updated_at, archived_at
		) VALUES (
			:id, :user_id, :category_id, :title, :description, :unit,
			:color, :icon, :sort_order, 1, 0, 0,
			:created_at, :updated_at, NULL
		)`

	_, err := r.db.NamedExecContext(ctx, query, activity)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return domain.ErrCategoryNotFound
		}
		return err
	}

	activity.Version = 1
	return nil
}

func (r *PostgresActivityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	var activity domain.Activity
	query := `SELECT * FROM activities WHERE id = $1 AND archived_at IS NULL`

	err := r.db.GetContext(ctx, &activity, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, err
	}
	return &activity, nil
}

func (r *PostgresActivityRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Activity, error) {
	activities := []*domain.Activity{}

	query := `
		SELECT * FROM activities
		WHERE user_id = $1 AND archived_at IS NULL
		ORDER BY sort_order ASC, created_at DESC`

	if err := r.db.SelectContext(ctx, &activities, query, userID); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *PostgresActivityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	query := `
		UPDATE activities
		SET category_id = $1, title = $2, description = $3, unit = $4,
		    color = $5, icon = $6, sort_order = $7,
		    updated_at = NOW(), version = version + 1
		WHERE id = $8 AND version = $9 AND archived_at IS NULL
		RETURNING version, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		activity.CategoryID, activity.Title, activity.Description, activity.Unit,
		activity.Color, activity.Icon, activity.SortOrder,
		activity.ID, activity.Version,
	)

	var newVersion int
	var newUpdatedAt time.Time

	if err := row.Scan(&newVersion, &newUpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			exists, checkErr := r.exists(ctx, activity.ID)
			if checkErr != nil {
				return checkErr
			}
			if !exists {
				return domain.ErrActivityNotFound
			}
			return domain.ErrActivityConflict
		}
		return err
	}

	activity.Version = newVersion
	activity.UpdatedAt = newUpdatedAt
	return nil
}

// Delete archives the activity; entries survive for historical stats.
func (r *PostgresActivityRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE activities
		SET archived_at = NOW(), updated_at = NOW(), version = version + 1
		WHERE id = $1 AND archived_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

// UpdateStreaks bypasses the version check: the streak columns are a
// derived cache written only by the worker, never by user edits.
func (r *PostgresActivityRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	query := `
		UPDATE activities
		SET current_streak = $1,
		    longest_streak = $2,
		    updated_at = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, current, longest, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *PostgresActivityRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM activities WHERE id = $1", id)
	return count > 0, err
}
