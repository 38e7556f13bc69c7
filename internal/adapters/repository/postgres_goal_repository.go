package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cadenceapp/cadence/internal/core/domain"
)

type PostgresGoalRepository struct {
	db *sqlx.DB
}

func NewPostgresGoalRepository(db *sqlx.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{db: db}
}

func (r *PostgresGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (
			id, user_id, activity_id, metric_id, title,
			target_value, target_period, start_date, end_date, is_active,
			created_at, updated_at
		) VALUES (
			:id, :user_id, :activity_id, :metric_id, :title,
			:target_value, :target_period, :start_date, :end_date, :is_active,
			:created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, goal)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return errors.New("referenced activity or metric does not exist")
		}
		return err
	}
	return nil
}

func (r *PostgresGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	var goal domain.Goal
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.GetContext(ctx, &goal, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *PostgresGoalRepository) ListByUserID(ctx context.Context, userID string, activeOnly bool) ([]*domain.Goal, error) {
	goals := []*domain.Goal{}

	query := `SELECT * FROM goals WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY start_date DESC`

	if err := r.db.SelectContext(ctx, &goals, query, userID); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *PostgresGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	query := `
		UPDATE goals
		SET title = :title,
		    target_value = :target_value,
		    target_period = :target_period,
		    start_date = :start_date,
		    end_date = :end_date,
		    is_active = :is_active,
		    updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, goal)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func (r *PostgresGoalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}
