package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cadenceapp/cadence/internal/core/domain"
)

type PostgresMetricRepository struct {
	db *sqlx.DB
}

func NewPostgresMetricRepository(db *sqlx.DB) *PostgresMetricRepository {
	return &PostgresMetricRepository{db: db}
}

func (r *PostgresMetricRepository) Create(ctx context.Context, metric *domain.Metric) error {
	query := `
		INSERT INTO metrics (id, activity_id, name, unit, aggregation, created_at, updated_at)
		VALUES (:id, :activity_id, :name, :unit, :aggregation, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, metric)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return domain.ErrActivityNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresMetricRepository) GetByID(ctx context.Context, id string) (*domain.Metric, error) {
	var metric domain.Metric
	query := `SELECT * FROM metrics WHERE id = $1`

	err := r.db.GetContext(ctx, &metric, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMetricNotFound
		}
		return nil, err
	}
	return &metric, nil
}

func (r *PostgresMetricRepository) ListByActivityID(ctx context.Context, activityID string) ([]*domain.Metric, error) {
	metrics := []*domain.Metric{}

	query := `SELECT * FROM metrics WHERE activity_id = $1 ORDER BY created_at`

	if err := r.db.SelectContext(ctx, &metrics, query, activityID); err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *PostgresMetricRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM metrics WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMetricNotFound
	}
	return nil
}
