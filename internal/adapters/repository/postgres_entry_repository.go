package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cadenceapp/cadence/internal/core/domain"
)

type PostgresEntryRepository struct {
	db *sqlx.DB
}

func NewPostgresEntryRepository(db *sqlx.DB) *PostgresEntryRepository {
	return &PostgresEntryRepository{db: db}
}

// Create writes the entry row and all of its metric values in one
// transaction. Either everything commits or nothing does; readers never
// see an entry with a partial set of values.
func (r *PostgresEntryRepository) Create(ctx context.Context, entry *domain.ProgressEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO progress_entries (
			id, activity_id, user_id,
			logged_at, notes,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :activity_id, :user_id,
			:logged_at, :notes,
			:version, :created_at, :updated_at, :deleted_at
		)`

	if _, err := tx.NamedExecContext(ctx, query, entry); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return errors.New("referenced activity or user does not exist")
			}
			if pqErr.Code == "23505" {
				return domain.ErrEntryConflict
			}
		}
		return err
	}

	if err := insertValues(ctx, tx, entry); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresEntryRepository) GetByID(ctx context.Context, id string) (*domain.ProgressEntry, error) {
	var entry domain.ProgressEntry
	query := `SELECT * FROM progress_entries WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &entry, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	if err := r.loadValues(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update rewrites the entry and replaces its metric values atomically,
// with an optimistic version check on the parent row.
func (r *PostgresEntryRepository) Update(ctx context.Context, entry *domain.ProgressEntry) error {
	entry.Version++
	entry.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE progress_entries
		SET notes = :notes,
		    logged_at = :logged_at,
		    version = :version,
		    updated_at = :updated_at
		WHERE id = :id
		  AND version = :version - 1  -- Optimistic lock check
		  AND deleted_at IS NULL`

	result, err := tx.NamedExecContext(ctx, query, entry)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		exists, err := r.exists(ctx, entry.ID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrEntryNotFound
		}
		return domain.ErrEntryConflict
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM metric_values WHERE entry_id = $1`, entry.ID); err != nil {
		return err
	}
	if err := insertValues(ctx, tx, entry); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresEntryRepository) Delete(ctx context.Context, id string, userID string) error {
	now := time.Now().UTC()

	query := `
		UPDATE progress_entries
		SET deleted_at = $1,
		    updated_at = $1,
		    version = version + 1
		WHERE id = $2
		  AND user_id = $3 -- Security check
		  AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, now, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *PostgresEntryRepository) List(ctx context.Context, scope domain.EntryScope) ([]*domain.ProgressEntry, error) {
	entries := []*domain.ProgressEntry{}

	p := scopePredicates(scope)
	query := fmt.Sprintf(`
		SELECT e.* FROM progress_entries e
		JOIN activities a ON a.id = e.activity_id
		WHERE e.deleted_at IS NULL%s
		ORDER BY e.logged_at DESC`, p.where())

	if err := r.db.SelectContext(ctx, &entries, query, p.args...); err != nil {
		return nil, err
	}

	for _, e := range entries {
		if err := r.loadValues(ctx, e); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// EntryTimestamps deliberately returns raw instants. Truncating to days
// in SQL would bucket by the session timezone, not the user's, and shift
// entries across midnight.
func (r *PostgresEntryRepository) EntryTimestamps(ctx context.Context, scope domain.EntryScope) ([]time.Time, error) {
	timestamps := []time.Time{}

	p := scopePredicates(scope)
	query := fmt.Sprintf(`
		SELECT e.logged_at
		FROM progress_entries e
		JOIN activities a ON a.id = e.activity_id
		WHERE e.deleted_at IS NULL%s
		ORDER BY e.logged_at DESC`, p.where())

	if err := r.db.SelectContext(ctx, &timestamps, query, p.args...); err != nil {
		return nil, err
	}
	return timestamps, nil
}

func (r *PostgresEntryRepository) Facts(ctx context.Context, scope domain.EntryScope) (domain.EntryFacts, error) {
	var facts domain.EntryFacts

	p := scopePredicates(scope)
	query := fmt.Sprintf(`
		SELECT count(*) AS total_entries,
		       min(e.logged_at) AS first_entry_at
		FROM progress_entries e
		JOIN activities a ON a.id = e.activity_id
		WHERE e.deleted_at IS NULL%s`, p.where())

	if err := r.db.GetContext(ctx, &facts, query, p.args...); err != nil {
		return domain.EntryFacts{}, err
	}
	return facts, nil
}

func (r *PostgresEntryRepository) SumMetricInRange(ctx context.Context, metricID string, from, to time.Time) (float64, error) {
	var sum float64

	query := `
		SELECT coalesce(sum(v.value), 0)
		FROM metric_values v
		JOIN progress_entries e ON e.id = v.entry_id
		WHERE v.metric_id = $1
		  AND e.logged_at >= $2
		  AND e.logged_at <= $3
		  AND e.deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &sum, query, metricID, from, to); err != nil {
		return 0, err
	}
	return sum, nil
}

func insertValues(ctx context.Context, tx *sqlx.Tx, entry *domain.ProgressEntry) error {
	for i := range entry.Values {
		v := &entry.Values[i]
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		v.EntryID = entry.ID

		_, err := tx.ExecContext(ctx,
			`INSERT INTO metric_values (id, entry_id, metric_id, value) VALUES ($1, $2, $3, $4)`,
			v.ID, v.EntryID, v.MetricID, v.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresEntryRepository) loadValues(ctx context.Context, entry *domain.ProgressEntry) error {
	values := []domain.MetricValue{}
	err := r.db.SelectContext(ctx, &values,
		`SELECT * FROM metric_values WHERE entry_id = $1`, entry.ID)
	if err != nil {
		return err
	}
	entry.Values = values
	return nil
}

func (r *PostgresEntryRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM progress_entries WHERE id = $1", id)
	return count > 0, err
}
