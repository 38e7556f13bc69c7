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

type PostgresGroupRepository struct {
	db *sqlx.DB
}

func NewPostgresGroupRepository(db *sqlx.DB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

func (r *PostgresGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	query := `
		INSERT INTO groups (id, owner_id, name, description, created_at, updated_at)
		VALUES (:id, :owner_id, :name, :description, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, group)
	return err
}

func (r *PostgresGroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	var group domain.Group
	query := `SELECT * FROM groups WHERE id = $1`

	err := r.db.GetContext(ctx, &group, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresGroupRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Group, error) {
	groups := []*domain.Group{}

	query := `
		SELECT g.* FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = $1
		ORDER BY g.name`

	if err := r.db.SelectContext(ctx, &groups, query, userID); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *PostgresGroupRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}

func (r *PostgresGroupRepository) AddMember(ctx context.Context, groupID, userID string) error {
	query := `INSERT INTO group_members (group_id, user_id, joined_at) VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, groupID, userID, time.Now().UTC())
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return domain.ErrAlreadyMember
			}
			if pqErr.Code == "23503" {
				return domain.ErrGroupNotFound
			}
		}
		return err
	}
	return nil
}

func (r *PostgresGroupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotMember
	}
	return nil
}

func (r *PostgresGroupRepository) ListMembers(ctx context.Context, groupID string) ([]*domain.GroupMember, error) {
	members := []*domain.GroupMember{}

	query := `SELECT * FROM group_members WHERE group_id = $1 ORDER BY joined_at`

	if err := r.db.SelectContext(ctx, &members, query, groupID); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresGroupRepository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT count(*) FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	return count > 0, err
}
