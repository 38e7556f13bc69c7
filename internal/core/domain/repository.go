package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	ListByUserID(ctx context.Context, userID string) ([]*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	GetByID(ctx context.Context, id string) (*Activity, error)
	ListByUserID(ctx context.Context, userID string) ([]*Activity, error)
	// Update modifies an existing activity. Implementations must enforce
	// optimistic locking on the version column.
	Update(ctx context.Context, activity *Activity) error
	// Delete performs a soft delete via archived_at.
	Delete(ctx context.Context, id string) error
	// UpdateStreaks refreshes the cached streak columns. Written by the
	// streak worker only.
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type MetricRepository interface {
	Create(ctx context.Context, metric *Metric) error
	GetByID(ctx context.Context, id string) (*Metric, error)
	ListByActivityID(ctx context.Context, activityID string) ([]*Metric, error)
	Delete(ctx context.Context, id string) error
}

// EntryScope narrows entry reads to one of the loggable scopes. Zero
// fields are ignored; repositories translate the set fields into
// parameterized predicates, never concatenated SQL.
type EntryScope struct {
	UserID     string
	ActivityID string
	CategoryID string
	GroupID    string
	From       time.Time
	To         time.Time
}

// EntryFacts are the scalar aggregates the engagement computation needs,
// fetched in one query. Distinct-day counts are not among them: day
// bucketing depends on the user's timezone and happens in the caller.
type EntryFacts struct {
	TotalEntries int        `db:"total_entries"`
	FirstEntryAt *time.Time `db:"first_entry_at"`
}

type EntryRepository interface {
	// Create persists the entry and all of its metric values in a single
	// transaction. Partial writes are never observable.
	Create(ctx context.Context, entry *ProgressEntry) error
	GetByID(ctx context.Context, id string) (*ProgressEntry, error)
	// Update rewrites the entry and replaces its metric values, again
	// atomically, with an optimistic version check.
	Update(ctx context.Context, entry *ProgressEntry) error
	// Delete soft-deletes the entry. userID guards ownership.
	Delete(ctx context.Context, id string, userID string) error
	List(ctx context.Context, scope EntryScope) ([]*ProgressEntry, error)

	// EntryTimestamps returns the raw logged_at instants of every entry
	// in scope, most recent first. The database never truncates them to
	// days; calendar-day bucketing is timezone-dependent and belongs to
	// the caller.
	EntryTimestamps(ctx context.Context, scope EntryScope) ([]time.Time, error)
	Facts(ctx context.Context, scope EntryScope) (EntryFacts, error)
	// SumMetricInRange sums a metric's recorded values over [from, to].
	SumMetricInRange(ctx context.Context, metricID string, from, to time.Time) (float64, error)
}

type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) error
	GetByID(ctx context.Context, id string) (*Goal, error)
	ListByUserID(ctx context.Context, userID string, activeOnly bool) ([]*Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id string) error
}

type GroupRepository interface {
	Create(ctx context.Context, group *Group) error
	GetByID(ctx context.Context, id string) (*Group, error)
	ListByUserID(ctx context.Context, userID string) ([]*Group, error)
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, groupID, userID string) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	ListMembers(ctx context.Context, groupID string) ([]*GroupMember, error)
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
}
