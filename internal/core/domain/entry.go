package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEntryNotFound = errors.New("progress entry not found")
	ErrEntryConflict = errors.New("progress entry version conflict")
	ErrUnauthorized  = errors.New("resource does not belong to user")
)

// ProgressEntry records that a user worked on an activity on a given
// date. Its metric values are written atomically with the entry row: a
// reader never observes an entry with only some of its values.
type ProgressEntry struct {
	ID         string `json:"id" db:"id"`
	ActivityID string `json:"activity_id" db:"activity_id"`
	UserID     string `json:"user_id" db:"user_id"`

	LoggedAt time.Time `json:"logged_at" db:"logged_at"`
	Notes    string    `json:"notes" db:"notes"`

	Values []MetricValue `json:"values" db:"-"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// MetricValue is one recorded measurement inside a progress entry.
type MetricValue struct {
	ID       string  `json:"id" db:"id"`
	EntryID  string  `json:"entry_id" db:"entry_id"`
	MetricID string  `json:"metric_id" db:"metric_id"`
	Value    float64 `json:"value" db:"value"`
}

func NewProgressEntry(activityID, userID string, loggedAt time.Time, values []MetricValue) *ProgressEntry {
	now := time.Now().UTC()

	return &ProgressEntry{
		ActivityID: activityID,
		UserID:     userID,
		LoggedAt:   loggedAt.UTC(),
		Values:     values,

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (e *ProgressEntry) Validate() error {
	if strings.TrimSpace(e.ActivityID) == "" {
		return errors.New("activity_id is required")
	}
	if strings.TrimSpace(e.UserID) == "" {
		return errors.New("user_id is required")
	}
	if e.LoggedAt.IsZero() {
		return errors.New("logged_at is required")
	}
	for _, v := range e.Values {
		if strings.TrimSpace(v.MetricID) == "" {
			return errors.New("metric_id is required on every value")
		}
	}
	return nil
}
