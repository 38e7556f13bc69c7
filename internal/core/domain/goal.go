package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cadenceapp/cadence/internal/core/stats"
)

var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrGoalInvalidPeriod = errors.New("invalid goal period")
	ErrGoalInvalidTarget = errors.New("goal target must be positive")
	ErrGoalInvalidWindow = errors.New("goal end date precedes start date")
	ErrGoalMissingEnd    = errors.New("total goals require an explicit end date")
)

// Goal targets a cumulative metric value over a window of calendar days.
// For recurring periods the end date is derived from the start date at
// creation time; TOTAL goals carry a caller-supplied end date.
type Goal struct {
	ID           string        `json:"id" db:"id"`
	UserID       string        `json:"user_id" db:"user_id"`
	ActivityID   string        `json:"activity_id" db:"activity_id"`
	MetricID     string        `json:"metric_id" db:"metric_id"`
	Title        string        `json:"title" db:"title"`
	TargetValue  float64       `json:"target_value" db:"target_value"`
	TargetPeriod stats.Period  `json:"target_period" db:"target_period"`
	StartDate    stats.DateKey `json:"start_date" db:"start_date"`
	EndDate      stats.DateKey `json:"end_date" db:"end_date"`
	IsActive     bool          `json:"is_active" db:"is_active"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// NewGoal validates the window and derives the end date for recurring
// periods. endDate is only honored for TOTAL goals, where it is required.
func NewGoal(userID, activityID, metricID, title string, target float64, period stats.Period, startDate, endDate stats.DateKey) (*Goal, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if target <= 0 {
		return nil, ErrGoalInvalidTarget
	}
	if !stats.ValidPeriod(period) {
		return nil, ErrGoalInvalidPeriod
	}
	if !startDate.Valid() {
		return nil, ErrGoalInvalidWindow
	}

	if period.Recurring() {
		endDate = stats.PeriodEnd(startDate, period)
	} else {
		if endDate == "" {
			return nil, ErrGoalMissingEnd
		}
		if !endDate.Valid() || endDate < startDate {
			return nil, ErrGoalInvalidWindow
		}
	}

	now := time.Now().UTC()
	return &Goal{
		ID:           uuid.NewString(),
		UserID:       userID,
		ActivityID:   activityID,
		MetricID:     metricID,
		Title:        title,
		TargetValue:  target,
		TargetPeriod: period,
		StartDate:    startDate,
		EndDate:      endDate,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Window extracts the pure computation input, with the current progress
// sum supplied by the query layer.
func (g *Goal) Window(currentProgress float64) stats.GoalWindow {
	return stats.GoalWindow{
		StartDate:       g.StartDate,
		EndDate:         g.EndDate,
		TargetPeriod:    g.TargetPeriod,
		TargetValue:     g.TargetValue,
		CurrentProgress: currentProgress,
	}
}

func (g *Goal) Deactivate() {
	if !g.IsActive {
		return
	}
	g.IsActive = false
	g.UpdatedAt = time.Now().UTC()
}
