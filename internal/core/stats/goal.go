package stats

import (
	"errors"
	"time"
)

var (
	ErrInvalidWindow  = errors.New("goal window end date precedes start date")
	ErrNegativeTarget = errors.New("goal target and progress cannot be negative")
)

// Period is the recurrence of a goal target.
type Period string

const (
	PeriodDaily     Period = "DAILY"
	PeriodWeekly    Period = "WEEKLY"
	PeriodMonthly   Period = "MONTHLY"
	PeriodQuarterly Period = "QUARTERLY"
	PeriodYearly    Period = "YEARLY"
	PeriodTotal     Period = "TOTAL"
)

// ValidPeriod reports whether p is a known goal period.
func ValidPeriod(p Period) bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly, PeriodTotal:
		return true
	}
	return false
}

// Recurring reports whether the period derives its own end date from the
// start date. TOTAL goals carry a caller-supplied end date instead.
func (p Period) Recurring() bool {
	return ValidPeriod(p) && p != PeriodTotal
}

// PeriodEnd derives the inclusive end date of a recurring period starting
// at start: DAILY ends the same day, WEEKLY six days later, MONTHLY /
// QUARTERLY / YEARLY on the last day of the start's month, quarter or
// year. For TOTAL (or an unknown period) it returns the empty key, since
// the end date must be supplied by the caller.
func PeriodEnd(start DateKey, p Period) DateKey {
	t, err := start.parse()
	if err != nil {
		return ""
	}

	switch p {
	case PeriodDaily:
		return start
	case PeriodWeekly:
		return DateKey(t.AddDate(0, 0, 6).Format(keyLayout))
	case PeriodMonthly:
		// Day zero of the next month is the last day of this one.
		end := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		return DateKey(end.Format(keyLayout))
	case PeriodQuarterly:
		quarterEnd := (int(t.Month())-1)/3*3 + 3
		end := time.Date(t.Year(), time.Month(quarterEnd)+1, 0, 0, 0, 0, 0, time.UTC)
		return DateKey(end.Format(keyLayout))
	case PeriodYearly:
		return DateKey(time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, time.UTC).Format(keyLayout))
	}
	return ""
}

// GoalWindow is the slice of a goal the progress computation needs.
type GoalWindow struct {
	StartDate       DateKey
	EndDate         DateKey
	TargetPeriod    Period
	TargetValue     float64
	CurrentProgress float64
}

// GoalProgress carries derived goal completion figures.
type GoalProgress struct {
	PercentageComplete float64 `json:"percentage_complete"`
	DaysElapsed        int     `json:"days_elapsed"`
	DaysRemaining      int     `json:"days_remaining"`
	TotalDays          int     `json:"total_days"`
}

// ComputeGoalProgress derives completion percentage and day counts for a
// goal window. The percentage is deliberately not clamped at 100 so that
// over-achievement stays visible. A zero target yields zero percent
// rather than a division by zero.
func ComputeGoalProgress(w GoalWindow, loc *time.Location, now time.Time) (GoalProgress, error) {
	if !w.StartDate.Valid() || !w.EndDate.Valid() || w.EndDate < w.StartDate {
		return GoalProgress{}, ErrInvalidWindow
	}
	if w.TargetValue < 0 || w.CurrentProgress < 0 {
		return GoalProgress{}, ErrNegativeTarget
	}

	var pct float64
	if w.TargetValue > 0 {
		pct = w.CurrentProgress / w.TargetValue * 100
	}

	today := Today(loc, now)

	elapsed := DaysBetween(w.StartDate, today)
	if elapsed < 0 {
		elapsed = 0
	}

	remaining := DaysBetween(today, w.EndDate)
	if remaining < 0 {
		remaining = 0
	}

	return GoalProgress{
		PercentageComplete: pct,
		DaysElapsed:        elapsed,
		DaysRemaining:      remaining,
		TotalDays:          DaysBetween(w.StartDate, w.EndDate),
	}, nil
}
