package stats

import (
	"errors"
	"math"
	"time"
)

var (
	ErrNegativeCount = errors.New("entry counts cannot be negative")
)

// EngagementSummary carries derived engagement figures for a logging scope.
type EngagementSummary struct {
	AveragePerWeek  float64 `json:"average_per_week"`
	EngagementRate  float64 `json:"engagement_rate"`
	DaysSinceFirst  int     `json:"days_since_first"`
	TotalDaysLogged int     `json:"total_days_logged"`
}

// ComputeEngagement derives average entries per week, engagement rate and
// days since the first entry. firstEntry may be empty when no entry exists.
//
// When the first entry was logged today there are zero elapsed days; the
// rate is then defined as 100 when anything was logged and 0 otherwise,
// so no division by zero ever surfaces as NaN or Inf.
func ComputeEngagement(totalEntries int, firstEntry DateKey, distinctDays int, loc *time.Location, now time.Time) (EngagementSummary, error) {
	if totalEntries < 0 || distinctDays < 0 {
		return EngagementSummary{}, ErrNegativeCount
	}

	if firstEntry == "" || totalEntries == 0 {
		return EngagementSummary{}, nil
	}

	daysSinceFirst := DaysBetween(firstEntry, Today(loc, now))
	if daysSinceFirst < 0 {
		daysSinceFirst = 0
	}

	totalWeeks := int(math.Ceil(float64(daysSinceFirst) / 7))
	if totalWeeks < 1 {
		totalWeeks = 1
	}

	averagePerWeek := round1(float64(totalEntries) / float64(totalWeeks))

	var engagementRate float64
	if daysSinceFirst == 0 {
		if distinctDays > 0 {
			engagementRate = 100.0
		}
	} else {
		engagementRate = round1(float64(distinctDays) / float64(daysSinceFirst) * 100)
	}

	return EngagementSummary{
		AveragePerWeek:  averagePerWeek,
		EngagementRate:  engagementRate,
		DaysSinceFirst:  daysSinceFirst,
		TotalDaysLogged: distinctDays,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
