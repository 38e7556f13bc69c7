package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMetricNameEmpty   = errors.New("metric name cannot be empty")
	ErrInvalidAggregation = errors.New("invalid aggregation (must be sum, average, min or max)")
	ErrMetricNotFound    = errors.New("metric not found")
)

const (
	AggregationSum     = "sum"
	AggregationAverage = "average"
	AggregationMin     = "min"
	AggregationMax     = "max"
)

// Metric defines one measurable dimension of an activity, e.g. distance
// in km for a running activity. Goals target a single metric.
type Metric struct {
	ID          string    `json:"id" db:"id"`
	ActivityID  string    `json:"activity_id" db:"activity_id"`
	Name        string    `json:"name" db:"name"`
	Unit        string    `json:"unit" db:"unit"`
	Aggregation string    `json:"aggregation" db:"aggregation"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func NewMetric(activityID, name, unit, aggregation string) (*Metric, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMetricNameEmpty
	}

	if aggregation == "" {
		aggregation = AggregationSum
	}
	switch aggregation {
	case AggregationSum, AggregationAverage, AggregationMin, AggregationMax:
	default:
		return nil, ErrInvalidAggregation
	}

	now := time.Now().UTC()
	return &Metric{
		ID:          uuid.NewString(),
		ActivityID:  activityID,
		Name:        name,
		Unit:        unit,
		Aggregation: aggregation,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
