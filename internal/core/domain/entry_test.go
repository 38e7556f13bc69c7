package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadenceapp/cadence/internal/core/domain"
)

func TestProgressEntryValidate(t *testing.T) {
	loggedAt := time.Date(2025, 1, 10, 8, 30, 0, 0, time.UTC)

	t.Run("Success: entry with metric values", func(t *testing.T) {
		e := domain.NewProgressEntry("act-1", "user-1", loggedAt, []domain.MetricValue{
			{MetricID: "met-1", Value: 5.2},
			{MetricID: "met-2", Value: 31},
		})

		require.NoError(t, e.Validate())
		assert.Equal(t, 1, e.Version)
		assert.Equal(t, loggedAt, e.LoggedAt)
	})

	t.Run("Success: entry without values is a bare check-in", func(t *testing.T) {
		e := domain.NewProgressEntry("act-1", "user-1", loggedAt, nil)
		assert.NoError(t, e.Validate())
	})

	t.Run("Fail: missing activity", func(t *testing.T) {
		e := domain.NewProgressEntry("", "user-1", loggedAt, nil)
		assert.Error(t, e.Validate())
	})

	t.Run("Fail: missing user", func(t *testing.T) {
		e := domain.NewProgressEntry("act-1", " ", loggedAt, nil)
		assert.Error(t, e.Validate())
	})

	t.Run("Fail: zero logged_at", func(t *testing.T) {
		e := domain.NewProgressEntry("act-1", "user-1", time.Time{}, nil)
		assert.Error(t, e.Validate())
	})

	t.Run("Fail: value without a metric", func(t *testing.T) {
		e := domain.NewProgressEntry("act-1", "user-1", loggedAt, []domain.MetricValue{{Value: 3}})
		assert.Error(t, e.Validate())
	})
}
