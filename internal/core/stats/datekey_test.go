package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadenceapp/cadence/internal/core/stats"
)

func TestDateKeyUtilities(t *testing.T) {
	utc := time.UTC

	t.Run("Today uses the location's calendar day, not UTC's", func(t *testing.T) {
		tokyo, err := time.LoadLocation("Asia/Tokyo")
		require.NoError(t, err)

		// 23:30 UTC on the 10th is already the 11th in Tokyo.
		now := time.Date(2025, 1, 10, 23, 30, 0, 0, time.UTC)

		assert.Equal(t, stats.DateKey("2025-01-10"), stats.Today(utc, now))
		assert.Equal(t, stats.DateKey("2025-01-11"), stats.Today(tokyo, now))
	})

	t.Run("DaysAgo crosses month and year boundaries", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

		assert.Equal(t, stats.DateKey("2024-12-31"), stats.DaysAgo(1, utc, now))
		assert.Equal(t, stats.DateKey("2024-12-02"), stats.DaysAgo(30, utc, now))
	})

	t.Run("PreviousDay is calendar arithmetic across boundaries", func(t *testing.T) {
		assert.Equal(t, stats.DateKey("2025-02-28"), stats.PreviousDay("2025-03-01"))
		assert.Equal(t, stats.DateKey("2024-02-29"), stats.PreviousDay("2024-03-01"))
		assert.Equal(t, stats.DateKey("2024-12-31"), stats.PreviousDay("2025-01-01"))
	})

	t.Run("PreviousDay is stable across a DST transition", func(t *testing.T) {
		// Berlin springs forward on 2025-03-30: that day has only 23
		// hours, which is exactly where duration-based arithmetic drifts.
		assert.Equal(t, stats.DateKey("2025-03-30"), stats.PreviousDay("2025-03-31"))
		assert.Equal(t, stats.DateKey("2025-03-29"), stats.PreviousDay("2025-03-30"))
	})

	t.Run("NormalizeKey is idempotent", func(t *testing.T) {
		k1, err := stats.NormalizeKey("2025-01-10", utc)
		require.NoError(t, err)

		k2, err := stats.NormalizeKey(k1.String(), utc)
		require.NoError(t, err)

		assert.Equal(t, k1, k2)
	})

	t.Run("NormalizeKey collapses a timestamp to its local day", func(t *testing.T) {
		ny, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		// 01:30 UTC on the 11th is still the 10th in New York.
		k, err := stats.NormalizeKey("2025-01-11T01:30:00Z", ny)
		require.NoError(t, err)
		assert.Equal(t, stats.DateKey("2025-01-10"), k)
	})

	t.Run("NormalizeKey rejects garbage", func(t *testing.T) {
		_, err := stats.NormalizeKey("not-a-date", utc)
		assert.Error(t, err)
	})

	t.Run("DaysBetween is signed", func(t *testing.T) {
		assert.Equal(t, 30, stats.DaysBetween("2025-01-01", "2025-01-31"))
		assert.Equal(t, -30, stats.DaysBetween("2025-01-31", "2025-01-01"))
		assert.Equal(t, 0, stats.DaysBetween("2025-01-15", "2025-01-15"))
	})
}
