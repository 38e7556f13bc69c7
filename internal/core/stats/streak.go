package stats

import (
	"sort"
	"time"
)

// StreakResult carries the consecutive-day streaks derived from a set of
// logged calendar days. Recomputed on every request, never persisted.
type StreakResult struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// ComputeStreaks computes the current and longest consecutive-day streaks
// from the distinct calendar days on which at least one entry was logged.
//
// The current streak is anchored at today or yesterday in loc: logging
// yesterday but not yet today keeps the chain alive (grace period), while
// a most-recent entry two or more days back breaks it to zero.
//
// Input order is irrelevant and duplicates are tolerated; keys are
// deduplicated and sorted internally.
func ComputeStreaks(keys []DateKey, loc *time.Location, now time.Time) StreakResult {
	if len(keys) == 0 {
		return StreakResult{}
	}

	uniq := make(map[DateKey]struct{}, len(keys))
	days := make([]DateKey, 0, len(keys))
	for _, k := range keys {
		if _, seen := uniq[k]; !seen {
			uniq[k] = struct{}{}
			days = append(days, k)
		}
	}

	// Lexicographic order on zero-padded ISO keys is chronological order.
	sort.Slice(days, func(i, j int) bool {
		return days[i] > days[j]
	})

	today := Today(loc, now)
	yesterday := PreviousDay(today)

	current := 0
	if days[0] == today || days[0] == yesterday {
		current = 1
		expected := PreviousDay(days[0])
		for i := 1; i < len(days); i++ {
			if days[i] != expected {
				break
			}
			current++
			expected = PreviousDay(expected)
		}
	}

	longest := 1
	run := 1
	for i := 0; i < len(days)-1; i++ {
		if days[i+1] == PreviousDay(days[i]) {
			run++
		} else {
			longest = max(longest, run)
			run = 1
		}
	}
	longest = max(longest, run)

	return StreakResult{CurrentStreak: current, LongestStreak: longest}
}
