package stats

import (
	"time"
)

// DateKey is a timezone-local calendar day in YYYY-MM-DD form.
// All streak and engagement math works on calendar-day equality of
// these keys, never on raw duration arithmetic, so results stay
// correct across month boundaries and DST transitions.
type DateKey string

const keyLayout = "2006-01-02"

// Today returns the current calendar day in the given location.
func Today(loc *time.Location, now time.Time) DateKey {
	return ToDateKey(now, loc)
}

// DaysAgo returns the calendar day n days before today in the given location.
func DaysAgo(n int, loc *time.Location, now time.Time) DateKey {
	day := now.In(loc).AddDate(0, 0, -n)
	return DateKey(day.Format(keyLayout))
}

// ToDateKey normalizes a timestamp to its calendar day in loc.
// The stored timestamp may carry time-of-day and an arbitrary UTC
// offset; only the local calendar date survives.
func ToDateKey(t time.Time, loc *time.Location) DateKey {
	return DateKey(t.In(loc).Format(keyLayout))
}

// NormalizeKey accepts either an already-normalized YYYY-MM-DD key or an
// RFC3339 timestamp and returns the calendar-day key in loc. Idempotent
// on keys that are already normalized.
func NormalizeKey(s string, loc *time.Location) (DateKey, error) {
	if t, err := time.ParseInLocation(keyLayout, s, loc); err == nil {
		return DateKey(t.Format(keyLayout)), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", err
	}
	return ToDateKey(t, loc), nil
}

// PreviousDay returns the calendar day immediately before k, via calendar
// arithmetic. An unparseable key is returned unchanged; callers own the
// contract that keys are valid.
func PreviousDay(k DateKey) DateKey {
	t, err := k.parse()
	if err != nil {
		return k
	}
	return DateKey(t.AddDate(0, 0, -1).Format(keyLayout))
}

// DaysBetween returns the number of calendar days from a to b.
// Negative when b precedes a.
func DaysBetween(a, b DateKey) int {
	ta, err := a.parse()
	if err != nil {
		return 0
	}
	tb, err := b.parse()
	if err != nil {
		return 0
	}
	// Both are midnight UTC so the difference is an exact day count.
	return int(tb.Sub(ta).Hours() / 24)
}

func (k DateKey) parse() (time.Time, error) {
	return time.ParseInLocation(keyLayout, string(k), time.UTC)
}

// Time returns midnight of the calendar day in loc. Used by callers that
// need to turn a key back into a query range boundary.
func (k DateKey) Time(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(keyLayout, string(k), loc)
}

// Valid reports whether k is a well-formed calendar date.
func (k DateKey) Valid() bool {
	_, err := k.parse()
	return err == nil
}

func (k DateKey) String() string {
	return string(k)
}
