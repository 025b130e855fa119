package utils

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the ISO date layout used for every date in JSON inputs and map keys.
const DateLayout = "2006-01-02"

// SortDates sorts a slice of time.Time in ascending order.
func SortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}

// BracketDates returns the two dates from a sorted date slice that bracket target.
//
// If target is outside the provided range, it returns the nearest boundary pair.
// It needs at least two dates.
func BracketDates(target time.Time, dates []time.Time) (time.Time, time.Time, error) {
	if len(dates) < 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("BracketDates: need at least 2 dates, got %d", len(dates))
	}

	// First index with dates[i] >= target.
	i := sort.Search(len(dates), func(i int) bool {
		return !dates[i].Before(target)
	})

	if i <= 0 {
		return dates[0], dates[1], nil
	}
	if i >= len(dates) {
		return dates[len(dates)-2], dates[len(dates)-1], nil
	}
	return dates[i-1], dates[i], nil
}

// ParseDate converts YYYY-MM-DD to a UTC midnight time.Time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// CalendarDate drops the clock and location of t, keeping its calendar date
// as UTC midnight. Dates used as map keys go through it so that one day has
// one key whatever zone it was built in.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed number of calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// AddMonth behaves like Excel's EDATE: the day is clamped to the last day of
// the target month instead of overflowing into the next one.
func AddMonth(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	last := daysIn(first.Year(), first.Month())
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
