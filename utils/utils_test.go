package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestAddMonth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, d(2024, 2, 29), AddMonth(d(2024, 1, 31), 1))
	assert.Equal(t, d(2025, 2, 28), AddMonth(d(2024, 2, 29), 12))
	assert.Equal(t, d(2025, 11, 30), AddMonth(d(2026, 1, 30), -2))
	assert.Equal(t, d(2026, 4, 15), AddMonth(d(2026, 1, 15), 3))
}

func TestBracketDates(t *testing.T) {
	t.Parallel()

	dates := []time.Time{d(2026, 3, 1), d(2026, 1, 1), d(2026, 2, 1)}
	SortDates(dates)

	a, b, err := BracketDates(d(2026, 1, 15), dates)
	require.NoError(t, err)
	assert.Equal(t, d(2026, 1, 1), a)
	assert.Equal(t, d(2026, 2, 1), b)

	a, b, err = BracketDates(d(2027, 1, 1), dates)
	require.NoError(t, err)
	assert.Equal(t, d(2026, 2, 1), a)
	assert.Equal(t, d(2026, 3, 1), b)

	_, _, err = BracketDates(d(2026, 1, 1), dates[:1])
	assert.Error(t, err)
}

func TestCalendarDate(t *testing.T) {
	t.Parallel()

	kst := time.FixedZone("KST", 9*60*60)
	assert.Equal(t, d(2026, 7, 2), CalendarDate(time.Date(2026, 7, 2, 23, 30, 0, 0, kst)))
	assert.Equal(t, d(2026, 7, 2), CalendarDate(d(2026, 7, 2)))
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, err := ParseDate("2026-07-02")
	require.NoError(t, err)
	assert.Equal(t, d(2026, 7, 2), got)

	_, err = ParseDate("02/07/2026")
	assert.Error(t, err)
}

func TestYearFraction(t *testing.T) {
	t.Parallel()

	start, end := d(2026, 1, 1), d(2027, 1, 1)
	assert.InDelta(t, 365.0/360.0, YearFraction(start, end, Act360), 1e-12)
	assert.InDelta(t, 1.0, YearFraction(start, end, Act365F), 1e-12)
	assert.InDelta(t, 1.0, YearFraction(start, end, Thirty360E), 1e-12)
	assert.InDelta(t, 1.0, YearFraction(start, end, "unknown"), 1e-12)
	assert.Equal(t, 365, DaysBetween(start, end))
	assert.Equal(t, 1.2346, RoundTo(1.23456, 4))
}
