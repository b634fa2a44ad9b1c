package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandDefaultFormats(t *testing.T) {
	got := DefaultFormats.Expand(date(2025, time.August, 1))
	assert.Equal(t, []string{
		"August 01, 2025",
		"08/01/2025",
		"8/1/2025",
		"2025-08-01",
	}, got)
}

func TestExpandDayFirstFormats(t *testing.T) {
	got := DayFirstFormats.Expand(date(2025, time.July, 31))
	assert.Contains(t, got, "31/07/2025")
	assert.Contains(t, got, "31/7/2025")
	assert.Contains(t, got, "July 31, 2025")
}

func TestMatchesAny(t *testing.T) {
	targets := DefaultFormats.Expand(date(2025, time.August, 1))

	tests := []struct {
		name string
		cell string
		want bool
	}{
		{"exact long form", "August 01, 2025", true},
		{"exact iso", "2025-08-01", true},
		{"leading and trailing spaces", "  8/1/2025  ", true},
		{"annotated cell contains target", "Order placed August 01, 2025 (rush)", true},
		{"cell is substring of a target", "ugust 01, 2", true},
		{"different day", "August 02, 2025", false},
		{"unrelated text", "pending confirmation", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesAny(tt.cell, targets))
		})
	}
}

// A blank cell is a substring of every target, so it matches. This mirrors
// long-standing ledger-matching behavior; see the MatchesAny doc comment.
func TestMatchesAnyBlankCell(t *testing.T) {
	targets := DefaultFormats.Expand(date(2025, time.August, 1))
	assert.True(t, MatchesAny("", targets))
	assert.True(t, MatchesAny("   ", targets))
}

func TestDateRangeCrossesMonthBoundary(t *testing.T) {
	days := DateRange(date(2025, time.July, 30), date(2025, time.August, 2))
	require.Len(t, days, 4)
	assert.Equal(t, date(2025, time.July, 30), days[0])
	assert.Equal(t, date(2025, time.August, 2), days[3])
}

func TestShiftDaysHandlesYearRollover(t *testing.T) {
	days := []time.Time{date(2025, time.January, 3)}

	shifted := ShiftDays(days, -7)
	assert.Equal(t, date(2024, time.December, 27), shifted[0])

	shifted = ShiftDays(days, -365)
	assert.Equal(t, date(2024, time.January, 4), shifted[0])
}

func TestShiftDaysLeapFebruary(t *testing.T) {
	days := []time.Time{date(2024, time.March, 1)}
	shifted := ShiftDays(days, -1)
	assert.Equal(t, date(2024, time.February, 29), shifted[0])
}
