package report

import (
	"strings"
	"time"
)

// DateFormats is the list of Go layouts a calendar date is expanded into
// when testing ledger cells. The ledger is hand-maintained, so the same day
// appears in several spellings.
type DateFormats []string

// DefaultFormats covers the spellings observed in the ledger: long
// month-day-year, zero-padded and non-padded numeric month/day/year, and
// ISO year-month-day.
var DefaultFormats = DateFormats{
	"January 02, 2006",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
}

// DayFirstFormats additionally admits day-first numeric spellings. Used for
// single-day lookups, matching how daily reports have historically matched.
var DayFirstFormats = DateFormats{
	"January 02, 2006",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
}

// Expand renders one calendar date in every configured format.
func (f DateFormats) Expand(day time.Time) []string {
	out := make([]string, 0, len(f))
	for _, layout := range f {
		out = append(out, day.Format(layout))
	}
	return out
}

// ExpandAll renders a set of calendar dates in every configured format.
func (f DateFormats) ExpandAll(days []time.Time) []string {
	out := make([]string, 0, len(f)*len(days))
	for _, day := range days {
		out = append(out, f.Expand(day)...)
	}
	return out
}

// MatchesAny reports whether a ledger date cell refers to any of the target
// spellings. The cell matches on trimmed equality, or when either string is
// a substring of the other — ledger cells often carry annotation text
// around the date. The substring rule is deliberately bidirectional and
// carries two known risks: two target dates whose spellings contain one
// another can both match the same cell, and a blank cell is a substring of
// everything. Both are long-standing ledger-matching behavior and are kept
// as-is.
func MatchesAny(cell string, targets []string) bool {
	cell = strings.TrimSpace(cell)
	for _, target := range targets {
		if cell == target {
			return true
		}
		if strings.Contains(cell, target) || strings.Contains(target, cell) {
			return true
		}
	}
	return false
}

// DateRange returns the consecutive calendar days from first through last.
func DateRange(first, last time.Time) []time.Time {
	first = Midnight(first)
	last = Midnight(last)

	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ShiftDays returns a copy of days with every date moved by offset days.
// Month and year boundaries are handled by date arithmetic, never by
// rewriting date strings.
func ShiftDays(days []time.Time, offset int) []time.Time {
	out := make([]time.Time, len(days))
	for i, d := range days {
		out[i] = d.AddDate(0, 0, offset)
	}
	return out
}

// Midnight truncates a timestamp to its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
