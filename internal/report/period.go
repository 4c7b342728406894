package report

import (
	"time"

	"fintrack/internal/core"
)

// Named periods offered by the dashboard selector.
const (
	CurrentMonth = "current-month"
	LastMonth    = "last-month"
	CurrentYear  = "current-year"
)

// Period is a resolved date range, inclusive on both ends.
type Period struct {
	Start core.Date
	End   core.Date
}

// PeriodFor resolves a named period against the wall-clock date now.
// Unknown names fall back to the current month, matching the original
// selector's default.
func PeriodFor(name string, now time.Time) Period {
	y, m := now.Year(), int(now.Month())
	switch name {
	case LastMonth:
		start := time.Date(y, time.Month(m-1), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return Period{Start: core.DateOf(start), End: core.DateOf(end)}
	case CurrentYear:
		return Period{Start: core.NewDate(y, 1, 1), End: core.NewDate(y, 12, 31)}
	case CurrentMonth:
		fallthrough
	default:
		start := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return Period{Start: core.DateOf(start), End: core.DateOf(end)}
	}
}

// MonthKeysFor returns the preinitialized month buckets a named period
// implies: one key for the month periods, all twelve for the year.
func MonthKeysFor(name string, now time.Time) []string {
	y, m := now.Year(), int(now.Month())
	switch name {
	case LastMonth:
		return []string{core.NewDate(y, m-1, 1).MonthKey()}
	case CurrentYear:
		keys := make([]string, 0, 12)
		for i := 1; i <= 12; i++ {
			keys = append(keys, core.NewDate(y, i, 1).MonthKey())
		}
		return keys
	default:
		return []string{core.NewDate(y, m, 1).MonthKey()}
	}
}
