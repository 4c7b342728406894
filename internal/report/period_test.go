package report

import (
	"testing"
	"time"
)

func TestPeriodFor(t *testing.T) {
	now := time.Date(2025, time.June, 17, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		period    string
		now       time.Time
		wantStart string
		wantEnd   string
	}{
		{"current month", CurrentMonth, now, "2025-06-01", "2025-06-30"},
		{"last month", LastMonth, now, "2025-05-01", "2025-05-31"},
		{"current year", CurrentYear, now, "2025-01-01", "2025-12-31"},
		{"unknown name defaults to current month", "whenever", now, "2025-06-01", "2025-06-30"},
		{"empty name defaults to current month", "", now, "2025-06-01", "2025-06-30"},
		{
			"last month across the year boundary",
			LastMonth,
			time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
			"2024-12-01", "2024-12-31",
		},
		{
			"february in a leap year",
			CurrentMonth,
			time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC),
			"2024-02-01", "2024-02-29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PeriodFor(tt.period, tt.now)
			if p.Start.Key() != tt.wantStart || p.End.Key() != tt.wantEnd {
				t.Fatalf("PeriodFor(%q) = [%s, %s], want [%s, %s]",
					tt.period, p.Start.Key(), p.End.Key(), tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestMonthKeysFor(t *testing.T) {
	now := time.Date(2025, time.June, 17, 0, 0, 0, 0, time.UTC)

	if got := MonthKeysFor(CurrentMonth, now); len(got) != 1 || got[0] != "2025-06" {
		t.Fatalf("current month keys = %v", got)
	}
	if got := MonthKeysFor(LastMonth, now); len(got) != 1 || got[0] != "2025-05" {
		t.Fatalf("last month keys = %v", got)
	}

	jan := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	if got := MonthKeysFor(LastMonth, jan); len(got) != 1 || got[0] != "2024-12" {
		t.Fatalf("last month keys in january = %v", got)
	}

	year := MonthKeysFor(CurrentYear, now)
	if len(year) != 12 || year[0] != "2025-01" || year[11] != "2025-12" {
		t.Fatalf("year keys = %v", year)
	}
}
