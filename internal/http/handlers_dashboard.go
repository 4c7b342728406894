package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/report"
)

// DashboardView is everything the dashboard page renders for one
// period: headline totals, the recent feed, the monthly chart series
// and the category breakdown.
type DashboardView struct {
	Period      string                `json:"period"`
	Totals      core.Totals           `json:"totals"`
	Recent      []core.FeedEntry      `json:"recent"`
	Monthly     core.MonthlySeries    `json:"monthly"`
	ByCategory  []core.CategoryAmount `json:"byCategory"`
	GeneratedAt string                `json:"generatedAt"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = report.CurrentMonth
	}

	key := dashboardKey(profile.ID, period)
	if view, hit := s.dashCache.Get(key); hit {
		writeJSON(w, http.StatusOK, view)
		return
	}

	now := time.Now()
	doc := s.records.Document(r.Context())
	filtered := report.FilterByPeriod(doc, report.PeriodFor(period, now))

	expenses := append(append([]core.Expense{}, filtered.Expenses...), filtered.FutureExpenses...)
	view := DashboardView{
		Period:      period,
		Totals:      report.Totals(filtered),
		Recent:      report.RecentTransactions(filtered, 10),
		Monthly:     report.GroupByMonth(filtered, report.MonthKeysFor(period, now)),
		ByCategory:  report.GroupByCategory(expenses, 10),
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}

	s.dashCache.Set(key, view)
	writeJSON(w, http.StatusOK, view)
}

func dashboardKey(userID, period string) string {
	return userID + "|" + period
}

// invalidateDashboard drops every cached period view for the user.
// Mutations call this so the next dashboard read reflects them.
func (s *Server) invalidateDashboard(userID string) {
	for _, period := range []string{report.CurrentMonth, report.LastMonth, report.CurrentYear} {
		s.dashCache.Delete(dashboardKey(userID, period))
	}
}
