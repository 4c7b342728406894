package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/report"
)

// ReportView is the printable period report: per-day series plus
// income and expense category breakdowns over an explicit date range.
type ReportView struct {
	Start              string                `json:"start"`
	End                string                `json:"end"`
	Totals             core.Totals           `json:"totals"`
	Daily              core.DailySeries      `json:"daily"`
	IncomeByCategory   []core.CategoryAmount `json:"incomeByCategory"`
	ExpensesByCategory []core.CategoryAmount `json:"expensesByCategory"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	q := r.URL.Query()
	start, err := core.ParseDate(q.Get("start"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid start date")
		return
	}
	end, err := core.ParseDate(q.Get("end"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid end date")
		return
	}
	if end.Before(start.Time) {
		writeError(w, http.StatusUnprocessableEntity, "end date before start date")
		return
	}

	revenues := s.records.RevenuesByPeriod(r.Context(), start, end)
	expenses := s.records.ExpensesByPeriod(r.Context(), start, end)

	view := ReportView{
		Start:              start.Key(),
		End:                end.Key(),
		Totals:             report.Totals(core.Document{Revenues: revenues, Expenses: expenses}),
		Daily:              report.GroupByDateRange(revenues, expenses, start, end),
		IncomeByCategory:   report.GroupByCategory(revenues, 10),
		ExpensesByCategory: report.GroupByCategory(expenses, 10),
	}
	writeJSON(w, http.StatusOK, view)
}
