package core

// Totals are the dashboard headline metrics for a (possibly
// period-filtered) document. Balance = Income - Expense and may be
// negative; Expense includes future expenses.
type Totals struct {
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
	Balance Money `json:"balance"`
}

// CategoryAmount is an amount aggregated under one category name.
type CategoryAmount struct {
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

// FeedKind tags entries in the recent-transactions feed.
type FeedKind string

const (
	FeedIncome        FeedKind = "income"
	FeedExpense       FeedKind = "expense"
	FeedFutureExpense FeedKind = "future-expense"
)

// FeedEntry is one row of the recent-transactions feed.
type FeedEntry struct {
	Kind        FeedKind `json:"kind"`
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Amount      Money    `json:"amount"`
	Date        Date     `json:"date"`
}

// MonthlySeries is the month-bucketed chart data: one label per month
// key, with aligned income / normal expense / future expense values.
type MonthlySeries struct {
	Labels         []string `json:"labels"`
	Income         []Money  `json:"income"`
	NormalExpenses []Money  `json:"normalExpenses"`
	FutureExpenses []Money  `json:"futureExpenses"`
}

// DailySeries is the day-bucketed report data for an explicit range.
type DailySeries struct {
	Labels   []string `json:"labels"`
	Income   []Money  `json:"income"`
	Expenses []Money  `json:"expenses"`
}
