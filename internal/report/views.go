// Package report derives dashboard and report views from a financial
// document. Every function is a pure transformation: no persistence, no
// clock access beyond the `now` the caller supplies.
package report

import (
	"sort"

	"fintrack/internal/core"
)

// Totals sums the headline metrics. Expense covers normal and future
// expenses alike; Balance = Income - Expense.
func Totals(doc core.Document) core.Totals {
	var income, expense core.Money
	for _, r := range doc.Revenues {
		income = income.Add(r.Amount)
	}
	for _, e := range doc.Expenses {
		expense = expense.Add(e.Amount)
	}
	for _, e := range doc.FutureExpenses {
		expense = expense.Add(e.Amount)
	}
	return core.Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// FilterByPeriod returns a document containing only records dated
// within the period, each list filtered independently.
func FilterByPeriod(doc core.Document, p Period) core.Document {
	out := core.EmptyDocument()
	for _, r := range doc.Revenues {
		if r.Date.InRange(p.Start, p.End) {
			out.Revenues = append(out.Revenues, r)
		}
	}
	for _, e := range doc.Expenses {
		if e.Date.InRange(p.Start, p.End) {
			out.Expenses = append(out.Expenses, e)
		}
	}
	for _, e := range doc.FutureExpenses {
		if e.Date.InRange(p.Start, p.End) {
			out.FutureExpenses = append(out.FutureExpenses, e)
		}
	}
	return out
}

// categorized is satisfied by both record kinds.
type categorized interface {
	core.Revenue | core.Expense
}

func categoryOf(v any) (string, core.Money) {
	switch r := v.(type) {
	case core.Revenue:
		return r.Category, r.Amount
	case core.Expense:
		return r.Category, r.Amount
	}
	return "", core.Money{}
}

// GroupByCategory sums amounts per category, sorted descending by sum
// and truncated to topN. topN <= 0 means the default of 10.
func GroupByCategory[T categorized](items []T, topN int) []core.CategoryAmount {
	if topN <= 0 {
		topN = 10
	}
	sums := map[string]int64{}
	order := []string{}
	for _, item := range items {
		name, amount := categoryOf(item)
		if _, seen := sums[name]; !seen {
			order = append(order, name)
		}
		sums[name] += amount.Cents
	}

	out := make([]core.CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, core.CategoryAmount{Name: name, Amount: core.Money{Cents: sums[name]}})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// GroupByMonth buckets the document's records into the supplied month
// keys, in order. Records whose month key is not in the set fall
// outside the selected window and are dropped.
func GroupByMonth(doc core.Document, monthKeys []string) core.MonthlySeries {
	index := make(map[string]int, len(monthKeys))
	for i, key := range monthKeys {
		index[key] = i
	}

	series := core.MonthlySeries{
		Labels:         append([]string{}, monthKeys...),
		Income:         make([]core.Money, len(monthKeys)),
		NormalExpenses: make([]core.Money, len(monthKeys)),
		FutureExpenses: make([]core.Money, len(monthKeys)),
	}

	for _, r := range doc.Revenues {
		if i, ok := index[r.Date.MonthKey()]; ok {
			series.Income[i] = series.Income[i].Add(r.Amount)
		}
	}
	for _, e := range doc.Expenses {
		if i, ok := index[e.Date.MonthKey()]; ok {
			series.NormalExpenses[i] = series.NormalExpenses[i].Add(e.Amount)
		}
	}
	for _, e := range doc.FutureExpenses {
		if i, ok := index[e.Date.MonthKey()]; ok {
			series.FutureExpenses[i] = series.FutureExpenses[i].Add(e.Amount)
		}
	}
	return series
}

// RecentTransactions merges all three lists into a feed sorted
// descending by date and truncated to limit (default 10). Equal dates
// keep the merge order: revenues, then expenses, then future expenses.
func RecentTransactions(doc core.Document, limit int) []core.FeedEntry {
	if limit <= 0 {
		limit = 10
	}

	feed := make([]core.FeedEntry, 0, len(doc.Revenues)+len(doc.Expenses)+len(doc.FutureExpenses))
	for _, r := range doc.Revenues {
		feed = append(feed, core.FeedEntry{
			Kind: core.FeedIncome, ID: r.ID, Description: r.Description,
			Category: r.Category, Amount: r.Amount, Date: r.Date,
		})
	}
	for _, e := range doc.Expenses {
		feed = append(feed, core.FeedEntry{
			Kind: core.FeedExpense, ID: e.ID, Description: e.Description,
			Category: e.Category, Amount: e.Amount, Date: e.Date,
		})
	}
	for _, e := range doc.FutureExpenses {
		feed = append(feed, core.FeedEntry{
			Kind: core.FeedFutureExpense, ID: e.ID, Description: e.Description,
			Category: e.Category, Amount: e.Amount, Date: e.Date,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date.Time)
	})
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}

// GroupByDateRange enumerates every calendar day in [start, end],
// initializes a zero bucket per day, and accumulates records whose date
// exactly matches a day key. Used by the period reports.
func GroupByDateRange(revenues []core.Revenue, expenses []core.Expense, start, end core.Date) core.DailySeries {
	index := map[string]int{}
	series := core.DailySeries{Labels: []string{}, Income: []core.Money{}, Expenses: []core.Money{}}

	for day := start.Time; !day.After(end.Time); day = day.AddDate(0, 0, 1) {
		key := core.DateOf(day).Key()
		index[key] = len(series.Labels)
		series.Labels = append(series.Labels, key)
		series.Income = append(series.Income, core.Money{})
		series.Expenses = append(series.Expenses, core.Money{})
	}

	for _, r := range revenues {
		if i, ok := index[r.Date.Key()]; ok {
			series.Income[i] = series.Income[i].Add(r.Amount)
		}
	}
	for _, e := range expenses {
		if i, ok := index[e.Date.Key()]; ok {
			series.Expenses[i] = series.Expenses[i].Add(e.Amount)
		}
	}
	return series
}
