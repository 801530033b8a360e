// Package report derives summary figures and chart-ready series from query
// results. It contains presentation logic only; rendering belongs to the
// caller.
package report

import (
	"github.com/debtify/debtify/internal/model"
	"github.com/debtify/debtify/internal/money"
	"github.com/debtify/debtify/internal/storage"
)

// Summary holds the three headline figures for a filtered transaction set.
type Summary struct {
	Balance money.Money
	Income  money.Money
	Expense money.Money
}

// Summarize reduces an already-filtered entry list to its summary figures.
// Each sum is accumulated independently in exact decimal arithmetic from
// the raw per-row amounts.
func Summarize(entries []model.Entry) Summary {
	s := Summary{
		Balance: money.Zero(),
		Income:  money.Zero(),
		Expense: money.Zero(),
	}

	for _, e := range entries {
		switch e.Kind {
		case model.KindIncome:
			s.Income = s.Income.Add(e.Amount)
			s.Balance = s.Balance.Add(e.Amount)
		case model.KindExpense:
			s.Expense = s.Expense.Add(e.Amount)
			s.Balance = s.Balance.Sub(e.Amount)
		}
	}

	return s
}

// SeriesPoint is one labeled value of a chart-ready series.
type SeriesPoint struct {
	Label string
	Value money.Money
}

// CategorySeries shapes category totals into the category-name→total series
// consumed by the charting collaborator. Order is preserved.
func CategorySeries(totals []storage.CategoryTotal) []SeriesPoint {
	points := make([]SeriesPoint, len(totals))
	for i, t := range totals {
		points[i] = SeriesPoint{Label: t.Name, Value: t.Total}
	}
	return points
}

// BalanceSeries shapes running balance points into the date→cumulative
// balance series consumed by the charting collaborator. Order is preserved.
func BalanceSeries(balance []storage.BalancePoint) []SeriesPoint {
	points := make([]SeriesPoint, len(balance))
	for i, b := range balance {
		points[i] = SeriesPoint{Label: model.FormatDate(b.Date), Value: b.Balance}
	}
	return points
}
