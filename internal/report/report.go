// Package report derives aggregates from an expense snapshot. Nothing here is
// stored; every figure is recomputed from the list it is given.
package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/smartexpense/internal/category"
	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
)

// Range is an inclusive calendar date range.
type Range struct {
	Start expense.Date `json:"start"`
	End   expense.Date `json:"end"`
}

func (r Range) Contains(d expense.Date) bool {
	return d.InRange(r.Start, r.End)
}

// MonthRange returns the calendar month containing t.
func MonthRange(t time.Time) Range {
	start := expense.NewDate(t.Year(), t.Month(), 1)
	return Range{Start: start, End: start.AddMonths(1).AddDays(-1)}
}

// CategoryTotal is the spending of one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
	Color    string  `json:"color"`
	Percent  float64 `json:"percent,omitempty"`
}

// MonthlyTotal is the spending of one calendar month.
type MonthlyTotal struct {
	Label string     `json:"month"`
	Year  int        `json:"year"`
	Month time.Month `json:"month_number"`
	Total float64    `json:"total"`
	Count int        `json:"expenses"`
}

// CategoryTotals sums amounts per category for expenses dated within r.
// Categories keep the order in which they first appear; categories without
// matching expenses are left out.
func CategoryTotals(expenses []expense.Expense, r Range) []CategoryTotal {
	return categoryTotals(expenses, r.Contains)
}

// AllTimeCategoryTotals sums amounts per category over the whole list.
func AllTimeCategoryTotals(expenses []expense.Expense) []CategoryTotal {
	return categoryTotals(expenses, func(expense.Date) bool { return true })
}

func categoryTotals(expenses []expense.Expense, keep func(expense.Date) bool) []CategoryTotal {
	type acc struct {
		sum   decimal.Decimal
		count int
	}

	var order []string

	sums := make(map[string]*acc)

	for _, e := range expenses {
		if !keep(e.Date) {
			continue
		}

		a, ok := sums[e.Category]
		if !ok {
			a = &acc{}
			sums[e.Category] = a
			order = append(order, e.Category)
		}

		a.sum = a.sum.Add(decimal.NewFromFloat(e.Amount))
		a.count++
	}

	totals := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		a := sums[name]
		totals = append(totals, CategoryTotal{
			Category: name,
			Total:    a.sum.InexactFloat64(),
			Count:    a.count,
			Color:    category.Lookup(name).Color,
		})
	}

	return totals
}

// SortByTotal returns a copy ordered by descending total. Ties keep their order.
func SortByTotal(totals []CategoryTotal) []CategoryTotal {
	sorted := slices.Clone(totals)
	slices.SortStableFunc(sorted, func(a, b CategoryTotal) int {
		return cmp.Compare(b.Total, a.Total)
	})

	return sorted
}

// MonthlyTotals returns exactly n entries, oldest first, ending with the month
// containing now. Months without expenses are present with zero totals.
func MonthlyTotals(expenses []expense.Expense, now time.Time, n int) []MonthlyTotal {
	if n <= 0 {
		return []MonthlyTotal{}
	}

	type ym struct {
		year  int
		month time.Month
	}

	months := make([]MonthlyTotal, n)
	sums := make([]decimal.Decimal, n)
	slot := make(map[ym]int, n)

	for i := range n {
		first := time.Date(now.Year(), now.Month()-time.Month(n-1-i), 1, 0, 0, 0, 0, time.UTC)
		months[i] = MonthlyTotal{Label: first.Format("Jan"), Year: first.Year(), Month: first.Month()}
		slot[ym{first.Year(), first.Month()}] = i
	}

	for _, e := range expenses {
		i, ok := slot[ym{e.Date.Year(), e.Date.Month()}]
		if !ok {
			continue
		}

		sums[i] = sums[i].Add(decimal.NewFromFloat(e.Amount))
		months[i].Count++
	}

	for i := range months {
		months[i].Total = sums[i].InexactFloat64()
	}

	return months
}

// Trend is the percentage change from previous to current. It is 0 when
// previous is 0, which also covers "no prior data".
func Trend(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}

	return (current - previous) / previous * 100
}

// Total sums the amounts of all expenses.
func Total(expenses []expense.Expense) float64 {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(decimal.NewFromFloat(e.Amount))
	}

	return sum.InexactFloat64()
}

// Filter returns the expenses dated within r, in list order.
func Filter(expenses []expense.Expense, r Range) []expense.Expense {
	var out []expense.Expense

	for _, e := range expenses {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}

	return out
}

// Recent returns the last n expenses added, newest first.
func Recent(expenses []expense.Expense, n int) []expense.Expense {
	if n <= 0 {
		return []expense.Expense{}
	}

	start := max(len(expenses)-n, 0)
	recent := slices.Clone(expenses[start:])
	slices.Reverse(recent)

	if recent == nil {
		recent = []expense.Expense{}
	}

	return recent
}
