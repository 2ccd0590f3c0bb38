package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
)

// RecentCount is how many recent expenses the dashboard shows.
const RecentCount = 5

// DashboardSummary holds the home screen figures for the month containing now.
type DashboardSummary struct {
	Period         Range             `json:"period"`
	MonthTotal     float64           `json:"month_total"`
	MonthCount     int               `json:"month_count"`
	AllTimeTotal   float64           `json:"all_time_total"`
	AveragePerItem float64           `json:"average_per_expense"`
	LastMonthTotal float64           `json:"last_month_total"`
	Trend          float64           `json:"trend"`
	Categories     []CategoryTotal   `json:"categories"`
	Recent         []expense.Expense `json:"recent"`
}

func Dashboard(expenses []expense.Expense, now time.Time) DashboardSummary {
	month := MonthRange(now)
	last := MonthRange(month.Start.AddDays(-1).Time())

	current := Filter(expenses, month)
	monthTotal := Total(current)
	lastTotal := Total(Filter(expenses, last))

	var avg float64
	if len(current) > 0 {
		avg = decimal.NewFromFloat(monthTotal).Div(decimal.NewFromInt(int64(len(current)))).InexactFloat64()
	}

	return DashboardSummary{
		Period:         month,
		MonthTotal:     monthTotal,
		MonthCount:     len(current),
		AllTimeTotal:   Total(expenses),
		AveragePerItem: avg,
		LastMonthTotal: lastTotal,
		Trend:          Trend(monthTotal, lastTotal),
		Categories:     CategoryTotals(expenses, month),
		Recent:         Recent(expenses, RecentCount),
	}
}

// ReportSummary holds the reports screen figures.
type ReportSummary struct {
	TotalSpent     float64         `json:"total_spent"`
	Monthly        []MonthlyTotal  `json:"monthly"`
	MonthlyAverage float64         `json:"monthly_average"`
	HighestMonth   MonthlyTotal    `json:"highest_month"`
	Categories     []CategoryTotal `json:"categories"`
}

// Reports summarizes the last n months ending with the month containing now,
// plus all-time category totals ordered by spending.
func Reports(expenses []expense.Expense, now time.Time, n int) ReportSummary {
	monthly := MonthlyTotals(expenses, now, n)
	total := Total(expenses)

	summary := ReportSummary{
		TotalSpent: total,
		Monthly:    monthly,
		Categories: SortByTotal(AllTimeCategoryTotals(expenses)),
	}

	if len(monthly) > 0 {
		sum := decimal.Zero
		summary.HighestMonth = monthly[0]

		for _, m := range monthly {
			sum = sum.Add(decimal.NewFromFloat(m.Total))

			if m.Total > summary.HighestMonth.Total {
				summary.HighestMonth = m
			}
		}

		summary.MonthlyAverage = sum.Div(decimal.NewFromInt(int64(len(monthly)))).InexactFloat64()
	}

	if total != 0 {
		for i := range summary.Categories {
			summary.Categories[i].Percent = summary.Categories[i].Total / total * 100
		}
	}

	return summary
}
