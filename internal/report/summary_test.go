package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
	"github.com/MrJamesThe3rd/smartexpense/internal/report"
)

func TestDashboard(t *testing.T) {
	got := report.Dashboard(scenario(), now)

	assert.Equal(t, "2024-03-01", got.Period.Start.String())
	assert.InDelta(t, 35.0, got.MonthTotal, 1e-9)
	assert.Equal(t, 3, got.MonthCount)
	assert.InDelta(t, 85.0, got.AllTimeTotal, 1e-9)
	assert.InDelta(t, 35.0/3, got.AveragePerItem, 1e-9)
	assert.InDelta(t, 50.0, got.LastMonthTotal, 1e-9)
	assert.InDelta(t, -30.0, got.Trend, 1e-9)

	require.Len(t, got.Categories, 1)
	assert.Equal(t, "Food", got.Categories[0].Category)

	require.Len(t, got.Recent, 4)
	assert.Equal(t, "4", got.Recent[0].ID)
}

func TestDashboard_Empty(t *testing.T) {
	got := report.Dashboard(nil, now)

	assert.Zero(t, got.MonthTotal)
	assert.Zero(t, got.AveragePerItem)
	assert.Zero(t, got.Trend)
	assert.Empty(t, got.Categories)
	assert.Empty(t, got.Recent)
}

func TestDashboard_NoLastMonth(t *testing.T) {
	list := []expense.Expense{exp("1", "Food", 100, expense.NewDate(2024, time.March, 3))}

	got := report.Dashboard(list, now)

	assert.Zero(t, got.LastMonthTotal)
	assert.Zero(t, got.Trend)
}

func TestReports(t *testing.T) {
	got := report.Reports(scenario(), now, 6)

	assert.InDelta(t, 85.0, got.TotalSpent, 1e-9)
	require.Len(t, got.Monthly, 6)
	assert.InDelta(t, 85.0/6, got.MonthlyAverage, 1e-9)
	assert.Equal(t, "Feb", got.HighestMonth.Label)

	require.Len(t, got.Categories, 2)
	assert.Equal(t, "Travel", got.Categories[0].Category)
	assert.InDelta(t, 50.0/85*100, got.Categories[0].Percent, 1e-9)
	assert.InDelta(t, 35.0/85*100, got.Categories[1].Percent, 1e-9)
}

func TestReports_HighestMonthFirstMaxWins(t *testing.T) {
	list := []expense.Expense{
		exp("1", "Food", 10, expense.NewDate(2024, time.January, 3)),
		exp("2", "Food", 10, expense.NewDate(2024, time.March, 3)),
	}

	got := report.Reports(list, now, 6)

	assert.Equal(t, "Jan", got.HighestMonth.Label)
}

func TestReports_Empty(t *testing.T) {
	got := report.Reports(nil, now, 6)

	assert.Zero(t, got.TotalSpent)
	assert.Zero(t, got.MonthlyAverage)
	assert.Equal(t, "Oct", got.HighestMonth.Label)
	assert.Empty(t, got.Categories)

	none := report.Reports(nil, now, 0)
	assert.Equal(t, report.MonthlyTotal{}, none.HighestMonth)
}
