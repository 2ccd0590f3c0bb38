package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
	"github.com/MrJamesThe3rd/smartexpense/internal/report"
)

var now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func exp(id, category string, amount float64, d expense.Date) expense.Expense {
	return expense.Expense{ID: id, Title: id, Amount: amount, Category: category, Date: d}
}

func scenario() []expense.Expense {
	return []expense.Expense{
		exp("1", "Food", 10, expense.NewDate(2024, time.March, 1)),
		exp("2", "Travel", 50, expense.NewDate(2024, time.February, 20)),
		exp("3", "Food", 20, expense.NewDate(2024, time.March, 10)),
		exp("4", "Food", 5, expense.NewDate(2024, time.March, 31)),
	}
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name      string
		at        time.Time
		wantStart string
		wantEnd   string
	}{
		{"Mid month", now, "2024-03-01", "2024-03-31"},
		{"Leap February", time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29"},
		{"December", time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), "2023-12-01", "2023-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := report.MonthRange(tt.at)
			assert.Equal(t, tt.wantStart, r.Start.String())
			assert.Equal(t, tt.wantEnd, r.End.String())
		})
	}
}

func TestRange_ContainsIsInclusive(t *testing.T) {
	r := report.MonthRange(now)

	assert.True(t, r.Contains(expense.NewDate(2024, time.March, 1)))
	assert.True(t, r.Contains(expense.NewDate(2024, time.March, 31)))
	assert.False(t, r.Contains(expense.NewDate(2024, time.February, 29)))
	assert.False(t, r.Contains(expense.NewDate(2024, time.April, 1)))
}

func TestCategoryTotals(t *testing.T) {
	t.Run("CurrentMonth", func(t *testing.T) {
		got := report.CategoryTotals(scenario(), report.MonthRange(now))

		require.Len(t, got, 1)
		assert.Equal(t, "Food", got[0].Category)
		assert.InDelta(t, 35.0, got[0].Total, 1e-9)
		assert.Equal(t, 3, got[0].Count)
		assert.Equal(t, "#6B7280", got[0].Color, "unknown names take the Other color")
	})

	t.Run("FirstSeenOrder", func(t *testing.T) {
		d := expense.NewDate(2024, time.March, 2)
		list := []expense.Expense{
			exp("1", "Shopping", 1, d),
			exp("2", "Food", 100, d),
			exp("3", "Shopping", 1, d),
		}

		got := report.CategoryTotals(list, report.MonthRange(now))

		require.Len(t, got, 2)
		assert.Equal(t, "Shopping", got[0].Category)
		assert.Equal(t, "Food", got[1].Category)
	})

	t.Run("NoFloatDrift", func(t *testing.T) {
		d := expense.NewDate(2024, time.March, 2)
		list := []expense.Expense{exp("1", "Food", 0.1, d), exp("2", "Food", 0.2, d)}

		got := report.CategoryTotals(list, report.MonthRange(now))

		require.Len(t, got, 1)
		assert.Equal(t, 0.3, got[0].Total)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, report.CategoryTotals(nil, report.MonthRange(now)))
	})

	t.Run("KnownCategoryColor", func(t *testing.T) {
		list := []expense.Expense{exp("1", "Travel", 3, expense.NewDate(2024, time.March, 2))}

		got := report.CategoryTotals(list, report.MonthRange(now))

		require.Len(t, got, 1)
		assert.Equal(t, "#06B6D4", got[0].Color)
	})
}

func TestAllTimeCategoryTotals_SortByTotal(t *testing.T) {
	got := report.SortByTotal(report.AllTimeCategoryTotals(scenario()))

	require.Len(t, got, 2)
	assert.Equal(t, "Travel", got[0].Category)
	assert.InDelta(t, 50.0, got[0].Total, 1e-9)
	assert.Equal(t, "Food", got[1].Category)
	assert.InDelta(t, 35.0, got[1].Total, 1e-9)
}

func TestMonthlyTotals(t *testing.T) {
	t.Run("Scenario", func(t *testing.T) {
		got := report.MonthlyTotals(scenario(), now, 6)

		require.Len(t, got, 6)

		labels := make([]string, 0, len(got))
		for _, m := range got {
			labels = append(labels, m.Label)
		}

		assert.Equal(t, []string{"Oct", "Nov", "Dec", "Jan", "Feb", "Mar"}, labels)
		assert.Equal(t, 2023, got[0].Year)
		assert.Equal(t, time.October, got[0].Month)

		for _, m := range got[:4] {
			assert.Zero(t, m.Total)
			assert.Zero(t, m.Count)
		}

		assert.InDelta(t, 50.0, got[4].Total, 1e-9)
		assert.Equal(t, 1, got[4].Count)
		assert.InDelta(t, 35.0, got[5].Total, 1e-9)
		assert.Equal(t, 3, got[5].Count)
	})

	t.Run("AlwaysNEntries", func(t *testing.T) {
		assert.Len(t, report.MonthlyTotals(nil, now, 6), 6)
		assert.Len(t, report.MonthlyTotals(nil, now, 13), 13)
	})

	t.Run("NonPositive", func(t *testing.T) {
		assert.Empty(t, report.MonthlyTotals(scenario(), now, 0))
		assert.Empty(t, report.MonthlyTotals(scenario(), now, -1))
	})

	t.Run("SameMonthOtherYearExcluded", func(t *testing.T) {
		list := []expense.Expense{exp("1", "Food", 9, expense.NewDate(2023, time.March, 5))}

		got := report.MonthlyTotals(list, now, 6)

		assert.Zero(t, got[5].Total)
	})
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"NoPrevious", 100, 0, 0},
		{"Increase", 150, 100, 50},
		{"Decrease", 50, 100, -50},
		{"Flat", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, report.Trend(tt.current, tt.previous), 1e-9)
		})
	}
}

func TestRecent(t *testing.T) {
	d := expense.NewDate(2024, time.March, 1)

	var list []expense.Expense
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		list = append(list, exp(id, "Food", 1, d))
	}

	got := report.Recent(list, 5)

	require.Len(t, got, 5)
	assert.Equal(t, "g", got[0].ID)
	assert.Equal(t, "c", got[4].ID)
	assert.Equal(t, "a", list[0].ID, "input must not be reordered")

	assert.Len(t, report.Recent(list[:2], 5), 2)
	assert.NotNil(t, report.Recent(nil, 5))
}
