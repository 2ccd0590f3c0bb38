package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/smartexpense/internal/category"
	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
	"github.com/MrJamesThe3rd/smartexpense/internal/report"
)

const (
	reportMonths = 6
	barWidth     = 32
)

type ReportsModel struct {
	CommonModel

	now     func() time.Time
	summary report.ReportSummary
}

func NewReportsModel(snap expense.Snapshot, now func() time.Time) ReportsModel {
	return ReportsModel{now: now, summary: report.Reports(snap.Expenses, now(), reportMonths)}
}

func (m ReportsModel) Title() string     { return "Reports" }
func (m ReportsModel) ShortHelp() string { return "Esc: back" }

func (m ReportsModel) Init() tea.Cmd {
	return nil
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.summary = report.Reports(msg.Expenses, m.now(), reportMonths)
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ReportsModel) View() string {
	s := m.summary

	highest := "-"
	if s.HighestMonth.Total > 0 {
		highest = fmt.Sprintf("%s %d\n%s", s.HighestMonth.Label, s.HighestMonth.Year, FormatAmount(s.HighestMonth.Total))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total Spent", FormatAmount(s.TotalSpent)),
		statCard("Monthly Average", FormatAmount(s.MonthlyAverage)),
		statCard("Highest Month", highest),
	)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Reports"),
		"",
		cards,
		"",
		titleStyle.Render(fmt.Sprintf("Last %d Months", reportMonths)),
		monthlyChart(s.Monthly),
		"",
		titleStyle.Render("All-Time by Category"),
		categoryShares(s.Categories),
	))
}

func monthlyChart(months []report.MonthlyTotal) string {
	peak := 0.0
	for _, mt := range months {
		peak = max(peak, mt.Total)
	}

	bar := lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	var b strings.Builder

	for _, mt := range months {
		n := 0
		if peak > 0 {
			n = int(mt.Total / peak * barWidth)
		}

		fmt.Fprintf(&b, "%s %s %s\n",
			lipgloss.NewStyle().Width(4).Render(mt.Label),
			lipgloss.NewStyle().Width(barWidth).Render(bar.Render(strings.Repeat("█", n))),
			faintStyle.Render(fmt.Sprintf("%s (%d)", FormatAmount(mt.Total), mt.Count)),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}

func categoryShares(totals []report.CategoryTotal) string {
	if len(totals) == 0 {
		return faintStyle.Render("No expenses recorded")
	}

	var b strings.Builder

	for _, t := range totals {
		c := category.Lookup(t.Category)
		bar := progress.New(
			progress.WithSolidFill(c.Color),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		)

		fmt.Fprintf(&b, "%s %s %s %s\n",
			lipgloss.NewStyle().Width(22).Render(c.Icon+" "+t.Category),
			bar.ViewAs(t.Percent/100),
			lipgloss.NewStyle().Width(12).Align(lipgloss.Right).Render(FormatAmount(t.Total)),
			faintStyle.Render(fmt.Sprintf("%.1f%%", t.Percent)),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}
