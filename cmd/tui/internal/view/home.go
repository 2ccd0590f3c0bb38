package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/smartexpense/internal/category"
	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
	"github.com/MrJamesThe3rd/smartexpense/internal/report"
)

// HomeModel is the dashboard: this month at a glance plus recent activity.
type HomeModel struct {
	CommonModel

	now     func() time.Time
	summary report.DashboardSummary
}

func NewHomeModel(snap expense.Snapshot, now func() time.Time) HomeModel {
	return HomeModel{now: now, summary: report.Dashboard(snap.Expenses, now())}
}

func (m HomeModel) Title() string     { return "Dashboard" }
func (m HomeModel) ShortHelp() string { return "Esc: back" }

func (m HomeModel) Init() tea.Cmd {
	return nil
}

func (m HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.summary = report.Dashboard(msg.Expenses, m.now())
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m HomeModel) View() string {
	s := m.summary

	monthCard := FormatAmount(s.MonthTotal)
	if trend := FormatTrend(s.Trend); trend != "" {
		style := errStyle
		if s.Trend < 0 {
			style = okStyle
		}

		monthCard += "\n" + style.Render(trend)
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("This Month", monthCard),
		statCard("Expenses", fmt.Sprintf("%d", s.MonthCount)),
		statCard("Total Spent", FormatAmount(s.AllTimeTotal)),
		statCard("Avg per Expense", FormatAmount(s.AveragePerItem)),
	)

	period := s.Period.Start.Time().Format("January 2006")

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Dashboard")+" "+faintStyle.Render(period),
		"",
		cards,
		"",
		titleStyle.Render("This Month by Category"),
		categoryBreakdown(s.Categories, s.MonthTotal),
		"",
		titleStyle.Render("Recent Expenses"),
		recentList(s.Recent),
	))
}

func statCard(label, value string) string {
	return cardStyle.Width(22).Render(faintStyle.Render(label) + "\n" + lipgloss.NewStyle().Bold(true).Render(value))
}

func categoryBreakdown(totals []report.CategoryTotal, total float64) string {
	if len(totals) == 0 {
		return faintStyle.Render("No expenses this month")
	}

	var b strings.Builder

	for _, t := range totals {
		c := category.Lookup(t.Category)

		share := 0.0
		if total > 0 {
			share = t.Total / total * 100
		}

		fmt.Fprintf(&b, "%s %s  %s  %s\n",
			lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●"),
			lipgloss.NewStyle().Width(22).Render(c.Icon+" "+t.Category),
			lipgloss.NewStyle().Width(12).Align(lipgloss.Right).Render(FormatAmount(t.Total)),
			faintStyle.Render(fmt.Sprintf("%.1f%% · %d", share, t.Count)),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}

func recentList(recent []expense.Expense) string {
	if len(recent) == 0 {
		return faintStyle.Render("No expenses yet. Add your first one from the menu.")
	}

	var b strings.Builder

	for _, e := range recent {
		c := category.Lookup(e.Category)
		fmt.Fprintf(&b, "%s  %s  %s  %s\n",
			faintStyle.Render(e.Date.String()),
			c.Icon,
			lipgloss.NewStyle().Width(30).Render(e.Title),
			lipgloss.NewStyle().Width(12).Align(lipgloss.Right).Render(FormatAmount(e.Amount)),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}
