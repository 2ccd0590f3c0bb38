package view

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/smartexpense/internal/category"
	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
	"github.com/MrJamesThe3rd/smartexpense/internal/report"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateForm
	listStateConfirmDelete
	listStatePeriod
)

type ListModel struct {
	CommonModel
	store *expense.Store

	state  listState
	table  table.Model
	all    []expense.Expense
	rows   []expense.Expense
	period TimeframeSelectedMsg

	form          ExpenseForm
	confirmForm   *huh.Form
	confirmDelete *bool
	picker        TimeframePicker

	status string
}

func NewListModel(store *expense.Store, snap expense.Snapshot) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Title", Width: 28},
		{Title: "Category", Width: 22},
		{Title: "Amount", Width: 12},
		{Title: "Description", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := ListModel{
		store:  store,
		table:  t,
		all:    snap.Expenses,
		period: TimeframeSelectedMsg{Timeframe: TimeframeAll, All: true},
		picker: NewTimeframePicker(TimeframeThisWeek),
	}
	m.refreshTable()

	return m
}

func (m ListModel) Title() string { return "Expenses" }

func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStateForm:
		return "Navigate form | Esc: cancel"
	case listStateConfirmDelete:
		return "y/n: confirm | Esc: cancel"
	case listStatePeriod:
		return "Enter: select | Esc: cancel"
	}

	return "Esc: back | a: add | e/Enter: edit | d: delete | p: period"
}

func (m ListModel) Init() tea.Cmd {
	return nil
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.all = msg.Expenses
		m.refreshTable()

		return m, nil

	case expenseFormDoneMsg:
		return m, saveExpenseCmd(m.store, msg)

	case expenseSavedMsg:
		m.state = listStateBrowse
		m.table.Focus()

		switch {
		case msg.err != nil:
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		case msg.added:
			m.status = fmt.Sprintf("Added %q", msg.expense.Title)
		default:
			m.status = fmt.Sprintf("Updated %q", msg.expense.Title)
		}

		return m, nil

	case listDeleteMsg:
		m.state = listStateBrowse
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Deleted %q", msg.title)
		}

		return m, nil

	case TimeframeSelectedMsg:
		m.period = msg
		m.state = listStateBrowse
		m.table.Focus()
		m.table.SetCursor(0)
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateForm:
		return m.updateForm(msg)
	case listStateConfirmDelete:
		return m.updateConfirm(msg)
	case listStatePeriod:
		return m.updatePeriod(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			m.form = NewExpenseForm()
			m.state = listStateForm
			m.table.Blur()

			return m, m.form.Init()
		case "e", "enter":
			e, ok := m.selected()
			if !ok {
				return m, nil
			}

			m.form = EditExpenseForm(e)
			m.state = listStateForm
			m.table.Blur()

			return m, m.form.Init()
		case "d":
			return m.enterConfirmDelete()
		case "p":
			m.picker.Reset()
			m.state = listStatePeriod
			m.table.Blur()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) enterConfirmDelete() (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.confirmDelete = new(false)
	m.confirmForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q (%s)?", e.Title, FormatAmount(e.Amount))).
				Affirmative("Delete").
				Negative("Keep").
				Value(m.confirmDelete),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = listStateConfirmDelete
	m.table.Blur()

	return m, m.confirmForm.Init()
}

func (m ListModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	return m, cmd
}

func (m ListModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.confirmForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirmForm = f
	}

	if m.confirmForm.State != huh.StateCompleted {
		return m, cmd
	}

	e, ok := m.selected()
	if !*m.confirmDelete || !ok {
		m.state = listStateBrowse
		m.table.Focus()

		return m, nil
	}

	return m, m.deleteCmd(e)
}

func (m ListModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
		m.state = listStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m ListModel) View() string {
	if m.state == listStatePeriod {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	header := fmt.Sprintf(
		"[p] Period: %s | %d expenses | Total: %s",
		activeStyle(m.period.Label()),
		len(m.rows),
		activeStyle(FormatAmount(report.Total(m.rows))),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if len(m.rows) == 0 {
		tableView = faintStyle.Render("No expenses yet. Press a to add one.")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	var panel string

	switch m.state {
	case listStateForm:
		panel = m.form.View()
	case listStateConfirmDelete:
		panel = m.confirmForm.View()
	}

	if panel != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content,
			lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Width(56).
				Render(panel),
		)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ListModel) selected() (expense.Expense, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return expense.Expense{}, false
	}

	return m.rows[idx], true
}

// refreshTable shows the expenses in the selected period, newest date first.
// Expenses sharing a date are listed most recently added first.
func (m *ListModel) refreshTable() {
	m.rows = make([]expense.Expense, 0, len(m.all))

	for i := len(m.all) - 1; i >= 0; i-- {
		if m.period.Contains(m.all[i].Date) {
			m.rows = append(m.rows, m.all[i])
		}
	}

	slices.SortStableFunc(m.rows, func(a, b expense.Expense) int {
		return cmp.Compare(b.Date.Time().Unix(), a.Date.Time().Unix())
	})

	rows := make([]table.Row, 0, len(m.rows))
	for _, e := range m.rows {
		c := category.Lookup(e.Category)
		rows = append(rows, table.Row{
			e.Date.String(),
			e.Title,
			c.Icon + " " + e.Category,
			FormatAmount(e.Amount),
			e.Description,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

type listDeleteMsg struct {
	title string
	err   error
}

func (m ListModel) deleteCmd(e expense.Expense) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		ok, err := m.store.Delete(ctx, e.ID)
		if err == nil && !ok {
			err = fmt.Errorf("expense %q no longer exists", e.Title)
		}

		return listDeleteMsg{title: e.Title, err: err}
	}
}
