package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
)

// AddModel is the standalone add-expense screen. After a successful save the
// form resets so several expenses can be entered in a row.
type AddModel struct {
	CommonModel
	store *expense.Store

	form   ExpenseForm
	saving bool
	status string
	err    error
}

func NewAddModel(store *expense.Store) AddModel {
	return AddModel{store: store, form: NewExpenseForm()}
}

func (m AddModel) Title() string     { return "Add Expense" }
func (m AddModel) ShortHelp() string { return "Enter: next | Esc: back" }

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && !m.saving {
			return m, Back
		}

	case expenseFormDoneMsg:
		m.saving = true
		return m, saveExpenseCmd(m.store, msg)

	case expenseSavedMsg:
		m.saving = false
		m.err = msg.err
		m.status = ""

		if msg.added {
			m.status = fmt.Sprintf("Added %q (%s)", msg.expense.Title, FormatAmount(msg.expense.Amount))
		}

		m.form = NewExpenseForm()

		return m, m.form.Init()

	case SnapshotMsg:
		return m, nil
	}

	if m.saving {
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	return m, cmd
}

func (m AddModel) View() string {
	var header string

	switch {
	case m.err != nil && m.status == "":
		header = errStyle.Render(fmt.Sprintf("Error: %v", m.err))
	case m.err != nil:
		header = errStyle.Render(fmt.Sprintf("%s, but saving failed: %v", m.status, m.err))
	case m.status != "":
		header = okStyle.Render(m.status)
	}

	content := m.form.View()
	if m.saving {
		content = "Saving..."
	}

	if header != "" {
		content = header + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
