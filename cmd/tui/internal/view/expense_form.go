package view

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/smartexpense/internal/category"
	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
	"github.com/MrJamesThe3rd/smartexpense/internal/form"
)

// ExpenseForm edits a form.Draft. It adds a new expense when id is empty and
// edits the expense with that id otherwise.
type ExpenseForm struct {
	id        string
	draft     *form.Draft
	form      *huh.Form
	submitted bool
}

type expenseFormDoneMsg struct {
	id    string
	draft form.Draft
}

func NewExpenseForm() ExpenseForm {
	return newExpenseForm("", form.Draft{Date: expense.Today().String()})
}

func EditExpenseForm(e expense.Expense) ExpenseForm {
	return newExpenseForm(e.ID, form.FromExpense(e))
}

func newExpenseForm(id string, d form.Draft) ExpenseForm {
	draft := &d
	if draft.Category == "" {
		draft.Category = category.All()[0].Name
	}

	options := make([]huh.Option[string], 0, len(category.All())+1)
	known := false

	for _, c := range category.All() {
		options = append(options, huh.NewOption(c.Icon+" "+c.Name, c.Name))
		known = known || c.Name == draft.Category
	}

	// Keep a stored name that is no longer in the list selectable.
	if !known {
		options = append(options, huh.NewOption(draft.Category, draft.Category))
	}

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Placeholder("e.g., Lunch at restaurant").
				Value(&draft.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return form.ErrEmptyTitle
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&draft.Amount).
				Validate(func(s string) error {
					_, err := form.ParseAmount(s)
					return err
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&draft.Category),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&draft.Date).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					if _, err := expense.ParseDate(strings.TrimSpace(s)); err != nil {
						return form.ErrInvalidDate
					}

					return nil
				}),

			huh.NewText().
				Key("description").
				Title("Description").
				Placeholder("Optional notes").
				CharLimit(500).
				Value(&draft.Description),
		),
	).WithWidth(50).WithShowHelp(false)

	return ExpenseForm{id: id, draft: draft, form: f}
}

func (f ExpenseForm) Editing() bool { return f.id != "" }

func (f ExpenseForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update forwards msg to the form. When the form completes a command
// yielding expenseFormDoneMsg is returned, exactly once.
func (f ExpenseForm) Update(msg tea.Msg) (ExpenseForm, tea.Cmd) {
	if f.submitted {
		return f, nil
	}

	model, cmd := f.form.Update(msg)
	if hf, ok := model.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State != huh.StateCompleted {
		return f, cmd
	}

	f.submitted = true
	done := expenseFormDoneMsg{id: f.id, draft: *f.draft}

	return f, func() tea.Msg { return done }
}

func (f ExpenseForm) View() string {
	title := "Add Expense"
	if f.Editing() {
		title = "Edit Expense"
	}

	return titleStyle.Render(title) + "\n\n" + f.form.View()
}

// expenseSavedMsg reports a save. A failed write can still have added the
// expense in memory; added tells the two apart.
type expenseSavedMsg struct {
	expense expense.Expense
	added   bool
	err     error
}

// saveExpenseCmd validates the draft and writes it through the store.
func saveExpenseCmd(store *expense.Store, done expenseFormDoneMsg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if done.id == "" {
			params, err := done.draft.CreateParams()
			if err != nil {
				return expenseSavedMsg{err: err}
			}

			e, err := store.Add(ctx, params)

			return expenseSavedMsg{expense: e, added: e.ID != "", err: err}
		}

		params, err := done.draft.UpdateParams()
		if err != nil {
			return expenseSavedMsg{err: err}
		}

		e, ok, err := store.Update(ctx, done.id, params)
		if err == nil && !ok {
			err = errors.New("expense no longer exists")
		}

		return expenseSavedMsg{expense: e, err: err}
	}
}
