package view

import "github.com/charmbracelet/huh"

type ExpenseFormDoneMsg = expenseFormDoneMsg

// Complete puts f in the state huh leaves it in after the last field is confirmed.
func (f ExpenseForm) Complete() ExpenseForm {
	f.form.State = huh.StateCompleted
	return f
}
