package form_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
	"github.com/MrJamesThe3rd/smartexpense/internal/form"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "12.50", want: 12.5},
		{input: "12,50", want: 12.5},
		{input: "12,5", want: 12.5},
		{input: "1,234.50", want: 1234.5},
		{input: "1,234", want: 1234},
		{input: " 7 ", want: 7},
		{input: "0", want: 0},
		{input: "3.14159", want: 3.14},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := form.ParseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, form.ErrInvalidAmount)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDraft_Validate(t *testing.T) {
	valid := form.Draft{Title: "Lunch", Amount: "12.50", Category: "Food & Dining", Date: "2024-03-10"}

	tests := []struct {
		name   string
		mutate func(d *form.Draft)
		want   []error
	}{
		{name: "Valid", mutate: func(*form.Draft) {}},
		{name: "EmptyDateDefaults", mutate: func(d *form.Draft) { d.Date = "" }},
		{name: "BlankTitle", mutate: func(d *form.Draft) { d.Title = "   " }, want: []error{form.ErrEmptyTitle}},
		{name: "BadAmount", mutate: func(d *form.Draft) { d.Amount = "ten" }, want: []error{form.ErrInvalidAmount}},
		{name: "NoCategory", mutate: func(d *form.Draft) { d.Category = "" }, want: []error{form.ErrEmptyCategory}},
		{name: "BadDate", mutate: func(d *form.Draft) { d.Date = "10/03/2024" }, want: []error{form.ErrInvalidDate}},
		{
			name:   "Everything",
			mutate: func(d *form.Draft) { *d = form.Draft{Date: "nope"} },
			want:   []error{form.ErrEmptyTitle, form.ErrInvalidAmount, form.ErrEmptyCategory, form.ErrInvalidDate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)

			err := d.Validate()
			if len(tt.want) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)

			for _, want := range tt.want {
				assert.True(t, errors.Is(err, want), "expected %v in %v", want, err)
			}
		})
	}
}

func TestDraft_CreateParams(t *testing.T) {
	d := form.Draft{
		Title:       "  Taxi ",
		Amount:      "23,40",
		Category:    "Transportation",
		Date:        "2024-03-10",
		Description: " airport ",
	}

	got, err := d.CreateParams()
	require.NoError(t, err)

	assert.Equal(t, expense.CreateParams{
		Title:       "Taxi",
		Amount:      23.4,
		Category:    "Transportation",
		Date:        expense.NewDate(2024, time.March, 10),
		Description: "airport",
	}, got)
}

func TestDraft_CreateParams_DefaultsToToday(t *testing.T) {
	got, err := form.Draft{Title: "Coffee", Amount: "3", Category: "Food & Dining"}.CreateParams()
	require.NoError(t, err)

	assert.Equal(t, expense.Today(), got.Date)
}

func TestDraft_CreateParams_Invalid(t *testing.T) {
	_, err := form.Draft{}.CreateParams()
	assert.ErrorIs(t, err, form.ErrEmptyTitle)
}

func TestDraft_UpdateParams(t *testing.T) {
	d := form.Draft{Title: "Rent", Amount: "900", Category: "Bills & Utilities", Date: "2024-03-01"}

	got, err := d.UpdateParams()
	require.NoError(t, err)
	require.NotNil(t, got.Title)
	require.NotNil(t, got.Amount)
	require.NotNil(t, got.Description)

	assert.Equal(t, "Rent", *got.Title)
	assert.Equal(t, 900.0, *got.Amount)
	assert.Empty(t, *got.Description, "clearing the description must be expressible")
}

func TestFromExpense(t *testing.T) {
	e := expense.Expense{
		ID:          "1",
		Title:       "Book",
		Amount:      12.5,
		Category:    "Education",
		Date:        expense.NewDate(2024, time.February, 3),
		Description: "Go",
	}

	d := form.FromExpense(e)

	assert.Equal(t, form.Draft{Title: "Book", Amount: "12.50", Category: "Education", Date: "2024-02-03", Description: "Go"}, d)

	p, err := d.CreateParams()
	require.NoError(t, err)
	assert.Equal(t, e.Amount, p.Amount)
	assert.Equal(t, e.Date, p.Date)
}

func TestPatch_UpdateParams(t *testing.T) {
	t.Run("OnlySetFields", func(t *testing.T) {
		got, err := form.Patch{Amount: new("7,25")}.UpdateParams()
		require.NoError(t, err)

		require.NotNil(t, got.Amount)
		assert.Equal(t, 7.25, *got.Amount)
		assert.Nil(t, got.Title)
		assert.Nil(t, got.Date)
	})

	t.Run("Empty", func(t *testing.T) {
		got, err := form.Patch{}.UpdateParams()
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
	})

	t.Run("DateMustBeExplicit", func(t *testing.T) {
		_, err := form.Patch{Date: new("")}.UpdateParams()
		assert.ErrorIs(t, err, form.ErrInvalidDate)
	})

	t.Run("CollectsErrors", func(t *testing.T) {
		_, err := form.Patch{Title: new(""), Amount: new("-1"), Category: new(" ")}.UpdateParams()

		require.Error(t, err)
		assert.ErrorIs(t, err, form.ErrEmptyTitle)
		assert.ErrorIs(t, err, form.ErrInvalidAmount)
		assert.ErrorIs(t, err, form.ErrEmptyCategory)
	})
}
