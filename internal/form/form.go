// Package form turns raw user input into expense parameters. The store
// accepts whatever it is given, so every entry point validates here first.
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
)

var (
	ErrEmptyTitle    = errors.New("title is required")
	ErrInvalidAmount = errors.New("amount must be a non-negative number")
	ErrEmptyCategory = errors.New("category is required")
	ErrInvalidDate   = errors.New("date must be in YYYY-MM-DD format")
)

// Draft is the unvalidated content of the add/edit form.
type Draft struct {
	Title       string
	Amount      string
	Category    string
	Date        string
	Description string
}

// FromExpense pre-fills a draft for editing e.
func FromExpense(e expense.Expense) Draft {
	return Draft{
		Title:       e.Title,
		Amount:      decimal.NewFromFloat(e.Amount).StringFixed(2),
		Category:    e.Category,
		Date:        e.Date.String(),
		Description: e.Description,
	}
}

// Validate reports every problem with the draft at once. Individual
// failures can be matched with errors.Is.
func (d Draft) Validate() error {
	var errs []error

	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, ErrEmptyTitle)
	}

	if _, err := ParseAmount(d.Amount); err != nil {
		errs = append(errs, err)
	}

	if strings.TrimSpace(d.Category) == "" {
		errs = append(errs, ErrEmptyCategory)
	}

	if _, err := d.date(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// CreateParams validates the draft and converts it for expense.Store.Add.
func (d Draft) CreateParams() (expense.CreateParams, error) {
	if err := d.Validate(); err != nil {
		return expense.CreateParams{}, err
	}

	amount, _ := ParseAmount(d.Amount)
	date, _ := d.date()

	return expense.CreateParams{
		Title:       strings.TrimSpace(d.Title),
		Amount:      amount,
		Category:    strings.TrimSpace(d.Category),
		Date:        date,
		Description: strings.TrimSpace(d.Description),
	}, nil
}

// UpdateParams validates the draft and converts it into a full replacement
// of the editable fields.
func (d Draft) UpdateParams() (expense.UpdateParams, error) {
	p, err := d.CreateParams()
	if err != nil {
		return expense.UpdateParams{}, err
	}

	return expense.UpdateParams{
		Title:       &p.Title,
		Amount:      &p.Amount,
		Category:    &p.Category,
		Date:        &p.Date,
		Description: &p.Description,
	}, nil
}

// date returns today for an empty field.
func (d Draft) date() (expense.Date, error) {
	s := strings.TrimSpace(d.Date)
	if s == "" {
		return expense.Today(), nil
	}

	date, err := expense.ParseDate(s)
	if err != nil {
		return expense.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return date, nil
}

// ParseAmount parses a money amount and rounds it to cents. Both "12.50" and
// "12,50" are accepted, as is a thousands separator in "1,234.50".
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(normalizeAmount(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return d.Round(2).InexactFloat64(), nil
}

func normalizeAmount(s string) string {
	s = strings.ReplaceAll(s, " ", "")

	hasDot := strings.Contains(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case hasDot && commas > 0:
		// 1,234.50
		return strings.ReplaceAll(s, ",", "")
	case commas == 1 && len(s)-strings.LastIndex(s, ",")-1 != 3:
		// 12,50 or 12,5
		return strings.Replace(s, ",", ".", 1)
	default:
		// 1,234 or 1,234,567
		return strings.ReplaceAll(s, ",", "")
	}
}

// Patch is a partial edit. Nil fields are left unchanged; set fields are
// validated the same way as in a Draft.
type Patch struct {
	Title       *string
	Amount      *string
	Category    *string
	Date        *string
	Description *string
}

func (p Patch) UpdateParams() (expense.UpdateParams, error) {
	var (
		params expense.UpdateParams
		errs   []error
	)

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			errs = append(errs, ErrEmptyTitle)
		}

		params.Title = &title
	}

	if p.Amount != nil {
		amount, err := ParseAmount(*p.Amount)
		if err != nil {
			errs = append(errs, err)
		}

		params.Amount = &amount
	}

	if p.Category != nil {
		category := strings.TrimSpace(*p.Category)
		if category == "" {
			errs = append(errs, ErrEmptyCategory)
		}

		params.Category = &category
	}

	if p.Date != nil {
		date, err := expense.ParseDate(strings.TrimSpace(*p.Date))
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidDate, *p.Date))
		}

		params.Date = &date
	}

	if p.Description != nil {
		description := strings.TrimSpace(*p.Description)
		params.Description = &description
	}

	if err := errors.Join(errs...); err != nil {
		return expense.UpdateParams{}, err
	}

	return params, nil
}
