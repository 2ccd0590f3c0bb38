package expense

import (
	"encoding/json"
	"fmt"
	"time"
)

// Expense is a single ledger entry.
type Expense struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        Date    `json:"date"`
	Description string  `json:"description,omitempty"`
}

// CreateParams is an expense record without its id.
type CreateParams struct {
	Title       string
	Amount      float64
	Category    string
	Date        Date
	Description string
}

// UpdateParams holds the fields to merge into an existing expense. Nil fields are left unchanged.
type UpdateParams struct {
	Title       *string  `json:"title,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Date        *Date    `json:"date,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// IsEmpty reports whether no field is set.
func (p UpdateParams) IsEmpty() bool {
	return p.Title == nil && p.Amount == nil && p.Category == nil && p.Date == nil && p.Description == nil
}

func (p UpdateParams) apply(e Expense) Expense {
	if p.Title != nil {
		e.Title = *p.Title
	}

	if p.Amount != nil {
		e.Amount = *p.Amount
	}

	if p.Category != nil {
		e.Category = *p.Category
	}

	if p.Date != nil {
		e.Date = *p.Date
	}

	if p.Description != nil {
		e.Description = *p.Description
	}

	return e
}

// Snapshot is the full expense list at a point in time.
// Version grows by one with every applied mutation.
type Snapshot struct {
	Version  uint64    `json:"version"`
	Expenses []Expense `json:"expenses"`
}

const dateLayout = time.DateOnly

// Date is a calendar date without time-of-day, stored as UTC midnight.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current local calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return DateOf(t), nil
}

func (d Date) Year() int            { return d.t.Year() }
func (d Date) Month() time.Month    { return d.t.Month() }
func (d Date) Day() int             { return d.t.Day() }
func (d Date) IsZero() bool         { return d.t.IsZero() }
func (d Date) Time() time.Time      { return d.t }
func (d Date) Before(o Date) bool   { return d.t.Before(o.t) }
func (d Date) After(o Date) bool    { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool    { return d.t.Equal(o.t) }
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }

// InRange reports whether d lies within [start, end].
func (d Date) InRange(start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.t.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	if s == "" {
		*d = Date{}
		return nil
	}

	// Some clients send full timestamps; only the calendar part matters.
	if len(s) > len(dateLayout) && (s[len(dateLayout)] == 'T' || s[len(dateLayout)] == ' ') {
		s = s[:len(dateLayout)]
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
