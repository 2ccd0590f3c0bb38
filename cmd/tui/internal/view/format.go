package view

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const storeTimeout = 5 * time.Second

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders a dollar amount with thousands separators, e.g. $1,234.50.
func FormatAmount(amount float64) string {
	if amount < 0 {
		return printer.Sprintf("-$%.2f", -amount)
	}

	return printer.Sprintf("$%.2f", amount)
}

// FormatTrend renders a month-over-month change, or "" when there is none.
func FormatTrend(trend float64) string {
	if trend == 0 || math.IsNaN(trend) {
		return ""
	}

	sign := ""
	if trend > 0 {
		sign = "+"
	}

	return fmt.Sprintf("%s%.1f%% from last month", sign, trend)
}

// StoreCtx returns a context with a standard timeout for store operations.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
