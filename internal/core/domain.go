package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the only accepted date format, both in input rows and on the command line.
const DateLayout = "2006-01-02"

type (
	// Date is a calendar day in UTC. The zero value means "no date".
	Date struct {
		time.Time
	}

	// ExpenseRow is one parsed data row. It only lives while the row is processed.
	ExpenseRow struct {
		Date     Date // zero if the cell was blank or malformed
		Category string
		Amount   decimal.Decimal
	}

	// DateRange bounds an analysis. Both ends are inclusive and either may be zero.
	DateRange struct {
		From Date
		To   Date
	}

	// CategoryTotals maps an exact, case-sensitive category name to its accumulated amount.
	CategoryTotals map[string]decimal.Decimal
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty returns true if the date is zero
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// String formats the date as YYYY-MM-DD, or "" when empty.
func (d Date) String() string {
	if d.IsEmpty() {
		return ""
	}
	return d.Format(DateLayout)
}

// Valid reports whether the row may contribute to totals at all.
func (r ExpenseRow) Valid() bool {
	return strings.TrimSpace(r.Category) != ""
}

// NewDateRange builds a range and rejects a lower bound later than the upper one.
func NewDateRange(from, to Date) (DateRange, error) {
	if !from.IsEmpty() && !to.IsEmpty() && from.After(to.Time) {
		return DateRange{}, NewValidationError("--from date cannot be after --to date.")
	}
	return DateRange{From: from, To: to}, nil
}

// Active reports whether any bound is set.
func (r DateRange) Active() bool {
	return !r.From.IsEmpty() || !r.To.IsEmpty()
}

// Contains reports whether d falls inside the range. An empty date is never
// contained by an active range; an inactive range contains everything.
func (r DateRange) Contains(d Date) bool {
	if !r.Active() {
		return true
	}
	if d.IsEmpty() {
		return false
	}
	if !r.From.IsEmpty() && d.Before(r.From.Time) {
		return false
	}
	if !r.To.IsEmpty() && d.After(r.To.Time) {
		return false
	}
	return true
}

// Add accumulates amount under category, creating the entry at zero if needed.
func (t CategoryTotals) Add(category string, amount decimal.Decimal) {
	t[category] = t[category].Add(amount)
}

// GrandTotal returns the sum of every category, zero when empty.
func (t CategoryTotals) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, v := range t {
		total = total.Add(v)
	}
	return total
}
