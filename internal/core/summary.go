package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CategoryAmount represents an amount aggregated by category name, with its share of the total.
type CategoryAmount struct {
	Name    string
	Amount  decimal.Decimal
	Percent decimal.Decimal // 0-100, zero when the grand total is zero
}

// Summary is the ordered view of a CategoryTotals shared by the printer and the exporter.
type Summary struct {
	Total      decimal.Decimal
	ByCategory []CategoryAmount
}

// Empty reports whether no category contributed.
func (s Summary) Empty() bool {
	return len(s.ByCategory) == 0
}

// Summarize orders categories by amount descending, ties by name ascending.
func Summarize(totals CategoryTotals) Summary {
	total := totals.GrandTotal()
	list := make([]CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		list = append(list, CategoryAmount{
			Name:    name,
			Amount:  amount,
			Percent: Share(amount, total),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if c := list[i].Amount.Cmp(list[j].Amount); c != 0 {
			return c > 0
		}
		return list[i].Name < list[j].Name
	})
	return Summary{Total: total, ByCategory: list}
}

// Share returns amount / total * 100, or zero when total is zero.
func Share(amount, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return amount.Div(total).Mul(hundred)
}
