// Package core provides the expense domain types and the pure parsers
// used by the row loop.
//
// This file contains the amount and date parsers. Both return an ok flag
// instead of an error: a cell that does not parse is a normal outcome, not a
// failure.
package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// amountNoise removes currency symbols and thousands separators.
var amountNoise = strings.NewReplacer("£", "", "$", "", ",", "")

// maxAmountExponent bounds the decimal exponent of a parsed amount to the
// range of a float64. Anything larger would not be finite, and arithmetic
// between decimals with far apart exponents grows without limit.
const maxAmountExponent = 308

// ParseAmount converts a cell like "12.50", "£12.50" or " $1,200.50 " to a decimal.
//
// Examples:
//
//	ParseAmount("£1,200.50") -> 1200.50, true
//	ParseAmount("-4")        -> -4, true
//	ParseAmount("")          -> 0, false
//	ParseAmount("abc")       -> 0, false
//	ParseAmount("1e400")     -> 0, false
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.TrimSpace(amountNoise.Replace(s))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, false
	}
	return d, true
}

// ParseDate parses a YYYY-MM-DD cell. Blank or malformed input yields false.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, false
	}
	return Date{Time: t}, true
}
