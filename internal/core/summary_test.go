package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSummarizeOrdersByAmountThenName(t *testing.T) {
	s := Summarize(CategoryTotals{
		"Travel": dec("20"),
		"Food":   dec("50"),
		"Books":  dec("20"),
		"Rent":   dec("10"),
	})

	require.Len(t, s.ByCategory, 4)
	names := make([]string, 0, len(s.ByCategory))
	for _, c := range s.ByCategory {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Food", "Books", "Travel", "Rent"}, names)
	assert.True(t, s.Total.Equal(dec("100")))
	assert.Equal(t, "50.0", s.ByCategory[0].Percent.StringFixed(1))
	assert.Equal(t, "10.0", s.ByCategory[3].Percent.StringFixed(1))
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(CategoryTotals{})
	assert.True(t, s.Empty())
	assert.True(t, s.Total.IsZero())
}

func TestShareZeroTotal(t *testing.T) {
	assert.True(t, Share(dec("5"), decimal.Zero).IsZero())

	s := Summarize(CategoryTotals{"Refund": dec("5"), "Food": dec("-5")})
	for _, c := range s.ByCategory {
		assert.True(t, c.Percent.IsZero(), "%s share should be zero when total is zero", c.Name)
	}
}

func TestSharePercentages(t *testing.T) {
	assert.Equal(t, "33.3", Share(dec("1"), dec("3")).StringFixed(1))
	assert.Equal(t, "66.7", Share(dec("2"), dec("3")).StringFixed(1))
}
