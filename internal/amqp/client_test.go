package amqp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/core"
)

func TestNewClientRejectsBadURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"http scheme", "http://localhost:5672/"},
		{"empty", ""},
		{"garbage", "::::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, "expenses", "summary", time.Second)
			require.Error(t, err)
			assert.Nil(t, client)
			assert.Contains(t, err.Error(), "parse AMQP URL")
		})
	}
}

func TestCloseWithoutConnection(t *testing.T) {
	c := &Client{}
	assert.NoError(t, c.Close())
}

func TestSummaryMessage(t *testing.T) {
	s := core.Summarize(core.CategoryTotals{
		"Food":   decimal.RequireFromString("15"),
		"Travel": decimal.RequireFromString("5"),
	})
	rng := core.DateRange{From: core.NewDate(2024, 1, 1)}

	msg := NewSummaryMessage("run-1", "/data/expenses.csv", rng, 3, 1, s)

	assert.Equal(t, "2024-01-01", msg.DateFrom)
	assert.Empty(t, msg.DateTo)
	assert.Equal(t, "20.00", msg.Total)
	require.Len(t, msg.Categories, 2)
	assert.Equal(t, CategoryLine{Category: "Food", Amount: "15.00", Percent: "75.0"}, msg.Categories[0])

	body, err := msg.ToJSON()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, "run-1", raw["run_id"])
	assert.NotContains(t, raw, "date_to")

	decoded, err := SummaryMessageFromJSON(body)
	require.NoError(t, err)
	assert.Equal(t, msg.Categories, decoded.Categories)
	assert.Equal(t, 3, decoded.Processed)
	assert.Equal(t, 1, decoded.Skipped)
	assert.True(t, msg.Timestamp.Equal(decoded.Timestamp))
}

func TestSummaryMessageFromJSONInvalid(t *testing.T) {
	_, err := SummaryMessageFromJSON([]byte("{"))
	assert.Error(t, err)
}

func TestPublisherInterface(t *testing.T) {
	var _ interface {
		PublishSummary(context.Context, *SummaryMessage) error
		Close() error
	} = (*Client)(nil)
}
