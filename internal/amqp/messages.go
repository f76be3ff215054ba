package amqp

import (
	"encoding/json"
	"time"

	"expenses/internal/core"
)

// CategoryLine is one category of a published summary.
type CategoryLine struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Percent  string `json:"percent"`
}

// SummaryMessage describes the outcome of one analysis run.
// Amounts are fixed-point strings so consumers never see float rounding.
type SummaryMessage struct {
	RunID      string         `json:"run_id"`
	File       string         `json:"file"`
	DateFrom   string         `json:"date_from,omitempty"`
	DateTo     string         `json:"date_to,omitempty"`
	Processed  int            `json:"processed"`
	Skipped    int            `json:"skipped"`
	Total      string         `json:"total"`
	Categories []CategoryLine `json:"categories"`
	Timestamp  time.Time      `json:"timestamp"`
}

// NewSummaryMessage builds a message from a summary and its run metadata.
func NewSummaryMessage(runID, file string, rng core.DateRange, processed, skipped int, s core.Summary) *SummaryMessage {
	lines := make([]CategoryLine, 0, len(s.ByCategory))
	for _, c := range s.ByCategory {
		lines = append(lines, CategoryLine{
			Category: c.Name,
			Amount:   c.Amount.StringFixed(2),
			Percent:  c.Percent.StringFixed(1),
		})
	}
	return &SummaryMessage{
		RunID:      runID,
		File:       file,
		DateFrom:   rng.From.String(),
		DateTo:     rng.To.String(),
		Processed:  processed,
		Skipped:    skipped,
		Total:      s.Total.StringFixed(2),
		Categories: lines,
		Timestamp:  time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SummaryMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SummaryMessageFromJSON creates a message from JSON bytes
func SummaryMessageFromJSON(data []byte) (*SummaryMessage, error) {
	var msg SummaryMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
