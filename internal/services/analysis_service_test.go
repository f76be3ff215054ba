package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/amqp"
	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/report"
)

type fakePublisher struct {
	messages   []*amqp.SummaryMessage
	publishErr error
	closed     bool
}

func (f *fakePublisher) PublishSummary(_ context.Context, msg *amqp.SummaryMessage) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func newTestService(t *testing.T, publisher Publisher) (*AnalysisService, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	logger := log.New(log.Config{Level: slog.LevelDebug, Output: logs, Component: log.ComponentApp})
	svc := NewAnalysisService(report.NewPrinter(out), report.NewExporter(report.ExportOptions{}), publisher, logger)
	return svc, out, logs
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "expenses.csv")
	content := "date,category,amount\n" +
		"2024-01-01,Food,10.00\n" +
		"2024-01-05,Food,5.00\n" +
		"2024-02-01,Food,3.00\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalysisService_RunWithExport(t *testing.T) {
	pub := &fakePublisher{}
	svc, out, logs := newTestService(t, pub)

	input := writeInput(t)
	exportPath := filepath.Join(t.TempDir(), "reports", "summary.csv")
	rng := core.DateRange{From: core.NewDate(2024, 1, 1), To: core.NewDate(2024, 1, 31)}

	outcome, err := svc.Run(context.Background(), Request{File: input, Range: rng, ExportPath: exportPath})
	require.NoError(t, err)

	assert.NotEmpty(t, outcome.RunID)
	assert.Equal(t, 3, outcome.Result.Processed)
	assert.Equal(t, 1, outcome.Result.Skipped)
	assert.Equal(t, "15.00", outcome.Summary.Total.StringFixed(2))

	assert.Contains(t, out.String(), "Total spent: 15.00")
	assert.Contains(t, out.String(), "Rows processed: 3 | Rows skipped: 1\n\n")
	assert.Contains(t, out.String(), "Exported summary to: "+exportPath+"\n\n")

	content, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Equal(t, "category,amount,percent_of_total\r\nFood,15.00,100.0\r\n", string(content))

	require.Len(t, pub.messages, 1)
	msg := pub.messages[0]
	assert.Equal(t, outcome.RunID, msg.RunID)
	assert.Equal(t, "2024-01-01", msg.DateFrom)
	assert.Equal(t, "2024-01-31", msg.DateTo)
	assert.Equal(t, "15.00", msg.Total)

	assert.Contains(t, logs.String(), "run_id="+outcome.RunID)
	assert.Contains(t, logs.String(), "component=service")
	assert.Contains(t, logs.String(), "component=analyzer")
	assert.Contains(t, logs.String(), "Skipping row outside date range")
	assert.Contains(t, logs.String(), "date=2024-02-01")
}

func TestAnalysisService_RunWithoutPublisher(t *testing.T) {
	svc, out, _ := newTestService(t, nil)

	_, err := svc.Run(context.Background(), Request{File: writeInput(t)})
	require.NoError(t, err)

	assert.NotContains(t, out.String(), "Exported summary to")
	assert.Contains(t, out.String(), "Rows processed: 3 | Rows skipped: 0")
	assert.NoError(t, svc.Close())
}

func TestAnalysisService_PublishFailureDoesNotFailRun(t *testing.T) {
	pub := &fakePublisher{publishErr: errors.New("broker down")}
	svc, _, logs := newTestService(t, pub)

	_, err := svc.Run(context.Background(), Request{File: writeInput(t)})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Failed to publish summary message")
	assert.Contains(t, logs.String(), "broker down")
}

func TestAnalysisService_EmptyResult(t *testing.T) {
	svc, out, _ := newTestService(t, nil)
	exportPath := filepath.Join(t.TempDir(), "summary.csv")

	rng := core.DateRange{From: core.NewDate(2030, 1, 1)}
	_, err := svc.Run(context.Background(), Request{File: writeInput(t), Range: rng, ExportPath: exportPath})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "No expenses found for the given file/filter.")
	assert.Contains(t, out.String(), "Rows processed: 3 | Rows skipped: 3")

	content, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Equal(t, "category,amount,percent_of_total\r\n", string(content))
}

func TestAnalysisService_MissingFile(t *testing.T) {
	pub := &fakePublisher{}
	svc, out, logs := newTestService(t, pub)

	_, err := svc.Run(context.Background(), Request{File: filepath.Join(t.TempDir(), "missing.csv")})
	require.Error(t, err)

	var nf *core.NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Zero(t, out.Len())
	assert.Empty(t, pub.messages)
	assert.Contains(t, logs.String(), "error_type=NOT_FOUND")
	assert.Contains(t, logs.String(), "operation=analyze")
}

func TestAnalysisService_BadHeaders(t *testing.T) {
	svc, out, logs := newTestService(t, nil)
	path := filepath.Join(t.TempDir(), "expenses.csv")
	require.NoError(t, os.WriteFile(path, []byte("when,what,cost\n2024-01-01,Food,1\n"), 0o644))

	_, err := svc.Run(context.Background(), Request{File: path})
	require.Error(t, err)

	var verr *core.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"amount", "category", "date"}, verr.Missing)
	assert.Zero(t, out.Len())
	assert.Contains(t, logs.String(), "operation=validate")
	assert.Contains(t, logs.String(), "error_type=VALIDATION")
}

func TestAnalysisService_Close(t *testing.T) {
	pub := &fakePublisher{}
	svc, _, _ := newTestService(t, pub)

	require.NoError(t, svc.Close())
	assert.True(t, pub.closed)
}
