package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"expenses/internal/amqp"
	"expenses/internal/analyzer"
	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/report"
)

// Publisher sends run summaries somewhere outside the process.
type Publisher interface {
	PublishSummary(ctx context.Context, msg *amqp.SummaryMessage) error
	Close() error
}

// Request is one fully validated analysis invocation.
type Request struct {
	File       string // absolute path of the input CSV
	Range      core.DateRange
	ExportPath string // absolute path, empty to skip the export
}

// Outcome is what a run produced.
type Outcome struct {
	RunID   string
	Result  analyzer.Result
	Summary core.Summary
}

// AnalysisService orchestrates analysis, console output, export and notification
type AnalysisService struct {
	printer   *report.Printer
	exporter  *report.Exporter
	publisher Publisher
	logger    *log.Logger
}

// NewAnalysisService wires the collaborators. publisher may be nil.
func NewAnalysisService(printer *report.Printer, exporter *report.Exporter, publisher Publisher, logger *log.Logger) *AnalysisService {
	return &AnalysisService{
		printer:   printer,
		exporter:  exporter,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentService),
	}
}

// Run analyzes req.File, prints the summary, and exports it when requested.
func (s *AnalysisService) Run(ctx context.Context, req Request) (Outcome, error) {
	runID := uuid.NewString()
	logger := s.logger.With(log.FieldRunID, runID)
	ctx = log.WithContext(ctx, logger)
	start := time.Now()

	logger.InfoContext(ctx, "Starting analysis",
		log.FieldFile, req.File,
		log.FieldDateFrom, req.Range.From.String(),
		log.FieldDateTo, req.Range.To.String())

	result, err := analyzer.Analyze(ctx, req.File, req.Range)
	if err != nil {
		logger.WarnContext(ctx, "Analysis failed", log.NewFields().
			WithOperation(log.OpAnalyze).
			WithError(err).
			WithErrorType(errorType(err)).
			ToSlice()...)
		return Outcome{}, err
	}

	summary := core.Summarize(result.Totals)
	logger.InfoContext(ctx, "Analysis complete",
		log.FieldProcessed, result.Processed,
		log.FieldSkipped, result.Skipped,
		log.FieldCategories, len(summary.ByCategory),
		log.FieldTotal, summary.Total.StringFixed(2),
		log.FieldDuration, time.Since(start).Milliseconds())

	if err := s.printer.Print(summary); err != nil {
		logger.ErrorContext(ctx, "Print failed", log.NewFields().WithOperation(log.OpPrint).WithError(err).ToSlice()...)
		return Outcome{}, err
	}
	if err := s.printer.PrintCounts(result.Processed, result.Skipped); err != nil {
		logger.ErrorContext(ctx, "Print failed", log.NewFields().WithOperation(log.OpPrint).WithError(err).ToSlice()...)
		return Outcome{}, err
	}

	if req.ExportPath != "" {
		if err := s.exporter.Export(ctx, req.ExportPath, summary); err != nil {
			logger.ErrorContext(ctx, "Export failed", log.NewFields().WithOperation(log.OpExport).WithError(err).ToSlice()...)
			return Outcome{}, fmt.Errorf("export summary: %w", err)
		}
		logger.InfoContext(ctx, "Summary exported", log.FieldOperation, log.OpExport, log.FieldExportPath, req.ExportPath)
		if err := s.printer.PrintExported(req.ExportPath); err != nil {
			return Outcome{}, err
		}
	}

	s.publish(ctx, logger, amqp.NewSummaryMessage(runID, req.File, req.Range, result.Processed, result.Skipped, summary))

	return Outcome{RunID: runID, Result: result, Summary: summary}, nil
}

// errorType returns the category of a domain error, or "" for anything else.
func errorType(err error) string {
	var typed interface{ Type() core.ErrorType }
	if errors.As(err, &typed) {
		return string(typed.Type())
	}
	return ""
}

// publish is best effort: the report has already been delivered.
func (s *AnalysisService) publish(ctx context.Context, logger *log.Logger, msg *amqp.SummaryMessage) {
	if s.publisher == nil {
		logger.DebugContext(ctx, "AMQP publisher not configured, skipping summary notification")
		return
	}
	if err := s.publisher.PublishSummary(ctx, msg); err != nil {
		logger.ErrorContext(ctx, "Failed to publish summary message", log.FieldError, err)
	}
}

// Close releases the publisher, if any
func (s *AnalysisService) Close() error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close publisher: %w", err)
	}
	return nil
}
