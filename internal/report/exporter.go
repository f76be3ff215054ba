package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"expenses/internal/core"
	"expenses/internal/log"
)

// Header is the first row of every exported summary.
var Header = []string{"category", "amount", "percent_of_total"}

// ExportOptions configures CSV writing behavior
type ExportOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// Exporter writes summaries to CSV files.
type Exporter struct {
	options ExportOptions
}

// NewExporter creates a new exporter
func NewExporter(options ExportOptions) *Exporter {
	return &Exporter{options: options}
}

// Records converts a summary to CSV rows, without the header.
func Records(s core.Summary) [][]string {
	records := make([][]string, 0, len(s.ByCategory))
	for _, c := range s.ByCategory {
		records = append(records, []string{c.Name, c.Amount.StringFixed(2), c.Percent.StringFixed(1)})
	}
	return records
}

// Export writes s to path, creating parent directories and truncating any existing file.
func (e *Exporter) Export(ctx context.Context, path string, s core.Summary) error {
	records := Records(s)

	log.FromContext(ctx).WithComponent(log.ComponentReport).DebugContext(ctx, "Writing summary CSV",
		log.FieldOperation, log.OpExport,
		log.FieldExportPath, path,
		log.FieldCategories, len(records))

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if e.options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	writer.UseCRLF = true
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}

	return file.Close()
}
