// Package analyzer reads an expense CSV and aggregates amounts per category.
//
// Rows with a blank category, an unparsable amount, or (when a date range is
// active) a missing or out-of-range date are counted as skipped. They never
// produce an error.
package analyzer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"expenses/internal/core"
	"expenses/internal/log"
)

// Required column names, compared case-insensitively after trimming.
const (
	ColumnDate     = "date"
	ColumnCategory = "category"
	ColumnAmount   = "amount"
)

// Result is the outcome of one analysis run.
type Result struct {
	Totals    core.CategoryTotals
	Processed int // every data row read
	Skipped   int // invalid rows plus rows excluded by the date range
}

// Contributed returns the number of rows that were added to Totals.
func (r Result) Contributed() int {
	return r.Processed - r.Skipped
}

// columns holds the position of each required column in the header.
type columns struct {
	date, category, amount int
}

// Analyze opens the CSV at path and aggregates it.
func Analyze(ctx context.Context, path string, rng core.DateRange) (Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	f, err := os.Open(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, core.NewNotFoundError(abs, err)
		}
		return Result{}, fmt.Errorf("open %s: %w", abs, err)
	}
	defer f.Close()

	return AnalyzeReader(ctx, f, rng)
}

// AnalyzeReader aggregates CSV data from r. A leading UTF-8 BOM is ignored.
func AnalyzeReader(ctx context.Context, r io.Reader, rng core.DateRange) (Result, error) {
	logger := log.FromContext(ctx).WithComponent(log.ComponentAnalyzer)

	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return Result{}, core.NewValidationError("CSV file appears to be empty or missing headers.")
	}
	if err != nil {
		return Result{}, fmt.Errorf("read header: %w", err)
	}

	cols, err := locateColumns(header)
	if err != nil {
		logger.WarnContext(ctx, "Rejected CSV header",
			log.FieldOperation, log.OpValidate,
			"header", strings.Join(header, ","))
		return Result{}, err
	}

	res := Result{Totals: core.CategoryTotals{}}
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("read row %d: %w", res.Processed+1, err)
		}

		res.Processed++
		row, ok := parseRow(record, cols)
		if !ok {
			logger.DebugContext(ctx, "Skipping invalid row", "row", res.Processed)
			res.Skipped++
			continue
		}
		if !rng.Contains(row.Date) {
			logger.DebugContext(ctx, "Skipping row outside date range", "row", res.Processed, "date", row.Date.String())
			res.Skipped++
			continue
		}
		res.Totals.Add(row.Category, row.Amount)
	}

	logger.DebugContext(ctx, "Rows aggregated", log.NewFields().WithOperation(log.OpAnalyze).WithCounts(res.Processed, res.Skipped).ToSlice()...)
	return res, nil
}

// ValidateHeaders checks that every required column is present.
func ValidateHeaders(header []string) error {
	_, err := locateColumns(header)
	return err
}

func locateColumns(header []string) (columns, error) {
	if len(header) == 0 {
		return columns{}, core.NewValidationError("CSV file appears to be empty or missing headers.")
	}

	cols := columns{
		date:     indexOf(header, ColumnDate),
		category: indexOf(header, ColumnCategory),
		amount:   indexOf(header, ColumnAmount),
	}

	missing := make([]string, 0, 3)
	for name, idx := range map[string]int{ColumnDate: cols.date, ColumnCategory: cols.category, ColumnAmount: cols.amount} {
		if idx == -1 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return columns{}, &core.ValidationError{
			Message: fmt.Sprintf("Missing required CSV headers: %s. Expected: date,category,amount", strings.Join(missing, ", ")),
			Missing: missing,
		}
	}
	return cols, nil
}

// parseRow extracts the three fields of interest. ok is false when the
// category is blank or the amount does not parse; the date may still be empty.
func parseRow(record []string, cols columns) (core.ExpenseRow, bool) {
	row := core.ExpenseRow{
		Category: strings.TrimSpace(safeGet(record, cols.category)),
	}
	amount, amountOK := core.ParseAmount(safeGet(record, cols.amount))
	row.Amount = amount
	row.Date, _ = core.ParseDate(safeGet(record, cols.date))

	if !row.Valid() || !amountOK {
		return row, false
	}
	return row, true
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func safeGet(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
