package report

import (
	"fmt"
	"io"
	"strings"

	"expenses/internal/core"
)

const (
	// NoExpensesMessage is printed instead of a table when nothing was aggregated.
	NoExpensesMessage = "No expenses found for the given file/filter."

	ruleWidth = 40
)

// Printer writes human readable summaries.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Print writes the summary table, or the "no expenses" message when s is empty.
func (p *Printer) Print(s core.Summary) error {
	var b strings.Builder
	if s.Empty() {
		fmt.Fprintf(&b, "\n%s\n\n", NoExpensesMessage)
		return p.write(b.String())
	}

	rule := strings.Repeat("-", ruleWidth)
	fmt.Fprintf(&b, "\nExpense Summary\n%s\n", rule)
	fmt.Fprintf(&b, "Total spent: %s\n\n", s.Total.StringFixed(2))
	for _, c := range s.ByCategory {
		fmt.Fprintf(&b, "%-20s %10s   (%5s%%)\n", c.Name, c.Amount.StringFixed(2), c.Percent.StringFixed(1))
	}
	fmt.Fprintf(&b, "%s\n", rule)
	return p.write(b.String())
}

// PrintCounts writes the processed/skipped line that follows the summary.
func (p *Printer) PrintCounts(processed, skipped int) error {
	return p.write(fmt.Sprintf("Rows processed: %d | Rows skipped: %d\n\n", processed, skipped))
}

// PrintExported confirms where the summary CSV was written.
func (p *Printer) PrintExported(path string) error {
	return p.write(fmt.Sprintf("Exported summary to: %s\n\n", path))
}

func (p *Printer) write(s string) error {
	if _, err := io.WriteString(p.out, s); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
