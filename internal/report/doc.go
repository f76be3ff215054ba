// Package report renders a core.Summary for people and for spreadsheets.
//
// Printer writes the console table. Exporter writes the summary CSV with the
// header category,amount,percent_of_total. Both use the same ordering:
// amount descending, then category name ascending.
//
// Example usage:
//
//	summary := core.Summarize(result.Totals)
//	report.NewPrinter(os.Stdout).Print(summary)
//	err := report.NewExporter(report.ExportOptions{}).Export(ctx, "out/summary.csv", summary)
package report
