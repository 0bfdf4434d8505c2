package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
)

// ConsoleVerboseFormatter adds assumptions and the year-by-year what-if
// table to the console summary
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(r *domain.ProjectionResult) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("nil projection result")
	}
	var buf bytes.Buffer
	writeSummary(&buf, r)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range Assumptions(r) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeRowTable(&buf, r.Rows)

	best := r.BestStopRow()
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Highest pension if stopped: %s by stopping at age %d (%d)\n",
		FormatCurrency(best.PensionIfStop), best.Age, best.Year)
	return buf.Bytes(), nil
}

// writeRowTable prints one line per stop year. A * marks a base raised to
// the statutory minimum.
func writeRowTable(buf *bytes.Buffer, rows []domain.YearProjectionRow) {
	fmt.Fprintln(buf, "YEAR-BY-YEAR: PENSION IF CONTRIBUTIONS STOP THIS YEAR")
	header := fmt.Sprintf("%-6s %-4s %12s %12s %11s %13s %7s %7s %11s",
		"Year", "Age", "Avg wage", "Base", "Yearly", "Balance", "Years", "Index", "Pension")
	fmt.Fprintln(buf, header)
	fmt.Fprintln(buf, strings.Repeat("-", len(header)))
	for _, row := range rows {
		base := FormatCurrency(row.ContributionBase)
		if row.Floored {
			base += "*"
		}
		fmt.Fprintf(buf, "%-6d %-4d %12s %12s %11s %13s %7s %7s %11s\n",
			row.Year, row.Age,
			FormatCurrency(row.CurrentYearAvgSalary),
			base,
			FormatCurrency(row.YearContribution),
			FormatCurrency(row.AccumulatedBalance),
			FormatYears(row.YearsIfStop),
			row.IndexIfStop.StringFixed(4),
			FormatCurrency(row.PensionIfStop))
	}
}
