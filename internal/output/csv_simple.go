package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter writes the what-if table, one record per row
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{
	"Index", "Year", "Age", "YearsToRetire", "CurrentYearAvgSalary", "MinimumBase",
	"ContributionBase", "Floored", "Contributing", "MonthlyContribution", "YearContribution",
	"AccumulatedBalance", "AccumulatedYears", "BalanceAtRetirement", "YearsIfStop",
	"IndexIfStop", "BasicPensionIfStop", "PersonalPensionIfStop", "PensionIfStop",
}

func (c CSVFormatter) Format(r *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, row := range r.Rows {
		record := []string{
			strconv.Itoa(row.Index),
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Age),
			strconv.Itoa(row.YearsToRetire),
			money(row.CurrentYearAvgSalary),
			money(row.MinimumBase),
			money(row.ContributionBase),
			strconv.FormatBool(row.Floored),
			strconv.FormatBool(row.Contributing),
			money(row.MonthlyContribution),
			money(row.YearContribution),
			money(row.AccumulatedBalance),
			FormatYears(row.AccumulatedYears),
			money(row.BalanceAtRetirement),
			FormatYears(row.YearsIfStop),
			row.IndexIfStop.StringFixed(6),
			money(row.BasicPensionIfStop),
			money(row.PersonalPensionIfStop),
			money(row.PensionIfStop),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}
