package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Total Pension",
		"Basic Pension",
		"Personal Pension",
		"Replacement Rate",
		"Account Balance",
		"Total Contributions",
		"Contribution Years",
		"Payback Years",
		"Pension Diff from Base",
		"Pension % Change",
		"Contribution Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.TotalPension.StringFixed(2),
		result.BasicPension.StringFixed(2),
		result.PersonalPension.StringFixed(2),
		result.ReplacementRate.StringFixed(4),
		result.AccountBalance.StringFixed(2),
		result.TotalContributions.StringFixed(2),
		result.ContributionYears.String(),
		result.PaybackYears.StringFixed(1),
		result.PensionDiffFromBase.StringFixed(2),
		result.PensionPctFromBase.StringFixed(2),
		result.ContributionDiffFromBase.StringFixed(2),
	}
}
