package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("PENSION SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 84) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 26
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Pension/mo",
		numWidth, "Replacement",
		numWidth, "Contributed",
		numWidth, "Balance"))
	sb.WriteString(strings.Repeat("-", 84) + "\n")

	if base := compSet.BaseResult; base != nil {
		sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 84) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 84) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 84) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))
			sb.WriteString(fmt.Sprintf("  Monthly Pension:  %s%s (%s%%)\n",
				tf.deltaSymbol(alt.PensionDiffFromBase),
				alt.PensionDiffFromBase.StringFixed(2),
				alt.PensionPctFromBase.StringFixed(1)))
			if !alt.ContributionDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Contributions:    %s%s\n",
					tf.deltaSymbol(alt.ContributionDiffFromBase),
					tf.formatDecimal(alt.ContributionDiffFromBase)))
			}
			if !alt.PaybackYears.IsZero() {
				sb.WriteString(fmt.Sprintf("  Payback:          %s years of pension\n", alt.PaybackYears.StringFixed(1)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Skipped) > 0 {
		sb.WriteString("SKIPPED\n")
		sb.WriteString(strings.Repeat("-", 84) + "\n")
		for _, s := range compSet.Skipped {
			sb.WriteString(fmt.Sprintf("• %s: %s\n", s.ScenarioName, s.Reason))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 84) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, result.TotalPension.StringFixed(2),
		numWidth, result.ReplacementRate.Mul(decimal.NewFromInt(100)).StringFixed(1)+"%",
		numWidth, tf.formatDecimal(result.TotalContributions),
		numWidth, tf.formatDecimal(result.AccountBalance))
}

// formatDecimal formats large amounts in thousands or millions
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns "+" for positive deltas; negatives carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.PensionDiffFromBase.IsPositive() {
			change = "+" + alt.PensionDiffFromBase.StringFixed(2)
		} else if alt.PensionDiffFromBase.IsNegative() {
			change = alt.PensionDiffFromBase.StringFixed(2)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
