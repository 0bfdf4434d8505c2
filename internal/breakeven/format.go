package breakeven

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Optimization Target: %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Optimization Goal:   %s\n", result.Request.Goal))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("OPTIMAL PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalStopAge != nil {
		sb.WriteString(fmt.Sprintf("Stop Contributing At: %d\n", *result.OptimalStopAge))
	}
	if result.OptimalSalaryBase != nil {
		sb.WriteString(fmt.Sprintf("Contribution Base:    %s per month\n", result.OptimalSalaryBase.StringFixed(2)))
	}
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Monthly Pension:      %s\n", result.TotalPension.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Replacement Rate:     %s%%\n", result.ReplacementRate.Mul(decimal.NewFromInt(100)).StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Account Balance:      %s\n", result.AccountBalance.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Future Contributions: %s\n", result.TotalContributions.StringFixed(2)))
	sb.WriteString("\n")

	sb.WriteString("COMPARISON TO CURRENT PLAN\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Current Pension:      %s\n", result.BasePension.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Pension Change:       %s%s\n",
		tf.deltaSymbol(result.PensionDiffFromBase), result.PensionDiffFromBase.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Contribution Change:  %s%s\n",
		tf.deltaSymbol(result.ContributionDiffFromBase), result.ContributionDiffFromBase.StringFixed(2)))
	sb.WriteString("\n")

	if target, ok := result.Request.Constraints.targetFor(result.Request.Goal); ok {
		achieved := result.TotalPension
		if result.Request.Goal == GoalMatchReplacement {
			achieved = result.ReplacementRate
		}
		diff := achieved.Sub(target)
		sb.WriteString("TARGET MATCH\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Target:     %s\n", formatTarget(result.Request.Goal, target)))
		sb.WriteString(fmt.Sprintf("Achieved:   %s\n", formatTarget(result.Request.Goal, achieved)))
		if result.Request.Goal == GoalMatchReplacement {
			sb.WriteString(fmt.Sprintf("Difference: %s%s points\n", tf.deltaSymbol(diff), diff.Mul(decimal.NewFromInt(100)).StringFixed(2)))
		} else {
			sb.WriteString(fmt.Sprintf("Difference: %s%s\n", tf.deltaSymbol(diff), diff.StringFixed(2)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMultiDimensional formats results from multiple optimizations
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("MULTI-TARGET OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString("SUMMARY OF ALL OPTIMIZATIONS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-30s %14s %12s %12s %9s\n",
		"Optimization", "Choice", "Pension/mo", "Contributed", "Per 1K"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for i := range result.Results {
		res := &result.Results[i]
		sb.WriteString(fmt.Sprintf("%-30s %14s %12s %12s %9s\n",
			tf.truncate(fmt.Sprintf("%s/%s", res.Request.Target, res.Request.Goal), 30),
			tf.formatChoice(res),
			res.TotalPension.StringFixed(2),
			tf.formatShort(res.TotalContributions),
			res.PensionPerThousand().StringFixed(1)))
	}
	sb.WriteString("\n")

	sb.WriteString("BEST SCENARIOS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if r := result.BestByPension; r != nil {
		sb.WriteString(fmt.Sprintf("Highest Pension:      %s (%s per month)\n", r.Request.Target, r.TotalPension.StringFixed(2)))
	}
	if r := result.BestByValue; r != nil {
		sb.WriteString(fmt.Sprintf("Best Value:           %s (%s per 1,000)\n", r.Request.Target, r.PensionPerThousand().StringFixed(2)))
	}
	if r := result.LowestContributions; r != nil {
		sb.WriteString(fmt.Sprintf("Lowest Contributions: %s (%s)\n", r.Request.Target, r.TotalContributions.StringFixed(2)))
	}
	sb.WriteString("\n")

	if len(result.Failures) > 0 {
		sb.WriteString("NOT REACHED\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, f := range result.Failures {
			sb.WriteString(fmt.Sprintf("• %s\n", f))
		}
		sb.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-target results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Target not reached"
}

func (tf *TableFormatter) formatChoice(r *OptimizationResult) string {
	switch {
	case r.OptimalStopAge != nil:
		return fmt.Sprintf("age %d", *r.OptimalStopAge)
	case r.OptimalSalaryBase != nil:
		return "base " + tf.formatShort(*r.OptimalSalaryBase)
	}
	return "-"
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
