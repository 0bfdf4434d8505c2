package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter renders a parameter sweep
type SensitivityFormatter interface {
	Name() string
	FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) ([]byte, error)
}

// GetSensitivityFormatter returns the sweep formatter for a format name
func GetSensitivityFormatter(name string) (SensitivityFormatter, error) {
	switch name {
	case "console", "console-verbose", "verbose", "":
		return SensitivityConsoleFormatter{}, nil
	case "csv":
		return SensitivityCSVFormatter{}, nil
	case "json":
		return SensitivityJSONFormatter{}, nil
	}
	return nil, fmt.Errorf("unsupported sensitivity format: %s", name)
}

// FormatParameterValue renders a swept value in its parameter's unit
func FormatParameterValue(param domain.SensitivityParameter, v decimal.Decimal) string {
	switch param.Unit {
	case "percent":
		return v.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
	case "currency":
		return FormatCurrency(v)
	case "years":
		return v.StringFixed(0)
	}
	return v.Round(4).String()
}

// SensitivityConsoleFormatter prints one table per parameter
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(a *domain.ParameterSensitivityAnalysis) ([]byte, error) {
	if a == nil || len(a.Parameters) == 0 {
		return nil, fmt.Errorf("no parameters in analysis")
	}
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "SENSITIVITY ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	fmt.Fprintf(&buf, "Base case monthly pension: %s\n", FormatCurrency(a.BaseTotalPension))
	fmt.Fprintln(&buf)

	for _, param := range a.Parameters {
		fmt.Fprintf(&buf, "%s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
		fmt.Fprintf(&buf, "Range: %s to %s (%d steps). %s\n",
			FormatParameterValue(param, param.MinValue),
			FormatParameterValue(param, param.MaxValue),
			param.Steps, param.Description)
		fmt.Fprintf(&buf, "%-12s %14s %14s %14s %10s\n", "Value", "Pension", "Change", "Balance", "Change %")
		fmt.Fprintln(&buf, strings.Repeat("-", 68))
		n := 0
		for _, res := range a.Results {
			if res.Parameter != param.Name {
				continue
			}
			n++
			fmt.Fprintf(&buf, "%-12s %14s %14s %14s %9s%%\n",
				FormatParameterValue(param, res.Value),
				FormatCurrency(res.TotalPension),
				FormatCurrency(res.PensionChange),
				FormatCurrency(res.AccountBalance),
				res.PensionChangePct.StringFixed(1))
		}
		if n == 0 {
			fmt.Fprintln(&buf, "  (no valid values in range)")
		}
		fmt.Fprintln(&buf)
	}

	names := make([]string, 0, len(a.Summary.SensitivityScores))
	for name := range a.Summary.SensitivityScores {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		si, sj := a.Summary.SensitivityScores[names[i]], a.Summary.SensitivityScores[names[j]]
		if c := si.Cmp(sj); c != 0 {
			return c > 0
		}
		return names[i] < names[j]
	})
	fmt.Fprintln(&buf, "PENSION SWING BY PARAMETER:")
	for _, name := range names {
		fmt.Fprintf(&buf, "  %-16s %6s%%\n", name, a.Summary.SensitivityScores[name].StringFixed(1))
	}
	fmt.Fprintln(&buf)

	riskEmoji := ""
	switch a.Summary.RiskLevel {
	case "LOW":
		riskEmoji = "✅"
	case "MEDIUM":
		riskEmoji = "⚠️"
	case "HIGH":
		riskEmoji = "🔴"
	}
	fmt.Fprintf(&buf, "RISK LEVEL: %s %s\n", riskEmoji, a.Summary.RiskLevel)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "RECOMMENDATIONS:")
	for _, rec := range a.Summary.Recommendations {
		fmt.Fprintf(&buf, "  • %s\n", rec)
	}
	return buf.Bytes(), nil
}

// SensitivityCSVFormatter writes one record per swept value
type SensitivityCSVFormatter struct{}

func (s SensitivityCSVFormatter) Name() string { return "csv" }

func (s SensitivityCSVFormatter) FormatSensitivityAnalysis(a *domain.ParameterSensitivityAnalysis) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("nil analysis")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Parameter", "Value", "TotalPension", "BasicPension", "PersonalPension",
		"AccountBalance", "ReplacementRate", "PensionChange", "PensionChangePct"}); err != nil {
		return nil, err
	}
	for _, r := range a.Results {
		if err := w.Write([]string{
			r.Parameter,
			r.Value.String(),
			money(r.TotalPension),
			money(r.BasicPension),
			money(r.PersonalPension),
			money(r.AccountBalance),
			r.ReplacementRate.StringFixed(4),
			money(r.PensionChange),
			r.PensionChangePct.StringFixed(2),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// SensitivityJSONFormatter encodes the whole analysis
type SensitivityJSONFormatter struct{}

func (s SensitivityJSONFormatter) Name() string { return "json" }

func (s SensitivityJSONFormatter) FormatSensitivityAnalysis(a *domain.ParameterSensitivityAnalysis) ([]byte, error) {
	return MarshalJSON(a, true)
}
