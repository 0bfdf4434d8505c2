package compare

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func sampleComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "Base Scenario",
		ConfigPath:       "/path/to/scenario.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:       "Base Scenario",
			TotalPension:       decimal.NewFromFloat(16931.65),
			BasicPension:       decimal.NewFromFloat(9004.36),
			PersonalPension:    decimal.NewFromFloat(7927.29),
			AccountBalance:     decimal.NewFromFloat(800656.63),
			ReplacementRate:    decimal.NewFromFloat(0.4512),
			TotalContributions: decimal.NewFromInt(420000),
			ContributionYears:  decimal.NewFromInt(35),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:             "stop_at_50",
				Description:              "Stop contributing at age 50",
				TotalPension:             decimal.NewFromFloat(12000.5),
				AccountBalance:           decimal.NewFromInt(500000),
				ReplacementRate:          decimal.NewFromFloat(0.32),
				TotalContributions:       decimal.NewFromInt(300000),
				PaybackYears:             decimal.NewFromFloat(2.1),
				PensionDiffFromBase:      decimal.NewFromFloat(-4931.15),
				PensionPctFromBase:       decimal.NewFromFloat(-29.12),
				ContributionDiffFromBase: decimal.NewFromInt(-120000),
			},
		},
		Skipped: []SkippedScenario{
			{ScenarioName: "stop_at_45", Reason: "age 45 is before the current age 48"},
		},
		Recommendations: []string{
			"Lowest Contributions: stop_at_50 saves 120000.00 in contributions",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.Format(sampleComparisonSet())

	for _, want := range []string{
		"PENSION SCENARIO COMPARISON",
		"Base Scenario: Base Scenario",
		"Configuration: /path/to/scenario.yaml",
		"Base Scenario (base)",
		"16931.65",
		"45.1%",
		"800.7K",
		"stop_at_50: Stop contributing at age 50",
		"Monthly Pension:  -4931.15 (-29.1%)",
		"Contributions:    -120.0K",
		"Payback:          2.1 years of pension",
		"SKIPPED",
		"stop_at_45: age 45 is before the current age 48",
		"RECOMMENDATIONS",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}
	compSet := &ComparisonSet{
		BaseScenarioName: "Base Scenario",
		BaseResult:       &ComparisonResult{ScenarioName: "Base Scenario"},
	}

	result := formatter.Format(compSet)
	if !strings.Contains(result, "PENSION SCENARIO COMPARISON") {
		t.Error("Expected header in output")
	}
	if strings.Contains(result, "COMPARISON TO BASE") {
		t.Error("Did not expect a comparison section without alternatives")
	}
	if strings.Contains(result, "Configuration:") {
		t.Error("Did not expect a configuration line without a path")
	}
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}

	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(999), "999"},
		{decimal.NewFromInt(1500), "1.5K"},
		{decimal.NewFromInt(-25000), "-25.0K"},
		{decimal.NewFromInt(2500000), "2.50M"},
	}
	for _, tt := range tests {
		if got := tf.formatDecimal(tt.in); got != tt.want {
			t.Errorf("formatDecimal(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if got := tf.truncate("a_very_long_scenario_name_indeed", 10); got != "a_very_..." {
		t.Errorf("truncate = %q", got)
	}
	if got := tf.truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if tf.deltaSymbol(decimal.NewFromInt(1)) != "+" || tf.deltaSymbol(decimal.NewFromInt(-1)) != "" {
		t.Error("unexpected delta symbols")
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	compSet := sampleComparisonSet()
	compSet.AlternativeResults = append(compSet.AlternativeResults, ComparisonResult{ScenarioName: "same"})

	got := (&TableFormatter{}).FormatCompact(compSet)
	want := "Base: Base Scenario | stop_at_50: -4931.15 | same: ="
	if got != want {
		t.Errorf("FormatCompact = %q, want %q", got, want)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	result, err := (&CSVFormatter{}).Format(sampleComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Scenario,Type,Total Pension") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Base Scenario,base,16931.65,9004.36,7927.29,0.4512,800656.63") {
		t.Errorf("Unexpected base row: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], "stop_at_50,alternative,12000.50") {
		t.Errorf("Unexpected alternative row: %s", lines[2])
	}
	if !strings.HasSuffix(lines[2], "-4931.15,-29.12,-120000.00") {
		t.Errorf("Unexpected deltas: %s", lines[2])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	compSet := sampleComparisonSet()

	compact, err := (&JSONFormatter{}).Format(compSet)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Contains(compact, "\n") {
		t.Error("Expected single-line JSON without Pretty")
	}

	pretty, err := (&JSONFormatter{Pretty: true}).Format(compSet)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{
		`"baseScenarioName": "Base Scenario"`,
		`"alternativeResults"`,
		`"skipped"`,
		`"recommendations"`,
		`"totalPension": "16931.65"`,
	} {
		if !strings.Contains(pretty, want) {
			t.Errorf("Expected %s in JSON:\n%s", want, pretty)
		}
	}
	if strings.Contains(pretty, `"Projection"`) {
		t.Error("Projection must not be serialised")
	}
}
