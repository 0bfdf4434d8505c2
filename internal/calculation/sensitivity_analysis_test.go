package calculation

import (
	"testing"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParameterValues(t *testing.T) {
	values := GenerateParameterValues(domain.SensitivityParameter{MinValue: dec(0.01), MaxValue: dec(0.05), Steps: 5})
	require.Len(t, values, 5)
	assertDecEqual(t, dec(0.01), values[0])
	assertDecEqual(t, dec(0.03), values[2])
	assertDecEqual(t, dec(0.05), values[4])

	single := GenerateParameterValues(domain.SensitivityParameter{MinValue: dec(7), MaxValue: dec(9), Steps: 1})
	require.Len(t, single, 1)
	assertDecEqual(t, dec(7), single[0])
}

func TestApplyParameter(t *testing.T) {
	in := scenarioA()

	out, err := ApplyParameter(in, "interest_rate", dec(0.05))
	require.NoError(t, err)
	assertDecEqual(t, dec(0.05), out.InterestRate)
	assertDecEqual(t, dec(0.03), in.InterestRate, "original input untouched")

	out, err = ApplyParameter(in, "stop_age", dec(49.6))
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStopEarly, out.PaymentPlan)
	assert.Equal(t, 50, out.StopAge)

	_, err = ApplyParameter(in, "unknown", dec(1))
	assert.Error(t, err)
}

func TestSensitivityAnalyzer_SingleParameter(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(newTestEngine())

	analysis, err := analyzer.AnalyzeSingleParameter(scenarioA(), domain.InterestRateParam)
	require.NoError(t, err)
	require.Len(t, analysis.Results, domain.InterestRateParam.Steps)
	assert.Equal(t, "interest_rate", analysis.Summary.MostSensitiveParameter)

	for i := 1; i < len(analysis.Results); i++ {
		assert.True(t, analysis.Results[i].TotalPension.GreaterThan(analysis.Results[i-1].TotalPension),
			"higher interest should raise the pension")
	}
	assert.True(t, analysis.Summary.SensitivityScores["interest_rate"].IsPositive())
	assertDecEqual(t, dec(0), analysis.Results[2].PensionChange, "0.03 is the base case")
	assert.NotEmpty(t, analysis.Summary.Recommendations)
	assert.Contains(t, []string{"LOW", "MEDIUM", "HIGH"}, analysis.Summary.RiskLevel)
}

func TestSensitivityAnalyzer_SkipsInvalidValues(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(newTestEngine())
	param := domain.SensitivityParameter{Name: "stop_age", MinValue: dec(55), MaxValue: dec(75), Steps: 5}

	analysis, err := analyzer.AnalyzeSingleParameter(scenarioA(), param)
	require.NoError(t, err)
	assert.Len(t, analysis.Results, 3, "stop ages 70 and 75 exceed retirement at 65")
}

func TestSensitivityAnalyzer_MultipleParameters(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(newTestEngine())
	params := []domain.SensitivityParameter{domain.InterestRateParam, domain.SalaryBaseParam}

	analysis, err := analyzer.AnalyzeMultipleParameters(scenarioA(), params)
	require.NoError(t, err)
	assert.Len(t, analysis.Results, domain.InterestRateParam.Steps+domain.SalaryBaseParam.Steps)
	assert.Len(t, analysis.Summary.SensitivityScores, 2)
	assert.NotEmpty(t, analysis.Summary.MostSensitiveParameter)
}

func TestSensitivityAnalyzer_BaseCaseInvalid(t *testing.T) {
	in := scenarioA()
	in.SalaryBase = dec(0)
	_, err := NewSensitivityAnalyzer(newTestEngine()).AnalyzeSingleParameter(in, domain.InterestRateParam)
	assert.Error(t, err)
}
