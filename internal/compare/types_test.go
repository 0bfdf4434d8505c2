package compare

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

func testProjection() *domain.ProjectionResult {
	in := domain.DefaultProjectionInput()
	return &domain.ProjectionResult{
		Input:               in,
		TotalPension:        decimal.RequireFromString("3000.004"),
		BasicPension:        decimal.NewFromInt(1800),
		PersonalPension:     decimal.RequireFromString("1200.004"),
		TotalAccountBalance: decimal.NewFromInt(250000),
		ReplacementRate:     decimal.RequireFromString("0.31234"),
		TotalYears:          decimal.NewFromInt(35),
		PaymentPlan:         domain.PlanContinuous,
		BaseChangeMode:      domain.BaseFollowSalary,
		Rows: []domain.YearProjectionRow{
			{YearContribution: decimal.NewFromInt(18000)},
			{YearContribution: decimal.NewFromInt(18000)},
		},
	}
}

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()
	result := calc.CalculateMetrics("Test Scenario", testProjection())

	if result.ScenarioName != "Test Scenario" {
		t.Errorf("Expected scenario name 'Test Scenario', got %s", result.ScenarioName)
	}
	if !result.TotalPension.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("Expected pension rounded to 3000, got %s", result.TotalPension)
	}
	if !result.TotalContributions.Equal(decimal.NewFromInt(36000)) {
		t.Errorf("Expected contributions 36000, got %s", result.TotalContributions)
	}
	if !result.ReplacementRate.Equal(decimal.NewFromFloat(0.3123)) {
		t.Errorf("Expected replacement rate 0.3123, got %s", result.ReplacementRate)
	}
	// 36000 / (3000 * 12) = 1.0
	if !result.PaybackYears.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected payback 1.0 years, got %s", result.PaybackYears)
	}
	if result.StopAge != 0 {
		t.Errorf("Continuous plan should not report a stop age, got %d", result.StopAge)
	}
}

func TestMetricsCalculator_StopAge(t *testing.T) {
	p := testProjection()
	p.PaymentPlan = domain.PlanStopEarly
	p.Input.StopAge = 50
	result := NewMetricsCalculator().CalculateMetrics("stop", p)
	if result.StopAge != 50 {
		t.Errorf("Expected stop age 50, got %d", result.StopAge)
	}
}

func TestMetricsCalculator_ZeroPensionPayback(t *testing.T) {
	p := testProjection()
	p.TotalPension = decimal.Zero
	result := NewMetricsCalculator().CalculateMetrics("none", p)
	if !result.PaybackYears.IsZero() {
		t.Errorf("Expected zero payback for zero pension, got %s", result.PaybackYears)
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()
	base := ComparisonResult{
		TotalPension:       decimal.NewFromInt(2000),
		TotalContributions: decimal.NewFromInt(100000),
		AccountBalance:     decimal.NewFromInt(200000),
	}
	alt := ComparisonResult{
		TotalPension:       decimal.NewFromInt(2500),
		TotalContributions: decimal.NewFromInt(130000),
		AccountBalance:     decimal.NewFromInt(260000),
	}

	result := calc.CalculateComparison(alt, base)
	if !result.PensionDiffFromBase.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected pension diff 500, got %s", result.PensionDiffFromBase)
	}
	if !result.PensionPctFromBase.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Expected 25%% change, got %s", result.PensionPctFromBase)
	}
	if !result.ContributionDiffFromBase.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("Expected contribution diff 30000, got %s", result.ContributionDiffFromBase)
	}
	if !result.BalanceDiffFromBase.Equal(decimal.NewFromInt(60000)) {
		t.Errorf("Expected balance diff 60000, got %s", result.BalanceDiffFromBase)
	}

	zeroBase := calc.CalculateComparison(alt, ComparisonResult{})
	if !zeroBase.PensionPctFromBase.IsZero() {
		t.Errorf("Expected zero percentage against a zero base, got %s", zeroBase.PensionPctFromBase)
	}
}

func TestAnnualPensionPerThousand(t *testing.T) {
	cr := ComparisonResult{TotalPension: decimal.NewFromInt(1000), TotalContributions: decimal.NewFromInt(120000)}
	// 12000 / 120000 * 1000 = 100
	if got := cr.AnnualPensionPerThousand(); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected 100, got %s", got)
	}
	if !(ComparisonResult{TotalPension: decimal.NewFromInt(1000)}).AnnualPensionPerThousand().IsZero() {
		t.Error("Expected zero without contributions")
	}
}

func TestGenerateRecommendations(t *testing.T) {
	base := &ComparisonResult{
		ScenarioName:       "base",
		TotalPension:       decimal.NewFromInt(2000),
		TotalContributions: decimal.NewFromInt(200000),
	}
	compSet := &ComparisonSet{
		BaseResult: base,
		AlternativeResults: []ComparisonResult{
			{ScenarioName: "richer", TotalPension: decimal.NewFromInt(2600), TotalContributions: decimal.NewFromInt(240000)},
			{ScenarioName: "cheaper", TotalPension: decimal.NewFromInt(1500), TotalContributions: decimal.NewFromInt(100000)},
		},
	}

	recs := GenerateRecommendations(compSet)
	if len(recs) != 3 {
		t.Fatalf("Expected 3 recommendations, got %d: %v", len(recs), recs)
	}
	if !strings.Contains(recs[0], "richer pays 600.00 more") {
		t.Errorf("Unexpected highest pension recommendation: %s", recs[0])
	}
	// cheaper: 18000/100000*1000 = 180 beats richer 130 and base 120
	if !strings.Contains(recs[1], "cheaper buys 180.00") {
		t.Errorf("Unexpected value recommendation: %s", recs[1])
	}
	if !strings.Contains(recs[2], "cheaper saves 100000.00") {
		t.Errorf("Unexpected lowest contributions recommendation: %s", recs[2])
	}
}

func TestGenerateRecommendations_NoAlternatives(t *testing.T) {
	recs := GenerateRecommendations(&ComparisonSet{BaseResult: &ComparisonResult{}})
	if len(recs) != 0 {
		t.Errorf("Expected no recommendations, got %v", recs)
	}
}
