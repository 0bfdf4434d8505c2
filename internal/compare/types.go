package compare

import (
	"fmt"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario with its key metrics
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description"`
	Changes      []string                 `json:"changes,omitempty"`
	Projection   *domain.ProjectionResult `json:"-"`

	// Key Metrics
	TotalPension       decimal.Decimal `json:"totalPension"`
	BasicPension       decimal.Decimal `json:"basicPension"`
	PersonalPension    decimal.Decimal `json:"personalPension"`
	AccountBalance     decimal.Decimal `json:"accountBalance"`
	ReplacementRate    decimal.Decimal `json:"replacementRate"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	ContributionYears  decimal.Decimal `json:"contributionYears"`
	PaybackYears       decimal.Decimal `json:"paybackYears"` // years of pension to recover future contributions

	// Scenario specifics
	PaymentPlan    domain.PaymentPlan    `json:"paymentPlan"`
	StopAge        int                   `json:"stopAge,omitempty"`
	BaseChangeMode domain.BaseChangeMode `json:"baseChangeMode"`

	// Comparison to Base
	PensionDiffFromBase      decimal.Decimal `json:"pensionDiffFromBase"`
	PensionPctFromBase       decimal.Decimal `json:"pensionPctFromBase"`
	ContributionDiffFromBase decimal.Decimal `json:"contributionDiffFromBase"`
	BalanceDiffFromBase      decimal.Decimal `json:"balanceDiffFromBase"`
}

// SkippedScenario records an alternative that could not be projected
type SkippedScenario struct {
	ScenarioName string `json:"scenarioName"`
	Reason       string `json:"reason"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Skipped            []SkippedScenario  `json:"skipped,omitempty"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from projection results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for one projection
func (mc *MetricsCalculator) CalculateMetrics(name string, r *domain.ProjectionResult) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:       name,
		Projection:         r,
		TotalPension:       r.TotalPension.Round(2),
		BasicPension:       r.BasicPension.Round(2),
		PersonalPension:    r.PersonalPension.Round(2),
		AccountBalance:     r.TotalAccountBalance.Round(2),
		ReplacementRate:    r.ReplacementRate.Round(4),
		TotalContributions: r.TotalContributions().Round(2),
		ContributionYears:  r.TotalYears,
		PaymentPlan:        r.PaymentPlan,
		BaseChangeMode:     r.BaseChangeMode,
	}
	if r.PaymentPlan == domain.PlanStopEarly {
		result.StopAge = r.Input.StopAge
	}
	if result.TotalPension.IsPositive() {
		result.PaybackYears = result.TotalContributions.
			Div(result.TotalPension.Mul(decimal.NewFromInt(12))).
			Round(1)
	}
	return result
}

// CalculateComparison computes deltas between a scenario and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.PensionDiffFromBase = scenario.TotalPension.Sub(base.TotalPension)
	if !base.TotalPension.IsZero() {
		scenario.PensionPctFromBase = scenario.PensionDiffFromBase.
			Div(base.TotalPension).
			Mul(decimal.NewFromInt(100))
	}
	scenario.ContributionDiffFromBase = scenario.TotalContributions.Sub(base.TotalContributions)
	scenario.BalanceDiffFromBase = scenario.AccountBalance.Sub(base.AccountBalance)
	return scenario
}

// AnnualPensionPerThousand is the yearly pension bought by each 1,000
// contributed
func (cr ComparisonResult) AnnualPensionPerThousand() decimal.Decimal {
	if !cr.TotalContributions.IsPositive() {
		return decimal.Zero
	}
	return cr.TotalPension.Mul(decimal.NewFromInt(12)).
		Div(cr.TotalContributions).
		Mul(decimal.NewFromInt(1000))
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Highest pension
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalPension.GreaterThan(best.TotalPension) {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Highest Pension: %s pays %s more per month than the base scenario",
			best.ScenarioName, best.TotalPension.Sub(base.TotalPension).StringFixed(2)))
	}

	// Best pension per unit contributed
	value := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.AnnualPensionPerThousand().GreaterThan(value.AnnualPensionPerThousand()) {
			value = alt
		}
	}
	if value != base && value.TotalContributions.IsPositive() {
		recommendations = append(recommendations, fmt.Sprintf(
			"Best Value: %s buys %s of yearly pension per 1,000 contributed",
			value.ScenarioName, value.AnnualPensionPerThousand().StringFixed(2)))
	}

	// Cheapest
	cheapest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalContributions.LessThan(cheapest.TotalContributions) {
			cheapest = alt
		}
	}
	if cheapest != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest Contributions: %s saves %s in contributions for %s less pension per month",
			cheapest.ScenarioName,
			base.TotalContributions.Sub(cheapest.TotalContributions).StringFixed(2),
			base.TotalPension.Sub(cheapest.TotalPension).StringFixed(2)))
	}

	return recommendations
}
