package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SensitivityParameter describes one input swept by a sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	Unit        string          `yaml:"unit" json:"unit"` // "percent", "currency", "years"
	Description string          `yaml:"description" json:"description"`
}

// SensitivityResult is the projection outcome for one swept value
type SensitivityResult struct {
	Parameter        string          `json:"parameter"`
	Value            decimal.Decimal `json:"value"`
	TotalPension     decimal.Decimal `json:"totalPension"`
	BasicPension     decimal.Decimal `json:"basicPension"`
	PersonalPension  decimal.Decimal `json:"personalPension"`
	AccountBalance   decimal.Decimal `json:"accountBalance"`
	ReplacementRate  decimal.Decimal `json:"replacementRate"`
	PensionChange    decimal.Decimal `json:"pensionChange"`
	PensionChangePct decimal.Decimal `json:"pensionChangePct"`
}

// ParameterSensitivityAnalysis collects the sweep of one or more parameters
type ParameterSensitivityAnalysis struct {
	BaseTotalPension decimal.Decimal        `json:"baseTotalPension"`
	Parameters       []SensitivityParameter `json:"parameters"`
	Results          []SensitivityResult    `json:"results"`
	Summary          SensitivitySummary     `json:"summary"`
}

// SensitivitySummary ranks parameters by pension swing across their range.
// A score is the spread between the highest and lowest pension of a sweep as
// a percentage of the base pension.
type SensitivitySummary struct {
	MostSensitiveParameter string                     `json:"mostSensitiveParameter"`
	SensitivityScores      map[string]decimal.Decimal `json:"sensitivityScores"`
	Recommendations        []string                   `json:"recommendations"`
	RiskLevel              string                     `json:"riskLevel"` // "LOW", "MEDIUM", "HIGH"
}

// MaxScore returns the largest sensitivity score
func (ss *SensitivitySummary) MaxScore() decimal.Decimal {
	top := decimal.Zero
	for _, score := range ss.SensitivityScores {
		if score.GreaterThan(top) {
			top = score
		}
	}
	return top
}

// DetermineRiskLevel classifies the largest pension swing
func (ss *SensitivitySummary) DetermineRiskLevel() string {
	switch top := ss.MaxScore(); {
	case top.GreaterThan(decimal.NewFromInt(30)):
		return "HIGH"
	case top.GreaterThan(decimal.NewFromInt(10)):
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// GenerateRecommendations describes what the risk level means for planning
func (ss *SensitivitySummary) GenerateRecommendations() []string {
	switch ss.DetermineRiskLevel() {
	case "HIGH":
		return []string{
			fmt.Sprintf("Pension is highly sensitive to %s", ss.MostSensitiveParameter),
			"Plan with conservative assumptions for this parameter",
		}
	case "MEDIUM":
		return []string{
			fmt.Sprintf("Moderate sensitivity to %s", ss.MostSensitiveParameter),
			"Revisit the estimate when this assumption changes",
		}
	default:
		return []string{"Estimate is robust across the tested ranges"}
	}
}

// Common sensitivity parameters
var (
	InterestRateParam = SensitivityParameter{
		Name:        "interest_rate",
		MinValue:    decimal.NewFromFloat(0.01),
		MaxValue:    decimal.NewFromFloat(0.06),
		Steps:       6,
		Unit:        "percent",
		Description: "Personal account crediting rate",
	}

	SalaryGrowthParam = SensitivityParameter{
		Name:        "salary_growth",
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromFloat(0.06),
		Steps:       7,
		Unit:        "percent",
		Description: "Annual growth of the worker's contribution base",
	}

	SocAvgGrowthParam = SensitivityParameter{
		Name:        "soc_avg_growth",
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromFloat(0.06),
		Steps:       7,
		Unit:        "percent",
		Description: "Annual growth of the social average wage",
	}

	SalaryBaseParam = SensitivityParameter{
		Name:        "salary_base",
		MinValue:    decimal.NewFromInt(4000),
		MaxValue:    decimal.NewFromInt(20000),
		Steps:       5,
		Unit:        "currency",
		Description: "Current monthly contribution base",
	}

	StopAgeParam = SensitivityParameter{
		Name:        "stop_age",
		MinValue:    decimal.NewFromInt(40),
		MaxValue:    decimal.NewFromInt(60),
		Steps:       5,
		Unit:        "years",
		Description: "Age at which contributions stop",
	}
)

// CommonSensitivityParameters lists the built-in sweeps by name
func CommonSensitivityParameters() map[string]SensitivityParameter {
	return map[string]SensitivityParameter{
		InterestRateParam.Name: InterestRateParam,
		SalaryGrowthParam.Name: SalaryGrowthParam,
		SocAvgGrowthParam.Name: SocAvgGrowthParam,
		SalaryBaseParam.Name:   SalaryBaseParam,
		StopAgeParam.Name:      StopAgeParam,
	}
}
