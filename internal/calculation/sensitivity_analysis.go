package calculation

import (
	"fmt"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	engine *Engine
}

// NewSensitivityAnalyzer creates an analyzer running projections on engine
func NewSensitivityAnalyzer(engine *Engine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewEngine()
	}
	return &SensitivityAnalyzer{engine: engine}
}

// AnalyzeSingleParameter sweeps one parameter across its range. Values that
// make the input invalid (a stop age past retirement, for example) are
// skipped.
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(base domain.ProjectionInput, parameter domain.SensitivityParameter) (*domain.ParameterSensitivityAnalysis, error) {
	baseResult, err := sa.engine.Project(base)
	if err != nil {
		return nil, fmt.Errorf("failed to project base case: %w", err)
	}

	results, err := sa.sweep(base, baseResult.TotalPension, parameter)
	if err != nil {
		return nil, err
	}

	scores := map[string]decimal.Decimal{parameter.Name: spreadScore(results, baseResult.TotalPension)}
	analysis := &domain.ParameterSensitivityAnalysis{
		BaseTotalPension: baseResult.TotalPension,
		Parameters:       []domain.SensitivityParameter{parameter},
		Results:          results,
		Summary:          summarize(scores),
	}
	return analysis, nil
}

// AnalyzeMultipleParameters sweeps each parameter independently and ranks
// them by pension spread
func (sa *SensitivityAnalyzer) AnalyzeMultipleParameters(base domain.ProjectionInput, parameters []domain.SensitivityParameter) (*domain.ParameterSensitivityAnalysis, error) {
	baseResult, err := sa.engine.Project(base)
	if err != nil {
		return nil, fmt.Errorf("failed to project base case: %w", err)
	}

	all := make([]domain.SensitivityResult, 0)
	scores := make(map[string]decimal.Decimal, len(parameters))
	for _, param := range parameters {
		results, err := sa.sweep(base, baseResult.TotalPension, param)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", param.Name, err)
		}
		scores[param.Name] = spreadScore(results, baseResult.TotalPension)
		all = append(all, results...)
	}

	return &domain.ParameterSensitivityAnalysis{
		BaseTotalPension: baseResult.TotalPension,
		Parameters:       parameters,
		Results:          all,
		Summary:          summarize(scores),
	}, nil
}

func (sa *SensitivityAnalyzer) sweep(base domain.ProjectionInput, basePension decimal.Decimal, param domain.SensitivityParameter) ([]domain.SensitivityResult, error) {
	values := GenerateParameterValues(param)
	results := make([]domain.SensitivityResult, 0, len(values))

	for _, value := range values {
		modified, err := ApplyParameter(base, param.Name, value)
		if err != nil {
			return nil, err
		}
		projection, err := sa.engine.Project(modified)
		if err != nil {
			if domain.IsInvalidInput(err) {
				sa.engine.logger().Debugf("skipping %s=%s: %v", param.Name, value, err)
				continue
			}
			return nil, fmt.Errorf("failed to run projection for %s=%s: %w", param.Name, value, err)
		}

		result := domain.SensitivityResult{
			Parameter:       param.Name,
			Value:           value,
			TotalPension:    projection.TotalPension,
			BasicPension:    projection.BasicPension,
			PersonalPension: projection.PersonalPension,
			AccountBalance:  projection.TotalAccountBalance,
			ReplacementRate: projection.ReplacementRate,
			PensionChange:   projection.TotalPension.Sub(basePension),
		}
		if !basePension.IsZero() {
			result.PensionChangePct = result.PensionChange.Div(basePension).Mul(hundred)
		}
		results = append(results, result)
	}
	return results, nil
}

// GenerateParameterValues spreads Steps values evenly over [MinValue, MaxValue]
func GenerateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.MinValue}
	}
	step := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))
	values := make([]decimal.Decimal, param.Steps)
	for i := range values {
		values[i] = param.MinValue.Add(step.Mul(decimal.NewFromInt(int64(i))))
	}
	return values
}

// ApplyParameter returns a copy of in with the named parameter set to value
func ApplyParameter(in domain.ProjectionInput, name string, value decimal.Decimal) (domain.ProjectionInput, error) {
	switch name {
	case "interest_rate":
		in.InterestRate = value
	case "salary_growth":
		in.SalaryGrowth = value
	case "soc_avg_growth":
		in.SocAvgGrowth = value
	case "salary_base":
		in.SalaryBase = value
	case "avg_salary":
		in.AvgSalary = value
	case "account_balance":
		in.AccountBalance = value
	case "past_avg_index":
		in.PastAvgIndex = value
	case "stop_age":
		in.PaymentPlan = domain.PlanStopEarly
		in.StopAge = int(value.Round(0).IntPart())
	default:
		return in, fmt.Errorf("unknown sensitivity parameter %q", name)
	}
	return in, nil
}

var hundred = decimal.NewFromInt(100)

func spreadScore(results []domain.SensitivityResult, basePension decimal.Decimal) decimal.Decimal {
	if len(results) == 0 || basePension.IsZero() {
		return decimal.Zero
	}
	lo, hi := results[0].TotalPension, results[0].TotalPension
	for _, r := range results[1:] {
		lo = decimal.Min(lo, r.TotalPension)
		hi = decimal.Max(hi, r.TotalPension)
	}
	return hi.Sub(lo).Div(basePension).Mul(hundred)
}

func summarize(scores map[string]decimal.Decimal) domain.SensitivitySummary {
	summary := domain.SensitivitySummary{SensitivityScores: scores}
	best := decimal.NewFromInt(-1)
	for name, score := range scores {
		if score.GreaterThan(best) || (score.Equal(best) && name < summary.MostSensitiveParameter) {
			best = score
			summary.MostSensitiveParameter = name
		}
	}
	summary.RiskLevel = summary.DetermineRiskLevel()
	summary.Recommendations = summary.GenerateRecommendations()
	return summary
}
