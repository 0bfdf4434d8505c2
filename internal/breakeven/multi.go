package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
)

// OptimizeMultiDimensional runs every target against every goal and compares
// the successful runs
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	base domain.ProjectionInput,
	constraints Constraints,
	goals []OptimizationGoal,
) (*MultiDimensionalResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	targets := []OptimizationTarget{
		OptimizeStopAge,
		OptimizeSalaryBase,
	}

	mdResult := &MultiDimensionalResult{}

	for _, target := range targets {
		for _, goal := range goals {
			req := OptimizationRequest{
				Base:          base,
				Target:        target,
				Goal:          goal,
				Constraints:   constraints,
				MaxIterations: s.Options.MaxIterations,
				Tolerance:     s.Options.Tolerance,
			}

			result, err := s.Optimize(ctx, req)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil, err
				}
				s.logger().Debugf("break-even: %s/%s failed: %v", target, goal, err)
				mdResult.Failures = append(mdResult.Failures, fmt.Sprintf("%s/%s: %v", target, goal, err))
				continue
			}

			if result.Success {
				mdResult.Results = append(mdResult.Results, *result)
			} else {
				mdResult.Failures = append(mdResult.Failures,
					fmt.Sprintf("%s/%s: %s", target, goal, result.ConvergenceInfo))
			}
		}
	}

	if len(mdResult.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no successful optimizations found",
		}
	}

	results := mdResult.Results
	for i := range results {
		if mdResult.BestByPension == nil ||
			results[i].TotalPension.GreaterThan(mdResult.BestByPension.TotalPension) {
			mdResult.BestByPension = &results[i]
		}
		if mdResult.BestByValue == nil ||
			results[i].PensionPerThousand().GreaterThan(mdResult.BestByValue.PensionPerThousand()) {
			mdResult.BestByValue = &results[i]
		}
		if mdResult.LowestContributions == nil ||
			results[i].TotalContributions.LessThan(mdResult.LowestContributions.TotalContributions) {
			mdResult.LowestContributions = &results[i]
		}
	}

	mdResult.Recommendations = s.generateMultiDimensionalRecommendations(mdResult)
	return mdResult, nil
}

// describeChoice renders the parameter a result settled on
func describeChoice(r *OptimizationResult) string {
	switch {
	case r.OptimalStopAge != nil:
		return fmt.Sprintf("stop contributing at %d", *r.OptimalStopAge)
	case r.OptimalSalaryBase != nil:
		return fmt.Sprintf("contribute on a base of %s", r.OptimalSalaryBase.StringFixed(2))
	default:
		return string(r.Request.Target)
	}
}

// generateMultiDimensionalRecommendations creates recommendations from multi-dimensional results
func (s *Solver) generateMultiDimensionalRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string

	if r := result.BestByPension; r != nil {
		recommendations = append(recommendations, fmt.Sprintf(
			"Highest pension: %s (%s per month, %s/%s)",
			describeChoice(r), r.TotalPension.StringFixed(2), r.Request.Target, r.Request.Goal))
	}

	if r := result.BestByValue; r != nil {
		recommendations = append(recommendations, fmt.Sprintf(
			"Best value: %s (%s of yearly pension per 1,000 contributed)",
			describeChoice(r), r.PensionPerThousand().StringFixed(2)))
	}

	if r := result.LowestContributions; r != nil {
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest outlay: %s (%s contributed from now on)",
			describeChoice(r), r.TotalContributions.StringFixed(2)))
	}

	if result.BestByPension != nil && result.BestByPension == result.BestByValue {
		recommendations = append(recommendations, fmt.Sprintf(
			"⭐ Optimizing %s gives both the highest pension AND the best value",
			result.BestByPension.Request.Target))
	}

	return recommendations
}

// OptimizeAllTargets is a convenience method to optimize all targets with a single goal
func (s *Solver) OptimizeAllTargets(
	ctx context.Context,
	base domain.ProjectionInput,
	constraints Constraints,
	goal OptimizationGoal,
) (*MultiDimensionalResult, error) {
	return s.OptimizeMultiDimensional(ctx, base, constraints, []OptimizationGoal{goal})
}
