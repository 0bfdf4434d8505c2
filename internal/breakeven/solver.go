package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/pensioncalc/internal/calculation"
	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/rgehrsitz/pensioncalc/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver searches contribution choices that reach a pension goal
type Solver struct {
	CalcEngine *calculation.Engine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.Engine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

func (s *Solver) logger() calculation.Logger {
	if s.CalcEngine.Logger == nil {
		return calculation.NopLogger{}
	}
	return s.CalcEngine.Logger
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.Goal.IsMatch() {
		if _, ok := req.Constraints.targetFor(req.Goal); !ok {
			return nil, &BreakEvenError{
				Operation: "optimize",
				Message:   fmt.Sprintf("goal %s needs a target value", req.Goal),
			}
		}
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	baseProjection, err := s.CalcEngine.Project(req.Base)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   "failed to project base input",
			Cause:     err,
		}
	}

	switch req.Target {
	case OptimizeStopAge:
		return s.optimizeStopAge(ctx, req, baseProjection)
	case OptimizeSalaryBase:
		return s.optimizeSalaryBase(ctx, req, baseProjection)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// optimizeStopAge walks stop ages upward. For a match goal the first age
// reaching the target wins; otherwise the best age by goal is kept.
func (s *Solver) optimizeStopAge(ctx context.Context, req OptimizationRequest, base *domain.ProjectionResult) (*OptimizationResult, error) {
	minAge := req.Base.CurrentAge
	maxAge := base.Profile.RetireAge
	if c := req.Constraints.MinStopAge; c != nil && *c > minAge {
		minAge = *c
	}
	if c := req.Constraints.MaxStopAge; c != nil && *c < maxAge {
		maxAge = *c
	}
	if minAge > maxAge {
		return nil, &BreakEvenError{
			Operation: "optimize_stop_age",
			Message:   fmt.Sprintf("no stop ages between %d and %d", minAge, maxAge),
		}
	}

	target, isMatch := req.Constraints.targetFor(req.Goal)
	var bestResult *OptimizationResult
	iterations := 0

	for age := minAge; age <= maxAge && iterations < req.MaxIterations; age++ {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		projection, err := s.project(req.Base, &transform.StopAt{Age: age})
		if err != nil {
			if domain.IsInvalidInput(err) || isTransformError(err) {
				s.logger().Debugf("break-even: skipping stop age %d: %v", age, err)
				continue
			}
			return nil, &BreakEvenError{
				Operation: "optimize_stop_age",
				Message:   fmt.Sprintf("failed to project stop age %d", age),
				Cause:     err,
			}
		}

		stopAge := age
		result := s.evaluateResult(req, projection, base, iterations)
		result.OptimalStopAge = &stopAge

		if isMatch {
			if metric(req.Goal, projection).GreaterThanOrEqual(target) {
				result.Success = true
				result.ConvergenceInfo = fmt.Sprintf("Earliest stop age reaching %s", formatTarget(req.Goal, target))
				return result, nil
			}
			bestResult = result
			continue
		}

		if bestResult == nil || s.isBetter(result, bestResult, req.Goal) {
			bestResult = result
		}
	}

	if bestResult == nil {
		return nil, &BreakEvenError{
			Operation: "optimize_stop_age",
			Message:   "no valid stop ages found",
		}
	}
	if isMatch {
		bestResult.ConvergenceInfo = fmt.Sprintf("Target %s not reached by age %d", formatTarget(req.Goal, target), maxAge)
		return bestResult, nil
	}
	bestResult.Success = true
	bestResult.ConvergenceInfo = fmt.Sprintf("Evaluated %d stop ages", iterations)
	return bestResult, nil
}

// optimizeSalaryBase bisects the monthly contribution base for the smallest
// value that reaches the target. The pension never falls as the base rises,
// which the search relies on.
func (s *Solver) optimizeSalaryBase(ctx context.Context, req OptimizationRequest, base *domain.ProjectionResult) (*OptimizationResult, error) {
	target, isMatch := req.Constraints.targetFor(req.Goal)
	if !isMatch {
		return nil, &BreakEvenError{
			Operation: "optimize_salary_base",
			Message:   fmt.Sprintf("goal %s is not supported for the salary base", req.Goal),
		}
	}

	lo, hi := s.baseBounds(req)
	iterations := 0

	evaluate := func(amount decimal.Decimal) (*OptimizationResult, bool, error) {
		iterations++
		projection, err := s.project(req.Base, &transform.SetBase{Amount: amount})
		if err != nil {
			return nil, false, &BreakEvenError{
				Operation: "optimize_salary_base",
				Message:   fmt.Sprintf("failed to project base %s", amount.StringFixed(2)),
				Cause:     err,
			}
		}
		result := s.evaluateResult(req, projection, base, iterations)
		a := amount
		result.OptimalSalaryBase = &a
		return result, metric(req.Goal, projection).GreaterThanOrEqual(target), nil
	}

	loResult, ok, err := evaluate(lo)
	if err != nil {
		return nil, err
	}
	if ok {
		loResult.Success = true
		loResult.ConvergenceInfo = fmt.Sprintf("Lowest allowed base already reaches %s", formatTarget(req.Goal, target))
		return loResult, nil
	}

	hiResult, ok, err := evaluate(hi)
	if err != nil {
		return nil, err
	}
	if !ok {
		hiResult.ConvergenceInfo = fmt.Sprintf("Target %s not reachable below base %s", formatTarget(req.Goal, target), hi.StringFixed(2))
		return hiResult, nil
	}

	// Invariant: lo misses the target, hi reaches it.
	two := decimal.NewFromInt(2)
	for iterations < req.MaxIterations && hi.Sub(lo).GreaterThan(req.Tolerance) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two).Round(2)
		result, ok, err := evaluate(mid)
		if err != nil {
			return nil, err
		}
		if ok {
			hi, hiResult = mid, result
		} else {
			lo = mid
		}
	}

	hiResult.Iterations = iterations
	if hi.Sub(lo).GreaterThan(req.Tolerance) {
		hiResult.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
		return hiResult, nil
	}
	hiResult.Success = true
	hiResult.ConvergenceInfo = fmt.Sprintf("Converged within %s", req.Tolerance.StringFixed(2))
	return hiResult, nil
}

// baseBounds resolves the search interval for the contribution base
func (s *Solver) baseBounds(req OptimizationRequest) (decimal.Decimal, decimal.Decimal) {
	avg := req.Base.AvgSalary
	lo := avg.Mul(s.CalcEngine.Policy.MinBaseRatio).Round(2)
	hi := avg.Mul(s.Options.BaseCapRatio).Round(2)
	if !lo.IsPositive() {
		lo = decimal.NewFromInt(1)
	}
	if c := req.Constraints.MinBase; c != nil {
		lo = *c
	}
	if c := req.Constraints.MaxBase; c != nil {
		hi = *c
	}
	if hi.LessThan(lo) {
		hi = lo
	}
	return lo, hi
}

func (s *Solver) project(base domain.ProjectionInput, t transform.ScenarioTransform) (*domain.ProjectionResult, error) {
	modified, err := transform.ApplyTransforms(base, []transform.ScenarioTransform{t})
	if err != nil {
		return nil, err
	}
	return s.CalcEngine.Project(modified)
}

// evaluateResult creates an optimization result from a projection
func (s *Solver) evaluateResult(req OptimizationRequest, projection, base *domain.ProjectionResult, iterations int) *OptimizationResult {
	result := &OptimizationResult{
		Request:            req,
		Iterations:         iterations,
		Projection:         projection,
		TotalPension:       projection.TotalPension.Round(2),
		ReplacementRate:    projection.ReplacementRate.Round(4),
		AccountBalance:     projection.TotalAccountBalance.Round(2),
		TotalContributions: projection.TotalContributions().Round(2),
		BasePension:        base.TotalPension.Round(2),
	}
	result.PensionDiffFromBase = result.TotalPension.Sub(result.BasePension)
	result.ContributionDiffFromBase = result.TotalContributions.
		Sub(base.TotalContributions().Round(2))
	return result
}

// isBetter compares two results based on optimization goal
func (s *Solver) isBetter(a, b *OptimizationResult, goal OptimizationGoal) bool {
	switch goal {
	case GoalMaximizePension:
		return a.TotalPension.GreaterThan(b.TotalPension)
	case GoalMaximizeValue:
		return a.PensionPerThousand().GreaterThan(b.PensionPerThousand())
	case GoalMatchPension:
		return a.TotalPension.GreaterThan(b.TotalPension)
	case GoalMatchReplacement:
		return a.ReplacementRate.GreaterThan(b.ReplacementRate)
	default:
		return false
	}
}

// metric is the quantity a match goal compares against its target
func metric(goal OptimizationGoal, projection *domain.ProjectionResult) decimal.Decimal {
	if goal == GoalMatchReplacement {
		return projection.ReplacementRate.Round(4)
	}
	return projection.TotalPension.Round(2)
}

func formatTarget(goal OptimizationGoal, target decimal.Decimal) string {
	if goal == GoalMatchReplacement {
		return target.Mul(decimal.NewFromInt(100)).StringFixed(1) + "% replacement"
	}
	return target.StringFixed(2) + " per month"
}

func isTransformError(err error) bool {
	var target *transform.TransformError
	return errors.As(err, &target)
}
