package breakeven

import (
	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to optimize
type OptimizationTarget string

const (
	OptimizeStopAge    OptimizationTarget = "stop_age"
	OptimizeSalaryBase OptimizationTarget = "salary_base"
	OptimizeAll        OptimizationTarget = "all"
)

// OptimizationGoal defines what outcome to achieve
type OptimizationGoal string

const (
	GoalMatchPension     OptimizationGoal = "match_pension"     // reach a monthly pension
	GoalMatchReplacement OptimizationGoal = "match_replacement" // reach a replacement rate
	GoalMaximizePension  OptimizationGoal = "maximize_pension"
	GoalMaximizeValue    OptimizationGoal = "maximize_value" // most yearly pension per 1,000 contributed
)

// IsMatch reports whether the goal has a target to reach
func (g OptimizationGoal) IsMatch() bool {
	return g == GoalMatchPension || g == GoalMatchReplacement
}

// Constraints define bounds for optimization parameters
type Constraints struct {
	// Stop age bounds; default to the current age and the retirement age
	MinStopAge *int `json:"min_stop_age,omitempty"`
	MaxStopAge *int `json:"max_stop_age,omitempty"`

	// Monthly contribution base bounds; default to the policy floor and
	// three times the social average wage
	MinBase *decimal.Decimal `json:"min_base,omitempty"`
	MaxBase *decimal.Decimal `json:"max_base,omitempty"`

	TargetPension         *decimal.Decimal `json:"target_pension,omitempty"`
	TargetReplacementRate *decimal.Decimal `json:"target_replacement_rate,omitempty"` // fraction, 0.6 for 60%
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // base resolution for the bisection, in currency
	MaxIterations int
	BaseCapRatio  decimal.Decimal // default upper base bound as a multiple of the average wage
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 60,
		BaseCapRatio:  decimal.NewFromInt(3),
	}
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Base          domain.ProjectionInput `json:"base"`
	Target        OptimizationTarget     `json:"target"`
	Goal          OptimizationGoal       `json:"goal"`
	Constraints   Constraints            `json:"constraints"`
	MaxIterations int                    `json:"max_iterations"`
	Tolerance     decimal.Decimal        `json:"tolerance"`
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	// Optimized parameters
	OptimalStopAge    *int             `json:"optimal_stop_age,omitempty"`
	OptimalSalaryBase *decimal.Decimal `json:"optimal_salary_base,omitempty"`

	// Results at optimal parameters
	Projection         *domain.ProjectionResult `json:"-"`
	TotalPension       decimal.Decimal          `json:"total_pension"`
	ReplacementRate    decimal.Decimal          `json:"replacement_rate"`
	AccountBalance     decimal.Decimal          `json:"account_balance"`
	TotalContributions decimal.Decimal          `json:"total_contributions"`

	// Comparison to the unmodified input
	BasePension              decimal.Decimal `json:"base_pension"`
	PensionDiffFromBase      decimal.Decimal `json:"pension_diff_from_base"`
	ContributionDiffFromBase decimal.Decimal `json:"contribution_diff_from_base"`
}

// PensionPerThousand is the yearly pension bought by each 1,000 contributed
func (r *OptimizationResult) PensionPerThousand() decimal.Decimal {
	if !r.TotalContributions.IsPositive() {
		return decimal.Zero
	}
	return r.TotalPension.Mul(decimal.NewFromInt(12000)).Div(r.TotalContributions)
}

// MultiDimensionalResult contains results when optimizing several targets
type MultiDimensionalResult struct {
	Results             []OptimizationResult `json:"results"`
	BestByPension       *OptimizationResult  `json:"best_by_pension,omitempty"`
	BestByValue         *OptimizationResult  `json:"best_by_value,omitempty"`
	LowestContributions *OptimizationResult  `json:"lowest_contributions,omitempty"`
	Failures            []string             `json:"failures,omitempty"`
	Recommendations     []string             `json:"recommendations"`
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinStopAge != nil && c.MaxStopAge != nil && *c.MinStopAge > *c.MaxStopAge {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_stop_age cannot be greater than max_stop_age",
		}
	}

	if c.MinBase != nil && !c.MinBase.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_base must be positive",
		}
	}
	if c.MinBase != nil && c.MaxBase != nil && c.MinBase.GreaterThan(*c.MaxBase) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_base cannot be greater than max_base",
		}
	}

	if c.TargetPension != nil && !c.TargetPension.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target_pension must be positive",
		}
	}
	if c.TargetReplacementRate != nil {
		r := *c.TargetReplacementRate
		if !r.IsPositive() || r.GreaterThan(decimal.NewFromInt(2)) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "target_replacement_rate must be in (0, 2]",
			}
		}
	}

	return nil
}

// targetFor returns the value a match goal must reach
func (c *Constraints) targetFor(goal OptimizationGoal) (decimal.Decimal, bool) {
	switch goal {
	case GoalMatchPension:
		if c.TargetPension != nil {
			return *c.TargetPension, true
		}
	case GoalMatchReplacement:
		if c.TargetReplacementRate != nil {
			return *c.TargetReplacementRate, true
		}
	}
	return decimal.Zero, false
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
