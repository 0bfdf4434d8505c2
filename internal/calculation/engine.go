package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine runs pension projections under a policy. It holds no per-request
// state, so one Engine can serve any number of Project calls.
type Engine struct {
	Policy domain.Policy
	Logger Logger
	Debug  bool             // log every table row
	Clock  func() time.Time // supplies the current calendar year
}

// NewEngine creates an engine with the built-in policy
func NewEngine() *Engine {
	return &Engine{
		Policy: domain.DefaultPolicy(),
		Logger: NopLogger{},
		Clock:  time.Now,
	}
}

// NewEngineWithPolicy creates an engine after validating policy
func NewEngineWithPolicy(policy domain.Policy) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	e := NewEngine()
	e.Policy = policy
	return e, nil
}

// SetLogger replaces the logger; nil restores the no-op logger
func (e *Engine) SetLogger(logger Logger) {
	if logger == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = logger
}

// components are rebuilt for every call so nothing leaks between requests
type components struct {
	resolver    *RetirementProfileResolver
	projector   *ContributionScheduleProjector
	accumulator *AccountAccumulator
	aggregator  *ContributionIndexAggregator
	evaluator   *BenefitFormulaEvaluator
}

func (e *Engine) components() components {
	p := e.Policy
	compounding := p.Compounding
	if compounding == "" {
		compounding = domain.CompoundMonthly
	}
	return components{
		resolver:    NewRetirementProfileResolver(RetirementAgeTable(p.RetirementAges)),
		projector:   NewContributionScheduleProjector(p.MinBaseRatio, p.FloorTolerance),
		accumulator: NewAccountAccumulator(p.ContributionRate, compounding, p.MidYearFactor),
		aggregator:  NewContributionIndexAggregator(),
		evaluator:   NewBenefitFormulaEvaluator(p.BasicPensionRate, p.PaymentMonths),
	}
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

func (e *Engine) currentYear() int {
	if e.Clock == nil {
		return time.Now().Year()
	}
	return e.Clock().Year()
}

// Profile resolves the retirement profile for an input without projecting
func (e *Engine) Profile(in domain.ProjectionInput) (domain.RetirementProfile, error) {
	return e.components().resolver.Resolve(in.Gender, in.CurrentAge, e.currentYear())
}

// FuturePaymentYears is the number of years still to be contributed
func FuturePaymentYears(in domain.ProjectionInput, profile domain.RetirementProfile) int {
	years := profile.YearsToRetire
	if in.PaymentPlan == domain.PlanStopEarly {
		if stop := in.StopAge - in.CurrentAge; stop < years {
			years = stop
		}
		if years < 0 {
			years = 0
		}
	}
	return years
}

// Validate runs every input check, including those that depend on the
// retirement age, without computing anything
func (e *Engine) Validate(in domain.ProjectionInput) (domain.RetirementProfile, error) {
	minAge := e.Policy.MinAge
	if minAge <= 0 {
		minAge = domain.DefaultMinAge
	}
	if err := in.Validate(minAge); err != nil {
		return domain.RetirementProfile{}, err
	}
	profile, err := e.Profile(in)
	if err != nil {
		return domain.RetirementProfile{}, domain.NewInvalidInputError("gender", in.Gender, err.Error())
	}
	if in.CurrentAge >= profile.RetireAge {
		return profile, domain.NewInvalidInputError("currentAge", in.CurrentAge,
			fmt.Sprintf("already at retirement age %d", profile.RetireAge))
	}
	if in.PaymentPlan == domain.PlanStopEarly && in.StopAge > profile.RetireAge {
		return profile, domain.NewInvalidInputError("stopAge", in.StopAge,
			fmt.Sprintf("cannot be later than retirement age %d", profile.RetireAge))
	}
	return profile, nil
}

// Project runs the full projection. Either a complete result or an error is
// returned, never a partial result.
func (e *Engine) Project(in domain.ProjectionInput) (*domain.ProjectionResult, error) {
	log := e.logger()

	profile, err := e.Validate(in)
	if err != nil {
		log.Warnf("rejected projection input: %v", err)
		return nil, err
	}

	c := e.components()
	futureYears := FuturePaymentYears(in, profile)
	totalYears := in.PaidYears.Add(decimal.NewFromInt(int64(futureYears)))
	futureAvgSalary := SocialAverageWage(in.AvgSalary, in.SocAvgGrowth, profile.YearsToRetire)

	log.Infof("projecting %s age %d: retire at %d in %d, %d future contribution years",
		in.Gender, in.CurrentAge, profile.RetireAge, profile.RetireCalendarYear, futureYears)

	schedule := c.projector.Project(in, futureYears+1)
	account := c.accumulator.ProjectToRetirement(in.AccountBalance, schedule, futureYears, profile.YearsToRetire, in.InterestRate)
	index := c.aggregator.Aggregate(in, schedule, futureYears)

	// full-horizon evaluation guards the formula inputs before the table runs
	fullHorizon, err := c.evaluator.Evaluate(BenefitInputs{
		FutureAvgSalary:  futureAvgSalary,
		WeightedAvgIndex: index.WeightedIndex,
		CreditedYears:    totalYears,
		AccountBalance:   account.Total(),
		RetireAge:        profile.RetireAge,
	})
	if err != nil {
		log.Errorf("projection aborted: %v", err)
		return nil, err
	}

	var rowLogger Logger = NopLogger{}
	if e.Debug {
		rowLogger = log
	}
	builder := NewProjectionTableBuilder(c.accumulator, c.aggregator, c.evaluator, rowLogger)
	rows, err := builder.Build(tableContext{
		input:              in,
		profile:            profile,
		currentYear:        e.currentYear(),
		futurePaymentYears: futureYears,
		futureAvgSalary:    futureAvgSalary,
		schedule:           schedule,
	})
	if err != nil {
		log.Errorf("projection aborted: %v", err)
		return nil, err
	}

	last := rows[len(rows)-1]
	result := &domain.ProjectionResult{
		Input:   in,
		Profile: profile,

		TotalPension:        last.PensionIfStop,
		BasicPension:        last.BasicPensionIfStop,
		PersonalPension:     last.PersonalPensionIfStop,
		TotalAccountBalance: last.AccumulatedBalance,
		BalanceAtRetirement: last.BalanceAtRetirement,

		FuturePaymentYears: futureYears,
		TotalYears:         totalYears,
		PaymentMonths:      fullHorizon.PaymentMonths,
		FutureAvgSalary:    futureAvgSalary,
		FutureAvgIndex:     index.FutureIndex,
		WeightedAvgIndex:   index.WeightedIndex,

		BalanceFutureValue:      account.BalanceFutureValue,
		FutureContributionTotal: account.FutureContributionTotal,

		FutureAvgIndexCalculated: index.Calculated,
		BaseChangeMode:           in.BaseChangeMode,
		PaymentPlan:              in.PaymentPlan,
		Compounding:              c.accumulator.method,
		Rows:                     rows,
	}
	result.ReplacementRate = result.TotalPension.Div(futureAvgSalary)

	log.Infof("projected pension %s (basic %s, personal %s), replacement rate %s%%",
		result.TotalPension.StringFixed(2), result.BasicPension.StringFixed(2),
		result.PersonalPension.StringFixed(2), result.ReplacementRate.Mul(decimal.NewFromInt(100)).StringFixed(1))
	return result, nil
}
