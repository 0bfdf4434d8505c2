package calculation

import (
	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// tableContext carries the per-request values every row shares
type tableContext struct {
	input              domain.ProjectionInput
	profile            domain.RetirementProfile
	currentYear        int
	futurePaymentYears int
	futureAvgSalary    decimal.Decimal
	schedule           []ScheduleYear // futurePaymentYears+1 entries
}

// ProjectionTableBuilder produces the what-if rows, one per possible stop
// year, from the component calculators
type ProjectionTableBuilder struct {
	accumulator *AccountAccumulator
	aggregator  *ContributionIndexAggregator
	evaluator   *BenefitFormulaEvaluator
	logger      Logger
}

// NewProjectionTableBuilder wires the builder to its collaborators
func NewProjectionTableBuilder(acc *AccountAccumulator, agg *ContributionIndexAggregator, eval *BenefitFormulaEvaluator, logger Logger) *ProjectionTableBuilder {
	if logger == nil {
		logger = NopLogger{}
	}
	return &ProjectionTableBuilder{accumulator: acc, aggregator: agg, evaluator: eval, logger: logger}
}

// Build returns rows for i = 0..futurePaymentYears. Row i values the pension
// of a worker who stops contributing at the start of year i, so the last row
// is the full contribution plan.
func (b *ProjectionTableBuilder) Build(tc tableContext) ([]domain.YearProjectionRow, error) {
	in := tc.input
	rows := make([]domain.YearProjectionRow, 0, tc.futurePaymentYears+1)

	balance := in.AccountBalance
	accumulatedYears := in.PaidYears

	for i := 0; i <= tc.futurePaymentYears; i++ {
		sched := tc.schedule[i]
		age := in.CurrentAge + i
		yearsLeft := tc.profile.RetireAge - age
		startBalance := balance

		row := domain.YearProjectionRow{
			Index:                i,
			Year:                 tc.currentYear + i,
			Age:                  age,
			YearsToRetire:        yearsLeft,
			CurrentYearAvgSalary: sched.AvgSalary,
			MinimumBase:          sched.MinBase,
			ContributionBase:     sched.Base,
			Floored:              sched.Floored,
		}

		switch {
		case i < tc.futurePaymentYears && yearsLeft > 0:
			row.Contributing = true
			row.MonthlyContribution = b.accumulator.MonthlyContribution(sched.Base)
			row.YearContribution = row.MonthlyContribution.Mul(twelve)
			balance = b.accumulator.AccumulateYear(startBalance, sched.Base, in.InterestRate)
			accumulatedYears = accumulatedYears.Add(one)
		case yearsLeft <= 0:
			// benefits start this year, nothing compounds further
		default:
			balance = b.accumulator.CompoundYear(startBalance, in.InterestRate)
		}
		row.AccumulatedBalance = balance
		row.AccumulatedYears = accumulatedYears

		row.BalanceAtRetirement = b.accumulator.Compound(startBalance, in.InterestRate, yearsLeft)
		row.YearsIfStop = in.PaidYears.Add(decimal.NewFromInt(int64(i)))
		row.IndexIfStop = b.aggregator.Aggregate(in, tc.schedule, i).WeightedIndex

		if yearsLeft >= 0 && row.YearsIfStop.IsPositive() {
			benefit, err := b.evaluator.Evaluate(BenefitInputs{
				FutureAvgSalary:  tc.futureAvgSalary,
				WeightedAvgIndex: row.IndexIfStop,
				CreditedYears:    row.YearsIfStop,
				AccountBalance:   row.BalanceAtRetirement,
				RetireAge:        tc.profile.RetireAge,
			})
			if err != nil {
				return nil, err
			}
			row.BasicPensionIfStop = benefit.Basic
			row.PersonalPensionIfStop = benefit.Personal
			row.PensionIfStop = benefit.Total
		}

		b.logger.Debugf("row %d age=%d base=%s floored=%t balance=%s pensionIfStop=%s",
			i, age, row.ContributionBase.StringFixed(2), row.Floored,
			row.AccumulatedBalance.StringFixed(2), row.PensionIfStop.StringFixed(2))
		rows = append(rows, row)
	}
	return rows, nil
}
