package calculation

import (
	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// AccountProjection is the full-horizon value of the personal account at
// retirement, split into its two sources
type AccountProjection struct {
	BalanceFutureValue      decimal.Decimal
	FutureContributionTotal decimal.Decimal
}

// Total is the projected balance at retirement
func (p AccountProjection) Total() decimal.Decimal {
	return p.BalanceFutureValue.Add(p.FutureContributionTotal)
}

// AccountAccumulator grows the personal account balance
type AccountAccumulator struct {
	contributionRate decimal.Decimal
	method           domain.CompoundingMethod
	midYearFactor    decimal.Decimal
}

// NewAccountAccumulator creates an accumulator. midYearFactor is only used by
// CompoundAnnualMidYear and marks when within a year contributions land.
func NewAccountAccumulator(contributionRate decimal.Decimal, method domain.CompoundingMethod, midYearFactor decimal.Decimal) *AccountAccumulator {
	return &AccountAccumulator{
		contributionRate: contributionRate,
		method:           method,
		midYearFactor:    midYearFactor,
	}
}

// MonthlyContribution is the personal contribution on a monthly base
func (a *AccountAccumulator) MonthlyContribution(base decimal.Decimal) decimal.Decimal {
	return base.Mul(a.contributionRate)
}

// Compound grows balance for the given number of years. Non-positive
// horizons leave the balance unchanged.
func (a *AccountAccumulator) Compound(balance, rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return balance
	}
	return balance.Mul(GrowthFactor(rate, decimal.NewFromInt(int64(years)))).Round(internalPrecision)
}

// CompoundYear applies one annual step with no new contribution
func (a *AccountAccumulator) CompoundYear(balance, rate decimal.Decimal) decimal.Decimal {
	return balance.Mul(one.Add(rate))
}

// AccumulateYear runs one contributing year and returns the year-end balance
func (a *AccountAccumulator) AccumulateYear(balance, base, rate decimal.Decimal) decimal.Decimal {
	monthly := a.MonthlyContribution(base)
	if a.method == domain.CompoundAnnualMidYear {
		late := GrowthFactor(rate, one.Sub(a.midYearFactor))
		return balance.Mul(one.Add(rate)).Add(monthly.Mul(twelve).Mul(late)).Round(internalPrecision)
	}
	factor := monthlyFactor(rate)
	for month := 0; month < 12; month++ {
		balance = balance.Mul(factor).Add(monthly).Round(internalPrecision)
	}
	return balance
}

// ProjectToRetirement values the existing balance and the first
// contributingYears of schedule at the retirement date
func (a *AccountAccumulator) ProjectToRetirement(balance decimal.Decimal, schedule []ScheduleYear, contributingYears, yearsToRetire int, rate decimal.Decimal) AccountProjection {
	out := AccountProjection{
		BalanceFutureValue:      a.Compound(balance, rate, yearsToRetire),
		FutureContributionTotal: decimal.Zero,
	}
	if contributingYears > len(schedule) {
		contributingYears = len(schedule)
	}
	for i := 0; i < contributingYears; i++ {
		monthly := a.MonthlyContribution(schedule[i].Base)
		remaining := decimal.NewFromInt(int64(yearsToRetire - i))

		if a.method == domain.CompoundAnnualMidYear {
			if years := remaining.Sub(a.midYearFactor); years.IsPositive() {
				out.FutureContributionTotal = out.FutureContributionTotal.Add(monthly.Mul(twelve).Mul(GrowthFactor(rate, years)))
			}
			continue
		}
		for month := 0; month < 12; month++ {
			years := remaining.Sub(decimal.NewFromInt(int64(month)).Div(twelve))
			if years.IsPositive() {
				out.FutureContributionTotal = out.FutureContributionTotal.Add(monthly.Mul(GrowthFactor(rate, years)))
			}
		}
	}
	out.FutureContributionTotal = out.FutureContributionTotal.Round(internalPrecision)
	return out
}
