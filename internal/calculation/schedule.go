package calculation

import (
	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ScheduleYear is the projected contribution base for one future year
type ScheduleYear struct {
	Index     int
	AvgSalary decimal.Decimal // social average wage that year
	MinBase   decimal.Decimal
	Candidate decimal.Decimal // base before the floor is applied
	Base      decimal.Decimal
	Floored   bool
}

// ContributionIndex is the year's base over the social average wage
func (y ScheduleYear) ContributionIndex() decimal.Decimal {
	return y.Base.Div(y.AvgSalary)
}

// ContributionScheduleProjector derives the floor-clamped contribution base
// for each future year. It keeps no state between calls.
type ContributionScheduleProjector struct {
	minBaseRatio   decimal.Decimal
	floorTolerance decimal.Decimal
}

// NewContributionScheduleProjector creates a projector. minBaseRatio is the
// floor as a share of the social average wage.
func NewContributionScheduleProjector(minBaseRatio, floorTolerance decimal.Decimal) *ContributionScheduleProjector {
	return &ContributionScheduleProjector{minBaseRatio: minBaseRatio, floorTolerance: floorTolerance}
}

// SocialAverageWage projects the social average wage i years out
func SocialAverageWage(avgSalary, growth decimal.Decimal, i int) decimal.Decimal {
	return avgSalary.Mul(GrowthFactor(growth, decimal.NewFromInt(int64(i)))).Round(internalPrecision)
}

// Project returns the schedule for years 0..years-1. In follow-salary mode
// the growth compounds on the clamped base of the previous year.
func (p *ContributionScheduleProjector) Project(in domain.ProjectionInput, years int) []ScheduleYear {
	if years <= 0 {
		return nil
	}
	schedule := make([]ScheduleYear, years)
	prevBase := in.SalaryBase
	growth := one.Add(in.SalaryGrowth)
	tolerance := one.Add(p.floorTolerance)
	for i := 0; i < years; i++ {
		avg := SocialAverageWage(in.AvgSalary, in.SocAvgGrowth, i)
		minBase := avg.Mul(p.minBaseRatio)

		candidate := in.SalaryBase
		if in.BaseChangeMode == domain.BaseFollowSalary && i > 0 {
			candidate = prevBase.Mul(growth).Round(internalPrecision)
		}
		base := decimal.Max(candidate, minBase)

		schedule[i] = ScheduleYear{
			Index:     i,
			AvgSalary: avg,
			MinBase:   minBase,
			Candidate: candidate,
			Base:      base,
			Floored:   base.GreaterThan(candidate.Mul(tolerance)),
		}
		prevBase = base
	}
	return schedule
}
