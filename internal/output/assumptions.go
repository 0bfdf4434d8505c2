package output

import (
	"fmt"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
)

// Assumptions lists the modelling assumptions behind a result, rendered in
// the detailed outputs
func Assumptions(r *domain.ProjectionResult) []string {
	in := r.Input
	index := "derived from the contribution schedule"
	if !r.FutureAvgIndexCalculated {
		index = "fixed by the user"
	}
	compounding := "monthly, contributions credited at month end"
	if r.Compounding == domain.CompoundAnnualMidYear {
		compounding = "annual, contributions credited mid-year"
	}
	return []string{
		fmt.Sprintf("Salary growth: %s a year", FormatPercentage(in.SalaryGrowth)),
		fmt.Sprintf("Social average wage growth: %s a year", FormatPercentage(in.SocAvgGrowth)),
		fmt.Sprintf("Personal account interest: %s a year, %s", FormatPercentage(in.InterestRate), compounding),
		fmt.Sprintf("Contribution base: %s", baseModeLabel(r.BaseChangeMode)),
		fmt.Sprintf("Future average contribution index: %s, %s", r.FutureAvgIndex.StringFixed(4), index),
		fmt.Sprintf("Annuity divisor at age %d: %d months", r.Profile.RetireAge, r.PaymentMonths),
	}
}

func baseModeLabel(m domain.BaseChangeMode) string {
	if m == domain.BaseFixed {
		return "held fixed, raised to the statutory minimum when needed"
	}
	return "follows salary growth"
}

func planLabel(r *domain.ProjectionResult) string {
	if r.PaymentPlan == domain.PlanStopEarly {
		return fmt.Sprintf("stop contributing at age %d", r.Input.StopAge)
	}
	return "contribute until retirement"
}
