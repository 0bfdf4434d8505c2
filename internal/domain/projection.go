package domain

import "github.com/shopspring/decimal"

// RetirementProfile is derived once per request from gender and age
type RetirementProfile struct {
	RetireAge          int `json:"retireAge"`
	YearsToRetire      int `json:"yearsToRetire"`
	RetireCalendarYear int `json:"retireCalendarYear"`
}

// IsRetired reports whether no working years remain
func (p RetirementProfile) IsRetired() bool {
	return p.YearsToRetire == 0
}

// YearProjectionRow describes one year of the what-if table. Row i answers
// "what if contributions stopped at the start of this year".
type YearProjectionRow struct {
	Index                int             `json:"index"`
	Year                 int             `json:"year"`
	Age                  int             `json:"age"`
	YearsToRetire        int             `json:"yearsToRetire"` // from this row's age
	CurrentYearAvgSalary decimal.Decimal `json:"currentYearAvgSalary"`
	MinimumBase          decimal.Decimal `json:"minimumBase"`
	ContributionBase     decimal.Decimal `json:"contributionBase"`
	Floored              bool            `json:"floored"` // base was raised to the minimum
	Contributing         bool            `json:"contributing"`
	MonthlyContribution  decimal.Decimal `json:"monthlyContribution"`
	YearContribution     decimal.Decimal `json:"yearContribution"`
	AccumulatedBalance   decimal.Decimal `json:"accumulatedBalance"` // year end
	AccumulatedYears     decimal.Decimal `json:"accumulatedYears"`

	BalanceAtRetirement   decimal.Decimal `json:"balanceAtRetirement"`
	YearsIfStop           decimal.Decimal `json:"yearsIfStop"`
	IndexIfStop           decimal.Decimal `json:"indexIfStop"`
	BasicPensionIfStop    decimal.Decimal `json:"basicPensionIfStop"`
	PersonalPensionIfStop decimal.Decimal `json:"personalPensionIfStop"`
	PensionIfStop         decimal.Decimal `json:"pensionIfStop"`
}

// ProjectionResult is the complete answer to one ProjectionInput. The four
// headline amounts always equal the last row's corresponding fields.
type ProjectionResult struct {
	Input   ProjectionInput   `json:"input"`
	Profile RetirementProfile `json:"profile"`

	TotalPension        decimal.Decimal `json:"totalPension"`
	BasicPension        decimal.Decimal `json:"basicPension"`
	PersonalPension     decimal.Decimal `json:"personalPension"`
	TotalAccountBalance decimal.Decimal `json:"totalAccountBalance"`
	// Balance the personal pension is paid from. It differs from
	// TotalAccountBalance under a stop-early plan, where the account keeps
	// earning interest until retirement.
	BalanceAtRetirement decimal.Decimal `json:"balanceAtRetirement"`
	ReplacementRate     decimal.Decimal `json:"replacementRate"`

	FuturePaymentYears int             `json:"futurePaymentYears"`
	TotalYears         decimal.Decimal `json:"totalYears"`
	PaymentMonths      int             `json:"paymentMonths"`
	FutureAvgSalary    decimal.Decimal `json:"futureAvgSalary"`
	FutureAvgIndex     decimal.Decimal `json:"futureAvgIndex"`
	WeightedAvgIndex   decimal.Decimal `json:"weightedAvgIndex"`

	// Independent full-horizon breakdown, informational only
	BalanceFutureValue      decimal.Decimal `json:"balanceFutureValue"`
	FutureContributionTotal decimal.Decimal `json:"futureContributionTotal"`

	FutureAvgIndexCalculated bool              `json:"futureAvgIndexCalculated"`
	BaseChangeMode           BaseChangeMode    `json:"baseChangeMode"`
	PaymentPlan              PaymentPlan       `json:"paymentPlan"`
	Compounding              CompoundingMethod `json:"compounding"`

	Rows []YearProjectionRow `json:"rows"`
}

// LastRow returns the final table row
func (r *ProjectionResult) LastRow() YearProjectionRow {
	if len(r.Rows) == 0 {
		return YearProjectionRow{}
	}
	return r.Rows[len(r.Rows)-1]
}

// FlooredYears counts rows whose base was raised to the statutory minimum
func (r *ProjectionResult) FlooredYears() int {
	n := 0
	for _, row := range r.Rows {
		if row.Floored {
			n++
		}
	}
	return n
}

// TotalContributions sums all contributions paid in future years
func (r *ProjectionResult) TotalContributions() decimal.Decimal {
	total := decimal.Zero
	for _, row := range r.Rows {
		total = total.Add(row.YearContribution)
	}
	return total
}

// BestStopRow returns the row with the highest pension-if-stopped
func (r *ProjectionResult) BestStopRow() YearProjectionRow {
	best := YearProjectionRow{}
	for i, row := range r.Rows {
		if i == 0 || row.PensionIfStop.GreaterThan(best.PensionIfStop) {
			best = row
		}
	}
	return best
}
