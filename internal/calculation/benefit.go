package calculation

import (
	"sort"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// BenefitInputs are the quantities the statutory formula needs
type BenefitInputs struct {
	FutureAvgSalary  decimal.Decimal
	WeightedAvgIndex decimal.Decimal
	CreditedYears    decimal.Decimal
	AccountBalance   decimal.Decimal // personal account at retirement
	RetireAge        int
}

// Benefit is the monthly pension split into its two components
type Benefit struct {
	Basic         decimal.Decimal
	Personal      decimal.Decimal
	Total         decimal.Decimal
	PaymentMonths int
}

// BenefitFormulaEvaluator applies the two-part pension formula
type BenefitFormulaEvaluator struct {
	basicPensionRate decimal.Decimal
	paymentMonths    map[int]int
	ages             []int
}

// NewBenefitFormulaEvaluator creates an evaluator over a payment-months table
func NewBenefitFormulaEvaluator(basicPensionRate decimal.Decimal, paymentMonths map[int]int) *BenefitFormulaEvaluator {
	ages := make([]int, 0, len(paymentMonths))
	for age := range paymentMonths {
		ages = append(ages, age)
	}
	sort.Ints(ages)
	return &BenefitFormulaEvaluator{
		basicPensionRate: basicPensionRate,
		paymentMonths:    paymentMonths,
		ages:             ages,
	}
}

// PaymentMonths returns the annuity divisor for a retirement age. Ages
// outside the table use its edge values; gaps fall back to the nearest
// lower age.
func (e *BenefitFormulaEvaluator) PaymentMonths(age int) int {
	if len(e.ages) == 0 {
		return 0
	}
	if age <= e.ages[0] {
		return e.paymentMonths[e.ages[0]]
	}
	last := e.ages[len(e.ages)-1]
	if age >= last {
		return e.paymentMonths[last]
	}
	if months, ok := e.paymentMonths[age]; ok {
		return months
	}
	i := sort.SearchInts(e.ages, age)
	return e.paymentMonths[e.ages[i-1]]
}

// Evaluate computes the monthly pension. Inputs that would make the formula
// meaningless produce a ComputationError instead of a silent zero.
func (e *BenefitFormulaEvaluator) Evaluate(in BenefitInputs) (Benefit, error) {
	if !in.FutureAvgSalary.IsPositive() {
		return Benefit{}, domain.NewComputationError("futureAvgSalary", in.FutureAvgSalary, "must be positive")
	}
	if in.WeightedAvgIndex.IsNegative() {
		return Benefit{}, domain.NewComputationError("weightedAvgIndex", in.WeightedAvgIndex, "must be non-negative")
	}
	if in.AccountBalance.IsNegative() {
		return Benefit{}, domain.NewComputationError("accountBalance", in.AccountBalance, "must be non-negative")
	}
	months := e.PaymentMonths(in.RetireAge)
	if months <= 0 {
		return Benefit{}, domain.NewComputationError("paymentMonths", decimal.NewFromInt(int64(months)), "must be positive")
	}

	basic := in.FutureAvgSalary.
		Mul(one.Add(in.WeightedAvgIndex)).
		Div(decimal.NewFromInt(2)).
		Mul(in.CreditedYears).
		Mul(e.basicPensionRate)
	personal := in.AccountBalance.Div(decimal.NewFromInt(int64(months)))

	return Benefit{
		Basic:         basic,
		Personal:      personal,
		Total:         basic.Add(personal),
		PaymentMonths: months,
	}, nil
}
