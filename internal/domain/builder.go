package domain

import "github.com/shopspring/decimal"

// InputBuilder assembles a ProjectionInput from loosely typed sources such as
// CLI flags or a form. Build validates the result; the first parse error
// recorded by a setter is returned from Build.
type InputBuilder struct {
	input  ProjectionInput
	minAge int
	err    error
}

// NewInputBuilder starts from DefaultProjectionInput
func NewInputBuilder() *InputBuilder {
	return &InputBuilder{input: DefaultProjectionInput(), minAge: DefaultMinAge}
}

// From replaces the working input with in
func (b *InputBuilder) From(in ProjectionInput) *InputBuilder {
	b.input = in
	return b
}

// MinAge overrides the youngest accepted current age
func (b *InputBuilder) MinAge(age int) *InputBuilder {
	b.minAge = age
	return b
}

func (b *InputBuilder) fail(err error) *InputBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *InputBuilder) Gender(g Gender) *InputBuilder {
	b.input.Gender = g
	return b
}

// GenderString parses s into a Gender
func (b *InputBuilder) GenderString(s string) *InputBuilder {
	g, err := ParseGender(s)
	if err != nil {
		return b.fail(NewInvalidInputError("gender", s, err.Error()))
	}
	return b.Gender(g)
}

func (b *InputBuilder) CurrentAge(age int) *InputBuilder {
	b.input.CurrentAge = age
	return b
}

func (b *InputBuilder) AvgSalary(v decimal.Decimal) *InputBuilder {
	b.input.AvgSalary = v
	return b
}

func (b *InputBuilder) PaidYears(v decimal.Decimal) *InputBuilder {
	b.input.PaidYears = v
	return b
}

func (b *InputBuilder) AccountBalance(v decimal.Decimal) *InputBuilder {
	b.input.AccountBalance = v
	return b
}

func (b *InputBuilder) SalaryBase(v decimal.Decimal) *InputBuilder {
	b.input.SalaryBase = v
	return b
}

func (b *InputBuilder) PastAvgIndex(v decimal.Decimal) *InputBuilder {
	b.input.PastAvgIndex = v
	return b
}

func (b *InputBuilder) FutureAvgIndex(f FutureIndex) *InputBuilder {
	b.input.FutureAvgIndex = f
	return b
}

// FutureAvgIndexString parses "auto", "" or a number
func (b *InputBuilder) FutureAvgIndexString(s string) *InputBuilder {
	f, err := ParseFutureIndex(s)
	if err != nil {
		return b.fail(NewInvalidInputError("futureAvgIndex", s, err.Error()))
	}
	return b.FutureAvgIndex(f)
}

func (b *InputBuilder) BaseChangeMode(m BaseChangeMode) *InputBuilder {
	b.input.BaseChangeMode = m
	return b
}

// BaseChangeModeString parses s into a BaseChangeMode
func (b *InputBuilder) BaseChangeModeString(s string) *InputBuilder {
	m, err := ParseBaseChangeMode(s)
	if err != nil {
		return b.fail(NewInvalidInputError("baseChangeMode", s, err.Error()))
	}
	return b.BaseChangeMode(m)
}

// Continuous contributes every year until retirement
func (b *InputBuilder) Continuous() *InputBuilder {
	b.input.PaymentPlan = PlanContinuous
	return b
}

// StopAt stops contributing at the given age
func (b *InputBuilder) StopAt(age int) *InputBuilder {
	b.input.PaymentPlan = PlanStopEarly
	b.input.StopAge = age
	return b
}

// PaymentPlanString parses s into a PaymentPlan, keeping the current stop age
func (b *InputBuilder) PaymentPlanString(s string) *InputBuilder {
	p, err := ParsePaymentPlan(s)
	if err != nil {
		return b.fail(NewInvalidInputError("paymentPlan", s, err.Error()))
	}
	b.input.PaymentPlan = p
	return b
}

func (b *InputBuilder) StopAge(age int) *InputBuilder {
	b.input.StopAge = age
	return b
}

// Rates sets salary growth, social-average growth and account interest
func (b *InputBuilder) Rates(salaryGrowth, socAvgGrowth, interestRate decimal.Decimal) *InputBuilder {
	b.input.SalaryGrowth = salaryGrowth
	b.input.SocAvgGrowth = socAvgGrowth
	b.input.InterestRate = interestRate
	return b
}

// Build returns the validated input
func (b *InputBuilder) Build() (ProjectionInput, error) {
	if b.err != nil {
		return ProjectionInput{}, b.err
	}
	if err := b.input.Validate(b.minAge); err != nil {
		return ProjectionInput{}, err
	}
	return b.input, nil
}
