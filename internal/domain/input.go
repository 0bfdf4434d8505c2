package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Gender selects the statutory retirement-age category of a worker
type Gender string

const (
	GenderMale         Gender = "male"
	GenderFemaleWorker Gender = "female_worker"
	GenderFemaleCadre  Gender = "female_cadre"
)

// ParseGender converts a user supplied string into a Gender
func ParseGender(s string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(s))); g {
	case GenderMale, GenderFemaleWorker, GenderFemaleCadre:
		return g, nil
	}
	return "", fmt.Errorf("unknown gender %q (expected male, female_worker or female_cadre)", s)
}

// BaseChangeMode describes how the contribution base evolves year over year
type BaseChangeMode string

const (
	// BaseFixed keeps the initial base for every future year
	BaseFixed BaseChangeMode = "fixed"
	// BaseFollowSalary grows the base with the worker's own salary growth
	BaseFollowSalary BaseChangeMode = "follow_salary"
)

// ParseBaseChangeMode converts a user supplied string into a BaseChangeMode
func ParseBaseChangeMode(s string) (BaseChangeMode, error) {
	switch m := BaseChangeMode(strings.ToLower(strings.TrimSpace(s))); m {
	case BaseFixed, BaseFollowSalary:
		return m, nil
	}
	return "", fmt.Errorf("unknown base change mode %q (expected fixed or follow_salary)", s)
}

// PaymentPlan describes whether contributions run until retirement
type PaymentPlan string

const (
	PlanContinuous PaymentPlan = "continuous"
	PlanStopEarly  PaymentPlan = "stop_early"
)

// ParsePaymentPlan converts a user supplied string into a PaymentPlan
func ParsePaymentPlan(s string) (PaymentPlan, error) {
	switch p := PaymentPlan(strings.ToLower(strings.TrimSpace(s))); p {
	case PlanContinuous, PlanStopEarly:
		return p, nil
	}
	return "", fmt.Errorf("unknown payment plan %q (expected continuous or stop_early)", s)
}

// FutureIndex is either an explicit override of the future average
// contribution index or a request to derive it from the projected schedule.
// The zero value is Auto.
type FutureIndex struct {
	value    decimal.Decimal
	override bool
}

// AutoFutureIndex derives the future index from projected contribution bases
func AutoFutureIndex() FutureIndex {
	return FutureIndex{}
}

// OverrideFutureIndex pins the future index to v
func OverrideFutureIndex(v decimal.Decimal) FutureIndex {
	return FutureIndex{value: v, override: true}
}

// Value returns the override and true, or zero and false for Auto
func (f FutureIndex) Value() (decimal.Decimal, bool) {
	return f.value, f.override
}

// IsAuto reports whether the index is derived
func (f FutureIndex) IsAuto() bool {
	return !f.override
}

func (f FutureIndex) String() string {
	if !f.override {
		return "auto"
	}
	return f.value.String()
}

// ParseFutureIndex accepts "", "auto" or a number
func ParseFutureIndex(s string) (FutureIndex, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "auto") {
		return AutoFutureIndex(), nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return FutureIndex{}, fmt.Errorf("invalid future index %q: %w", s, err)
	}
	return OverrideFutureIndex(v), nil
}

// MarshalJSON writes "auto" or the numeric override
func (f FutureIndex) MarshalJSON() ([]byte, error) {
	if !f.override {
		return []byte(`"auto"`), nil
	}
	return []byte(f.value.String()), nil
}

// UnmarshalJSON accepts null, "auto" or a number
func (f *FutureIndex) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "null" {
		*f = AutoFutureIndex()
		return nil
	}
	parsed, err := ParseFutureIndex(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ProjectionInput is the complete, validated description of one projection
// request. It is passed by value and never mutated by the engine.
type ProjectionInput struct {
	Gender         Gender          `json:"gender"`
	CurrentAge     int             `json:"currentAge"`
	AvgSalary      decimal.Decimal `json:"avgSalary"`      // current monthly social average wage
	PaidYears      decimal.Decimal `json:"paidYears"`      // credited years so far
	AccountBalance decimal.Decimal `json:"accountBalance"` // personal account balance today
	SalaryBase     decimal.Decimal `json:"salaryBase"`     // current monthly contribution base
	PastAvgIndex   decimal.Decimal `json:"pastAvgIndex"`
	FutureAvgIndex FutureIndex     `json:"futureAvgIndex"`
	BaseChangeMode BaseChangeMode  `json:"baseChangeMode"`
	PaymentPlan    PaymentPlan     `json:"paymentPlan"`
	StopAge        int             `json:"stopAge"` // only meaningful under PlanStopEarly
	SalaryGrowth   decimal.Decimal `json:"salaryGrowth"`
	SocAvgGrowth   decimal.Decimal `json:"socAvgGrowth"`
	InterestRate   decimal.Decimal `json:"interestRate"`
}

// DefaultMinAge is the youngest supported current age
const DefaultMinAge = 18

// DefaultProjectionInput returns the starting values offered to a new user
func DefaultProjectionInput() ProjectionInput {
	return ProjectionInput{
		Gender:         GenderMale,
		CurrentAge:     30,
		AvgSalary:      decimal.NewFromInt(8000),
		PaidYears:      decimal.NewFromInt(5),
		AccountBalance: decimal.NewFromInt(20000),
		SalaryBase:     decimal.NewFromInt(8000),
		PastAvgIndex:   decimal.NewFromInt(1),
		FutureAvgIndex: AutoFutureIndex(),
		BaseChangeMode: BaseFollowSalary,
		PaymentPlan:    PlanContinuous,
		StopAge:        50,
		SalaryGrowth:   decimal.NewFromFloat(0.03),
		SocAvgGrowth:   decimal.NewFromFloat(0.03),
		InterestRate:   decimal.NewFromFloat(0.03),
	}
}

// Validate checks every field that can be judged without knowing the
// retirement age. Checks that depend on the retirement profile live in the
// engine.
func (in ProjectionInput) Validate(minAge int) error {
	switch in.Gender {
	case GenderMale, GenderFemaleWorker, GenderFemaleCadre:
	default:
		return NewInvalidInputError("gender", in.Gender, "unknown gender")
	}
	if in.CurrentAge < minAge {
		return NewInvalidInputError("currentAge", in.CurrentAge, fmt.Sprintf("must be at least %d", minAge))
	}
	if !in.AvgSalary.IsPositive() {
		return NewInvalidInputError("avgSalary", in.AvgSalary, "must be a positive amount")
	}
	if in.PaidYears.IsNegative() {
		return NewInvalidInputError("paidYears", in.PaidYears, "must be zero or more")
	}
	if in.AccountBalance.IsNegative() {
		return NewInvalidInputError("accountBalance", in.AccountBalance, "must be zero or more")
	}
	if !in.SalaryBase.IsPositive() {
		return NewInvalidInputError("salaryBase", in.SalaryBase, "must be a positive amount")
	}
	if in.PastAvgIndex.IsNegative() {
		return NewInvalidInputError("pastAvgIndex", in.PastAvgIndex, "must be zero or more")
	}
	if v, ok := in.FutureAvgIndex.Value(); ok && v.IsNegative() {
		return NewInvalidInputError("futureAvgIndex", v, "must be zero or more")
	}
	switch in.BaseChangeMode {
	case BaseFixed, BaseFollowSalary:
	default:
		return NewInvalidInputError("baseChangeMode", in.BaseChangeMode, "unknown mode")
	}
	switch in.PaymentPlan {
	case PlanContinuous:
	case PlanStopEarly:
		if in.StopAge < in.CurrentAge {
			return NewInvalidInputError("stopAge", in.StopAge, "cannot be earlier than the current age")
		}
	default:
		return NewInvalidInputError("paymentPlan", in.PaymentPlan, "unknown plan")
	}

	one := decimal.NewFromInt(1)
	rates := []struct {
		name  string
		value decimal.Decimal
	}{
		{"salaryGrowth", in.SalaryGrowth},
		{"socAvgGrowth", in.SocAvgGrowth},
		{"interestRate", in.InterestRate},
	}
	for _, r := range rates {
		if r.value.IsNegative() || r.value.GreaterThan(one) {
			return NewInvalidInputError(r.name, r.value, "must be a rate between 0 and 1")
		}
	}
	return nil
}
