package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CompoundingMethod selects how contributions accrue interest within a year
type CompoundingMethod string

const (
	// CompoundMonthly compounds at (1+r)^(1/12) and credits each month
	CompoundMonthly CompoundingMethod = "monthly"
	// CompoundAnnualMidYear compounds once a year and treats the year's
	// contributions as paid at a fixed point inside the year
	CompoundAnnualMidYear CompoundingMethod = "annual_mid_year"
)

// ParseCompoundingMethod converts a user supplied string into a CompoundingMethod
func ParseCompoundingMethod(s string) (CompoundingMethod, error) {
	switch m := CompoundingMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case CompoundMonthly, CompoundAnnualMidYear:
		return m, nil
	case "":
		return CompoundMonthly, nil
	}
	return "", fmt.Errorf("unknown compounding method %q (expected monthly or annual_mid_year)", s)
}

// Policy holds the regulation-defined constants of the benefit formula.
// It is loaded from policy YAML; DefaultPolicy mirrors the embedded file.
type Policy struct {
	Metadata         PolicyMetadata    `yaml:"metadata" json:"metadata"`
	ContributionRate decimal.Decimal   `yaml:"contribution_rate" json:"contribution_rate"`   // personal share of the base
	BasicPensionRate decimal.Decimal   `yaml:"basic_pension_rate" json:"basic_pension_rate"` // per credited year
	MinBaseRatio     decimal.Decimal   `yaml:"min_base_ratio" json:"min_base_ratio"`         // floor as share of social average wage
	FloorTolerance   decimal.Decimal   `yaml:"floor_tolerance" json:"floor_tolerance"`
	Compounding      CompoundingMethod `yaml:"compounding" json:"compounding"`
	MidYearFactor    decimal.Decimal   `yaml:"mid_year_factor" json:"mid_year_factor"`
	MinAge           int               `yaml:"min_age" json:"min_age"`
	RetirementAges   map[Gender]int    `yaml:"retirement_ages" json:"retirement_ages"`
	PaymentMonths    map[int]int       `yaml:"payment_months" json:"payment_months"`
}

// PolicyMetadata describes where a policy table came from
type PolicyMetadata struct {
	Name        string `yaml:"name" json:"name"`
	DataYear    int    `yaml:"data_year" json:"data_year"`
	Description string `yaml:"description" json:"description"`
}

// DefaultPaymentMonths is the statutory annuity divisor table for ages 40-70
func DefaultPaymentMonths() map[int]int {
	return map[int]int{
		40: 233, 41: 230, 42: 226, 43: 223, 44: 220,
		45: 216, 46: 212, 47: 208, 48: 204, 49: 199,
		50: 195, 51: 190, 52: 185, 53: 180, 54: 175,
		55: 170, 56: 164, 57: 158, 58: 152, 59: 145,
		60: 139, 61: 132, 62: 125, 63: 117, 64: 109,
		65: 101, 66: 93, 67: 84, 68: 75, 69: 65,
		70: 56,
	}
}

// DefaultPolicy returns the built-in policy
func DefaultPolicy() Policy {
	return Policy{
		Metadata: PolicyMetadata{
			Name:        "default",
			DataYear:    2005,
			Description: "Basic pension insurance for enterprise employees",
		},
		ContributionRate: decimal.NewFromFloat(0.08),
		BasicPensionRate: decimal.NewFromFloat(0.01),
		MinBaseRatio:     decimal.NewFromFloat(0.6),
		FloorTolerance:   decimal.NewFromFloat(0.001),
		Compounding:      CompoundMonthly,
		MidYearFactor:    decimal.NewFromFloat(0.5),
		MinAge:           DefaultMinAge,
		RetirementAges: map[Gender]int{
			GenderMale:         65,
			GenderFemaleWorker: 60,
			GenderFemaleCadre:  55,
		},
		PaymentMonths: DefaultPaymentMonths(),
	}
}

// Clone returns a deep copy so callers can tweak maps safely
func (p Policy) Clone() Policy {
	out := p
	out.RetirementAges = make(map[Gender]int, len(p.RetirementAges))
	for k, v := range p.RetirementAges {
		out.RetirementAges[k] = v
	}
	out.PaymentMonths = make(map[int]int, len(p.PaymentMonths))
	for k, v := range p.PaymentMonths {
		out.PaymentMonths[k] = v
	}
	return out
}

// PaymentMonthAges returns the table's ages in ascending order
func (p Policy) PaymentMonthAges() []int {
	ages := make([]int, 0, len(p.PaymentMonths))
	for age := range p.PaymentMonths {
		ages = append(ages, age)
	}
	sort.Ints(ages)
	return ages
}

// Validate checks that the policy can drive a projection
func (p Policy) Validate() error {
	unit := []struct {
		name  string
		value decimal.Decimal
	}{
		{"contribution_rate", p.ContributionRate},
		{"basic_pension_rate", p.BasicPensionRate},
		{"min_base_ratio", p.MinBaseRatio},
	}
	for _, r := range unit {
		if r.value.LessThanOrEqual(decimal.Zero) || r.value.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("policy %s must be in (0, 1], got %s", r.name, r.value)
		}
	}
	if p.FloorTolerance.IsNegative() {
		return fmt.Errorf("policy floor_tolerance cannot be negative, got %s", p.FloorTolerance)
	}
	if _, err := ParseCompoundingMethod(string(p.Compounding)); err != nil {
		return fmt.Errorf("policy compounding: %w", err)
	}
	if p.MidYearFactor.IsNegative() || p.MidYearFactor.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("policy mid_year_factor must be in [0, 1], got %s", p.MidYearFactor)
	}
	if p.MinAge <= 0 {
		return fmt.Errorf("policy min_age must be positive, got %d", p.MinAge)
	}
	for _, g := range []Gender{GenderMale, GenderFemaleWorker, GenderFemaleCadre} {
		age, ok := p.RetirementAges[g]
		if !ok {
			return fmt.Errorf("policy retirement_ages is missing %s", g)
		}
		if age <= p.MinAge {
			return fmt.Errorf("policy retirement age for %s (%d) must exceed min_age %d", g, age, p.MinAge)
		}
	}
	if len(p.PaymentMonths) == 0 {
		return fmt.Errorf("policy payment_months table is empty")
	}
	prev := 0
	for i, age := range p.PaymentMonthAges() {
		months := p.PaymentMonths[age]
		if months <= 0 {
			return fmt.Errorf("policy payment_months[%d] must be positive, got %d", age, months)
		}
		if i > 0 && months > prev {
			return fmt.Errorf("policy payment_months must not increase with age (age %d: %d > %d)", age, months, prev)
		}
		prev = months
	}
	return nil
}
