package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SetRates changes the growth and interest assumptions. Nil fields are left
// as they are.
type SetRates struct {
	SalaryGrowth *decimal.Decimal
	SocAvgGrowth *decimal.Decimal
	InterestRate *decimal.Decimal
}

func (sr *SetRates) Name() string {
	return "set_rates"
}

func (sr *SetRates) Description() string {
	parts := make([]string, 0, 3)
	add := func(label string, d *decimal.Decimal) {
		if d != nil {
			parts = append(parts, fmt.Sprintf("%s %s%%", label, d.Mul(decimal.NewFromInt(100)).StringFixed(1)))
		}
	}
	add("salary growth", sr.SalaryGrowth)
	add("average wage growth", sr.SocAvgGrowth)
	add("interest", sr.InterestRate)
	if len(parts) == 0 {
		return "Keep current rates"
	}
	return "Set " + strings.Join(parts, ", ")
}

func (sr *SetRates) Validate(domain.ProjectionInput) error {
	one := decimal.NewFromInt(1)
	for name, d := range map[string]*decimal.Decimal{
		"salary_growth":  sr.SalaryGrowth,
		"soc_avg_growth": sr.SocAvgGrowth,
		"interest_rate":  sr.InterestRate,
	} {
		if d == nil {
			continue
		}
		if d.IsNegative() || d.GreaterThan(one) {
			return NewTransformError(sr.Name(), "validate", fmt.Sprintf("%s must be between 0 and 1, got %s", name, d), nil)
		}
	}
	return nil
}

func (sr *SetRates) Apply(base domain.ProjectionInput) (domain.ProjectionInput, error) {
	if sr.SalaryGrowth != nil {
		base.SalaryGrowth = *sr.SalaryGrowth
	}
	if sr.SocAvgGrowth != nil {
		base.SocAvgGrowth = *sr.SocAvgGrowth
	}
	if sr.InterestRate != nil {
		base.InterestRate = *sr.InterestRate
	}
	return base, nil
}

// SetFutureIndex overrides the future average contribution index, or
// restores the calculated one
type SetFutureIndex struct {
	Index domain.FutureIndex
}

func (sf *SetFutureIndex) Name() string {
	return "future_index"
}

func (sf *SetFutureIndex) Description() string {
	if sf.Index.IsAuto() {
		return "Calculate the future average index"
	}
	return fmt.Sprintf("Use a future average index of %s", sf.Index.String())
}

func (sf *SetFutureIndex) Validate(domain.ProjectionInput) error {
	if v, ok := sf.Index.Value(); ok && !v.IsPositive() {
		return NewTransformError(sf.Name(), "validate", fmt.Sprintf("index must be positive, got %s", v), nil)
	}
	return nil
}

func (sf *SetFutureIndex) Apply(base domain.ProjectionInput) (domain.ProjectionInput, error) {
	base.FutureAvgIndex = sf.Index
	return base, nil
}
