package transform

import (
	"fmt"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// StopAt switches to the stop-early plan with contributions ending at Age
type StopAt struct {
	Age int
}

func (s *StopAt) Name() string { return "stop_at" }

func (s *StopAt) Description() string {
	return fmt.Sprintf("Stop contributing at age %d", s.Age)
}

func (s *StopAt) Validate(base domain.ProjectionInput) error {
	if s.Age < base.CurrentAge {
		return NewTransformError(s.Name(), "validate",
			fmt.Sprintf("age %d is before the current age %d", s.Age, base.CurrentAge), nil)
	}
	return nil
}

func (s *StopAt) Apply(base domain.ProjectionInput) (domain.ProjectionInput, error) {
	base.PaymentPlan = domain.PlanStopEarly
	base.StopAge = s.Age
	return base, nil
}

// DelayStop moves the stop age later by Years. Under the continuous plan it
// has nothing to delay and leaves the input unchanged.
type DelayStop struct {
	Years int
}

func (d *DelayStop) Name() string { return "delay_stop" }

func (d *DelayStop) Description() string {
	return fmt.Sprintf("Keep contributing %d more years", d.Years)
}

func (d *DelayStop) Validate(base domain.ProjectionInput) error {
	if d.Years < 0 {
		return NewTransformError(d.Name(), "validate", fmt.Sprintf("years must be non-negative, got %d", d.Years), nil)
	}
	return nil
}

func (d *DelayStop) Apply(base domain.ProjectionInput) (domain.ProjectionInput, error) {
	if base.PaymentPlan == domain.PlanStopEarly {
		base.StopAge += d.Years
	}
	return base, nil
}

// ContinueToRetirement switches to the continuous plan
type ContinueToRetirement struct{}

func (c *ContinueToRetirement) Name() string { return "continuous" }

func (c *ContinueToRetirement) Description() string { return "Contribute until retirement" }

func (c *ContinueToRetirement) Validate(domain.ProjectionInput) error { return nil }

func (c *ContinueToRetirement) Apply(base domain.ProjectionInput) (domain.ProjectionInput, error) {
	base.PaymentPlan = domain.PlanContinuous
	return base, nil
}

// SetBaseMode chooses between a fixed base and one that follows salary
type SetBaseMode struct {
	Mode domain.BaseChangeMode
}

func (s *SetBaseMode) Name() string {
	if s.Mode == domain.BaseFixed {
		return "fixed_base"
	}
	return "follow_salary"
}

func (s *SetBaseMode) Description() string {
	if s.Mode == domain.BaseFixed {
		return "Hold the contribution base fixed"
	}
	return "Grow the contribution base with salary"
}

func (s *SetBaseMode) Validate(domain.ProjectionInput) error {
	if _, err := domain.ParseBaseChangeMode(string(s.Mode)); err != nil {
		return NewTransformError(s.Name(), "validate", "unknown base mode", err)
	}
	return nil
}

func (s *SetBaseMode) Apply(base domain.ProjectionInput) (domain.ProjectionInput, error) {
	base.BaseChangeMode = s.Mode
	return base, nil
}

// SetBase replaces the current monthly contribution base
type SetBase struct {
	Amount decimal.Decimal
}

func (s *SetBase) Name() string { return "set_base" }

func (s *SetBase) Description() string {
	return fmt.Sprintf("Set the contribution base to %s", s.Amount.StringFixed(2))
}

func (s *SetBase) Validate(domain.ProjectionInput) error {
	if !s.Amount.IsPositive() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", s.Amount), nil)
	}
	return nil
}

func (s *SetBase) Apply(base domain.ProjectionInput) (domain.ProjectionInput, error) {
	base.SalaryBase = s.Amount
	return base, nil
}

// ScaleBase multiplies the current base, e.g. 1.2 for a 20% raise
type ScaleBase struct {
	Factor decimal.Decimal
}

func (s *ScaleBase) Name() string { return "scale_base" }

func (s *ScaleBase) Description() string {
	return fmt.Sprintf("Scale the contribution base by %s", s.Factor.String())
}

func (s *ScaleBase) Validate(domain.ProjectionInput) error {
	if !s.Factor.IsPositive() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("factor must be positive, got %s", s.Factor), nil)
	}
	return nil
}

func (s *ScaleBase) Apply(base domain.ProjectionInput) (domain.ProjectionInput, error) {
	base.SalaryBase = base.SalaryBase.Mul(s.Factor)
	return base, nil
}
