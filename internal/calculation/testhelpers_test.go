package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
}

func newTestEngine() *Engine {
	e := NewEngine()
	e.Clock = fixedClock
	return e
}

func newTestEngineWithCompounding(method domain.CompoundingMethod) *Engine {
	e := newTestEngine()
	p := e.Policy.Clone()
	p.Compounding = method
	e.Policy = p
	return e
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// assertNear compares a decimal against a float expectation within delta
func assertNear(t *testing.T, want float64, got decimal.Decimal, delta float64, msgAndArgs ...interface{}) bool {
	t.Helper()
	return assert.InDelta(t, want, got.InexactFloat64(), delta, msgAndArgs...)
}

// assertDecEqual compares two decimals by value, ignoring their exponent
func assertDecEqual(t *testing.T, want, got decimal.Decimal, msgAndArgs ...interface{}) bool {
	t.Helper()
	if want.Equal(got) {
		return true
	}
	return assert.Fail(t, "decimals differ: want "+want.String()+", got "+got.String(), msgAndArgs...)
}

// scenarioA is the reference worker: 30 years old, male, following salary
func scenarioA() domain.ProjectionInput {
	return domain.ProjectionInput{
		Gender:         domain.GenderMale,
		CurrentAge:     30,
		AvgSalary:      dec(8000),
		PaidYears:      dec(5),
		AccountBalance: dec(20000),
		SalaryBase:     dec(8000),
		PastAvgIndex:   dec(1),
		FutureAvgIndex: domain.AutoFutureIndex(),
		BaseChangeMode: domain.BaseFollowSalary,
		PaymentPlan:    domain.PlanContinuous,
		SalaryGrowth:   dec(0.03),
		SocAvgGrowth:   dec(0.03),
		InterestRate:   dec(0.03),
	}
}

// zeroRateInput has no growth or interest so every amount is hand computable
func zeroRateInput() domain.ProjectionInput {
	return domain.ProjectionInput{
		Gender:         domain.GenderMale,
		CurrentAge:     60,
		AvgSalary:      dec(5000),
		PaidYears:      dec(10),
		AccountBalance: dec(10000),
		SalaryBase:     dec(5000),
		PastAvgIndex:   dec(1),
		BaseChangeMode: domain.BaseFixed,
		PaymentPlan:    domain.PlanContinuous,
	}
}
