package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

// internalPrecision bounds the decimal places carried from one compounding
// step to the next
const internalPrecision = 12

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// GrowthFactor returns (1+rate)^years. Whole-year horizons are exact;
// fractional ones are evaluated in floating point.
func GrowthFactor(rate, years decimal.Decimal) decimal.Decimal {
	if years.IsZero() {
		return one
	}
	base := one.Add(rate)
	if years.IsInteger() {
		return base.Pow(years).Round(internalPrecision)
	}
	return decimal.NewFromFloat(math.Pow(base.InexactFloat64(), years.InexactFloat64()))
}

// monthlyFactor is (1+rate)^(1/12)
func monthlyFactor(rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(math.Pow(one.Add(rate).InexactFloat64(), 1.0/12))
}
