package calculation

import (
	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// IndexSummary is the outcome of aggregating contribution indexes
type IndexSummary struct {
	FutureIndex   decimal.Decimal // effective index of the future segment
	WeightedIndex decimal.Decimal
	Calculated    bool // FutureIndex was derived rather than overridden
}

// ContributionIndexAggregator combines the historical and projected
// contribution index into a lifetime weighted average
type ContributionIndexAggregator struct{}

// NewContributionIndexAggregator creates an aggregator
func NewContributionIndexAggregator() *ContributionIndexAggregator {
	return &ContributionIndexAggregator{}
}

// AutoFutureIndex is the mean contribution index over the first years of
// schedule, or pastAvgIndex when no year is covered
func (a *ContributionIndexAggregator) AutoFutureIndex(schedule []ScheduleYear, years int, pastAvgIndex decimal.Decimal) decimal.Decimal {
	if years > len(schedule) {
		years = len(schedule)
	}
	if years <= 0 {
		return pastAvgIndex
	}
	total := decimal.Zero
	for _, y := range schedule[:years] {
		total = total.Add(y.ContributionIndex())
	}
	return total.Div(decimal.NewFromInt(int64(years)))
}

// Weighted averages the two segments by credited years
func (a *ContributionIndexAggregator) Weighted(pastAvgIndex, paidYears, futureIndex, futureYears decimal.Decimal) decimal.Decimal {
	switch {
	case paidYears.IsPositive() && futureYears.IsPositive():
		return pastAvgIndex.Mul(paidYears).Add(futureIndex.Mul(futureYears)).Div(paidYears.Add(futureYears))
	case paidYears.IsPositive():
		return pastAvgIndex
	case futureYears.IsPositive():
		return futureIndex
	default:
		return pastAvgIndex
	}
}

// Aggregate computes the weighted index as if only the first futureYears of
// the schedule were contributed. Passing the full contribution span gives the
// headline index; smaller prefixes serve the what-if rows.
func (a *ContributionIndexAggregator) Aggregate(in domain.ProjectionInput, schedule []ScheduleYear, futureYears int) IndexSummary {
	summary := IndexSummary{}
	if v, ok := in.FutureAvgIndex.Value(); ok {
		summary.FutureIndex = v
	} else {
		summary.FutureIndex = a.AutoFutureIndex(schedule, futureYears, in.PastAvgIndex)
		summary.Calculated = true
	}
	summary.WeightedIndex = a.Weighted(in.PastAvgIndex, in.PaidYears, summary.FutureIndex, decimal.NewFromInt(int64(futureYears)))
	return summary
}
