package compare

import (
	"context"
	"testing"
	"time"

	"github.com/rgehrsitz/pensioncalc/internal/calculation"
	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/rgehrsitz/pensioncalc/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompareEngine() *CompareEngine {
	engine := calculation.NewEngine()
	engine.Clock = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	return NewCompareEngine(engine)
}

func baseInput() domain.ProjectionInput {
	in := domain.DefaultProjectionInput()
	in.CurrentAge = 40
	in.PaidYears = decimal.NewFromInt(15)
	return in
}

func TestCompareWithTemplates(t *testing.T) {
	ce := newTestCompareEngine()
	compSet, err := ce.Compare(context.Background(), baseInput(), CompareOptions{
		BaseScenarioName: "current",
		Templates:        []string{"stop_at_50", "optimistic", "stop_at_45"},
		ConfigPath:       "scenario.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "current", compSet.BaseScenarioName)
	assert.Equal(t, "scenario.yaml", compSet.ConfigPath)
	require.Len(t, compSet.AlternativeResults, 3)
	assert.Empty(t, compSet.Skipped)

	stop50 := compSet.AlternativeResults[0]
	assert.Equal(t, "stop_at_50", stop50.ScenarioName)
	assert.Equal(t, 50, stop50.StopAge)
	assert.True(t, stop50.PensionDiffFromBase.IsNegative(), "stopping early lowers the pension")
	assert.True(t, stop50.ContributionDiffFromBase.IsNegative())
	assert.Equal(t, []string{"Stop contributing at age 50"}, stop50.Changes)

	stop45 := compSet.AlternativeResults[2]
	assert.True(t, stop45.TotalPension.LessThan(stop50.TotalPension))

	assert.True(t, compSet.AlternativeResults[1].PensionDiffFromBase.IsPositive(), "optimistic rates raise the pension")
	assert.NotEmpty(t, compSet.Recommendations)
}

func TestCompareCustomTransforms(t *testing.T) {
	ce := newTestCompareEngine()
	compSet, err := ce.Compare(context.Background(), baseInput(), CompareOptions{
		Transforms: []string{"set_base:amount=16000", "fixed_base"},
	})
	require.NoError(t, err)
	assert.Equal(t, "base", compSet.BaseScenarioName)
	require.Len(t, compSet.AlternativeResults, 1)
	assert.Equal(t, "custom", compSet.AlternativeResults[0].ScenarioName)
	assert.Len(t, compSet.AlternativeResults[0].Changes, 2)
}

func TestCompareErrors(t *testing.T) {
	ce := newTestCompareEngine()

	_, err := ce.Compare(context.Background(), baseInput(), CompareOptions{Templates: []string{"nope"}})
	assert.ErrorContains(t, err, "template nope not found")

	_, err = ce.Compare(context.Background(), baseInput(), CompareOptions{Transforms: []string{"bogus"}})
	assert.ErrorContains(t, err, "unknown transform")

	bad := baseInput()
	bad.AccountBalance = decimal.NewFromInt(-1)
	_, err = ce.Compare(context.Background(), bad, CompareOptions{})
	assert.ErrorContains(t, err, "failed to calculate base scenario")
	assert.True(t, domain.IsInvalidInput(err))
}

func TestCompareScenariosSkipsInvalidAlternatives(t *testing.T) {
	ce := newTestCompareEngine()
	in := baseInput()
	in.CurrentAge = 52

	compSet, err := ce.CompareScenarios(context.Background(), in, "now", []Scenario{
		{Name: "too_late", Transforms: []transform.ScenarioTransform{&transform.StopAt{Age: 50}}},
		{Name: "past_retirement", Transforms: []transform.ScenarioTransform{&transform.StopAt{Age: 70}}},
		{Name: "stop_now", Transforms: []transform.ScenarioTransform{&transform.StopAt{Age: 52}}},
	})
	require.NoError(t, err)
	require.Len(t, compSet.Skipped, 2)
	assert.Equal(t, "too_late", compSet.Skipped[0].ScenarioName)
	assert.Equal(t, "past_retirement", compSet.Skipped[1].ScenarioName)
	assert.Contains(t, compSet.Skipped[1].Reason, "stopAge")
	require.Len(t, compSet.AlternativeResults, 1)
	assert.Equal(t, "stop_now", compSet.AlternativeResults[0].ScenarioName)
}

func TestCompareScenariosHonoursContext(t *testing.T) {
	ce := newTestCompareEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ce.CompareScenarios(ctx, baseInput(), "base", []Scenario{{Name: "x"}})
	assert.ErrorIs(t, err, context.Canceled)
}
