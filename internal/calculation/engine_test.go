package calculation

import (
	"math"
	"testing"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.NotNil(t, engine.Clock, "Should initialize clock")
	assert.NoError(t, engine.Policy.Validate(), "Default policy should be valid")
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestNewEngineWithPolicy_RejectsInvalid(t *testing.T) {
	p := domain.DefaultPolicy().Clone()
	p.PaymentMonths = nil
	_, err := NewEngineWithPolicy(p)
	assert.Error(t, err)
}

func TestEngine_ScenarioA(t *testing.T) {
	result, err := newTestEngine().Project(scenarioA())
	require.NoError(t, err)

	assert.Equal(t, 65, result.Profile.RetireAge)
	assert.Equal(t, 35, result.Profile.YearsToRetire)
	assert.Equal(t, 2060, result.Profile.RetireCalendarYear)
	assert.Equal(t, 35, result.FuturePaymentYears)
	assertDecEqual(t, dec(40), result.TotalYears)
	assert.Equal(t, 101, result.PaymentMonths)
	assert.True(t, result.TotalPension.IsPositive())
	assertNear(t, 1.0, result.WeightedAvgIndex, 1e-9, "base tracks wage growth one to one")
	assert.True(t, result.FutureAvgIndexCalculated)
	assert.Len(t, result.Rows, 36)

	assertNear(t, 8000*math.Pow(1.03, 35), result.FutureAvgSalary, 1e-6)
	assertNear(t, 9004.36, result.BasicPension, 0.01)
	assertNear(t, 7927.29, result.PersonalPension, 0.01)
	assertNear(t, 16931.65, result.TotalPension, 0.01)
	assertNear(t, 800656.63, result.TotalAccountBalance, 0.01)
	assertDecEqual(t, result.TotalAccountBalance, result.BalanceAtRetirement, "continuous plan pays out the final balance")
	assertDecEqual(t, result.TotalPension.Div(result.FutureAvgSalary), result.ReplacementRate)
	assert.Equal(t, domain.BaseFollowSalary, result.BaseChangeMode)
	assert.Equal(t, domain.CompoundMonthly, result.Compounding)
}

func TestEngine_ScenarioB_StopImmediatelyBeforeRetirement(t *testing.T) {
	in := scenarioA()
	in.CurrentAge = 64
	in.PaymentPlan = domain.PlanStopEarly
	in.StopAge = 64

	result, err := newTestEngine().Project(in)
	require.NoError(t, err)

	assert.Equal(t, 0, result.FuturePaymentYears)
	assertDecEqual(t, in.PaidYears, result.TotalYears)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, 0, row.Index)
	assert.False(t, row.Contributing)
	assert.True(t, row.YearContribution.IsZero())
	assertDecEqual(t, in.PaidYears, row.YearsIfStop)
	assertDecEqual(t, in.PastAvgIndex, row.IndexIfStop)
	assertDecEqual(t, dec(20600), row.BalanceAtRetirement)
	assertDecEqual(t, row.PensionIfStop, result.TotalPension)
}

func TestEngine_ScenarioC_StopAfterRetirementRejected(t *testing.T) {
	in := scenarioA()
	in.PaymentPlan = domain.PlanStopEarly
	in.StopAge = 66

	logger := &TestLogger{}
	engine := newTestEngine()
	engine.SetLogger(logger)

	result, err := engine.Project(in)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, domain.IsInvalidInput(err))

	var iie *domain.InvalidInputError
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, "stopAge", iie.Field)
	for _, msg := range logger.messages {
		assert.NotContains(t, msg, "DEBUG: row", "no row may be computed for rejected input")
	}
}

func TestEngine_RejectsRetiredWorker(t *testing.T) {
	in := scenarioA()
	in.CurrentAge = 65

	_, err := newTestEngine().Project(in)
	var iie *domain.InvalidInputError
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, "currentAge", iie.Field)
}

func TestEngine_RejectsInvalidFields(t *testing.T) {
	in := scenarioA()
	in.InterestRate = dec(1.5)
	_, err := newTestEngine().Project(in)
	assert.True(t, domain.IsInvalidInput(err))

	in = scenarioA()
	in.SalaryBase = dec(-100)
	_, err = newTestEngine().Project(in)
	assert.True(t, domain.IsInvalidInput(err))
}

func TestEngine_ComputationError(t *testing.T) {
	engine := newTestEngine()
	policy := engine.Policy.Clone()
	policy.PaymentMonths = map[int]int{}
	engine.Policy = policy // bypasses policy validation on purpose

	result, err := engine.Project(scenarioA())
	require.Error(t, err)
	assert.Nil(t, result, "no partial result on computation failure")
	var ce *domain.ComputationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "paymentMonths", ce.Field)
	assert.False(t, domain.IsInvalidInput(err))
}

func TestEngine_HandComputedZeroRates(t *testing.T) {
	result, err := newTestEngine().Project(zeroRateInput())
	require.NoError(t, err)

	require.Len(t, result.Rows, 6)
	first := result.Rows[0]
	assertDecEqual(t, dec(14800), first.AccumulatedBalance)
	assertDecEqual(t, dec(500), first.BasicPensionIfStop)
	assertNear(t, 10000.0/101, first.PersonalPensionIfStop, 1e-9)

	last := result.LastRow()
	assertDecEqual(t, dec(34000), last.AccumulatedBalance)
	assertDecEqual(t, dec(15), last.YearsIfStop)
	assertDecEqual(t, dec(750), result.BasicPension)
	assertNear(t, 34000.0/101, result.PersonalPension, 1e-9)
	assertNear(t, 750+34000.0/101, result.TotalPension, 1e-9)

	assertDecEqual(t, dec(10000), result.BalanceFutureValue)
	assertDecEqual(t, dec(24000), result.FutureContributionTotal)
}

func TestEngine_FloorInvariant(t *testing.T) {
	in := scenarioA()
	in.SalaryBase = dec(2000)
	in.SalaryGrowth = dec(0)
	in.SocAvgGrowth = dec(0.06)

	result, err := newTestEngine().Project(in)
	require.NoError(t, err)
	for _, row := range result.Rows {
		assert.True(t, row.ContributionBase.GreaterThanOrEqual(row.MinimumBase), "row %d", row.Index)
	}
	assert.Equal(t, len(result.Rows), result.FlooredYears())
}

func TestEngine_MonotonicWageGrowth(t *testing.T) {
	for _, growth := range []float64{0, 0.01, 0.05} {
		in := scenarioA()
		in.SocAvgGrowth = dec(growth)
		result, err := newTestEngine().Project(in)
		require.NoError(t, err)
		for i := 1; i < len(result.Rows); i++ {
			assert.True(t, result.Rows[i].CurrentYearAvgSalary.GreaterThanOrEqual(result.Rows[i-1].CurrentYearAvgSalary))
		}
	}
}

func TestEngine_ZeroRateIdempotence(t *testing.T) {
	in := zeroRateInput()
	in.CurrentAge = 40

	result, err := newTestEngine().Project(in)
	require.NoError(t, err)
	for _, row := range result.Rows {
		assertDecEqual(t, in.SalaryBase, row.ContributionBase, "row %d", row.Index)
	}

	in.PaymentPlan = domain.PlanStopEarly
	in.StopAge = in.CurrentAge
	result, err = newTestEngine().Project(in)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assertDecEqual(t, in.AccountBalance, result.Rows[0].AccumulatedBalance)
	assertDecEqual(t, in.AccountBalance, result.Rows[0].BalanceAtRetirement)
	assertDecEqual(t, in.AccountBalance, result.BalanceFutureValue)
}

func TestEngine_PlanEquivalence(t *testing.T) {
	engine := newTestEngine()
	inputs := []domain.ProjectionInput{scenarioA(), zeroRateInput()}
	for _, continuous := range inputs {
		stopEarly := continuous
		stopEarly.PaymentPlan = domain.PlanStopEarly
		stopEarly.StopAge = 65

		a, err := engine.Project(continuous)
		require.NoError(t, err)
		b, err := engine.Project(stopEarly)
		require.NoError(t, err)

		assert.Equal(t, a.Rows, b.Rows)
		assert.Equal(t, a.TotalPension, b.TotalPension)
		assert.Equal(t, a.BasicPension, b.BasicPension)
		assert.Equal(t, a.PersonalPension, b.PersonalPension)
		assert.Equal(t, a.TotalAccountBalance, b.TotalAccountBalance)
		assert.Equal(t, a.WeightedAvgIndex, b.WeightedAvgIndex)
		assert.Equal(t, a.TotalYears, b.TotalYears)
		assert.Equal(t, a.BalanceFutureValue, b.BalanceFutureValue)
		assert.Equal(t, a.FutureContributionTotal, b.FutureContributionTotal)
	}
}

func TestEngine_ReconciliationInvariant(t *testing.T) {
	var inputs []domain.ProjectionInput
	for _, gender := range []domain.Gender{domain.GenderMale, domain.GenderFemaleWorker, domain.GenderFemaleCadre} {
		for _, mode := range []domain.BaseChangeMode{domain.BaseFixed, domain.BaseFollowSalary} {
			for _, stop := range []int{0, 40, 50} {
				in := scenarioA()
				in.Gender = gender
				in.BaseChangeMode = mode
				in.SalaryBase = dec(4000)
				if stop > 0 {
					in.PaymentPlan = domain.PlanStopEarly
					in.StopAge = stop
				}
				inputs = append(inputs, in)
			}
		}
	}
	override := scenarioA()
	override.FutureAvgIndex = domain.OverrideFutureIndex(dec(1.8))
	inputs = append(inputs, override)
	noHistory := scenarioA()
	noHistory.PaidYears = dec(0)
	inputs = append(inputs, noHistory)

	for _, method := range []domain.CompoundingMethod{domain.CompoundMonthly, domain.CompoundAnnualMidYear} {
		engine := newTestEngineWithCompounding(method)
		for _, in := range inputs {
			result, err := engine.Project(in)
			require.NoError(t, err, "%+v", in)

			last := result.LastRow()
			assert.Equal(t, last.PensionIfStop, result.TotalPension)
			assert.Equal(t, last.BasicPensionIfStop, result.BasicPension)
			assert.Equal(t, last.PersonalPensionIfStop, result.PersonalPension)
			assert.Equal(t, last.AccumulatedBalance, result.TotalAccountBalance)
			assert.Equal(t, last.BalanceAtRetirement, result.BalanceAtRetirement)
			assertDecEqual(t, result.BasicPension.Add(result.PersonalPension), result.TotalPension)
			assertNear(t, result.BalanceAtRetirement.InexactFloat64()/float64(result.PaymentMonths), result.PersonalPension, 1e-6)

			assert.LessOrEqual(t, result.FuturePaymentYears, result.Profile.YearsToRetire)
			assertDecEqual(t, in.PaidYears.Add(dec(float64(result.FuturePaymentYears))), result.TotalYears)
			assertDecEqual(t, result.TotalYears, last.YearsIfStop)
			assertDecEqual(t, result.WeightedAvgIndex, last.IndexIfStop)
			assert.Len(t, result.Rows, result.FuturePaymentYears+1)
		}
	}
}

func TestEngine_ContinuousLastRowMatchesFullHorizonBasic(t *testing.T) {
	result, err := newTestEngine().Project(scenarioA())
	require.NoError(t, err)

	want := result.FutureAvgSalary.
		Mul(dec(1).Add(result.WeightedAvgIndex)).
		Div(dec(2)).
		Mul(result.TotalYears).
		Mul(dec(0.01))
	assertNear(t, want.InexactFloat64(), result.BasicPension, 1e-9)
	assert.Equal(t, 0, result.LastRow().YearsToRetire)
	assert.Equal(t, result.LastRow().BalanceAtRetirement, result.TotalAccountBalance)
}

func TestEngine_StopEarlyRows(t *testing.T) {
	in := scenarioA()
	in.PaymentPlan = domain.PlanStopEarly
	in.StopAge = 50

	result, err := newTestEngine().Project(in)
	require.NoError(t, err)
	assert.Equal(t, 20, result.FuturePaymentYears)
	assertDecEqual(t, dec(25), result.TotalYears)
	require.Len(t, result.Rows, 21)

	for i, row := range result.Rows {
		assert.Equal(t, i < 20, row.Contributing, "row %d", i)
		assert.Equal(t, 2025+i, row.Year)
		assert.Equal(t, 30+i, row.Age)
	}
	last := result.LastRow()
	assert.Equal(t, 15, last.YearsToRetire)
	assert.True(t, last.BalanceAtRetirement.GreaterThan(last.AccumulatedBalance), "stopped balance keeps growing to retirement")
	assertNear(t, 10396.41, result.TotalPension, 0.01)
}

func TestEngine_StopEarlyBalanceAtRetirement(t *testing.T) {
	in := scenarioA()
	in.PaymentPlan = domain.PlanStopEarly
	in.StopAge = 45

	result, err := newTestEngine().Project(in)
	require.NoError(t, err)

	last := result.LastRow()
	assertDecEqual(t, last.AccumulatedBalance, result.TotalAccountBalance)
	assertDecEqual(t, last.BalanceAtRetirement, result.BalanceAtRetirement)
	assert.True(t, result.BalanceAtRetirement.GreaterThan(result.TotalAccountBalance),
		"the headline balance is one year after stopping, the payout balance is at retirement")

	months := dec(float64(result.PaymentMonths))
	assertNear(t, result.BalanceAtRetirement.InexactFloat64(), result.PersonalPension.Mul(months), 1e-6)
	assert.False(t, result.PersonalPension.Mul(months).Round(2).Equal(result.TotalAccountBalance.Round(2)))
}

func TestEngine_RowsCarryBalanceAndYears(t *testing.T) {
	result, err := newTestEngine().Project(scenarioA())
	require.NoError(t, err)

	for i := 1; i < len(result.Rows); i++ {
		prev, row := result.Rows[i-1], result.Rows[i]
		assert.True(t, row.AccumulatedBalance.GreaterThanOrEqual(prev.AccumulatedBalance), "row %d", i)
		assert.True(t, row.AccumulatedYears.GreaterThanOrEqual(prev.AccumulatedYears))
		want := prev.AccumulatedBalance.InexactFloat64() * math.Pow(1.03, float64(row.YearsToRetire))
		assert.InEpsilon(t, want, row.BalanceAtRetirement.InexactFloat64(), 1e-12)
	}
}

func TestEngine_CompoundingMethodsDiffer(t *testing.T) {
	monthly, err := newTestEngineWithCompounding(domain.CompoundMonthly).Project(scenarioA())
	require.NoError(t, err)
	annual, err := newTestEngineWithCompounding(domain.CompoundAnnualMidYear).Project(scenarioA())
	require.NoError(t, err)

	assert.Equal(t, domain.CompoundAnnualMidYear, annual.Compounding)
	assertNear(t, 16940.47, annual.TotalPension, 0.01)
	assertNear(t, 801547.04, annual.TotalAccountBalance, 0.01)
	assertDecEqual(t, monthly.BasicPension, annual.BasicPension, "basic pension does not depend on compounding")
	assert.False(t, monthly.PersonalPension.Equal(annual.PersonalPension))
}

func TestEngine_FutureIndexOverride(t *testing.T) {
	in := scenarioA()
	in.FutureAvgIndex = domain.OverrideFutureIndex(dec(2))

	result, err := newTestEngine().Project(in)
	require.NoError(t, err)
	assert.False(t, result.FutureAvgIndexCalculated)
	assertDecEqual(t, dec(2), result.FutureAvgIndex)
	assertDecEqual(t, dec(1.875), result.WeightedAvgIndex)
	assertDecEqual(t, dec(1.375), result.Rows[3].IndexIfStop)
}

func TestEngine_NoHistoryFirstRowHasNoPension(t *testing.T) {
	in := scenarioA()
	in.PaidYears = dec(0)

	result, err := newTestEngine().Project(in)
	require.NoError(t, err)
	assert.True(t, result.Rows[0].PensionIfStop.IsZero(), "no credited years means no pension")
	assert.True(t, result.Rows[1].PensionIfStop.IsPositive())
}

func TestEngine_InjectedRetirementAges(t *testing.T) {
	p := domain.DefaultPolicy().Clone()
	p.RetirementAges[domain.GenderMale] = 60
	engine, err := NewEngineWithPolicy(p)
	require.NoError(t, err)
	engine.Clock = fixedClock

	result, err := engine.Project(scenarioA())
	require.NoError(t, err)
	assert.Equal(t, 60, result.Profile.RetireAge)
	assert.Equal(t, 139, result.PaymentMonths)
	assert.Equal(t, 30, result.FuturePaymentYears)
}

func TestEngine_DebugLogsRows(t *testing.T) {
	logger := &TestLogger{}
	engine := newTestEngine()
	engine.SetLogger(logger)
	engine.Debug = true

	_, err := engine.Project(zeroRateInput())
	require.NoError(t, err)

	rows := 0
	for _, msg := range logger.messages {
		if msg == "DEBUG: row %d age=%d base=%s floored=%t balance=%s pensionIfStop=%s" {
			rows++
		}
	}
	assert.Equal(t, 6, rows)
}

func TestEngine_InputNotMutated(t *testing.T) {
	in := scenarioA()
	copyIn := in
	_, err := newTestEngine().Project(in)
	require.NoError(t, err)
	assert.Equal(t, copyIn, in)
}

func TestFuturePaymentYears(t *testing.T) {
	profile := domain.RetirementProfile{RetireAge: 65, YearsToRetire: 35}
	in := scenarioA()
	assert.Equal(t, 35, FuturePaymentYears(in, profile))

	in.PaymentPlan = domain.PlanStopEarly
	in.StopAge = 45
	assert.Equal(t, 15, FuturePaymentYears(in, profile))

	in.StopAge = 70
	assert.Equal(t, 35, FuturePaymentYears(in, profile), "never beyond retirement")

	in.StopAge = 20
	assert.Equal(t, 0, FuturePaymentYears(in, profile))
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
