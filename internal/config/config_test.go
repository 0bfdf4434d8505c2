package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioYAML = `
name: mid-career
input:
  gender: male
  current_age: 30
  avg_salary: 8000
  paid_years: 5
  account_balance: 20000
  salary_base: 8000
  past_avg_index: 1.0
  future_avg_index: auto
  base_change_mode: follow_salary
  payment_plan: continuous
  salary_growth: 0.03
  soc_avg_growth: 0.03
  interest_rate: 0.03
scenarios:
  - name: stop at 50
    transforms: ["stop_at:age=50"]
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeFile(t, "scenario.yaml", scenarioYAML)

	file, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mid-career", file.Name)
	require.Len(t, file.Scenarios, 1)
	assert.Equal(t, []string{"stop_at:age=50"}, file.Scenarios[0].Transforms)

	in, err := NewInputParser().ToProjectionInput(file.Input)
	require.NoError(t, err)
	assert.Equal(t, domain.GenderMale, in.Gender)
	assert.Equal(t, 30, in.CurrentAge)
	assert.Equal(t, "20000", in.AccountBalance.String())
	assert.True(t, in.FutureAvgIndex.IsAuto())
	assert.Equal(t, domain.PlanContinuous, in.PaymentPlan)
	assert.Equal(t, "0.03", in.InterestRate.String())
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParseDefaultsOmittedFields(t *testing.T) {
	file, err := NewInputParser().Parse([]byte("name: minimal\ninput:\n  current_age: 40\n"))
	require.NoError(t, err)

	in, err := NewInputParser().ToProjectionInput(file.Input)
	require.NoError(t, err)
	def := domain.DefaultProjectionInput()
	assert.Equal(t, 40, in.CurrentAge)
	assert.Equal(t, def.Gender, in.Gender)
	assert.True(t, def.SalaryBase.Equal(in.SalaryBase))
	assert.True(t, def.SocAvgGrowth.Equal(in.SocAvgGrowth))
}

func TestParseNumericFutureIndex(t *testing.T) {
	file, err := NewInputParser().Parse([]byte("input:\n  future_avg_index: 1.2\n"))
	require.NoError(t, err)

	in, err := NewInputParser().ToProjectionInput(file.Input)
	require.NoError(t, err)
	v, ok := in.FutureAvgIndex.Value()
	require.True(t, ok)
	assert.Equal(t, "1.2", v.String())
}

func TestParseRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"negative balance", "input:\n  account_balance: -1\n", "accountBalance"},
		{"unknown gender", "input:\n  gender: robot\n", "gender"},
		{"rate above one", "input:\n  interest_rate: 1.5\n", "interestRate"},
		{"bad index", "input:\n  future_avg_index: lots\n", "futureAvgIndex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, domain.IsInvalidInput(err), "expected InvalidInputError, got %v", err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("input: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseRejectsDuplicateScenarioNames(t *testing.T) {
	body := "scenarios:\n  - name: a\n  - name: a\n"
	_, err := NewInputParser().Parse([]byte(body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate name")
}

func TestInputSectionRoundTrip(t *testing.T) {
	in := domain.DefaultProjectionInput()
	in.FutureAvgIndex = domain.OverrideFutureIndex(decimal.RequireFromString("1.1"))
	in.PaymentPlan = domain.PlanStopEarly
	in.StopAge = 45

	data, err := MarshalScenarioFile(&ScenarioFile{Name: "saved", Input: InputSectionFrom(in)})
	require.NoError(t, err)

	file, err := NewInputParser().Parse(data)
	require.NoError(t, err)
	back, err := NewInputParser().ToProjectionInput(file.Input)
	require.NoError(t, err)

	assert.Equal(t, in.Gender, back.Gender)
	assert.Equal(t, in.CurrentAge, back.CurrentAge)
	assert.Equal(t, in.PaymentPlan, back.PaymentPlan)
	assert.Equal(t, in.StopAge, back.StopAge)
	assert.Equal(t, in.BaseChangeMode, back.BaseChangeMode)
	assert.Equal(t, in.FutureAvgIndex.String(), back.FutureAvgIndex.String())
	amounts := map[string][2]decimal.Decimal{
		"avgSalary":      {in.AvgSalary, back.AvgSalary},
		"paidYears":      {in.PaidYears, back.PaidYears},
		"accountBalance": {in.AccountBalance, back.AccountBalance},
		"salaryBase":     {in.SalaryBase, back.SalaryBase},
		"pastAvgIndex":   {in.PastAvgIndex, back.PastAvgIndex},
		"salaryGrowth":   {in.SalaryGrowth, back.SalaryGrowth},
		"socAvgGrowth":   {in.SocAvgGrowth, back.SocAvgGrowth},
		"interestRate":   {in.InterestRate, back.InterestRate},
	}
	for name, pair := range amounts {
		assert.True(t, pair[0].Equal(pair[1]), "%s: %s != %s", name, pair[0], pair[1])
	}
}

func TestEmbeddedPolicyMatchesDefault(t *testing.T) {
	loaded, err := LoadPolicy("")
	require.NoError(t, err)
	def := domain.DefaultPolicy()

	assert.Equal(t, def.Metadata, loaded.Metadata)
	assert.True(t, def.ContributionRate.Equal(loaded.ContributionRate))
	assert.True(t, def.BasicPensionRate.Equal(loaded.BasicPensionRate))
	assert.True(t, def.MinBaseRatio.Equal(loaded.MinBaseRatio))
	assert.True(t, def.FloorTolerance.Equal(loaded.FloorTolerance))
	assert.True(t, def.MidYearFactor.Equal(loaded.MidYearFactor))
	assert.Equal(t, def.Compounding, loaded.Compounding)
	assert.Equal(t, def.MinAge, loaded.MinAge)
	assert.Equal(t, def.RetirementAges, loaded.RetirementAges)
	assert.Equal(t, def.PaymentMonths, loaded.PaymentMonths)
}

func TestLoadPolicyOverlay(t *testing.T) {
	path := writeFile(t, "policy.yaml", `
compounding: annual_mid_year
retirement_ages:
  female_worker: 58
`)
	p, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, domain.CompoundAnnualMidYear, p.Compounding)
	assert.Equal(t, 58, p.RetirementAges[domain.GenderFemaleWorker])
	assert.Equal(t, 65, p.RetirementAges[domain.GenderMale])
	assert.Equal(t, 101, p.PaymentMonths[65])
}

func TestParsePolicyKeepsExplicitZeros(t *testing.T) {
	p, err := ParsePolicy([]byte("mid_year_factor: 0\nfloor_tolerance: 0\n"))
	require.NoError(t, err)
	assert.True(t, p.MidYearFactor.IsZero(), "got %s", p.MidYearFactor)
	assert.True(t, p.FloorTolerance.IsZero(), "got %s", p.FloorTolerance)

	def := domain.DefaultPolicy()
	assert.True(t, def.ContributionRate.Equal(p.ContributionRate), "untouched keys keep their defaults")
	assert.Equal(t, def.PaymentMonths, p.PaymentMonths)
}

func TestParsePolicyReplacesPaymentMonths(t *testing.T) {
	p, err := ParsePolicy([]byte("payment_months:\n  50: 195\n  60: 139\n"))
	require.NoError(t, err)
	assert.Equal(t, map[int]int{50: 195, 60: 139}, p.PaymentMonths)
	assert.Len(t, p.RetirementAges, 3)
}

func TestParsePolicyEmptyDocument(t *testing.T) {
	p, err := ParsePolicy(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPolicy().PaymentMonths, p.PaymentMonths)
}

func TestLoadPolicyRejectsInvalid(t *testing.T) {
	path := writeFile(t, "policy.yaml", "contribution_rate: 1.5\n")
	_, err := LoadPolicy(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "policy validation failed")
}

func TestMarshalPolicyRoundTrip(t *testing.T) {
	data, err := MarshalPolicy(domain.DefaultPolicy())
	require.NoError(t, err)
	p, err := ParsePolicy(data)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPolicy().PaymentMonths, p.PaymentMonths)
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), *s)
}

func TestLoadSettingsPrecedence(t *testing.T) {
	path := writeFile(t, "settings.yaml", "format: json\nlog_level: info\n")
	t.Setenv("PENSIONCALC_LOG_LEVEL", "error")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "console", "")
	flags.String("log-level", "warn", "")
	flags.Bool("debug", false, "")
	require.NoError(t, flags.Parse([]string{"--format", "csv"}))

	s, err := LoadSettings(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "csv", s.Format)
	assert.Equal(t, "error", s.LogLevel)
}

func TestLoadSettingsDebugForcesDebugLevel(t *testing.T) {
	t.Setenv("PENSIONCALC_DEBUG", "true")
	s, err := LoadSettings("", nil)
	require.NoError(t, err)
	assert.True(t, s.Debug)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadSettingsRejectsBadLevel(t *testing.T) {
	t.Setenv("PENSIONCALC_LOG_LEVEL", "loud")
	_, err := LoadSettings("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}
