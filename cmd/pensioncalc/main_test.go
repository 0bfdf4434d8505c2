package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
)

const sampleInput = `name: sample
input:
  gender: male
  current_age: 40
  avg_salary: 8000
  paid_years: 15
  account_balance: 60000
  salary_base: 8000
  past_avg_index: 1
  base_change_mode: follow_salary
  payment_plan: continuous
scenarios:
  - name: early
    transforms: ["stop_at:age=50"]
  - name: broke
    transforms: ["no_such_transform"]
`

// resetFlags restores every flag to its default so runs do not leak state
// into each other through the shared command tree
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the command tree from default flags. Flags are reset before
// each call so earlier calls in the same test cannot leak into it.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleInput), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "pensioncalc" {
		t.Errorf("Expected root command use to be 'pensioncalc', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" || rootCmd.Long == "" {
		t.Error("Expected root command to have short and long descriptions")
	}

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"calculate", "table", "validate", "compare", "break-even", "sensitivity", "policy", "version"} {
		if !names[want] {
			t.Errorf("missing subcommand %s", want)
		}
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "pensioncalc")
	assert.Contains(t, out, "break-even")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "pensioncalc dev"))
}

func TestCalculate_DefaultInput(t *testing.T) {
	out, err := run(t, "calculate")
	require.NoError(t, err)
	assert.Contains(t, out, "PENSION PROJECTION")
	assert.Contains(t, out, "16,931.65")
}

func TestCalculate_JSONFormat(t *testing.T) {
	out, err := run(t, "calculate", writeSample(t), "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalPension"`)
	assert.Contains(t, out, `"rows"`)
}

func TestCalculate_Scenario(t *testing.T) {
	path := writeSample(t)

	out, err := run(t, "calculate", path, "--scenario", "early")
	require.NoError(t, err)
	assert.Contains(t, out, "stop")

	_, err = run(t, "calculate", path, "--scenario", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario missing not found")
}

func TestCalculate_OutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "report.csv")
	out, err := run(t, "calculate", "--format", "csv", "--output", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestCalculate_Errors(t *testing.T) {
	_, err := run(t, "calculate", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")

	_, err = run(t, "calculate", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")

	_, err = run(t, "calculate", "--compounding", "daily")
	require.Error(t, err)
}

func TestTableCommand(t *testing.T) {
	out, err := run(t, "table", writeSample(t))
	require.NoError(t, err)
	assert.Contains(t, out, "PENSION PROJECTION")
}

func TestValidateCommand(t *testing.T) {
	path := writeSample(t)
	_, err := run(t, "validate", path)
	require.Error(t, err, "the broke scenario names an unknown transform")
	assert.Contains(t, err.Error(), "broke")

	good := filepath.Join(t.TempDir(), "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(strings.Split(sampleInput, "  - name: broke")[0]), 0o644))
	out, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestCompareCommand(t *testing.T) {
	path := writeSample(t)

	out, err := run(t, "compare", path, "--with", "stop_at_50,optimistic")
	require.NoError(t, err)
	assert.Contains(t, out, "stop_at_50")
	assert.Contains(t, out, "optimistic")

	out, err = run(t, "compare", path, "--transform", "set_base:amount=12000", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "custom")

	_, err = run(t, "compare", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--with or --transform is required")

	_, err = run(t, "compare", path, "--with", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template nope not found")
}

func TestRunStartsFromDefaultFlags(t *testing.T) {
	path := writeSample(t)

	out, err := run(t, "compare", path, "--with", "stop_at_50", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Scenario,Type")

	// a stale --with or --format would make this succeed as CSV
	_, err = run(t, "compare", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--with or --transform is required")

	out, err = run(t, "compare", path, "--with", "stop_at_50")
	require.NoError(t, err)
	assert.Contains(t, out, "PENSION SCENARIO COMPARISON")
}

func TestCompareCommand_ListTemplates(t *testing.T) {
	out, err := run(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Templates")
	assert.Contains(t, out, "stop_at_50")
}

func TestBreakEvenCommand(t *testing.T) {
	path := writeSample(t)

	out, err := run(t, "break-even", path, "--target-pension", "9000", "--optimize", "stop_age")
	require.NoError(t, err)
	assert.Contains(t, out, "OPTIMAL PARAMETERS")
	assert.Contains(t, out, "Stop Contributing At")

	out, err = run(t, "break-even", path, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"recommendations"`)

	_, err = run(t, "break-even", path, "--target-pension", "9000", "--target-replacement", "0.5")
	require.Error(t, err)

	_, err = run(t, "break-even", path, "--goal", "be_happy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown goal")

	_, err = run(t, "break-even", path, "--min-stop-age", "55", "--max-stop-age", "45")
	require.Error(t, err)
}

func TestSensitivityCommand(t *testing.T) {
	path := writeSample(t)

	out, err := run(t, "sensitivity", path, "--parameter", "interest_rate:0.01-0.05:5", "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[1], "interest_rate,0.01,"))

	out, err = run(t, "sensitivity", path, "--parameter-set", "rates")
	require.NoError(t, err)
	assert.Contains(t, out, "salary_growth")

	_, err = run(t, "sensitivity", path)
	require.Error(t, err)
}

func TestParseParameterString(t *testing.T) {
	p, err := parseParameterString("stop_age")
	require.NoError(t, err)
	assert.Equal(t, domain.StopAgeParam, p)

	p, err = parseParameterString("salary_base:5000-15000:3")
	require.NoError(t, err)
	assert.Equal(t, "5000", p.MinValue.String())
	assert.Equal(t, "15000", p.MaxValue.String())
	assert.Equal(t, 3, p.Steps)
	assert.Equal(t, "currency", p.Unit)

	p, err = parseParameterString("interest_rate:0.015-0.045:4")
	require.NoError(t, err)
	assert.Equal(t, "0.015", p.MinValue.String())

	for _, bad := range []string{"inflation", "stop_age:40", "stop_age:60-40:3", "stop_age:40-60:0", "stop_age:a-60:3"} {
		_, err := parseParameterString(bad)
		assert.Error(t, err, bad)
	}
}

func TestPolicyCommand(t *testing.T) {
	out, err := run(t, "policy")
	require.NoError(t, err)
	assert.Contains(t, out, "contribution_rate")

	out, err = run(t, "policy", "--compounding", "annual_mid_year")
	require.NoError(t, err)
	assert.Contains(t, out, "annual_mid_year")
}

func TestLoadInput(t *testing.T) {
	in, file, err := loadInput("", "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProjectionInput(), in)
	assert.Equal(t, "default", file.Name)

	_, _, err = loadInput("", "early")
	require.Error(t, err)

	in, _, err = loadInput(writeSample(t), "early")
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStopEarly, in.PaymentPlan)
	assert.Equal(t, 50, in.StopAge)
}
