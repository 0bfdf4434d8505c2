package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/pensioncalc/internal/calculation"
	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/rgehrsitz/pensioncalc/internal/output"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [input-file]",
	Short: "Measure how the pension reacts to changes in one or more parameters",
	Long: `Sweep parameters across a range and report the pension at each value
relative to the base case.

Examples:
  # Built-in range
  pensioncalc sensitivity worker.yaml --parameter interest_rate

  # Custom range and steps
  pensioncalc sensitivity worker.yaml --parameter interest_rate:0.01-0.05:5 --parameter stop_age:40-60:5

  # Every built-in parameter
  pensioncalc sensitivity worker.yaml --parameter-set common --format csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSensitivityAnalysis,
}

var (
	sensitivityParameter    []string
	sensitivityParameterSet string
)

func init() {
	sensitivityCmd.Flags().StringArrayVar(&sensitivityParameter, "parameter", nil, "Parameter to analyze (name or name:min-max:steps)")
	sensitivityCmd.Flags().StringVar(&sensitivityParameterSet, "parameter-set", "", "Use a predefined parameter set (common, rates)")
	sensitivityCmd.Flags().String("scenario", "", "Use a named scenario from the input file as the base")
	sensitivityCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")

	rootCmd.AddCommand(sensitivityCmd)
}

func runSensitivityAnalysis(cmd *cobra.Command, args []string) error {
	scenario, _ := cmd.Flags().GetString("scenario")
	in, file, err := loadInput(optionalArg(args), scenario)
	if err != nil {
		return err
	}

	var parameters []domain.SensitivityParameter
	switch {
	case sensitivityParameterSet != "":
		parameters, err = predefinedParameterSet(sensitivityParameterSet)
	case len(sensitivityParameter) > 0:
		parameters, err = parseParameters(sensitivityParameter)
	default:
		err = fmt.Errorf("must specify either --parameter or --parameter-set")
	}
	if err != nil {
		return err
	}

	e, err := newEnv(cmd, file.Policy)
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	formatter, err := output.GetSensitivityFormatter(e.settings.Format)
	if err != nil {
		return err
	}

	analyzer := calculation.NewSensitivityAnalyzer(e.engine)
	var analysis *domain.ParameterSensitivityAnalysis
	if len(parameters) == 1 {
		analysis, err = analyzer.AnalyzeSingleParameter(in, parameters[0])
	} else {
		analysis, err = analyzer.AnalyzeMultipleParameters(in, parameters)
	}
	if err != nil {
		return fmt.Errorf("sensitivity analysis failed: %w", err)
	}

	data, err := formatter.FormatSensitivityAnalysis(analysis)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func predefinedParameterSet(setName string) ([]domain.SensitivityParameter, error) {
	switch setName {
	case "common":
		common := domain.CommonSensitivityParameters()
		names := make([]string, 0, len(common))
		for name := range common {
			names = append(names, name)
		}
		sort.Strings(names)
		params := make([]domain.SensitivityParameter, 0, len(names))
		for _, name := range names {
			params = append(params, common[name])
		}
		return params, nil
	case "rates":
		return []domain.SensitivityParameter{
			domain.InterestRateParam,
			domain.SalaryGrowthParam,
			domain.SocAvgGrowthParam,
		}, nil
	default:
		return nil, fmt.Errorf("unknown parameter set: %s (valid: common, rates)", setName)
	}
}

func parseParameters(specs []string) ([]domain.SensitivityParameter, error) {
	params := make([]domain.SensitivityParameter, 0, len(specs))
	for _, spec := range specs {
		p, err := parseParameterString(spec)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", spec, err)
		}
		params = append(params, p)
	}
	return params, nil
}

// parseParameterString reads "name" or "name:min-max:steps". The name must be
// one of the built-in parameters; a range and step count override its
// defaults.
func parseParameterString(spec string) (domain.SensitivityParameter, error) {
	parts := strings.Split(spec, ":")
	param, ok := domain.CommonSensitivityParameters()[parts[0]]
	if !ok {
		return domain.SensitivityParameter{}, fmt.Errorf("unknown parameter %s", parts[0])
	}
	switch len(parts) {
	case 1:
		return param, nil
	case 3:
	default:
		return domain.SensitivityParameter{}, fmt.Errorf("invalid parameter format (expected name or name:min-max:steps)")
	}

	minStr, maxStr, found := strings.Cut(parts[1], "-")
	if !found {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid range format: %s (expected min-max)", parts[1])
	}
	minValue, err := decimal.NewFromString(strings.TrimSpace(minStr))
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid min value: %w", err)
	}
	maxValue, err := decimal.NewFromString(strings.TrimSpace(maxStr))
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid max value: %w", err)
	}
	if minValue.GreaterThan(maxValue) {
		return domain.SensitivityParameter{}, fmt.Errorf("min %s is greater than max %s", minValue, maxValue)
	}
	steps, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || steps < 1 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid steps value: %s", parts[2])
	}

	param.MinValue = minValue
	param.MaxValue = maxValue
	param.Steps = steps
	return param, nil
}
