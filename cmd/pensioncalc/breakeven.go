package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/pensioncalc/internal/breakeven"
)

var breakEvenCmd = &cobra.Command{
	Use:   "break-even [input-file]",
	Short: "Find the stop age or contribution base that reaches a target",
	Long: `Search the contribution plan for the earliest stop age or the lowest
contribution base that reaches a target pension or replacement rate, or for
the stop age giving the highest pension or best value.

Examples:
  pensioncalc break-even worker.yaml --target-pension 12000
  pensioncalc break-even worker.yaml --target-replacement 0.6 --optimize stop_age
  pensioncalc break-even worker.yaml --goal maximize_value --min-stop-age 45
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBreakEven,
}

func runBreakEven(cmd *cobra.Command, args []string) error {
	scenario, _ := cmd.Flags().GetString("scenario")
	in, file, err := loadInput(optionalArg(args), scenario)
	if err != nil {
		return err
	}

	constraints, goal, err := breakEvenConstraints(cmd)
	if err != nil {
		return err
	}
	target := breakeven.OptimizationTarget(mustString(cmd, "optimize"))

	e, err := newEnv(cmd, file.Policy)
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	solver := breakeven.NewDefaultSolver(e.engine)
	format := strings.ToLower(e.settings.Format)
	if format != "json" && format != "table" && format != "console" {
		return fmt.Errorf("unknown output format: %s (valid: table, json)", e.settings.Format)
	}

	if target == breakeven.OptimizeAll {
		goals := []breakeven.OptimizationGoal{goal}
		if !goal.IsMatch() {
			goals = []breakeven.OptimizationGoal{breakeven.GoalMaximizePension, breakeven.GoalMaximizeValue}
		}
		result, err := solver.OptimizeMultiDimensional(cmd.Context(), in, constraints, goals)
		if err != nil {
			return err
		}
		var out string
		if format == "json" {
			out, err = (&breakeven.JSONFormatter{}).FormatMultiDimensional(result)
			if err != nil {
				return err
			}
		} else {
			out = (&breakeven.TableFormatter{}).FormatMultiDimensional(result)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
		Base:        in,
		Target:      target,
		Goal:        goal,
		Constraints: constraints,
	})
	if err != nil {
		return err
	}
	var out string
	if format == "json" {
		out, err = (&breakeven.JSONFormatter{}).Format(result)
		if err != nil {
			return err
		}
	} else {
		out = (&breakeven.TableFormatter{}).Format(result)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// breakEvenConstraints turns the flags into solver constraints and picks the
// goal: a target flag implies a match goal, otherwise --goal applies
func breakEvenConstraints(cmd *cobra.Command) (breakeven.Constraints, breakeven.OptimizationGoal, error) {
	var c breakeven.Constraints
	goal := breakeven.OptimizationGoal(mustString(cmd, "goal"))

	decFlag := func(name string) (*decimal.Decimal, error) {
		s := mustString(cmd, name)
		if s == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("--%s: invalid number %q", name, s)
		}
		return &d, nil
	}
	intFlag := func(name string) *int {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetInt(name)
		return &v
	}

	var err error
	if c.TargetPension, err = decFlag("target-pension"); err != nil {
		return c, goal, err
	}
	if c.TargetReplacementRate, err = decFlag("target-replacement"); err != nil {
		return c, goal, err
	}
	if c.MinBase, err = decFlag("min-base"); err != nil {
		return c, goal, err
	}
	if c.MaxBase, err = decFlag("max-base"); err != nil {
		return c, goal, err
	}
	c.MinStopAge = intFlag("min-stop-age")
	c.MaxStopAge = intFlag("max-stop-age")

	switch {
	case c.TargetPension != nil && c.TargetReplacementRate != nil:
		return c, goal, fmt.Errorf("use only one of --target-pension and --target-replacement")
	case c.TargetPension != nil:
		goal = breakeven.GoalMatchPension
	case c.TargetReplacementRate != nil:
		goal = breakeven.GoalMatchReplacement
	}

	switch goal {
	case breakeven.GoalMatchPension, breakeven.GoalMatchReplacement,
		breakeven.GoalMaximizePension, breakeven.GoalMaximizeValue:
	default:
		return c, goal, fmt.Errorf("unknown goal: %s", goal)
	}
	return c, goal, c.Validate()
}

func mustString(cmd *cobra.Command, name string) string {
	s, _ := cmd.Flags().GetString(name)
	return strings.TrimSpace(s)
}

func init() {
	f := breakEvenCmd.Flags()
	f.String("scenario", "", "Use a named scenario from the input file as the base")
	f.String("target-pension", "", "Monthly pension to reach")
	f.String("target-replacement", "", "Replacement rate to reach, as a fraction (0.6 for 60%)")
	f.String("goal", string(breakeven.GoalMaximizePension), "Goal when no target is given (maximize_pension, maximize_value)")
	f.String("optimize", string(breakeven.OptimizeAll), "What to vary (stop_age, salary_base, all)")
	f.Int("min-stop-age", 0, "Earliest stop age to consider")
	f.Int("max-stop-age", 0, "Latest stop age to consider")
	f.String("min-base", "", "Lowest monthly contribution base to consider")
	f.String("max-base", "", "Highest monthly contribution base to consider")
	f.StringP("format", "f", "table", "Output format (table, json)")

	rootCmd.AddCommand(breakEvenCmd)
}
