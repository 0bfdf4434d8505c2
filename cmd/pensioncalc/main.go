package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/pensioncalc/internal/calculation"
	"github.com/rgehrsitz/pensioncalc/internal/config"
	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/rgehrsitz/pensioncalc/internal/logging"
	"github.com/rgehrsitz/pensioncalc/internal/transform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pensioncalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "pensioncalc",
	Short: "Pension projection calculator CLI",
	Long: `Projects a worker's monthly pension at statutory retirement age from
their contribution history, and compares, optimizes and stress-tests the
contribution plan.`,
	SilenceUsage: true,
}

// env is what every command needs after flags and settings are resolved
type env struct {
	settings *config.Settings
	logger   *logging.Logger
	engine   *calculation.Engine
}

// newEnv resolves settings and builds the logger and engine. filePolicy is
// the policy path named inside an input file, used when no policy is set on
// the command line or in the environment.
func newEnv(cmd *cobra.Command, filePolicy string) (*env, error) {
	settingsPath, _ := cmd.Flags().GetString("settings")
	settings, err := config.LoadSettings(settingsPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && settings.LogLevel == "warn" {
		settings.LogLevel = "info"
	}

	logger, err := logging.NewLogger(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return nil, err
	}

	policyPath := settings.Policy
	if policyPath == "" {
		policyPath = filePolicy
	}
	policy, err := config.LoadPolicy(policyPath)
	if err != nil {
		return nil, err
	}
	if settings.Compounding != "" {
		method, err := domain.ParseCompoundingMethod(settings.Compounding)
		if err != nil {
			return nil, err
		}
		policy.Compounding = method
	}

	engine, err := calculation.NewEngineWithPolicy(policy)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(logger.Named("engine"))
	engine.Debug = settings.Debug

	return &env{settings: settings, logger: logger, engine: engine}, nil
}

// loadInput reads a scenario file and optionally applies one of its named
// scenarios. An empty path yields the default input.
func loadInput(path, scenario string) (domain.ProjectionInput, *config.ScenarioFile, error) {
	if path == "" {
		if scenario != "" {
			return domain.ProjectionInput{}, nil, fmt.Errorf("--scenario needs an input file")
		}
		in := domain.DefaultProjectionInput()
		return in, &config.ScenarioFile{Name: "default", Input: config.InputSectionFrom(in)}, nil
	}

	parser := config.NewInputParser()
	file, err := parser.LoadFromFile(path)
	if err != nil {
		return domain.ProjectionInput{}, nil, err
	}
	in, err := parser.ToProjectionInput(file.Input)
	if err != nil {
		return domain.ProjectionInput{}, nil, err
	}
	if file.Policy != "" && !filepath.IsAbs(file.Policy) {
		file.Policy = filepath.Join(filepath.Dir(path), file.Policy)
	}
	if scenario == "" {
		return in, file, nil
	}

	for _, entry := range file.Scenarios {
		if entry.Name != scenario {
			continue
		}
		transforms, err := transform.NewTransformRegistry().ParseTransformSpecs(entry.Transforms)
		if err != nil {
			return domain.ProjectionInput{}, nil, fmt.Errorf("scenario %s: %w", scenario, err)
		}
		in, err = transform.ApplyTransforms(in, transforms)
		if err != nil {
			return domain.ProjectionInput{}, nil, fmt.Errorf("scenario %s: %w", scenario, err)
		}
		return in, file, nil
	}
	return domain.ProjectionInput{}, nil, fmt.Errorf("scenario %s not found in %s", scenario, path)
}

func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("settings", "", "Settings file (YAML); PENSIONCALC_* environment variables also apply")
	pf.String("policy", "", "Policy YAML overriding the built-in regulatory constants")
	pf.String("compounding", "", "Override the policy's compounding method (monthly, annual_mid_year)")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.String("log-format", "console", "Log encoding (console, json)")
	pf.BoolP("verbose", "v", false, "Log at info level")
	pf.Bool("debug", false, "Log every projection row")

	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
