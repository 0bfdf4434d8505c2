package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/rgehrsitz/pensioncalc/internal/calculation"
	"github.com/rgehrsitz/pensioncalc/internal/config"
	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/rgehrsitz/pensioncalc/internal/logging"
	"github.com/rgehrsitz/pensioncalc/internal/tui"
)

func main() {
	flags := pflag.NewFlagSet("pensioncalc-tui", pflag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: pensioncalc-tui [flags] [input-file]")
		flags.PrintDefaults()
	}
	settingsPath := flags.String("settings", "", "Settings file (YAML)")
	flags.String("policy", "", "Policy YAML overriding the built-in regulatory constants")
	flags.String("compounding", "", "Override the policy's compounding method (monthly, annual_mid_year)")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	logFile := flags.String("log-file", "", "Write logs to this file; logging is off otherwise")
	_ = flags.Parse(os.Args[1:])

	inputPath := flags.Arg(0)
	if inputPath != "" {
		if _, err := os.Stat(inputPath); os.IsNotExist(err) {
			fmt.Printf("Error: input file not found: %s\n", inputPath)
			os.Exit(1)
		}
	}

	engine, logger, err := newEngine(*settingsPath, *logFile, flags)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewModel(inputPath, engine),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	os.Exit(runProgram(p, logger, os.Stderr))
}

// programRunner is the part of tea.Program main depends on
type programRunner interface {
	Run() (tea.Model, error)
}

// runProgram runs the UI and returns the process exit code. The logger is
// synced before it returns, since os.Exit skips deferred calls in main.
func runProgram(p programRunner, logger *logging.Logger, stderr io.Writer) int {
	defer func() { _ = logger.Sync() }()
	if _, err := p.Run(); err != nil {
		logger.Errorf("tui exited: %v", err)
		fmt.Fprintf(stderr, "Error running TUI: %v\n", err)
		return 1
	}
	return 0
}

// newEngine builds the projection engine from settings. The terminal belongs
// to the UI, so logs only go to a file.
func newEngine(settingsPath, logFile string, flags *pflag.FlagSet) (*calculation.Engine, *logging.Logger, error) {
	settings, err := config.LoadSettings(settingsPath, flags)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.NewNop()
	if logFile != "" {
		logger, err = logging.New(logging.Config{
			Level:       settings.LogLevel,
			Format:      settings.LogFormat,
			OutputPaths: []string{logFile},
		})
		if err != nil {
			return nil, nil, err
		}
	}

	policy, err := config.LoadPolicy(settings.Policy)
	if err != nil {
		return nil, nil, err
	}
	if settings.Compounding != "" {
		method, err := domain.ParseCompoundingMethod(settings.Compounding)
		if err != nil {
			return nil, nil, err
		}
		policy.Compounding = method
	}

	engine, err := calculation.NewEngineWithPolicy(policy)
	if err != nil {
		return nil, nil, err
	}
	engine.SetLogger(logger.Named("engine"))
	return engine, logger, nil
}
