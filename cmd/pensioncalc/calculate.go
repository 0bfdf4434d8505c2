package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/pensioncalc/internal/output"
)

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Project the monthly pension at retirement",
	Long: `Project the monthly pension for an input file, or for the default input
when no file is given.

Examples:
  pensioncalc calculate worker.yaml
  pensioncalc calculate worker.yaml --scenario early_stop --format json
  pensioncalc calculate worker.yaml --format pdf --output report.pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProjection(cmd, args, "")
	},
}

var tableCmd = &cobra.Command{
	Use:   "table [input-file]",
	Short: "Print the year-by-year projection table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProjection(cmd, args, "console-verbose")
	},
}

// runProjection projects one input and writes it in the requested format.
// forced overrides --format.
func runProjection(cmd *cobra.Command, args []string, forced string) error {
	scenario, _ := cmd.Flags().GetString("scenario")
	in, file, err := loadInput(optionalArg(args), scenario)
	if err != nil {
		return err
	}
	e, err := newEnv(cmd, file.Policy)
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	format := e.settings.Format
	if forced != "" {
		format = forced
	}
	formatter, err := output.GetFormatterByName(format)
	if err != nil {
		return err
	}

	e.logger.Infof("projecting %s", file.Name)
	result, err := e.engine.Project(in)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" && output.IsBinary(format) {
		name, err := output.WriteFormatted(formatter, result, output.Extension(format))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", name)
		return nil
	}

	data, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("%s formatter failed: %w", formatter.Name(), err)
	}
	if outPath != "" {
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outPath)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an input file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, file, err := loadInput(args[0], "")
		if err != nil {
			return err
		}
		e, err := newEnv(cmd, file.Policy)
		if err != nil {
			return err
		}
		if _, err := e.engine.Validate(in); err != nil {
			return err
		}
		for _, s := range file.Scenarios {
			if _, _, err := loadInput(args[0], s.Name); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid\n", args[0])
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{calculateCmd, tableCmd} {
		c.Flags().String("scenario", "", "Apply a named scenario from the input file")
		c.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	}
	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, console-verbose, csv, json, html, pdf)")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(validateCmd)
}
