package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/pensioncalc/internal/compare"
	"github.com/rgehrsitz/pensioncalc/internal/transform"
)

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare the current plan against alternative strategies",
	Long: `Compare the base input against built-in templates and custom transforms.

Examples:
  pensioncalc compare worker.yaml --with stop_at_50,optimistic
  pensioncalc compare worker.yaml --transform set_base:amount=12000 --transform fixed_base
  pensioncalc compare worker.yaml --with pessimistic --format csv
  pensioncalc compare --list-templates
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := optionalArg(args)
		scenario, _ := cmd.Flags().GetString("scenario")
		in, file, err := loadInput(path, scenario)
		if err != nil {
			return err
		}

		if list, _ := cmd.Flags().GetBool("list-templates"); list {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates(in.CurrentAge)))
			return nil
		}

		templatesStr, _ := cmd.Flags().GetString("with")
		transforms, _ := cmd.Flags().GetStringArray("transform")
		templates := transform.ParseTemplateList(templatesStr)
		if len(templates) == 0 && len(transforms) == 0 {
			return fmt.Errorf("--with or --transform is required (use --list-templates to see templates)")
		}

		e, err := newEnv(cmd, file.Policy)
		if err != nil {
			return err
		}
		defer func() { _ = e.logger.Sync() }()

		baseName, _ := cmd.Flags().GetString("base")
		if baseName == "" {
			baseName = file.Name
		}

		ce := compare.NewCompareEngine(e.engine)
		set, err := ce.Compare(cmd.Context(), in, compare.CompareOptions{
			BaseScenarioName: baseName,
			Templates:        templates,
			Transforms:       transforms,
			ConfigPath:       path,
		})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		for _, s := range set.Skipped {
			e.logger.Warnf("skipped %s: %s", s.ScenarioName, s.Reason)
		}

		var out string
		switch strings.ToLower(e.settings.Format) {
		case "csv":
			out, err = (&compare.CSVFormatter{}).Format(set)
		case "json":
			out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
		case "compact":
			out = (&compare.TableFormatter{}).FormatCompact(set) + "\n"
		case "table", "console":
			out = (&compare.TableFormatter{}).Format(set)
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", e.settings.Format)
		}
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	compareCmd.Flags().String("base", "", "Label for the base scenario (defaults to the input file's name)")
	compareCmd.Flags().String("scenario", "", "Use a named scenario from the input file as the base")
	compareCmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Transform spec for a custom alternative, e.g. stop_at:age=50 (repeatable)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List all available scenario templates")

	rootCmd.AddCommand(compareCmd)
}
