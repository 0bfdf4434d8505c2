package main

import (
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/pensioncalc/internal/config"
)

var policyCmd = &cobra.Command{
	Use:   "policy [input-file]",
	Short: "Print the effective policy as YAML",
	Long: `Print the regulatory constants a projection would use: the built-in
policy, overlaid by --policy, PENSIONCALC_POLICY or the input file's policy
entry, with any --compounding override applied.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, file, err := loadInput(optionalArg(args), "")
		if err != nil {
			return err
		}
		e, err := newEnv(cmd, file.Policy)
		if err != nil {
			return err
		}
		data, err := config.MarshalPolicy(e.engine.Policy)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(policyCmd)
}
