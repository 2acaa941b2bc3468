// =============================================================================
// nodeidgen - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks the node id table
// without generating anything. Every problem is listed, not just the first.
//
// COMMAND USAGE:
//   nodeidgen validate [--input NodeIds.csv] [--strict-values]
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/nodeidgen/internal/config"
	"github.com/ginjaninja78/nodeidgen/internal/generator"
	"github.com/ginjaninja78/nodeidgen/internal/logger"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the node id table without generating output",
	Long: `The validate command reads the whole node id table and reports every row
with fewer than two fields. With --strict-values it also reports values that
are not unsigned 32-bit integers. It exits non-zero if any problem is found.`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(appConfig, cmd.OutOrStdout())
	},
}

// init registers the validate command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("input", "i", "", "Node id table (default NodeIds.csv)")
	validateCmd.Flags().Bool("strict-values", false, "Also check that values are unsigned 32-bit integers")
}

// runValidate checks the table described by cfg and prints a summary to out.
func runValidate(cfg *config.Config, out io.Writer) error {
	log := logger.Log

	g, err := generator.New(generator.Options{
		Target:       cfg.Target,
		StrictValues: cfg.StrictValues,
		CSVSettings:  cfg.CSVSettings,
		XLSXSettings: cfg.XLSXSettings,
		Logger:       &log,
	})
	if err != nil {
		return err
	}

	report, err := g.Validate(cfg.InputFile)
	if err != nil {
		return err
	}

	if !report.Valid() {
		fmt.Fprint(out, report.FormatErrors())
		return fmt.Errorf("%s has %d problem(s)", cfg.InputFile, len(report.Errors))
	}

	fmt.Fprintf(out, "%s: %d row(s) OK\n", cfg.InputFile, report.Rows)
	return nil
}
