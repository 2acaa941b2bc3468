// =============================================================================
// nodeidgen - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which converts the node id table
// into the ObjectID enumeration.
//
// COMMAND USAGE:
//   nodeidgen generate [flags]
//
// FLAGS:
//   --input          : Node id table (default NodeIds.csv; .xlsx for workbooks)
//   --output         : Write the header to this file instead of stdout
//   --target         : Output syntax (default cpp)
//   --strict-values  : Reject values that are not unsigned 32-bit integers
//
// With no flags and no configuration file it reads ./NodeIds.csv and prints
// the header on stdout, ready for redirection by the build.
//
// =============================================================================

package cmd

import (
	"bytes"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/nodeidgen/internal/config"
	"github.com/ginjaninja78/nodeidgen/internal/generator"
	"github.com/ginjaninja78/nodeidgen/internal/logger"
	"github.com/ginjaninja78/nodeidgen/pkg/utils"
)

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the ObjectID enumeration from the node id table",
	Long: `The generate command reads the node id table row by row and emits one
enum entry per row, in file order, wrapped in the fixed header and footer of
the target syntax.

Nothing is written if any row is malformed or the table cannot be read. When
--output is given the file is replaced atomically.`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(appConfig, cmd.OutOrStdout())
	},
}

// init registers the generate command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("input", "i", "", "Node id table (default NodeIds.csv)")
	generateCmd.Flags().StringP("output", "o", "", "Write the generated header to this file (default stdout)")
	generateCmd.Flags().String("target", "", "Output syntax (default cpp)")
	generateCmd.Flags().Bool("strict-values", false, "Reject values that are not unsigned 32-bit integers")
}

// runGenerate renders the enumeration described by cfg. Output goes to
// stdout unless cfg names an output file.
func runGenerate(cfg *config.Config, stdout io.Writer) error {
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

	if cfg.OutputFile == "" {
		_, err := g.Generate(cfg.InputFile, stdout)
		return err
	}

	var buf bytes.Buffer
	if _, err := g.Generate(cfg.InputFile, &buf); err != nil {
		return err
	}

	if err := utils.WriteFileAtomic(cfg.OutputFile, buf.Bytes(), 0644); err != nil {
		return err
	}

	log.Info().Str("output", cfg.OutputFile).Msg("header written")
	return nil
}
