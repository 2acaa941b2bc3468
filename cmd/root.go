// =============================================================================
// nodeidgen - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (nodeidgen)
//   ├── generateCmd (nodeidgen generate)
//   ├── validateCmd (nodeidgen validate)
//   └── versionCmd  (nodeidgen version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file and env/flag overrides
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/nodeidgen/internal/config"
	"github.com/ginjaninja78/nodeidgen/internal/logger"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// Empty means nodeidgen.yaml in the working directory, if present.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig is the resolved configuration of the running command.
var appConfig *config.Config

// flagKeys maps command flag names to configuration keys. Flags that a
// command defines and the user sets override the configuration file.
var flagKeys = map[string]string{
	"input":         config.KeyInputFile,
	"output":        config.KeyOutputFile,
	"target":        config.KeyTarget,
	"strict-values": config.KeyStrictValues,
	"log-file":      config.KeyLogFile,
	"log-level":     config.KeyLogLevel,
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "nodeidgen",
	Short: "Generate the OPC UA ObjectID enumeration from the node id table",
	Long: `nodeidgen reads the table of well-known OPC UA node identifiers
(NodeIds.csv: one "name,value" row per identifier) and emits the C++
ObjectID enumeration used by the protocol sources.

Example Usage:
  nodeidgen generate > object_ids.h            # NodeIds.csv to stdout
  nodeidgen generate --output object_ids.h     # Write the header in place
  nodeidgen validate --strict-values           # Check the table only`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},

	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logger.CloseFileWriter()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the command tree. It is called by main.main() and exits with
// status 1 on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.CloseFileWriter()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is ./"+config.DefaultFile+" if present)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this rotating file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// initConfig resolves the configuration for cmd and initializes logging.
func initConfig(cmd *cobra.Command) error {
	cfg, used, err := config.Resolve(cfgFile)
	if err != nil {
		return err
	}

	v := config.NewViper()
	for name, key := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", name, err)
			}
		}
	}

	if err := cfg.ApplyOverrides(v); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Verbose: verbose,
		File:    cfg.LogFile,
	}); err != nil {
		return err
	}

	if used != "" {
		logger.Log.Debug().Str("config", used).Msg("configuration loaded")
	}

	appConfig = cfg
	return nil
}
