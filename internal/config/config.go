// =============================================================================
// nodeidgen - Configuration Module
// =============================================================================
//
// This module loads the generator configuration.
//
// SOURCES (highest precedence first):
//   1. Command flags that were explicitly set
//   2. NODEIDGEN_* environment variables (e.g. NODEIDGEN_INPUT_FILE)
//   3. The YAML configuration file (nodeidgen.yaml or --config)
//   4. Built-in defaults: read NodeIds.csv from the working directory
//      and write to stdout
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/nodeidgen/internal/csvparser"
	"github.com/ginjaninja78/nodeidgen/internal/enumwriter"
	"github.com/ginjaninja78/nodeidgen/internal/logger"
	"github.com/ginjaninja78/nodeidgen/internal/xlsxparser"
)

// DefaultFile is the configuration file picked up from the working
// directory when --config is not given.
const DefaultFile = "nodeidgen.yaml"

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "NODEIDGEN"

// Keys shared by the YAML file, viper and the command flags.
const (
	KeyInputFile    = "input_file"
	KeyOutputFile   = "output_file"
	KeyTarget       = "target"
	KeyStrictValues = "strict_values"
	KeyLogFile      = "log_file"
	KeyLogLevel     = "log_level"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the generator configuration.
type Config struct {
	// InputFile is the node id table. Files ending in .xlsx are read as
	// workbooks, everything else as delimited text.
	// Default: "NodeIds.csv"
	InputFile string `yaml:"input_file"`

	// OutputFile receives the generated header. Empty writes to stdout.
	OutputFile string `yaml:"output_file"`

	// Target names the output syntax.
	// Default: "cpp"
	Target string `yaml:"target"`

	// StrictValues rejects values that are not unsigned 32-bit integers.
	// Default: false (values pass through as opaque text)
	StrictValues bool `yaml:"strict_values"`

	// LogFile, when set, also writes JSON logs to this rotating file.
	LogFile string `yaml:"log_file"`

	// LogLevel controls verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// CSVSettings controls delimited text input.
	CSVSettings csvparser.Settings `yaml:"csv_settings"`

	// XLSXSettings controls workbook input.
	XLSXSettings xlsxparser.Settings `yaml:"xlsx_settings"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - path: The path to the configuration file.
//
// RETURNS:
//   - The configuration with defaults applied.
//   - An error if the file cannot be read, parsed or fails validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Resolve returns the configuration for a run. An explicit path must exist.
// With no path, DefaultFile is used if present and defaults otherwise.
//
// RETURNS:
//   - The configuration.
//   - The path of the file that was loaded, or "" for built-in defaults.
//   - An error if loading fails.
func Resolve(path string) (*Config, string, error) {
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	if _, err := os.Stat(DefaultFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), "", nil
		}
		return nil, "", fmt.Errorf("failed to stat %s: %w", DefaultFile, err)
	}

	cfg, err := Load(DefaultFile)
	return cfg, DefaultFile, err
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputFile == "" {
		cfg.InputFile = "NodeIds.csv"
	}
	if cfg.Target == "" {
		cfg.Target = enumwriter.CPP
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	defaults := csvparser.DefaultSettings()
	if cfg.CSVSettings.Delimiter == "" {
		cfg.CSVSettings.Delimiter = defaults.Delimiter
	}
	if cfg.CSVSettings.Encoding == "" {
		cfg.CSVSettings.Encoding = defaults.Encoding
	}
}

// Validate checks the configuration for values that would fail at run time.
func (c *Config) Validate() error {
	if _, err := enumwriter.Lookup(c.Target); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := c.CSVSettings.Comma(); err != nil {
		return fmt.Errorf("csv_settings: %w", err)
	}
	if _, err := c.CSVSettings.Decoder(); err != nil {
		return fmt.Errorf("csv_settings: %w", err)
	}
	return nil
}

// =============================================================================
// OVERRIDES
// =============================================================================

// NewViper returns a viper instance reading NODEIDGEN_* environment
// variables. Callers bind command flags to it with BindPFlag.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// ApplyOverrides copies every key that is set in v (changed flag or
// environment variable) over the loaded configuration, then revalidates.
func (c *Config) ApplyOverrides(v *viper.Viper) error {
	if v.IsSet(KeyInputFile) {
		c.InputFile = v.GetString(KeyInputFile)
	}
	if v.IsSet(KeyOutputFile) {
		c.OutputFile = v.GetString(KeyOutputFile)
	}
	if v.IsSet(KeyTarget) {
		c.Target = v.GetString(KeyTarget)
	}
	if v.IsSet(KeyStrictValues) {
		c.StrictValues = v.GetBool(KeyStrictValues)
	}
	if v.IsSet(KeyLogFile) {
		c.LogFile = v.GetString(KeyLogFile)
	}
	if v.IsSet(KeyLogLevel) {
		c.LogLevel = v.GetString(KeyLogLevel)
	}

	applyDefaults(c)
	return c.Validate()
}
