// Package logger configures the process-wide zerolog logger.
//
// Console output always goes to stderr: stdout carries the generated source
// and must stay clean for redirection into a header file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Log is the global logger instance. It discards everything until Init
	// is called.
	Log = zerolog.Nop()

	// fileWriter is the optional rotating file output.
	fileWriter *lumberjack.Logger
)

// Options holds the logging configuration.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// Verbose forces debug level regardless of Level.
	Verbose bool

	// File, when set, receives JSON logs in addition to the console.
	File string

	// MaxSizeMB is the rotation size of File. Defaults to 10.
	MaxSizeMB int

	// MaxBackups is the number of rotated files kept. Defaults to 3.
	MaxBackups int

	// Console overrides the console destination. Defaults to os.Stderr.
	Console io.Writer

	// NoColor disables ANSI colors on the console.
	NoColor bool
}

// ParseLevel maps a configured level name to a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", name)
}

// Init replaces the global logger according to opts.
func Init(opts Options) error {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.RFC3339,
		NoColor:    opts.NoColor,
	}

	if err := CloseFileWriter(); err != nil {
		return fmt.Errorf("failed to close previous log file: %w", err)
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}

		fileWriter = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			LocalTime:  true,
		}

		// Console uses human-readable format, file uses JSON.
		output = io.MultiWriter(output, fileWriter)
	}

	Log = zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return nil
}

// CloseFileWriter closes the file writer if it exists.
func CloseFileWriter() error {
	if fileWriter != nil {
		err := fileWriter.Close()
		fileWriter = nil
		return err
	}
	return nil
}

// GetLogFilePath returns the path to the current log file, or empty string
// if file logging is disabled.
func GetLogFilePath() string {
	if fileWriter != nil {
		return fileWriter.Filename
	}
	return ""
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
