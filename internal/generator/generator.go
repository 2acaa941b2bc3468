// =============================================================================
// nodeidgen - Generator
// =============================================================================
//
// This module orchestrates one generation run: it reads the node id table
// and renders the ObjectID enumeration.
//
// PROCESSING STEPS:
//   1. Open the table (CSV or XLSX, chosen by file extension)
//   2. Write the static preamble
//   3. Stream rows in file order, one entry line per row
//   4. Write the static postamble with its fixed entries
//   5. Hand the finished document to the output writer
//
// The document is rendered into memory and only copied to the output once
// every row has been read, so a failed run never leaves partial output.
//
// =============================================================================

package generator

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/nodeidgen/internal/csvparser"
	"github.com/ginjaninja78/nodeidgen/internal/enumwriter"
	"github.com/ginjaninja78/nodeidgen/internal/types"
	"github.com/ginjaninja78/nodeidgen/internal/validation"
	"github.com/ginjaninja78/nodeidgen/internal/xlsxparser"
	"github.com/ginjaninja78/nodeidgen/pkg/utils"
)

// =============================================================================
// ERRORS
// =============================================================================

// MissingFileError reports an input table that does not exist or cannot be
// opened.
type MissingFileError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *MissingFileError) Error() string {
	return fmt.Sprintf("cannot open input table %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying os error.
func (e *MissingFileError) Unwrap() error {
	return e.Err
}

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options configures a Generator.
type Options struct {
	// Target names the registered output syntax. Default: "cpp"
	Target string

	// StrictValues rejects values that are not unsigned 32-bit integers.
	StrictValues bool

	// CSVSettings is used for delimited text tables.
	CSVSettings csvparser.Settings

	// XLSXSettings is used for workbook tables.
	XLSXSettings xlsxparser.Settings

	// Logger receives run diagnostics. The zero value discards them.
	Logger *zerolog.Logger
}

// Result describes a completed run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Source is the input table path, empty for GenerateFrom.
	Source string

	// Rows is the number of table rows rendered.
	Rows int

	// Bytes is the size of the generated document.
	Bytes int64

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generator renders node id tables with a fixed target syntax.
type Generator struct {
	syntax enumwriter.Syntax
	opts   Options
	log    zerolog.Logger
}

// New creates a Generator. It fails with *enumwriter.UnknownSyntaxError if
// the target is not registered.
func New(opts Options) (*Generator, error) {
	if opts.Target == "" {
		opts.Target = enumwriter.CPP
	}
	if opts.CSVSettings == (csvparser.Settings{}) {
		opts.CSVSettings = csvparser.DefaultSettings()
	}

	syntax, err := enumwriter.Lookup(opts.Target)
	if err != nil {
		return nil, err
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &Generator{
		syntax: syntax,
		opts:   opts,
		log:    log,
	}, nil
}

// Generate reads the table at inputPath with default options and writes the
// generated enumeration to w.
func Generate(inputPath string, w io.Writer) error {
	g, err := New(Options{})
	if err != nil {
		return err
	}
	_, err = g.Generate(inputPath, w)
	return err
}

// Generate reads the table at inputPath and writes the generated
// enumeration to w.
//
// RETURNS:
//   - The run result.
//   - *MissingFileError if the table cannot be opened; nothing is written.
//   - *validation.MalformedRowError for a row with fewer than two fields.
//   - *validation.MalformedValueError in strict mode for a bad value.
//   - A wrapped error for unreadable table contents or a failing writer.
func (g *Generator) Generate(inputPath string, w io.Writer) (*Result, error) {
	reader, err := g.Open(inputPath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return g.run(inputPath, reader, w)
}

// GenerateFrom renders rows from an already opened reader. The reader is not
// closed.
func (g *Generator) GenerateFrom(reader types.RowReader, w io.Writer) (*Result, error) {
	return g.run("", reader, w)
}

// Open opens the table at path with the reader matching its extension.
func (g *Generator) Open(path string) (types.RowReader, error) {
	if err := checkNotDirectory(path); err != nil {
		return nil, err
	}

	if utils.IsWorkbook(path) {
		reader, err := xlsxparser.Open(path, g.opts.XLSXSettings)
		if err != nil {
			return nil, classifyOpenError(path, err)
		}
		return reader, nil
	}

	reader, err := csvparser.Open(path, g.opts.CSVSettings)
	if err != nil {
		return nil, classifyOpenError(path, err)
	}
	return reader, nil
}

// run executes the rendering steps.
func (g *Generator) run(source string, reader types.RowReader, w io.Writer) (*Result, error) {
	startTime := time.Now()
	result := &Result{
		RunID:  utils.NewRunID(),
		Source: source,
	}

	log := g.log.With().
		Str("run_id", result.RunID).
		Str("input", source).
		Str("target", g.syntax.Name).
		Logger()

	log.Debug().Bool("strict_values", g.opts.StrictValues).Msg("generation started")

	// =========================================================================
	// STEP 1: PREAMBLE
	// =========================================================================

	var doc bytes.Buffer
	ew := enumwriter.NewWriter(&doc, g.syntax)

	if err := ew.WriteHeader(); err != nil {
		return nil, fmt.Errorf("failed to render preamble: %w", err)
	}

	// =========================================================================
	// STEP 2: TABLE ROWS
	// =========================================================================

	for reader.Next() {
		row := reader.Row()

		if g.opts.StrictValues {
			if err := validation.CheckValue(row); err != nil {
				log.Error().Err(err).Int("line", row.Line).Msg("invalid value")
				return nil, err
			}
		}

		if err := ew.WriteEntry(row); err != nil {
			return nil, fmt.Errorf("failed to render line %d: %w", row.Line, err)
		}
		result.Rows++
	}

	if err := reader.Err(); err != nil {
		log.Error().Err(err).Int("rows", result.Rows).Msg("failed to read table")
		return nil, err
	}

	// =========================================================================
	// STEP 3: POSTAMBLE
	// =========================================================================

	if err := ew.WriteFooter(); err != nil {
		return nil, fmt.Errorf("failed to render postamble: %w", err)
	}

	// =========================================================================
	// STEP 4: OUTPUT
	// =========================================================================

	n, err := doc.WriteTo(w)
	result.Bytes = n
	if err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	result.Elapsed = time.Since(startTime)

	log.Info().
		Int("rows", result.Rows).
		Int64("bytes", result.Bytes).
		Dur("elapsed", result.Elapsed).
		Msg("enumeration generated")

	return result, nil
}
