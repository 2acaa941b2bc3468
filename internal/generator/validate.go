package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ginjaninja78/nodeidgen/internal/validation"
)

// errIsDirectory is reported when the input path names a directory.
var errIsDirectory = errors.New("is a directory")

// malformedReporter is implemented by table readers that can report
// malformed rows and keep going.
type malformedReporter interface {
	OnMalformed(fn func(error))
}

// Validate checks the whole table at inputPath without rendering anything.
// Unlike Generate it does not stop at the first bad row: every malformed
// row, and in strict mode every bad value, is collected in the report.
//
// RETURNS:
//   - The report.
//   - *MissingFileError if the table cannot be opened.
//   - A wrapped error if the table contents cannot be read at all.
func (g *Generator) Validate(inputPath string) (*validation.Report, error) {
	reader, err := g.Open(inputPath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	report := &validation.Report{Source: inputPath}

	if mr, ok := reader.(malformedReporter); ok {
		mr.OnMalformed(report.Add)
	}

	for reader.Next() {
		row := reader.Row()
		if g.opts.StrictValues {
			report.Add(validation.CheckValue(row))
			continue
		}
		report.Add(nil)
	}

	if err := reader.Err(); err != nil {
		return report, err
	}

	g.log.Debug().
		Str("input", inputPath).
		Int("rows", report.Rows).
		Int("problems", len(report.Errors)).
		Msg("table validated")

	return report, nil
}

// classifyOpenError turns a failure to open the table into a
// *MissingFileError when the file itself is missing or unreadable. Other
// failures, such as a corrupt workbook, keep their own error.
func classifyOpenError(path string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return &MissingFileError{Path: path, Err: err}
	}
	return fmt.Errorf("failed to open input table %s: %w", path, err)
}

// checkNotDirectory rejects directory paths before a reader is built, since
// opening a directory succeeds and only fails on the first read.
func checkNotDirectory(path string) error {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return &MissingFileError{Path: path, Err: errIsDirectory}
	}
	return nil
}
