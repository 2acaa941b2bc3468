// =============================================================================
// nodeidgen - XLSX Table Reader
// =============================================================================
//
// This module reads the node id table from an Excel workbook, for teams that
// maintain the identifier list in a spreadsheet instead of NodeIds.csv.
//
// WORKBOOK LAYOUT:
//   | A (Name)       | B (Value) | C... (ignored) |
//   |----------------|-----------|----------------|
//   | RootFolder     | 84        |                |
//   | ObjectsFolder  | 85        |                |
//
//   - No header row is assumed or skipped
//   - The first sheet is used unless a sheet name is configured
//   - Empty rows are skipped, like blank lines in the CSV reader
//   - Cell text is taken as displayed, verbatim
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/nodeidgen/internal/types"
	"github.com/ginjaninja78/nodeidgen/internal/validation"
)

// Settings controls which sheet is read.
type Settings struct {
	// Sheet is the worksheet holding the table. Empty selects the first sheet.
	Sheet string `yaml:"sheet"`
}

// TableReader streams identifier rows from a worksheet.
type TableReader struct {
	file        *os.File
	book        *excelize.File
	rows        *excelize.Rows
	rowNumber   int
	current     types.IdentifierRow
	err         error
	onMalformed func(error)
}

// Open opens a workbook and positions the reader before the first row of
// the selected sheet. The caller must Close the reader.
//
// The error returned when the file itself cannot be opened is the os error,
// unwrapped, so callers can tell a missing file from a broken workbook.
func Open(path string, settings Settings) (*TableReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	reader, err := newTableReader(file, settings)
	if err != nil {
		file.Close()
		return nil, err
	}
	reader.file = file

	return reader, nil
}

// NewTableReader reads a workbook from r.
func NewTableReader(r io.Reader, settings Settings) (*TableReader, error) {
	return newTableReader(r, settings)
}

func newTableReader(r io.Reader, settings Settings) (*TableReader, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	sheet := settings.Sheet
	if sheet == "" {
		sheet = book.GetSheetName(0)
	}
	if sheet == "" {
		book.Close()
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := book.Rows(sheet)
	if err != nil {
		book.Close()
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return &TableReader{book: book, rows: rows}, nil
}

// OnMalformed installs a handler for rows with fewer than two cells. With a
// handler installed such rows are reported and skipped.
func (r *TableReader) OnMalformed(fn func(error)) {
	r.onMalformed = fn
}

// Next advances to the next non-empty row.
func (r *TableReader) Next() bool {
	if r.err != nil {
		return false
	}

	for r.rows.Next() {
		r.rowNumber++

		cells, err := r.rows.Columns()
		if err != nil {
			r.err = fmt.Errorf("failed to read row %d: %w", r.rowNumber, err)
			return false
		}
		if isRowEmpty(cells) {
			continue
		}

		row, err := validation.CheckRecord(cells, r.rowNumber)
		if err != nil {
			if r.onMalformed != nil {
				r.onMalformed(err)
				continue
			}
			r.err = err
			return false
		}

		r.current = row
		return true
	}

	if err := r.rows.Error(); err != nil {
		r.err = fmt.Errorf("failed to read rows: %w", err)
	}
	return false
}

// Row returns the current row.
func (r *TableReader) Row() types.IdentifierRow {
	return r.current
}

// Err returns the error that stopped iteration, if any.
func (r *TableReader) Err() error {
	return r.err
}

// Close releases the row iterator, the workbook and the file.
func (r *TableReader) Close() error {
	var firstErr error
	if err := r.rows.Close(); err != nil {
		firstErr = err
	}
	if err := r.book.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if r.file != nil {
		if err := r.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(cells []string) bool {
	for _, cell := range cells {
		if cell != "" {
			return false
		}
	}
	return true
}
