// =============================================================================
// nodeidgen - Validation Rules
// =============================================================================
//
// This module holds the checks applied to node id table rows and the error
// types they report:
//   - Row shape: every row needs at least a name and a value field
//   - Value format (strict mode only): the value must fit the uint32_t
//     underlying type of the generated enum
//
// ERROR HANDLING:
//   - The generator stops at the first error
//   - The validate command collects every error into a Report
//   - Each error carries the source line for troubleshooting
//
// Identifier uniqueness is not checked: duplicate names and values pass
// through to the output unchanged.
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/nodeidgen/internal/types"
)

// MinFields is the number of fields a row must have.
const MinFields = 2

// =============================================================================
// ERROR TYPES
// =============================================================================

// MalformedRowError reports a row with fewer than MinFields fields.
type MalformedRowError struct {
	// Line is the 1-based source line of the row.
	Line int

	// Fields holds the fields that were present.
	Fields []string
}

// Error implements the error interface.
func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d: malformed row %q: expected at least %d fields, got %d",
		e.Line,
		strings.Join(e.Fields, ","),
		MinFields,
		len(e.Fields),
	)
}

// MalformedValueError reports a value that is not an unsigned 32-bit
// decimal integer. Only returned in strict mode.
type MalformedValueError struct {
	Line  int
	Name  string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("line %d: invalid value %q for %s: %v", e.Line, e.Value, e.Name, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *MalformedValueError) Unwrap() error {
	return e.Err
}

// =============================================================================
// CHECKS
// =============================================================================

// CheckRecord turns the raw fields of one table row into an IdentifierRow.
//
// PARAMETERS:
//   - fields: the fields of the row, in order.
//   - line: the 1-based source line, used in errors.
//
// RETURNS:
//   - The row built from the first two fields. Extra fields are ignored.
//   - A *MalformedRowError if fewer than two fields are present.
func CheckRecord(fields []string, line int) (types.IdentifierRow, error) {
	if len(fields) < MinFields {
		return types.IdentifierRow{}, &MalformedRowError{
			Line:   line,
			Fields: append([]string(nil), fields...),
		}
	}

	return types.IdentifierRow{
		Name:  fields[0],
		Value: fields[1],
		Line:  line,
	}, nil
}

// CheckValue verifies that the row value is a decimal literal that fits the
// uint32_t underlying type of the ObjectID enum.
func CheckValue(row types.IdentifierRow) error {
	if _, err := strconv.ParseUint(row.Value, 10, 32); err != nil {
		var cause error = err
		if numErr, ok := err.(*strconv.NumError); ok {
			cause = numErr.Err
		}
		return &MalformedValueError{
			Line:  row.Line,
			Name:  row.Name,
			Value: row.Value,
			Err:   cause,
		}
	}
	return nil
}

// =============================================================================
// VALIDATION REPORT
// =============================================================================

// Report collects the outcome of checking a whole table.
type Report struct {
	// Source is the path of the checked table.
	Source string

	// Rows is the number of well-formed rows.
	Rows int

	// Errors holds every problem found, in file order.
	Errors []error
}

// Valid reports whether no problems were found.
func (r *Report) Valid() bool {
	return len(r.Errors) == 0
}

// Add records one row-level outcome. A nil error counts the row as valid.
func (r *Report) Add(err error) {
	if err != nil {
		r.Errors = append(r.Errors, err)
		return
	}
	r.Rows++
}

// FormatErrors renders the report errors one per line for terminal output.
func (r *Report) FormatErrors() string {
	if r.Valid() {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d problem(s)\n", r.Source, len(r.Errors))
	for _, err := range r.Errors {
		sb.WriteString("  ")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}
