// =============================================================================
// nodeidgen - Shared Types
// =============================================================================
//
// This package contains types shared by the table readers, the validation
// rules and the generator, kept here to avoid import cycles.
//
// =============================================================================

package types

// =============================================================================
// IDENTIFIER ROW
// =============================================================================

// IdentifierRow is one row of the node id table.
//
// Name and Value are taken verbatim from the first two fields of the row.
// Value is conventionally a non-negative integer literal but is treated as
// opaque text unless strict value checking is enabled.
type IdentifierRow struct {
	// Name is the enum entry name (first field).
	Name string

	// Value is the enum entry value (second field).
	Value string

	// Line is the 1-based line (CSV) or row (XLSX) the entry came from.
	// Zero for entries that do not come from a table, such as the fixed
	// entries of a target syntax.
	Line int
}

// =============================================================================
// ROW READER
// =============================================================================

// RowReader streams identifier rows from a table source in file order.
//
// USAGE:
//   for reader.Next() {
//       row := reader.Row()
//       // Render the row...
//   }
//   if err := reader.Err(); err != nil {
//       return err
//   }
type RowReader interface {
	// Next advances to the next row. It returns false at the end of the
	// table or on the first error.
	Next() bool

	// Row returns the current row.
	Row() IdentifierRow

	// Err returns the error that stopped iteration, if any.
	Err() error

	// Close releases the underlying source.
	Close() error
}
