// =============================================================================
// nodeidgen - Enum Writer Module
// =============================================================================
//
// This module renders the generated enumeration. The surrounding syntax is a
// Syntax value looked up by target name, so the generator itself never
// hardcodes the language it emits.
//
// DOCUMENT STRUCTURE (cpp target):
//
//   <Banner>                       comment block, DO NOT EDIT notice
//   <Open>                         #pragma once ... enum class ObjectID {
//       Null = 0,                  <Leading> entries
//   <Spacer>
//       RootFolder = 84,           one entry per table row
//       ...
//   <Spacer>
//       EventTypesFolder = 3048,   <Trailing> entries, last without separator
//   <Close>                        };  }
//
// =============================================================================

package enumwriter

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/ginjaninja78/nodeidgen/internal/types"
)

// =============================================================================
// SYNTAX
// =============================================================================

// Syntax describes the wrapper and entry layout of one target language.
type Syntax struct {
	// Name is the registry key, e.g. "cpp".
	Name string

	// Banner is written first: license and generated-file notice.
	Banner string

	// Open is the declaration opener written after the banner.
	Open string

	// Indent prefixes every entry line.
	Indent string

	// Assign sits between entry name and value, e.g. " = ".
	Assign string

	// Separator ends every entry except the final trailing one.
	Separator string

	// Newline terminates every entry line.
	Newline string

	// Leading entries are written right after Open, before any table row.
	Leading []types.IdentifierRow

	// Spacer is written after the leading entries and again before the
	// trailing entries.
	Spacer string

	// Trailing entries are written after the last table row.
	Trailing []types.IdentifierRow

	// Close ends the declaration.
	Close string
}

// UnknownSyntaxError reports a target name with no registered Syntax.
type UnknownSyntaxError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownSyntaxError) Error() string {
	return fmt.Sprintf("unknown target syntax %q (available: %v)", e.Name, Names())
}

// =============================================================================
// REGISTRY
// =============================================================================

var (
	registryMu sync.RWMutex
	registry   = map[string]Syntax{}
)

// Register adds or replaces a target syntax.
func Register(s Syntax) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[s.Name] = s
}

// Lookup returns the syntax registered under name.
func Lookup(name string) (Syntax, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	s, ok := registry[name]
	if !ok {
		return Syntax{}, &UnknownSyntaxError{Name: name}
	}
	return s, nil
}

// Names lists the registered target names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// WRITER
// =============================================================================

// Writer streams one enumeration document onto an io.Writer.
//
// The first write error is kept; later calls become no-ops and the error is
// returned from every subsequent method, so callers may check only the
// result of WriteFooter.
type Writer struct {
	w       io.Writer
	syntax  Syntax
	entries int
	written int64
	err     error
}

// NewWriter returns a Writer rendering syntax onto w.
func NewWriter(w io.Writer, syntax Syntax) *Writer {
	return &Writer{w: w, syntax: syntax}
}

// WriteHeader writes the banner, the opener, the leading entries and the
// spacer that follows them.
func (ew *Writer) WriteHeader() error {
	ew.writeString(ew.syntax.Banner)
	ew.writeString(ew.syntax.Open)
	for _, entry := range ew.syntax.Leading {
		ew.writeEntry(entry, true)
	}
	ew.writeString(ew.syntax.Spacer)
	return ew.err
}

// WriteEntry writes one table row as an enum entry.
func (ew *Writer) WriteEntry(row types.IdentifierRow) error {
	ew.writeEntry(row, true)
	return ew.err
}

// WriteFooter writes the spacer, the trailing entries and the closer.
func (ew *Writer) WriteFooter() error {
	ew.writeString(ew.syntax.Spacer)
	for i, entry := range ew.syntax.Trailing {
		ew.writeEntry(entry, i < len(ew.syntax.Trailing)-1)
	}
	ew.writeString(ew.syntax.Close)
	return ew.err
}

// Entries returns the number of entry lines written, fixed entries included.
func (ew *Writer) Entries() int {
	return ew.entries
}

// Written returns the number of bytes written.
func (ew *Writer) Written() int64 {
	return ew.written
}

func (ew *Writer) writeEntry(row types.IdentifierRow, separated bool) {
	ew.writeString(ew.syntax.Indent)
	ew.writeString(row.Name)
	ew.writeString(ew.syntax.Assign)
	ew.writeString(row.Value)
	if separated {
		ew.writeString(ew.syntax.Separator)
	}
	ew.writeString(ew.syntax.Newline)
	if ew.err == nil {
		ew.entries++
	}
}

func (ew *Writer) writeString(s string) {
	if ew.err != nil || s == "" {
		return
	}
	n, err := io.WriteString(ew.w, s)
	ew.written += int64(n)
	ew.err = err
}
