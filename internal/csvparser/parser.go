// =============================================================================
// nodeidgen - CSV Table Reader
// =============================================================================
//
// This module streams the node id table from a delimited text file. Each
// record is one identifier: the first field is the name, the second the value.
//
// FEATURES:
//   - No header row is assumed or skipped
//   - Fields are taken verbatim (no trimming, no case changes)
//   - Configurable delimiter (comma by default)
//   - Legacy single-byte encodings decoded to UTF-8
//   - Rows are read one at a time; nothing is retained between rows
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/nodeidgen/internal/types"
	"github.com/ginjaninja78/nodeidgen/internal/validation"
)

// =============================================================================
// SETTINGS
// =============================================================================

// Settings controls how the table is read.
type Settings struct {
	// Delimiter separates fields. Accepts a single character or one of the
	// aliases "tab", "pipe", "semicolon". Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding of the input file. Supported: "UTF-8", "ISO-8859-1" (or
	// "latin1"), "Windows-1252". Default: "UTF-8"
	Encoding string `yaml:"encoding"`
}

// DefaultSettings returns the settings for NodeIds.csv: comma separated UTF-8.
func DefaultSettings() Settings {
	return Settings{
		Delimiter: ",",
		Encoding:  "UTF-8",
	}
}

// Comma resolves the delimiter setting to the rune handed to encoding/csv.
func (s Settings) Comma() (rune, error) {
	switch s.Delimiter {
	case "", ",":
		return ',', nil
	case "\\t", "\t", "tab", "TAB":
		return '\t', nil
	case "|", "pipe", "PIPE":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	}

	r, size := utf8.DecodeRuneInString(s.Delimiter)
	if size != len(s.Delimiter) || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter %q must be a single character", s.Delimiter)
	}
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("delimiter %q is not allowed", s.Delimiter)
	}
	return r, nil
}

// Decoder resolves the encoding setting. A nil encoding means the input is
// already UTF-8 and is read as is.
func (s Settings) Decoder() (encoding.Encoding, error) {
	switch strings.ToUpper(strings.TrimSpace(s.Encoding)) {
	case "", "UTF-8", "UTF8":
		return nil, nil
	case "ISO-8859-1", "ISO8859-1", "LATIN1", "LATIN-1":
		return charmap.ISO8859_1, nil
	case "WINDOWS-1252", "CP1252":
		return charmap.Windows1252, nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", s.Encoding)
}

// =============================================================================
// STREAMING PARSER
// =============================================================================

// StreamingParser reads identifier rows one record at a time.
//
// USAGE:
//   parser, err := csvparser.Open("NodeIds.csv", csvparser.DefaultSettings())
//   if err != nil {
//       return err
//   }
//   defer parser.Close()
//
//   for parser.Next() {
//       row := parser.Row()
//       // Render the row...
//   }
//
//   if err := parser.Err(); err != nil {
//       return err
//   }
type StreamingParser struct {
	closer      io.Closer
	reader      *csv.Reader
	current     types.IdentifierRow
	err         error
	onMalformed func(error)
}

// Open opens a CSV file and returns a parser over it. The caller must Close
// the parser.
func Open(path string, settings Settings) (*StreamingParser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	parser, err := NewStreamingParser(file, settings)
	if err != nil {
		file.Close()
		return nil, err
	}
	parser.closer = file

	return parser, nil
}

// NewStreamingParser returns a parser reading from r.
func NewStreamingParser(r io.Reader, settings Settings) (*StreamingParser, error) {
	comma, err := settings.Comma()
	if err != nil {
		return nil, err
	}

	dec, err := settings.Decoder()
	if err != nil {
		return nil, err
	}

	var src io.Reader = bufio.NewReader(r)
	if dec != nil {
		src = transform.NewReader(src, dec.NewDecoder())
	}

	reader := csv.NewReader(src)
	reader.Comma = comma

	// Rows are only required to carry two fields; anything after is ignored.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	return &StreamingParser{reader: reader}, nil
}

// OnMalformed installs a handler for rows with fewer than two fields. With a
// handler installed such rows are reported and skipped; without one the
// first malformed row stops iteration.
func (p *StreamingParser) OnMalformed(fn func(error)) {
	p.onMalformed = fn
}

// Next advances to the next row. It returns false when there are no more
// rows or an error occurred.
func (p *StreamingParser) Next() bool {
	if p.err != nil {
		return false
	}

	for {
		record, err := p.reader.Read()
		if errors.Is(err, io.EOF) {
			return false
		}
		if err != nil {
			p.err = fmt.Errorf("failed to read CSV: %w", err)
			return false
		}

		line, _ := p.reader.FieldPos(0)

		row, err := validation.CheckRecord(record, line)
		if err != nil {
			if p.onMalformed != nil {
				p.onMalformed(err)
				continue
			}
			p.err = err
			return false
		}

		p.current = row
		return true
	}
}

// Row returns the current row.
func (p *StreamingParser) Row() types.IdentifierRow {
	return p.current
}

// Err returns the error that stopped iteration, if any.
func (p *StreamingParser) Err() error {
	return p.err
}

// Close closes the underlying file, if the parser owns one.
func (p *StreamingParser) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}
