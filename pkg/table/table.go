package table

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	stderrors "errors"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/treelink/pkg/errors"
)

// bom is the UTF-8 byte order mark some spreadsheet exports prepend.
const bom = "\ufeff"

// Table is a header plus positional rows.
type Table struct {
	Name   string   // Source name used in error messages (file path or "<input>")
	Fields []string // Header fields in column order
	Rows   []Row
	Digest string // Hex SHA-256 of the source bytes
}

// Row is one data record. Values line up with the owning table's Fields.
type Row struct {
	Line   int // 1-based line of the record in the source
	values []string
}

// At returns the value in column i, or "" when i is out of range.
func (r Row) At(i int) string {
	if i < 0 || i >= len(r.values) {
		return ""
	}
	return r.values[i]
}

// Len returns the number of values in the row.
func (r Row) Len() int { return len(r.values) }

// Read parses CSV from r. The first record is the header.
func Read(r io.Reader, name string) (*Table, error) {
	if name == "" {
		name = "<input>"
	}
	h := sha256.New()
	cr := csv.NewReader(io.TeeReader(r, h))
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeMalformedInput, "%s: missing header row", name)
	}
	if err != nil {
		return nil, malformed(name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	t := &Table{Name: name, Fields: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			t.Digest = hex.EncodeToString(h.Sum(nil))
			break
		}
		if err != nil {
			return nil, malformed(name, err)
		}
		line, _ := cr.FieldPos(0)
		t.Rows = append(t.Rows, Row{Line: line, values: record})
	}
	return t, nil
}

// ReadFile opens path and parses it with [Read].
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, path)
}

// Write emits header followed by rows as CSV.
func Write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// malformed converts encoding/csv parse errors, which carry their own line
// numbers, into MALFORMED_INPUT errors.
func malformed(name string, err error) error {
	var pe *csv.ParseError
	if stderrors.As(err, &pe) {
		return errors.Malformed(name, pe.Line, "%v", pe.Err)
	}
	return errors.Wrap(errors.ErrCodeMalformedInput, err, "read %s", name)
}
