package survey

import (
	"encoding/csv"
	stderrors "errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/matzehuels/partynet/pkg/errors"
)

// Options configures how the table is read.
type Options struct {
	Columns   Columns
	Encoding  string // "utf-8" (default) or "shift_jis"
	Delimiter string // single character, "," by default
}

func (o Options) withDefaults() Options {
	if o.Columns == (Columns{}) {
		o.Columns = DefaultColumns()
	}
	if o.Encoding == "" {
		o.Encoding = EncodingUTF8
	}
	if o.Delimiter == "" {
		o.Delimiter = ","
	}
	return o
}

func (o Options) delimiter() (rune, error) {
	r, size := utf8.DecodeRuneInString(o.Delimiter)
	if r == utf8.RuneError || size != len(o.Delimiter) || r == '"' || r == '\n' || r == '\r' {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid delimiter: %q (must be a single character)", o.Delimiter)
	}
	return r, nil
}

// Table is the loaded questionnaire: records in file order, indexed by ID.
type Table struct {
	columns Columns
	header  []string
	index   map[string]int
	records []Record
	byID    map[string]int
}

// Load opens path on fsys and reads it with [Read].
func Load(fsys afero.Fs, path string, opts Options) (*Table, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	t, err := Read(f, opts)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Read decodes a delimited table from r.
//
// Read returns a DATA_FORMAT error if the table is empty, the identifier
// column is missing, or an identifier is empty or repeated. Rows may have
// fewer cells than the header; missing trailing cells read as empty.
func Read(r io.Reader, opts Options) (*Table, error) {
	opts = opts.withDefaults()
	if err := opts.Columns.Validate(); err != nil {
		return nil, err
	}
	comma, err := opts.delimiter()
	if err != nil {
		return nil, err
	}
	dec, err := decode(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(dec)
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, errors.New(errors.ErrCodeDataFormat, "table has no header row")
	}
	if err != nil {
		return nil, wrapCSVError(err)
	}

	t := &Table{
		columns: opts.Columns,
		header:  header,
		index:   make(map[string]int, len(header)),
		byID:    make(map[string]int),
	}
	for i, name := range header {
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}

	idCol, ok := t.index[opts.Columns.ID]
	if !ok {
		return nil, errors.New(errors.ErrCodeDataFormat, "identifier column %q not found in header", opts.Columns.ID)
	}

	for {
		fields, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}
		if isBlank(fields) {
			continue
		}

		var id string
		if idCol < len(fields) {
			id = strings.TrimSpace(fields[idCol])
		}
		if id == "" {
			line, _ := cr.FieldPos(0)
			return nil, errors.New(errors.ErrCodeDataFormat, "line %d: empty identifier in column %q", line, opts.Columns.ID)
		}
		if _, dup := t.byID[id]; dup {
			return nil, errors.New(errors.ErrCodeDataFormat, "duplicate identifier %q in column %q", id, opts.Columns.ID)
		}

		t.byID[id] = len(t.records)
		t.records = append(t.records, Record{ID: id, fields: fields, table: t})
	}

	return t, nil
}

func wrapCSVError(err error) error {
	var pe *csv.ParseError
	if stderrors.As(err, &pe) {
		return errors.Wrap(errors.ErrCodeDataFormat, err, "malformed table at line %d", pe.Line)
	}
	return errors.Wrap(errors.ErrCodeIO, err, "read table")
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Records returns the records in file order.
func (t *Table) Records() []Record { return t.records }

// Record returns the record with the given identifier.
func (t *Table) Record(id string) (Record, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Record{}, false
	}
	return t.records[i], true
}

// Header returns the header row as read.
func (t *Table) Header() []string { return t.header }

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Columns returns the column contract the table was read with.
func (t *Table) Columns() Columns { return t.columns }
