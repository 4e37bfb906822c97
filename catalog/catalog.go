// Package catalog loads part dimension tables from CSV files.
//
// A table has a header row with a unique "Name" column followed by dimension
// columns. Dimension cells are lengths as understood by frame.ParseQuantity,
// i.e. "1.315 in" or "33.4 mm"; bare numbers are millimetres.
package catalog

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ose-d3d/frame"
)

// NameColumn holds the unique part name of every row.
const NameColumn = "Name"

// Dimension columns required by the pipe and corner tables.
var (
	PipeColumns   = []string{"ID", "OD"}
	CornerColumns = []string{"G", "H", "M", "POD", "PID"}
)

// ErrPartNotFound is returned when a part name has no row in a table.
var ErrPartNotFound = errors.New("part not found")

//go:embed data/pipe.csv data/corner.csv
var builtin embed.FS

// Row is a table record keyed by column name.
type Row map[string]string

// Name returns the part name of the row.
func (r Row) Name() string { return r[NameColumn] }

// Length parses the cell of column col as a length in millimetres.
func (r Row) Length(col string) (float64, error) {
	v, err := frame.ParseQuantity(r[col])
	if err != nil {
		return 0, fmt.Errorf("part %q column %s: %w", r.Name(), col, err)
	}
	return v, nil
}

// Table is a part catalog with unique part names.
type Table struct {
	columns []string
	rows    []Row
	index   map[string]int
}

// Load reads a CSV table from r. The header must contain NameColumn and
// every column in required.
func Load(r io.Reader, required ...string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("catalog: empty table")
		}
		return nil, fmt.Errorf("catalog: reading header: %w", err)
	}
	// spreadsheet exports often start with a byte order mark.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	t := &Table{columns: header, index: make(map[string]int)}
	for _, col := range append([]string{NameColumn}, required...) {
		if !t.hasColumn(col) {
			return nil, fmt.Errorf("catalog: missing column %q", col)
		}
	}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			row[col] = strings.TrimSpace(rec[i])
		}
		name := row.Name()
		if name == "" {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("catalog: line %d: empty part name", line)
		}
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("catalog: duplicate part name %q", name)
		}
		t.index[name] = len(t.rows)
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// LoadFile reads a CSV table from the file at path.
func LoadFile(path string, required ...string) (*Table, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	t, err := Load(fp, required...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// DefaultPipes returns the built in PVC pipe table.
func DefaultPipes() (*Table, error) { return loadBuiltin("data/pipe.csv", PipeColumns) }

// DefaultCorners returns the built in corner fitting table.
func DefaultCorners() (*Table, error) { return loadBuiltin("data/corner.csv", CornerColumns) }

func loadBuiltin(name string, required []string) (*Table, error) {
	fp, err := builtin.Open(name)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return Load(fp, required...)
}

func (t *Table) hasColumn(col string) bool {
	for _, c := range t.columns {
		if c == col {
			return true
		}
	}
	return false
}

// FindPart returns the row of the part called name.
func (t *Table) FindPart(name string) (Row, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.rows[i], true
}

// PartName returns the name of the i'th part in file order.
func (t *Table) PartName(i int) string { return t.rows[i].Name() }

// Names returns all part names in file order.
func (t *Table) Names() []string {
	names := make([]string, len(t.rows))
	for i, r := range t.rows {
		names[i] = r.Name()
	}
	return names
}

// Len returns the number of parts in the table.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the header of the table.
func (t *Table) Columns() []string { return t.columns }

// Rows returns the table rows in file order.
func (t *Table) Rows() []Row { return t.rows }

func (t *Table) find(kind, name string) (Row, error) {
	row, ok := t.FindPart(name)
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", kind, name, ErrPartNotFound)
	}
	return row, nil
}
