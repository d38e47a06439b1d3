package table

import (
	"errors"
	"strings"
)

// Kind is the inferred type of a column.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
)

func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "text"
}

// Column describes one column after the sniffing pass.
type Column struct {
	Name string
	Kind Kind
	// Integer is set for numeric columns whose values all parse as int64.
	Integer bool
	NonNull int
	Missing int
}

// Table is an in-memory tabular dataset. Every row has exactly len(Header) cells.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// ErrNoRows is returned by LastRow on a table without data rows.
var ErrNoRows = errors.New("table has no rows")

// New builds a Table, padding or truncating rows to the header width.
// Header names are kept verbatim so they can be written back unchanged.
func New(name string, header []string, rows [][]string) *Table {
	h := make([]string, len(header))
	copy(h, header)
	t := &Table{Name: name, Header: h, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, normalize(r, len(h)))
	}
	return t
}

func normalize(rec []string, ncol int) []string {
	row := make([]string, ncol)
	copy(row, rec)
	return row
}

// Index returns the position of the named column, or -1. Matching ignores case.
func (t *Table) Index(name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range t.Header {
		if strings.ToLower(h) == want {
			return i
		}
	}
	return -1
}

// LastRow returns a copy of the final row.
func (t *Table) LastRow() ([]string, error) {
	if len(t.Rows) == 0 {
		return nil, ErrNoRows
	}
	last := t.Rows[len(t.Rows)-1]
	out := make([]string, len(last))
	copy(out, last)
	return out, nil
}

// WithRow returns a new Table sharing t's rows with row appended. t is not modified.
func (t *Table) WithRow(row []string) *Table {
	rows := make([][]string, len(t.Rows), len(t.Rows)+1)
	copy(rows, t.Rows)
	rows = append(rows, normalize(row, len(t.Header)))
	return &Table{Name: t.Name, Header: t.Header, Rows: rows}
}

// Columns runs the sniffing pass. A column is numeric iff every non-missing
// value parses as a number. The rule holds vacuously for a column with no
// values, so such a column is an integer column whose total is 0; on a
// header-only table that includes text columns like Country.
func (t *Table) Columns() []Column {
	cols := make([]Column, len(t.Header))
	for j, name := range t.Header {
		c := Column{Name: name, Kind: KindNumeric, Integer: true}
		for _, row := range t.Rows {
			v := row[j]
			if IsMissing(v) {
				c.Missing++
				continue
			}
			c.NonNull++
			if c.Kind != KindNumeric {
				continue
			}
			if _, ok := ParseInt(v); ok {
				continue
			}
			c.Integer = false
			if _, ok := ParseNumber(v); !ok {
				c.Kind = KindText
			}
		}
		if c.Kind == KindText {
			c.Integer = false
		}
		cols[j] = c
	}
	return cols
}
