// Package rank orders a table by a numeric rank column and keeps the head.
package rank

import (
	"errors"
	"fmt"
	"sort"

	"github.com/KaramelBytes/poptotal/internal/table"
)

// DefaultColumn is the rank column of the world population dataset.
const DefaultColumn = "Rank"

// ErrColumnNotFound is returned when the rank column is absent.
var ErrColumnNotFound = errors.New("rank column not found")

// Top returns the first n rows of t ordered ascending by column.
// Rows whose rank is missing or not a number sort last in input order.
// n <= 0 keeps every row. t is not modified.
func Top(t *table.Table, column string, n int) (*table.Table, error) {
	idx := t.Index(column)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}
	type keyed struct {
		row []string
		key float64
		ok  bool
	}
	ks := make([]keyed, len(t.Rows))
	for i, r := range t.Rows {
		k := keyed{row: r}
		if !table.IsMissing(r[idx]) {
			k.key, k.ok = table.ParseNumber(r[idx])
		}
		ks[i] = k
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].ok != ks[j].ok {
			return ks[i].ok
		}
		return ks[i].ok && ks[i].key < ks[j].key
	})
	if n > 0 && n < len(ks) {
		ks = ks[:n]
	}
	rows := make([][]string, len(ks))
	for i, k := range ks {
		rows[i] = k.row
	}
	return table.New(t.Name, t.Header, rows), nil
}
