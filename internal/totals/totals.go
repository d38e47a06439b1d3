// Package totals computes the column-wise total row of a population table.
package totals

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/poptotal/internal/table"
	"github.com/KaramelBytes/poptotal/internal/utils"
)

// DefaultLabel fills the non-numeric columns of the total row.
const DefaultLabel = "Total"

// Format selects the output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" or "xlsx"; empty means csv.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use csv|xlsx)", s)
	}
}

// Options controls the total computation.
type Options struct {
	// Label replaces missing cells in the total row; empty means DefaultLabel.
	Label string
}

// Row is a single record aligned with a table header. An empty cell is missing.
type Row []string

// Total holds one summed value per column. Valid is false for non-numeric columns.
type Total struct {
	Columns []table.Column
	Values  []float64
	Ints    []int64
	// Exact marks columns summed without loss as int64.
	Exact []bool
	Valid []bool
}

// ComputeTotal sums every numeric column over the rows of t. Missing values are skipped.
func ComputeTotal(t *table.Table) Total {
	cols := t.Columns()
	n := len(cols)
	tot := Total{
		Columns: cols,
		Values:  make([]float64, n),
		Ints:    make([]int64, n),
		Exact:   make([]bool, n),
		Valid:   make([]bool, n),
	}
	for j, c := range cols {
		if c.Kind != table.KindNumeric {
			continue
		}
		tot.Valid[j] = true
		if c.Integer {
			if s, ok := sumInts(t.Rows, j); ok {
				tot.Ints[j] = s
				tot.Exact[j] = true
				tot.Values[j] = float64(s)
				continue
			}
		}
		tot.Values[j] = sumFloats(t.Rows, j)
	}
	return tot
}

// sumInts reports false on int64 overflow.
func sumInts(rows [][]string, j int) (int64, bool) {
	var s int64
	for _, row := range rows {
		if table.IsMissing(row[j]) {
			continue
		}
		v, _ := table.ParseInt(row[j])
		if (v > 0 && s > math.MaxInt64-v) || (v < 0 && s < math.MinInt64-v) {
			return 0, false
		}
		s += v
	}
	return s, true
}

// sumFloats uses Neumaier compensated summation.
func sumFloats(rows [][]string, j int) float64 {
	var sum, comp float64
	for _, row := range rows {
		if table.IsMissing(row[j]) {
			continue
		}
		v, _ := table.ParseNumber(row[j])
		t := sum + v
		if math.Abs(sum) >= math.Abs(v) {
			comp += (sum - t) + v
		} else {
			comp += (v - t) + sum
		}
		sum = t
	}
	return sum + comp
}

// Row renders the total as cells; non-numeric columns are left missing.
func (tot Total) Row() Row {
	row := make(Row, len(tot.Valid))
	for j, ok := range tot.Valid {
		if !ok {
			continue
		}
		if tot.Exact[j] {
			row[j] = strconv.FormatInt(tot.Ints[j], 10)
			continue
		}
		row[j] = formatFloat(tot.Values[j])
	}
	return row
}

// formatFloat keeps a trailing ".0" on whole values so float columns stay float.
func formatFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// AppendTotal returns a new table with the total row at the end. t is unchanged.
func AppendTotal(t *table.Table, tot Total) *table.Table {
	return t.WithRow(tot.Row())
}

// FillMissing returns a copy of row with missing cells set to label.
func FillMissing(row Row, label string) Row {
	out := make(Row, len(row))
	for i, v := range row {
		if table.IsMissing(v) {
			v = label
		}
		out[i] = v
	}
	return out
}

// ComputeOutput derives the single summary row for t.
func ComputeOutput(t *table.Table, opt Options) (Row, error) {
	label := opt.Label
	if label == "" {
		label = DefaultLabel
	}
	tot := ComputeTotal(t)
	for j, ok := range tot.Valid {
		if ok && !tot.Exact[j] && (math.IsInf(tot.Values[j], 0) || math.IsNaN(tot.Values[j])) {
			return nil, fmt.Errorf("column %q: sum is not finite", tot.Columns[j].Name)
		}
	}
	withTotal := AppendTotal(t, tot)
	last, err := withTotal.LastRow()
	if err != nil {
		return nil, fmt.Errorf("extract total row: %w", err)
	}
	return FillMissing(last, label), nil
}

// Encode renders header and row in the given format.
func Encode(header []string, row Row, format Format) ([]byte, error) {
	rows := [][]string{row}
	switch format {
	case FormatXLSX:
		return table.EncodeXLSX(header, rows)
	case FormatCSV, "":
		return table.EncodeCSV(header, rows)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Write persists header and row to path. Any failure is a *table.WriteError.
func Write(path string, header []string, row Row, format Format) error {
	data, err := Encode(header, row, format)
	if err != nil {
		return &table.WriteError{Path: path, Err: err}
	}
	if err := utils.SafeWriteFile(path, data); err != nil {
		return &table.WriteError{Path: path, Err: err}
	}
	return nil
}
