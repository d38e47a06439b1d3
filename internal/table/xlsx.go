package table

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads the named sheet (or the first one) of a workbook.
func LoadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
		}
		sheet = sheets[0]
	}
	recs, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("sheet %q: %w", sheet, err)}
	}
	if len(recs) == 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("sheet %q: missing header row", sheet)}
	}
	header := recs[0]
	if err := checkHeader(header); err != nil {
		return nil, &ParseError{Path: path, Line: 1, Err: err}
	}
	return New(filepath.Base(path), header, recs[1:]), nil
}

// EncodeXLSX renders the header and rows as a single-sheet workbook.
// Cells that parse as numbers are stored as numbers.
func EncodeXLSX(header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	put := func(r int, vals []string, typed bool) error {
		cells := make([]interface{}, len(vals))
		for i, v := range vals {
			cells[i] = v
			if !typed {
				continue
			}
			if n, ok := ParseInt(v); ok {
				cells[i] = n
			} else if x, ok := ParseNumber(v); ok {
				cells[i] = x
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cell, &cells)
	}
	if err := put(1, header, false); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := put(i+2, row, true); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
