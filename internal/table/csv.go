package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Options controls how tabular files are read.
type Options struct {
	// Delimiter for CSV. If 0, chosen from the file extension.
	Delimiter rune
	// Sheet selects the XLSX worksheet by name; empty means the first sheet.
	Sheet string
}

// Load parses a CSV/TSV or XLSX file into a Table.
func Load(path string, opt Options) (*Table, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return LoadXLSX(path, opt.Sheet)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	return Read(f, path, delim)
}

// Read parses CSV records from r. The first record is the header.
func Read(r io.Reader, path string, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comma = delim
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: path, Err: errors.New("missing header row")}
		}
		return nil, &ParseError{Path: path, Line: errLine(err), Err: err}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if err := checkHeader(header); err != nil {
		line, _ := cr.FieldPos(0)
		return nil, &ParseError{Path: path, Line: line, Err: err}
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{Path: path, Line: errLine(err), Err: err}
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, &ParseError{Path: path, Line: line, Err: fmt.Errorf("%d fields, header has %d", len(rec), len(header))}
		}
		rows = append(rows, rec)
	}
	return New(filepath.Base(path), header, rows), nil
}

// errLine extracts the input line from a csv error, or 0.
func errLine(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}

// checkHeader rejects blank names and exact duplicates; names differing only
// in surrounding space are distinct columns.
func checkHeader(header []string) error {
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("column %d has an empty name", i+1)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// EncodeCSV renders the header and rows as comma-separated text.
func EncodeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
