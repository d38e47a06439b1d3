package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/poptotal/internal/table"
	"github.com/KaramelBytes/poptotal/internal/totals"
	"github.com/spf13/cobra"
)

var (
	totOutputPath string
	totLabel      string
	totDelimiter  string
	totFormat     string
	totSheetName  string
)

type totalParams struct {
	input, output, label, delimiter, format, sheet string
}

var totalCmd = &cobra.Command{
	Use:   "total [file]",
	Short: "Sum numeric columns and write the single Total row",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		p := totalParams{
			input:     c.InputPath,
			output:    c.OutputPath,
			label:     c.Label,
			delimiter: c.Delimiter,
			format:    c.OutputFormat,
			sheet:     c.SheetName,
		}
		if len(args) == 1 {
			p.input = args[0]
		}
		f := cmd.Flags()
		if f.Changed("output") {
			p.output = totOutputPath
		}
		if f.Changed("label") {
			p.label = totLabel
		}
		if f.Changed("delimiter") {
			p.delimiter = totDelimiter
		}
		if f.Changed("format") {
			p.format = totFormat
		}
		if f.Changed("sheet-name") {
			p.sheet = totSheetName
		}
		return runTotal(p)
	},
}

func runTotal(p totalParams) error {
	delim, err := parseDelimiter(p.delimiter)
	if err != nil {
		return err
	}
	format, err := totals.ParseFormat(p.format)
	if err != nil {
		return err
	}
	t, err := table.Load(p.input, table.Options{Delimiter: delim, Sheet: p.sheet})
	if err != nil {
		return err
	}
	debugf("loaded %s: %d rows, %d columns", t.Name, len(t.Rows), len(t.Header))
	if debug {
		for _, c := range t.Columns() {
			debugf("column %q: %s (non-null %d, missing %d)", c.Name, c.Kind, c.NonNull, c.Missing)
		}
	}
	row, err := totals.ComputeOutput(t, totals.Options{Label: p.label})
	if err != nil {
		return err
	}
	if err := totals.Write(p.output, t.Header, row, format); err != nil {
		return err
	}
	fmt.Printf("✓ Wrote total of %d rows to %s\n", len(t.Rows), p.output)
	return nil
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

func init() {
	rootCmd.AddCommand(totalCmd)
	totalCmd.Flags().StringVarP(&totOutputPath, "output", "o", "", "output path (default from config: total_world_population.csv)")
	totalCmd.Flags().StringVar(&totLabel, "label", "", "placeholder for non-numeric columns (default \"Total\")")
	totalCmd.Flags().StringVar(&totDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	totalCmd.Flags().StringVar(&totFormat, "format", "", "output format: csv | xlsx")
	totalCmd.Flags().StringVar(&totSheetName, "sheet-name", "", "XLSX: sheet name to read")
}
