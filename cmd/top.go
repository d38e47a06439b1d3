package cmd

import (
	"fmt"

	"github.com/KaramelBytes/poptotal/internal/rank"
	"github.com/KaramelBytes/poptotal/internal/table"
	"github.com/KaramelBytes/poptotal/internal/utils"
	"github.com/spf13/cobra"
)

var (
	topOutputPath string
	topN          int
	topColumn     string
	topDelimiter  string
)

var topCmd = &cobra.Command{
	Use:   "top [file]",
	Short: "Write the N best-ranked rows sorted by the rank column",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		input, output, n, column, delimiter := c.InputPath, c.TopOutputPath, c.TopN, c.RankColumn, c.Delimiter
		if len(args) == 1 {
			input = args[0]
		}
		f := cmd.Flags()
		if f.Changed("output") {
			output = topOutputPath
		}
		if f.Changed("top") {
			n = topN
		}
		if f.Changed("column") {
			column = topColumn
		}
		if f.Changed("delimiter") {
			delimiter = topDelimiter
		}
		if column == "" {
			column = rank.DefaultColumn
		}
		delim, err := parseDelimiter(delimiter)
		if err != nil {
			return err
		}
		t, err := table.Load(input, table.Options{Delimiter: delim, Sheet: c.SheetName})
		if err != nil {
			return err
		}
		out, err := rank.Top(t, column, n)
		if err != nil {
			return err
		}
		debugf("kept %d of %d rows ordered by %q", len(out.Rows), len(t.Rows), column)
		data, err := table.EncodeCSV(out.Header, out.Rows)
		if err != nil {
			return &table.WriteError{Path: output, Err: err}
		}
		if err := utils.SafeWriteFile(output, data); err != nil {
			return &table.WriteError{Path: output, Err: err}
		}
		fmt.Printf("✓ Wrote top %d rows to %s\n", len(out.Rows), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topCmd)
	topCmd.Flags().StringVarP(&topOutputPath, "output", "o", "", "output path (default from config: top20_world_population.csv)")
	topCmd.Flags().IntVarP(&topN, "top", "n", 20, "number of rows to keep (0 = all)")
	topCmd.Flags().StringVar(&topColumn, "column", rank.DefaultColumn, "rank column to sort by")
	topCmd.Flags().StringVar(&topDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
}
