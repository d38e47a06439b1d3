package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/poptotal/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg    *cfgpkg.Global
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:   "poptotal",
	Short: "poptotal: append a column-wise total to a population table",
	Long: `poptotal reads a CSV of country population figures, sums every numeric column,
and writes the resulting single "Total" row to a new file. Run without a subcommand
it behaves like "poptotal total" with the configured paths.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		return runTotal(totalParams{
			input:     c.InputPath,
			output:    c.OutputPath,
			label:     c.Label,
			delimiter: c.Delimiter,
			format:    c.OutputFormat,
			sheet:     c.SheetName,
		})
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.poptotal/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal here; commands that need config report it.
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg, cfgErr = nil, err
		return
	}
	cfg, cfgErr = c, nil
}

func requireConfig() (*cfgpkg.Global, error) {
	if cfg == nil {
		if cfgErr != nil {
			return nil, fmt.Errorf("load config: %w", cfgErr)
		}
		return nil, fmt.Errorf("no config loaded")
	}
	return cfg, nil
}

func debugf(format string, a ...any) {
	if debug {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", a...)
	}
}
