package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/poptotal/internal/config"
	"github.com/KaramelBytes/poptotal/internal/totals"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set poptotal configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("input_path: %s\n", cfg.InputPath)
		fmt.Printf("output_path: %s\n", cfg.OutputPath)
		fmt.Printf("top_output_path: %s\n", cfg.TopOutputPath)
		fmt.Printf("top_n: %d\n", cfg.TopN)
		fmt.Printf("rank_column: %s\n", cfg.RankColumn)
		fmt.Printf("label: %s\n", cfg.Label)
		if cfg.Delimiter != "" {
			fmt.Printf("delimiter: %q\n", cfg.Delimiter)
		}
		fmt.Printf("output_format: %s\n", cfg.OutputFormat)
		if cfg.SheetName != "" {
			fmt.Printf("sheet_name: %s\n", cfg.SheetName)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "input_path":
			cfg.InputPath = val
		case "output_path":
			cfg.OutputPath = val
		case "top_output_path":
			cfg.TopOutputPath = val
		case "top_n":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for top_n: %v", val)
			}
			cfg.TopN = i
		case "rank_column":
			cfg.RankColumn = val
		case "label":
			if val == "" {
				return fmt.Errorf("label must not be empty")
			}
			cfg.Label = val
		case "delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			cfg.Delimiter = val
		case "output_format":
			f, err := totals.ParseFormat(val)
			if err != nil {
				return err
			}
			cfg.OutputFormat = string(f)
		case "sheet_name":
			cfg.SheetName = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
