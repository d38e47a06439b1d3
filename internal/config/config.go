package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	InputPath     string `mapstructure:"input_path" yaml:"input_path"`
	OutputPath    string `mapstructure:"output_path" yaml:"output_path"`
	TopOutputPath string `mapstructure:"top_output_path" yaml:"top_output_path"`
	TopN          int    `mapstructure:"top_n" yaml:"top_n"`
	RankColumn    string `mapstructure:"rank_column" yaml:"rank_column"`
	// Label fills non-numeric columns of the total row.
	Label        string `mapstructure:"label" yaml:"label"`
	Delimiter    string `mapstructure:"delimiter" yaml:"delimiter"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	SheetName    string `mapstructure:"sheet_name" yaml:"sheet_name"`
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".poptotal", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.poptotal/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = p
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from defaults, config file, .env and environment.
// Precedence: env (POPTOTAL_*) > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	// .env is optional; existing environment variables win.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("POPTOTAL")
	v.AutomaticEnv()

	v.SetDefault("input_path", "world_population.csv")
	v.SetDefault("output_path", "total_world_population.csv")
	v.SetDefault("top_output_path", "top20_world_population.csv")
	v.SetDefault("top_n", 20)
	v.SetDefault("rank_column", "Rank")
	v.SetDefault("label", "Total")
	v.SetDefault("delimiter", "")
	v.SetDefault("output_format", "csv")
	v.SetDefault("sheet_name", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		p, err := defaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
