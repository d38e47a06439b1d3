package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/poptotal/internal/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const worldCSV = "Rank,CCA3,Country/Territory,2022 Population,Growth Rate\n" +
	"2,IND,India,1417173173,1.0068\n" +
	"1,CHN,China,1425887337,1.0000\n" +
	"3,USA,United States,338289857,1.0038\n"

// runCmd executes the root command with args, resetting sticky flag state first.
func runCmd(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd, "config", "debug")
	resetFlags(totalCmd, "output", "label", "delimiter", "format", "sheet-name")
	resetFlags(topCmd, "output", "top", "column", "delimiter")
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func resetFlags(c *cobra.Command, names ...string) {
	for _, fs := range []*pflag.FlagSet{c.PersistentFlags(), c.Flags()} {
		for _, name := range names {
			if fl := fs.Lookup(name); fl != nil {
				_ = fl.Value.Set(fl.DefValue)
				fl.Changed = false
			}
		}
	}
}

func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"POPTOTAL_LABEL", "POPTOTAL_INPUT_PATH", "POPTOTAL_OUTPUT_PATH"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	if err := os.WriteFile(filepath.Join(home, "world_population.csv"), []byte(worldCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return home
}

func TestCLI_TotalWritesSingleRow(t *testing.T) {
	home := setup(t)
	in := filepath.Join(home, "world_population.csv")
	out := filepath.Join(home, "total_world_population.csv")
	if err := runCmd(t, "total", in, "-o", out); err != nil {
		t.Fatalf("total: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "Rank,CCA3,Country/Territory,2022 Population,Growth Rate\n" +
		"6,Total,Total,3181350367,3.0106\n"
	if string(b) != want {
		t.Fatalf("output = %q, want %q", b, want)
	}
}

func TestCLI_TotalXLSXAndLabel(t *testing.T) {
	home := setup(t)
	in := filepath.Join(home, "world_population.csv")
	out := filepath.Join(home, "total.xlsx")
	if err := runCmd(t, "total", in, "-o", out, "--format", "xlsx", "--label", "World"); err != nil {
		t.Fatalf("total: %v", err)
	}
	tb, err := table.Load(out, table.Options{})
	if err != nil {
		t.Fatalf("load xlsx: %v", err)
	}
	if len(tb.Rows) != 1 || tb.Rows[0][1] != "World" || tb.Rows[0][0] != "6" {
		t.Fatalf("unexpected rows: %v", tb.Rows)
	}
}

func TestCLI_TotalMissingInputIsParseError(t *testing.T) {
	home := setup(t)
	err := runCmd(t, "total", filepath.Join(home, "absent.csv"), "-o", filepath.Join(home, "o.csv"))
	var pe *table.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestCLI_TotalUnwritableOutputIsWriteError(t *testing.T) {
	home := setup(t)
	err := runCmd(t, "total", filepath.Join(home, "world_population.csv"), "-o", filepath.Join(home, "no", "dir", "o.csv"))
	var we *table.WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected WriteError, got %v", err)
	}
}

func TestCLI_TopUsesConfiguredDefaults(t *testing.T) {
	home := setup(t)
	in := filepath.Join(home, "world_population.csv")
	out := filepath.Join(home, "top.csv")
	if err := runCmd(t, "top", in, "-o", out, "-n", "2"); err != nil {
		t.Fatalf("top: %v", err)
	}
	tb, err := table.Load(out, table.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tb.Rows) != 2 || tb.Rows[0][2] != "China" || tb.Rows[1][2] != "India" {
		t.Fatalf("unexpected rows: %v", tb.Rows)
	}
}

func TestCLI_ConfigSetThenRootRunUsesIt(t *testing.T) {
	home := setup(t)
	cfgPath := filepath.Join(home, "cfg.yaml")
	in := filepath.Join(home, "world_population.csv")
	out := filepath.Join(home, "from_config.csv")
	if err := runCmd(t, "--config", cfgPath, "config", "set", "input_path", in); err == nil {
		// explicit config file does not exist yet, so the first set must fail to load
		t.Fatalf("expected error for missing explicit config")
	}
	if err := os.WriteFile(cfgPath, []byte("label: Sum\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runCmd(t, "--config", cfgPath, "config", "set", "input_path", in); err != nil {
		t.Fatalf("config set input: %v", err)
	}
	if err := runCmd(t, "--config", cfgPath, "config", "set", "output_path", out); err != nil {
		t.Fatalf("config set output: %v", err)
	}
	if err := runCmd(t, "--config", cfgPath); err != nil {
		t.Fatalf("root run: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if want := "6,Sum,Sum,3181350367,3.0106\n"; string(b[len(b)-len(want):]) != want {
		t.Fatalf("unexpected output: %q", b)
	}
}
