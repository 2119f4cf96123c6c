package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/likertlens/internal/config"
	"github.com/KaramelBytes/likertlens/internal/dataset"
	"github.com/KaramelBytes/likertlens/internal/filter"
	applog "github.com/KaramelBytes/likertlens/internal/log"
	"github.com/KaramelBytes/likertlens/internal/table"
)

var (
	// Global flags
	cfgFile        string
	flagData       string
	flagSheetName  string
	flagSheetIndex int
	flagVerbose    bool
	flagQuiet      bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "likertlens",
	Short: "Filter survey Likert scores by column, range and minimum GPA",
	Long: `likertlens loads a survey table (xlsx, csv or tsv), drops aggregate and
incomplete rows, and lets you filter programmes by a Likert column range and a
minimum admission GPA. Results can be summarized, exported or plotted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		applog.Setup(flagVerbose, flagQuiet)
		return nil
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
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.likertlens/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "survey file to load (overrides data_path)")
	rootCmd.PersistentFlags().StringVar(&flagSheetName, "sheet-name", "", "XLSX: sheet name (overrides sheet_name)")
	rootCmd.PersistentFlags().IntVar(&flagSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index used if no sheet name is set (overrides sheet_index)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "only log warnings and errors")
}

func loadConfig() {
	cfg = nil
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands that need a dataset report it when they run.
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("data") {
		cfg.DataPath = flagData
	}
	if f.Changed("sheet-name") {
		cfg.SheetName = flagSheetName
	}
	if f.Changed("sheet-index") && flagSheetIndex > 0 {
		cfg.SheetIndex = flagSheetIndex
	}
}

// requireConfig returns the loaded config or the reason it is missing.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

func loadOptions(c *cfgpkg.Global) dataset.Options {
	opt := dataset.Options{
		Columns:        c.Columns,
		Numeric:        c.NumericColumns,
		SentinelColumn: c.SentinelColumn,
		SentinelValue:  c.SentinelValue,
		Table:          table.Options{SheetName: c.SheetName, SheetIndex: c.SheetIndex},
	}
	switch c.DecimalSeparator {
	case ",":
		opt.DecimalSeparator = ','
	case ".":
		opt.DecimalSeparator = '.'
	}
	return opt
}

// loadEngine loads the configured dataset and builds a filter engine over it.
func loadEngine() (*filter.Engine, error) {
	c, err := requireConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.DataPath) == "" {
		return nil, fmt.Errorf("no survey file: pass --data or run 'likertlens config set data_path <file>'")
	}
	ds, err := dataset.Load(c.DataPath, loadOptions(c))
	if err != nil {
		return nil, err
	}
	slog.Debug("dataset loaded", "path", c.DataPath, "rows", ds.Len(), "columns", len(ds.Columns()))
	if c.GPAColumn != "" && !ds.IsNumeric(c.GPAColumn) {
		slog.Warn("GPA column not available; threshold will be ignored", "column", c.GPAColumn)
	}
	return filter.NewEngine(ds, c.LikertColumns, c.GPAColumn), nil
}
