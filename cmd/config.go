package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cfgpkg "github.com/KaramelBytes/likertlens/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set likertlens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long: `Set a config value and save to disk. List keys (columns, numeric_columns,
likert_columns, tooltip_columns) take a comma-separated value.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		if err := setConfigValue(c, args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "data_path":
		c.DataPath = val
	case "sheet_name":
		c.SheetName = val
	case "sheet_index":
		i, err := cast.ToIntE(val)
		if err != nil || i < 1 {
			return fmt.Errorf("invalid int for sheet_index: %v (must be >= 1)", val)
		}
		c.SheetIndex = i
	case "columns":
		c.Columns = splitList(val)
	case "numeric_columns":
		c.NumericColumns = splitList(val)
	case "likert_columns":
		c.LikertColumns = splitList(val)
	case "tooltip_columns":
		c.TooltipColumns = splitList(val)
	case "gpa_column":
		c.GPAColumn = val
	case "sentinel_column":
		c.SentinelColumn = val
	case "sentinel_value":
		c.SentinelValue = val
	case "default_column":
		c.DefaultColumn = val
	case "decimal_separator":
		switch val {
		case "", ".", ",":
			c.DecimalSeparator = val
		case "comma":
			c.DecimalSeparator = ","
		case "dot":
			c.DecimalSeparator = "."
		default:
			return fmt.Errorf("invalid decimal_separator: %s (use '.'|','|'')", val)
		}
	case "chart_x":
		c.ChartX = val
	case "chart_y":
		c.ChartY = val
	case "chart_title":
		c.ChartTitle = val
	case "chart_x_label":
		c.ChartXLabel = val
	case "chart_y_label":
		c.ChartYLabel = val
	case "presets_dir":
		c.PresetsDir = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// splitList reads a comma-separated list; blanks are dropped.
func splitList(val string) []string {
	var out []string
	for _, s := range strings.Split(val, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
