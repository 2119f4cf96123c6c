package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/likertlens/internal/preset"
)

var presetSaveFlags stateFlags

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage saved filter presets",
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		items, err := preset.NewStore(c.PresetsDir).List()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintln(out, "No presets saved")
			return nil
		}
		for _, p := range items {
			fmt.Fprintf(out, "- %s: %s in [%s, %s]", p.Name, p.Column, formatNum(p.Lo), formatNum(p.Hi))
			if p.GPAText != "" {
				fmt.Fprintf(out, ", GPA ≥ %s", p.GPAText)
			}
			fmt.Fprintf(out, " (updated %s)\n", p.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a filter state under a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine()
		if err != nil {
			return err
		}
		s, u, err := presetSaveFlags.session(cmd, eng, nil)
		if err != nil {
			return err
		}
		p, err := preset.NewStore(cfg.PresetsDir).Save(args[0], s.State())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved preset '%s' (%d / %d rows)\n", p.Name, u.Summary.Rows, u.Summary.Total)
		return nil
	},
}

var presetDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved preset",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		if err := preset.NewStore(c.PresetsDir).Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted preset '%s'\n", args[0])
		return nil
	},
}

func formatNum(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetSaveCmd)
	presetCmd.AddCommand(presetDeleteCmd)
	presetSaveFlags.register(presetSaveCmd)
}
