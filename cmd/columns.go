package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List the selectable Likert columns with their ranges",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine()
		if err != nil {
			return err
		}
		def, err := eng.DefaultColumn(cfg.DefaultColumn)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		ds := eng.Dataset()
		fmt.Fprintf(out, "%s: %d rows, %d columns\n", ds.Name, ds.Len(), len(ds.Columns()))
		for _, c := range eng.Options() {
			r := eng.Range(c)
			mark := " "
			if c == def {
				mark = "*"
			}
			fmt.Fprintf(out, "%s %-34s [%s, %s] step %s\n", mark, c,
				formatNum(r.Lo), formatNum(r.Hi), formatNum(r.Step()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}
