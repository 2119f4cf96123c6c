package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/likertlens/internal/filter"
	"github.com/KaramelBytes/likertlens/internal/utils"
)

var (
	filtFlags  stateFlags
	filtFormat string
	filtOutput string
	filtShow   int
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Apply a filter once and print the summary or export the matching rows",
	Example: `  likertlens filter --column stress_daglig_likert --lo 2 --hi 4
  likertlens filter --gpa 9,5 --format json -o view.json
  likertlens filter --preset calm --format csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine()
		if err != nil {
			return err
		}
		_, u, err := filtFlags.session(cmd, eng, nil)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		switch strings.ToLower(filtFormat) {
		case "text", "":
			buf.WriteString(u.Summary.Text())
			buf.WriteString("\n")
			if filtShow != 0 {
				writeRecords(&buf, u.View, cfg.TooltipColumns, filtShow)
			}
		case "html":
			buf.WriteString(u.Summary.HTML())
			buf.WriteString("\n")
		case "json":
			b, err := utils.PrettyJSON(viewPayload(u))
			if err != nil {
				return err
			}
			buf.Write(b)
			buf.WriteString("\n")
		case "csv":
			if err := u.View.WriteCSV(&buf); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported --format: %s (use text|html|json|csv)", filtFormat)
		}

		if filtOutput != "" {
			if err := utils.SafeWriteFile(filtOutput, buf.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d rows to %s\n", u.View.Len(), filtOutput)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	},
}

// viewJSON is the export shape of a filtered view: the chart buffer plus the
// state and summary that produced it.
type viewJSON struct {
	State   filter.State     `json:"state"`
	Summary filter.Summary   `json:"summary"`
	Data    map[string][]any `json:"data"`
}

func viewPayload(u filter.Update) viewJSON {
	return viewJSON{State: u.State, Summary: u.Summary, Data: u.View.ColumnData()}
}

// writeRecords prints up to limit rows of the given columns; limit < 0 prints all.
func writeRecords(buf *bytes.Buffer, v *filter.View, columns []string, limit int) {
	recs := v.Records(columns, limit)
	if len(recs) == 0 {
		return
	}
	var present []string
	for _, c := range columns {
		if v.Dataset().Has(c) {
			present = append(present, c)
		}
	}
	buf.WriteString(strings.Join(present, "\t"))
	buf.WriteString("\n")
	for _, rec := range recs {
		buf.WriteString(strings.Join(rec, "\t"))
		buf.WriteString("\n")
	}
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filtFlags.register(filterCmd)
	filterCmd.Flags().StringVarP(&filtFormat, "format", "f", "text", "output format: text|html|json|csv")
	filterCmd.Flags().StringVarP(&filtOutput, "output", "o", "", "write the result to a file instead of stdout")
	filterCmd.Flags().IntVar(&filtShow, "show", 0, "text format: also list this many matching rows (-1 for all)")
}
