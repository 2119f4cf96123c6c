package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/likertlens/internal/analysis"
	"github.com/KaramelBytes/likertlens/internal/utils"
)

var (
	descFlags      stateFlags
	descOutput     string
	descSampleRows int
	descGroupBy    string
	descColumns    []string
	descNoCorr     bool
	descOutliers   bool
	descOutlierThr float64
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Summarize the filtered rows: statistics, correlations and groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine()
		if err != nil {
			return err
		}
		_, u, err := descFlags.session(cmd, eng, nil)
		if err != nil {
			return err
		}
		opt := analysis.DefaultOptions()
		opt.SampleRows = descSampleRows
		opt.GroupBy = descGroupBy
		opt.Columns = descColumns
		opt.Correlations = !descNoCorr
		opt.Outliers = descOutliers
		if descOutlierThr > 0 {
			opt.OutlierThreshold = descOutlierThr
		}
		rep, err := analysis.Describe(eng.Dataset(), u.View.Rows(), opt)
		if err != nil {
			return err
		}
		md := u.Summary.Text() + "\n\n" + rep.Markdown()
		if descOutput != "" {
			if err := utils.SafeWriteFile(descOutput, []byte(md)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote description to %s\n", descOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	descFlags.register(describeCmd)
	describeCmd.Flags().StringVarP(&descOutput, "output", "o", "", "optional path to write the report (Markdown)")
	describeCmd.Flags().IntVar(&descSampleRows, "sample-rows", 5, "number of sample rows to include")
	describeCmd.Flags().StringVar(&descGroupBy, "group-by", "", "text column to compute per-group means by")
	describeCmd.Flags().StringSliceVar(&descColumns, "columns", nil, "comma-separated columns to describe (default: all)")
	describeCmd.Flags().BoolVar(&descNoCorr, "no-correlations", false, "skip Pearson correlations")
	describeCmd.Flags().BoolVar(&descOutliers, "outliers", false, "count robust outliers (MAD)")
	describeCmd.Flags().Float64Var(&descOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers")
}
