package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/likertlens/internal/chart"
	cfgpkg "github.com/KaramelBytes/likertlens/internal/config"
)

var (
	plotFlags  stateFlags
	plotOutput string
	plotX      string
	plotY      string
	plotWidth  int
	plotHeight int
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the filtered rows as a scatter plot (svg or png)",
	Example: `  likertlens plot -o stress.svg --column stress_daglig_likert --lo 4 --hi 5
  likertlens plot -o view.png --x tilpas_likert --y ensom_likert`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if plotOutput == "" {
			return fmt.Errorf("--output is required")
		}
		eng, err := loadEngine()
		if err != nil {
			return err
		}
		_, u, err := plotFlags.session(cmd, eng, nil)
		if err != nil {
			return err
		}
		sc := scatterFromConfig(cfg)
		if plotX != "" {
			sc.X, sc.XLabel = plotX, plotX
		}
		if plotY != "" {
			sc.Y, sc.YLabel = plotY, plotY
		}
		if plotWidth > 0 {
			sc.Width = plotWidth
		}
		if plotHeight > 0 {
			sc.Height = plotHeight
		}
		if err := sc.RenderFile(u.View, plotOutput); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Plotted %d rows to %s\n", u.View.Len(), plotOutput)
		return nil
	},
}

func scatterFromConfig(c *cfgpkg.Global) chart.Scatter {
	sc := chart.DefaultScatter()
	if c.ChartX != "" {
		sc.X = c.ChartX
	}
	if c.ChartY != "" {
		sc.Y = c.ChartY
	}
	if c.ChartTitle != "" {
		sc.Title = c.ChartTitle
	}
	if c.ChartXLabel != "" {
		sc.XLabel = c.ChartXLabel
	}
	if c.ChartYLabel != "" {
		sc.YLabel = c.ChartYLabel
	}
	return sc
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotFlags.register(plotCmd)
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "image path; .svg or .png")
	plotCmd.Flags().StringVar(&plotX, "x", "", "x-axis column (default chart_x)")
	plotCmd.Flags().StringVar(&plotY, "y", "", "y-axis column (default chart_y)")
	plotCmd.Flags().IntVar(&plotWidth, "width", 0, "image width in pixels")
	plotCmd.Flags().IntVar(&plotHeight, "height", 0, "image height in pixels")
}
