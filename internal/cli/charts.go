package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"futures-journal/internal/series"
	"futures-journal/internal/stats"
)

// addChartCommands adds the charts command.
func addChartCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Emit chart-input series as artifacts",
		Long: `Derive the numeric series behind each chart and hand them to the
plotting sink, which writes one artifact per series:

  profit_curve     cumulative net profit over exit time
  win_loss         trade outcome counts
  profit_dist      profit histogram (15 bins)
  strategy_profit  profit per strategy, ascending
  account_profit   profit per account (only in the unfiltered view)`,
		Example: `  journal charts
  journal charts --account Sim101 --out /tmp/charts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			filter, err := filterFromFlags(cmd)
			if err != nil {
				return err
			}
			outDir, _ := cmd.Flags().GetString("out")
			if outDir == "" {
				outDir = app.Config.Data.ChartDir
			}

			set := app.loadTrades(ctx, filter)
			if len(set) == 0 {
				output.Info("No trades recorded; no series to emit.")
				return nil
			}

			sink, err := series.NewArtifactWriter(outDir)
			if err != nil {
				return err
			}

			var artifacts []string
			record := func(path string, err error) error {
				if err != nil {
					return err
				}
				artifacts = append(artifacts, path)
				return nil
			}

			if points := series.CumulativeProfit(set); len(points) > 0 {
				title := "Cumulative Net Profit Over Time"
				if filter.Account != "" {
					title += " - " + filter.Account
				}
				if err := record(sink.RenderCurve(points, series.Style{
					Name: "profit_curve", Title: title,
					XLabel: "Exit Time", YLabel: "Cumulative Profit ($)",
				})); err != nil {
					return err
				}
			}

			if outcomes := series.OutcomeCounts(set); outcomes != nil {
				if err := record(sink.RenderOutcomes(*outcomes, series.Style{
					Name: "win_loss", Title: "Trade Outcomes",
					YLabel: "Number of Trades",
				})); err != nil {
					return err
				}
			}

			if hist := series.ProfitHistogram(set); hist != nil {
				if err := record(sink.RenderHistogram(*hist, series.Style{
					Name: "profit_dist", Title: "Profit Distribution",
					XLabel: "Profit ($)", YLabel: "Frequency",
				})); err != nil {
					return err
				}
			}

			if bars := series.GroupProfitBars(set, stats.DimensionStrategy); len(bars) > 0 {
				if err := record(sink.RenderBars(bars, series.Style{
					Name: "strategy_profit", Title: "Profit by Strategy",
					XLabel: "Total Profit ($)",
				})); err != nil {
					return err
				}
			}

			// Account comparison bars only make sense in the unfiltered
			// view, and only when there is something to compare.
			if filter.Account == "" && len(set.Accounts()) > 1 {
				if bars := series.GroupProfitBars(set, stats.DimensionAccount); len(bars) > 0 {
					if err := record(sink.RenderBars(bars, series.Style{
						Name: "account_profit", Title: "Profit by Account",
						XLabel: "Total Profit ($)",
					})); err != nil {
						return err
					}
				}
			}

			if output.IsJSON() {
				return output.JSON(map[string]any{"artifacts": artifacts})
			}
			output.Success("Wrote %d series artifact(s)", len(artifacts))
			for _, path := range artifacts {
				output.Printf("  %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().String("out", "", "artifact output directory (default: configured chart_dir)")
	filterFlags(cmd)
	rootCmd.AddCommand(cmd)
}
