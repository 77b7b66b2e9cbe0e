package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"futures-journal/internal/stats"
	"futures-journal/internal/store"
	"futures-journal/pkg/utils"
)

// maxKeyWidth caps strategy/account labels in table cells.
const maxKeyWidth = 32

// addReportCommands adds the report, breakdown and accounts commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newReportCmd(app))
	rootCmd.AddCommand(newBreakdownCmd(app))
	rootCmd.AddCommand(newAccountsCmd(app))
}

// formatPeriod renders a date-range filter for display, empty when the
// filter is unbounded on both sides.
func formatPeriod(filter store.TradeFilter, layout string) string {
	if filter.Start.IsZero() && filter.End.IsZero() {
		return ""
	}
	if layout == "" {
		layout = "02-Jan-2006"
	}
	from, to := "...", "..."
	if !filter.Start.IsZero() {
		from = filter.Start.Format(layout)
	}
	if !filter.End.IsZero() {
		to = filter.End.Format(layout)
	}
	return from + " to " + to
}

// newAccountsCmd lists the accounts present in the journal, feeding the
// --account filter.
func newAccountsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List accounts present in the journal",
		Example: `  journal accounts
  journal report --account Sim101`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			var accounts []string
			if app.Store != nil {
				var err error
				accounts, err = app.Store.ListAccounts(ctx)
				if err != nil {
					return err
				}
			}

			if output.IsJSON() {
				return output.JSON(map[string]any{"accounts": accounts})
			}
			if len(accounts) == 0 {
				output.Info("No trades recorded. Run 'journal ingest' to load exports.")
				return nil
			}
			output.Bold("Accounts")
			for _, account := range accounts {
				output.Printf("  %s\n", account)
			}
			return nil
		},
	}
}

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show overall performance metrics",
		Long: `Compute the full performance summary over the journal: trade counts,
win rate, profit statistics, risk/reward and expectancy, plus strategy
and account breakdowns.

Metrics are recomputed from the full (filtered) data set on every run.`,
		Example: `  journal report
  journal report --account Sim101
  journal report --from 2024-01-01 --to 2024-03-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			filter, err := filterFromFlags(cmd)
			if err != nil {
				return err
			}

			// Sort by exit time so net profit reflects the most recent
			// realized figure rather than store order.
			set := app.loadTrades(ctx, filter).SortByExitTime()

			summary := stats.Compute(set)
			if summary == nil {
				output.Info("No trades recorded. Run 'journal ingest' to load exports.")
				return nil
			}

			strategyStats := stats.GroupBy(set, stats.DimensionStrategy)
			var accountStats []stats.GroupStat
			if filter.Account == "" {
				accountStats = stats.GroupBy(set, stats.DimensionAccount)
			}

			if output.IsJSON() {
				return output.JSON(map[string]any{
					"summary":    summary.View(),
					"strategies": groupViews(strategyStats),
					"accounts":   groupViews(accountStats),
				})
			}

			title := "Performance Report"
			if filter.Account != "" {
				title += " - " + filter.Account
			}
			output.Bold("%s", title)
			if period := formatPeriod(filter, app.Config.UI.DateFormat); period != "" {
				output.Dim("Period: %s", period)
			}
			output.Println()

			renderSummary(output, summary)

			if len(accountStats) > 0 {
				output.Println()
				output.Bold("Account Comparison")
				table := NewTable(output, "Account", "Trades", "Wins", "Win Rate", "Total Profit", "Net Profit")
				for _, g := range accountStats {
					table.AddRow(
						utils.TruncateString(g.Key, maxKeyWidth),
						fmt.Sprintf("%d", g.Trades),
						fmt.Sprintf("%d", g.Wins),
						stats.FormatWinRate(g.WinRate),
						output.FormatProfit(g.ProfitSum),
						output.FormatProfit(g.NetProfit),
					)
				}
				table.Render()
			}

			if len(strategyStats) > 0 {
				output.Println()
				output.Bold("Strategy Breakdown")
				table := NewTable(output, "Strategy", "Trades", "Wins", "Win Rate", "Profit")
				for _, g := range strategyStats {
					table.AddRow(
						utils.TruncateString(g.Key, maxKeyWidth),
						fmt.Sprintf("%d", g.Trades),
						fmt.Sprintf("%d", g.Wins),
						stats.FormatWinRate(g.WinRate),
						output.FormatProfit(g.ProfitSum),
					)
				}
				table.Render()
			}

			return nil
		},
	}

	filterFlags(cmd)
	return cmd
}

func renderSummary(output *Output, summary *stats.Summary) {
	view := summary.View()
	output.Printf("  Total Trades:   %d\n", view.TotalTrades)
	output.Printf("  Wins/Losses:    %d/%d (%d break even)\n", view.WinningTrades, view.LosingTrades, view.BreakEven)
	output.Printf("  Win Rate:       %s\n", view.WinRate)
	output.Printf("  Net Profit:     %s\n", output.FormatProfit(summary.NetProfit))
	output.Printf("  Total Profit:   %s\n", output.FormatProfit(summary.TotalProfit))
	output.Printf("  Avg Trade:      %s\n", output.FormatProfit(summary.AvgProfit))
	output.Printf("  Avg Win:        %s\n", output.FormatProfit(summary.AvgWin))
	output.Printf("  Avg Loss:       %s\n", output.FormatProfit(summary.AvgLoss))
	output.Printf("  Largest Win:    %s\n", output.FormatProfit(summary.LargestWin))
	output.Printf("  Largest Loss:   %s\n", output.FormatProfit(summary.LargestLoss))
	output.Printf("  Risk/Reward:    %s\n", view.RiskReward)
	output.Printf("  Expectancy:     %s\n", view.Expectancy)
}

func newBreakdownCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Show per-strategy or per-account aggregates",
		Example: `  journal breakdown --by strategy
  journal breakdown --by account --from 2024-01-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			by, _ := cmd.Flags().GetString("by")
			dim, err := stats.ParseDimension(by)
			if err != nil {
				return err
			}
			filter, err := filterFromFlags(cmd)
			if err != nil {
				return err
			}

			set := app.loadTrades(ctx, filter).SortByExitTime()
			groups := stats.GroupBy(set, dim)
			if len(groups) == 0 {
				output.Info("No trades recorded.")
				return nil
			}

			if output.IsJSON() {
				return output.JSON(groupViews(groups))
			}

			output.Bold("Breakdown by %s", by)
			output.Println()
			headers := []string{"Key", "Trades", "Wins", "Win Rate", "Profit"}
			if dim == stats.DimensionAccount {
				headers = append(headers, "Net Profit")
			}
			table := NewTable(output, headers...)
			for _, g := range groups {
				key := g.Key
				if key == "" {
					key = "(none)"
				}
				row := []string{
					utils.TruncateString(key, maxKeyWidth),
					fmt.Sprintf("%d", g.Trades),
					fmt.Sprintf("%d", g.Wins),
					stats.FormatWinRate(g.WinRate),
					output.FormatProfit(g.ProfitSum),
				}
				if dim == stats.DimensionAccount {
					row = append(row, output.FormatProfit(g.NetProfit))
				}
				table.AddRow(row...)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().String("by", "strategy", "grouping dimension: strategy or account")
	filterFlags(cmd)
	return cmd
}

// groupView is the JSON form of a GroupStat.
type groupView struct {
	Key       string `json:"key"`
	Trades    int    `json:"trades"`
	Wins      int    `json:"wins"`
	WinRate   string `json:"win_rate"`
	ProfitSum string `json:"profit_sum"`
	NetProfit string `json:"net_profit,omitempty"`
}

func groupViews(groups []stats.GroupStat) []groupView {
	views := make([]groupView, 0, len(groups))
	for _, g := range groups {
		v := groupView{
			Key:       g.Key,
			Trades:    g.Trades,
			Wins:      g.Wins,
			WinRate:   stats.FormatWinRate(g.WinRate),
			ProfitSum: utils.FormatUSD(g.ProfitSum),
		}
		if g.HasNetProfit {
			v.NetProfit = utils.FormatUSD(g.NetProfit)
		}
		views = append(views, v)
	}
	return views
}
