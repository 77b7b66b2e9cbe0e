package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"futures-journal/internal/insight"
)

// addAnalyzeCommands adds the analyze command.
func addAnalyzeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "AI review of recent trades",
		Long: `Send the most recent trades to the text-generation service and print
its free-text review. The tone preset controls the style of the
feedback.`,
		Example: `  journal analyze
  journal analyze --tone blunt --last 10
  journal analyze --account Sim101 --tone supportive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)
			ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
			defer cancel()

			if app.Insight == nil {
				output.Warning("No OpenAI API key configured. Set OPENAI_API_KEY or edit credentials.toml.")
				return nil
			}

			toneName, _ := cmd.Flags().GetString("tone")
			if toneName == "" {
				toneName = app.Config.AI.DefaultTone
			}
			tone, err := insight.ParseTone(toneName)
			if err != nil {
				return err
			}

			filter, err := filterFromFlags(cmd)
			if err != nil {
				return err
			}

			// Store order is exit_time descending, so the head of the set
			// is the most recent trades.
			set := app.loadTrades(ctx, filter)
			if len(set) == 0 {
				output.Info("No trades recorded; nothing to analyze.")
				return nil
			}

			last, _ := cmd.Flags().GetInt("last")
			if last <= 0 {
				last = app.Config.AI.MaxTrades
			}
			if last > 0 && len(set) > last {
				set = set[:last]
			}

			output.Info("Analyzing %d trade(s) with %s tone...", len(set), tone)
			text, err := app.Insight.Analyze(ctx, set, tone)
			if err != nil {
				output.Error("Analysis failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]any{"tone": tone, "analysis": text})
			}
			output.Println()
			output.Println(text)
			return nil
		},
	}

	cmd.Flags().String("tone", "", "style preset: analytical, supportive, blunt")
	cmd.Flags().Int("last", 0, "number of most recent trades to review")
	filterFlags(cmd)
	rootCmd.AddCommand(cmd)
}
