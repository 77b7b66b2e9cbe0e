// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"futures-journal/internal/config"
	"futures-journal/internal/insight"
	"futures-journal/internal/logging"
	"futures-journal/internal/models"
	"futures-journal/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies. Collaborators are constructed
// once at startup and injected; nothing here is ambient global state.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Store   store.DataStore
	Insight *insight.Service
}

// Close releases the App's long-lived resources, currently the store's
// database connection.
func (app *App) Close() {
	if app.Store != nil {
		if err := app.Store.Close(); err != nil {
			app.Logger.Warn().Err(err).Msg("Failed to close store")
		}
	}
}

// NewRootCmd creates the root command for the CLI along with the App whose
// resources the caller must Close after Execute.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) (*cobra.Command, *App) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize SQLite store
	dataStore, err := store.NewSQLiteStore(cfg.Data.DatabasePath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, analytics will see no data")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.Data.DatabasePath).Msg("SQLite store initialized")
	}

	// Initialize text-generation client if a key is available
	if cfg.Credentials.OpenAI.APIKey != "" {
		client := insight.NewOpenAIClient(cfg.Credentials.OpenAI.APIKey, cfg.AI.Model)
		app.Insight = insight.New(client, logger)
		logger.Debug().Str("model", cfg.AI.Model).Msg("OpenAI client initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Futures trade journal analytics",
		Long: `Futures trade journal: ingest broker CSV exports and compute
performance analytics.

Drop export files into the data folder (or pass them to 'journal ingest'),
then use 'journal report', 'journal breakdown' and 'journal charts' to
review performance. 'journal analyze' asks an AI reviewer for free-text
feedback on recent trades.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/futures-journal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	addIngestCommands(rootCmd, app)
	addReportCommands(rootCmd, app)
	addChartCommands(rootCmd, app)
	addAnalyzeCommands(rootCmd, app)

	return rootCmd, app
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "journal %s\n", Version)
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Configuration")
			output.Printf("  Data folder:  %s\n", app.Config.Data.Dir)
			output.Printf("  Database:     %s\n", app.Config.Data.DatabasePath)
			output.Printf("  Chart output: %s\n", app.Config.Data.ChartDir)
			output.Printf("  AI model:     %s\n", app.Config.AI.Model)
			output.Printf("  Default tone: %s\n", app.Config.AI.DefaultTone)
			return nil
		},
	}
}

// filterFlags registers the shared account/date-range filter flags.
func filterFlags(cmd *cobra.Command) {
	cmd.Flags().String("account", "", "restrict to one account (default: all)")
	cmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD, inclusive)")
}

// filterFromFlags builds a store filter from the shared flags.
func filterFromFlags(cmd *cobra.Command) (store.TradeFilter, error) {
	var filter store.TradeFilter
	filter.Account, _ = cmd.Flags().GetString("account")

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		filter.Start = t
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		// Inclusive end of day
		filter.End = t.Add(24*time.Hour - time.Second)
	}
	return filter, nil
}

// loadTrades queries the store with the given filter. Store failures
// degrade to an empty set with a warning, never a fault: downstream
// components treat absence as "no data to display".
func (app *App) loadTrades(ctx context.Context, filter store.TradeFilter) models.TradeSet {
	if app.Store == nil {
		return nil
	}
	logger := app.Logger
	if filter.Account != "" {
		logger = logging.WithAccount(logger, filter.Account)
	}
	trades, err := app.Store.GetTrades(ctx, filter)
	if err != nil {
		logger.Warn().Err(err).Msg("Store query failed, treating as empty data set")
		return nil
	}
	return trades
}
