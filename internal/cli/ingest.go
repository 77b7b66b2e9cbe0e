package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"futures-journal/internal/ingest"
	"futures-journal/internal/logging"
)

// addIngestCommands adds the ingest command.
func addIngestCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "ingest [file...]",
		Short: "Load broker CSV exports into the journal",
		Long: `Load trade-log CSV exports into the journal database.

Without arguments, every .csv file in the configured data folder is
ingested. Malformed files are skipped with a diagnostic; rows with
unparsable cells keep their field defaults and are still recorded.

Re-ingesting the same file adds its trades again: the journal keeps
duplicates as distinct records.`,
		Example: `  journal ingest
  journal ingest exports/march.csv exports/april.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)
			ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized; cannot ingest.")
				return fmt.Errorf("store unavailable")
			}

			ing := ingest.New(app.Store, logging.WithOperation(app.Logger, "ingest"))

			var total ingest.Result
			if len(args) == 0 {
				res, err := ing.IngestDir(ctx, app.Config.Data.Dir)
				if err != nil {
					return err
				}
				total = res
			} else {
				for _, path := range args {
					res, err := ing.IngestFile(ctx, path)
					if err != nil {
						total.SkippedFiles++
						output.Warning("Skipping %s: %v", path, err)
						continue
					}
					total.Files += res.Files
					total.Rows += res.Rows
					total.Inserted += res.Inserted
					total.RowIssues += res.RowIssues
				}
			}

			if output.IsJSON() {
				return output.JSON(total)
			}

			output.Success("Ingested %d trades from %d file(s)", total.Inserted, total.Files)
			if total.RowIssues > 0 {
				output.Warning("%d row(s) had unparsable cells (fields defaulted)", total.RowIssues)
			}
			if total.SkippedFiles > 0 {
				output.Warning("%d file(s) skipped as unreadable", total.SkippedFiles)
			}
			return nil
		},
	}

	rootCmd.AddCommand(cmd)
}
