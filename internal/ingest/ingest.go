// Package ingest loads trade-log CSV exports into the record store.
package ingest

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"futures-journal/internal/models"
	"futures-journal/internal/normalize"
	"futures-journal/internal/store"
)

// insertBatchSize is the number of records committed per transaction.
const insertBatchSize = 200

// Result summarizes one ingestion run.
type Result struct {
	Files        int `json:"files"`
	SkippedFiles int `json:"skipped_files"`
	Rows         int `json:"rows"`
	Inserted     int `json:"inserted"`
	RowIssues    int `json:"row_issues"`
}

// Ingester reads export files, normalizes rows, and writes them to the
// store in batches.
type Ingester struct {
	store  store.DataStore
	logger zerolog.Logger
}

// New creates an Ingester.
func New(dataStore store.DataStore, logger zerolog.Logger) *Ingester {
	return &Ingester{store: dataStore, logger: logger}
}

// IngestFile loads a single CSV export. Rows with unparsable cells keep
// their field defaults and are counted as issues; they are still inserted.
// A file-level read error surfaces to the caller.
func (i *Ingester) IngestFile(ctx context.Context, path string) (Result, error) {
	var res Result

	rows, err := normalize.ReadCSVFile(path)
	if err != nil {
		return res, err
	}
	res.Files = 1

	batch := NewBatcher(insertBatchSize, func(trades []models.TradeRecord) error {
		if err := i.store.InsertTrades(ctx, trades); err != nil {
			return err
		}
		res.Inserted += len(trades)
		return nil
	})

	for _, row := range rows {
		res.Rows++
		rec, issues := normalize.NormalizeRow(row)
		if len(issues) > 0 {
			res.RowIssues++
			for _, issue := range issues {
				i.logger.Warn().
					Str("file", filepath.Base(path)).
					Str("field", issue.Field).
					Str("raw", issue.Raw).
					Msg("Unparsable cell, using field default")
			}
		}
		if err := batch.Add(rec); err != nil {
			return res, err
		}
	}
	if err := batch.Flush(); err != nil {
		return res, err
	}

	i.logger.Info().
		Str("file", filepath.Base(path)).
		Int("rows", res.Rows).
		Int("inserted", res.Inserted).
		Int("row_issues", res.RowIssues).
		Msg("File ingested")
	return res, nil
}

// IngestDir loads every .csv file under dir. A malformed or unreadable file
// is logged and skipped; ingestion of other files continues.
func (i *Ingester) IngestDir(ctx context.Context, dir string) (Result, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return Result{}, err
	}
	sort.Strings(paths)

	var total Result
	for _, path := range paths {
		if !strings.EqualFold(filepath.Ext(path), ".csv") {
			continue
		}
		res, err := i.IngestFile(ctx, path)
		if err != nil {
			total.SkippedFiles++
			i.logger.Warn().Err(err).Str("file", filepath.Base(path)).Msg("Skipping unreadable file")
			continue
		}
		total.Files += res.Files
		total.Rows += res.Rows
		total.Inserted += res.Inserted
		total.RowIssues += res.RowIssues
	}
	return total, nil
}
