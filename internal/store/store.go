// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"futures-journal/internal/models"
)

// DataStore is the record-store collaborator: ingest writes trade records,
// reporting reads them back. Reads and writes may interleave across
// concurrent callers with no transactional isolation guaranteed here.
type DataStore interface {
	InsertTrade(ctx context.Context, trade models.TradeRecord) error
	InsertTrades(ctx context.Context, trades models.TradeSet) error

	// GetTrades returns matching records ordered by exit_time descending.
	GetTrades(ctx context.Context, filter TradeFilter) (models.TradeSet, error)

	// ListAccounts returns the distinct account values, sorted.
	ListAccounts(ctx context.Context) ([]string, error)

	Close() error
}

// TradeFilter represents filters for querying trades. Zero values mean
// "no constraint".
type TradeFilter struct {
	Account string
	Start   time.Time
	End     time.Time
}
