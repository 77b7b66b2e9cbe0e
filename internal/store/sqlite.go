package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	apperrors "futures-journal/internal/errors"
	"futures-journal/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the trades table and indexes. Monetary columns are
// stored as decimal strings to avoid float drift on round-trips. There is
// deliberately no uniqueness constraint: re-ingesting the same file keeps
// duplicates as distinct records.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trade_number INTEGER DEFAULT 0,
		instrument TEXT DEFAULT '',
		account TEXT DEFAULT '',
		strategy TEXT DEFAULT '',
		market_pos TEXT DEFAULT '',
		qty INTEGER DEFAULT 0,
		entry_price TEXT NOT NULL DEFAULT '0',
		exit_price TEXT NOT NULL DEFAULT '0',
		entry_time DATETIME,
		exit_time DATETIME,
		entry_name TEXT DEFAULT '',
		exit_name TEXT DEFAULT '',
		profit TEXT NOT NULL DEFAULT '0',
		cum_net_profit TEXT NOT NULL DEFAULT '0',
		commission TEXT NOT NULL DEFAULT '0',
		mae TEXT NOT NULL DEFAULT '0',
		mfe TEXT NOT NULL DEFAULT '0',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trades_account ON trades(account);
	CREATE INDEX IF NOT EXISTS idx_trades_exit_time ON trades(exit_time);
	`

	_, err := s.db.Exec(schema)
	return err
}

const insertTradeSQL = `
	INSERT INTO trades (
		trade_number, instrument, account, strategy, market_pos, qty,
		entry_price, exit_price, entry_time, exit_time, entry_name, exit_name,
		profit, cum_net_profit, commission, mae, mfe
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertTrade persists a single trade record.
func (s *SQLiteStore) InsertTrade(ctx context.Context, trade models.TradeRecord) error {
	_, err := s.db.ExecContext(ctx, insertTradeSQL, insertArgs(trade)...)
	if err != nil {
		return fmt.Errorf("%w: insert trade: %v", apperrors.ErrDatabaseError, err)
	}
	return nil
}

// InsertTrades persists a batch of records in one transaction.
func (s *SQLiteStore) InsertTrades(ctx context.Context, trades models.TradeSet) error {
	if len(trades) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", apperrors.ErrDatabaseError, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertTradeSQL)
	if err != nil {
		return fmt.Errorf("%w: prepare insert: %v", apperrors.ErrDatabaseError, err)
	}
	defer stmt.Close()

	for _, trade := range trades {
		if _, err := stmt.ExecContext(ctx, insertArgs(trade)...); err != nil {
			return fmt.Errorf("%w: insert trade: %v", apperrors.ErrDatabaseError, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", apperrors.ErrDatabaseError, err)
	}
	return nil
}

func insertArgs(t models.TradeRecord) []any {
	return []any{
		t.TradeNumber, t.Instrument, t.Account, t.Strategy, t.MarketPos, t.Qty,
		t.EntryPrice.String(), t.ExitPrice.String(),
		nullTime(t.EntryTime), nullTime(t.ExitTime),
		t.EntryName, t.ExitName,
		t.Profit.String(), t.CumNetProfit.String(), t.Commission.String(),
		t.MAE.String(), t.MFE.String(),
	}
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

// GetTrades returns matching records ordered by exit_time descending, with
// NULL exit times last.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) (models.TradeSet, error) {
	query := `
		SELECT trade_number, instrument, account, strategy, market_pos, qty,
		       entry_price, exit_price, entry_time, exit_time, entry_name, exit_name,
		       profit, cum_net_profit, commission, mae, mfe
		FROM trades WHERE 1=1`
	var args []any

	if filter.Account != "" {
		query += " AND account = ?"
		args = append(args, filter.Account)
	}
	if !filter.Start.IsZero() {
		query += " AND exit_time >= ?"
		args = append(args, filter.Start)
	}
	if !filter.End.IsZero() {
		query += " AND exit_time <= ?"
		args = append(args, filter.End)
	}
	query += " ORDER BY exit_time DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query trades: %v", apperrors.ErrDatabaseError, err)
	}
	defer rows.Close()

	var trades models.TradeSet
	for rows.Next() {
		var (
			t                          models.TradeRecord
			entryPrice, exitPrice      string
			profit, cumNet, commission string
			mae, mfe                   string
			entryTime, exitTime        sql.NullTime
		)
		err := rows.Scan(
			&t.TradeNumber, &t.Instrument, &t.Account, &t.Strategy, &t.MarketPos, &t.Qty,
			&entryPrice, &exitPrice, &entryTime, &exitTime, &t.EntryName, &t.ExitName,
			&profit, &cumNet, &commission, &mae, &mfe,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan trade: %v", apperrors.ErrDatabaseError, err)
		}
		t.EntryPrice = mustDecimal(entryPrice)
		t.ExitPrice = mustDecimal(exitPrice)
		t.Profit = mustDecimal(profit)
		t.CumNetProfit = mustDecimal(cumNet)
		t.Commission = mustDecimal(commission)
		t.MAE = mustDecimal(mae)
		t.MFE = mustDecimal(mfe)
		if entryTime.Valid {
			t.EntryTime = entryTime.Time
		}
		if exitTime.Valid {
			t.ExitTime = exitTime.Time
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate trades: %v", apperrors.ErrDatabaseError, err)
	}
	return trades, nil
}

// mustDecimal parses a stored decimal string; a corrupt cell degrades to
// zero rather than failing the whole read.
func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ListAccounts returns the distinct account values, sorted.
func (s *SQLiteStore) ListAccounts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT account FROM trades ORDER BY account`)
	if err != nil {
		return nil, fmt.Errorf("%w: list accounts: %v", apperrors.ErrDatabaseError, err)
	}
	defer rows.Close()

	var accounts []string
	for rows.Next() {
		var account string
		if err := rows.Scan(&account); err != nil {
			return nil, fmt.Errorf("%w: scan account: %v", apperrors.ErrDatabaseError, err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
