// Package normalize turns raw trade-log export rows into canonical records.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "futures-journal/internal/errors"
	"futures-journal/internal/models"
)

// Canonical column keys. Export headers are canonicalized before lookup, so
// both "Cum. net profit" and "cum_net_profit" resolve to the same field.
const (
	colTradeNumber  = "trade_number"
	colInstrument   = "instrument"
	colAccount      = "account"
	colStrategy     = "strategy"
	colMarketPos    = "market_pos"
	colQty          = "qty"
	colEntryPrice   = "entry_price"
	colExitPrice    = "exit_price"
	colEntryTime    = "entry_time"
	colExitTime     = "exit_time"
	colEntryName    = "entry_name"
	colExitName     = "exit_name"
	colProfit       = "profit"
	colCumNetProfit = "cum_net_profit"
	colCommission   = "commission"
	colMAE          = "mae"
	colMFE          = "mfe"
)

// timeLayouts are the timestamp formats seen in broker exports, tried in
// order.
var timeLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/2006 3:04 PM",
	"2006-01-02",
}

// CanonicalKey normalizes a column header: lowercased, trimmed, periods
// stripped, runs of spaces collapsed to single underscores.
func CanonicalKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, ".", "")
	key = strings.Join(strings.Fields(key), "_")
	return key
}

// NormalizeRow converts one raw row into a TradeRecord. Keys may use the
// export's titlecase/spaced names or the lowercase canonical form. Cells
// that fail to parse leave the field at its zero value and are reported as
// ParseErrors; a row is never rejected for a bad cell.
func NormalizeRow(row map[string]string) (models.TradeRecord, []*apperrors.ParseError) {
	cells := make(map[string]string, len(row))
	for k, v := range row {
		cells[CanonicalKey(k)] = strings.TrimSpace(v)
	}

	var rec models.TradeRecord
	var issues []*apperrors.ParseError

	money := func(col string) decimal.Decimal {
		d, issue := parseMoney(col, cells[col])
		if issue != nil {
			issues = append(issues, issue)
		}
		return d
	}
	stamp := func(col string) time.Time {
		t, issue := parseTime(col, cells[col])
		if issue != nil {
			issues = append(issues, issue)
		}
		return t
	}

	rec.TradeNumber, issues = parseInt(colTradeNumber, cells[colTradeNumber], issues)
	rec.Instrument = cells[colInstrument]
	rec.Account = cells[colAccount]
	rec.Strategy = cells[colStrategy]
	rec.MarketPos = cells[colMarketPos]
	rec.Qty, issues = parseInt(colQty, cells[colQty], issues)
	rec.EntryPrice = money(colEntryPrice)
	rec.ExitPrice = money(colExitPrice)
	rec.EntryTime = stamp(colEntryTime)
	rec.ExitTime = stamp(colExitTime)
	rec.EntryName = cells[colEntryName]
	rec.ExitName = cells[colExitName]
	rec.Profit = money(colProfit)
	rec.CumNetProfit = money(colCumNetProfit)
	rec.Commission = money(colCommission)
	rec.MAE = money(colMAE)
	rec.MFE = money(colMFE)

	return rec, issues
}

// parseMoney strips currency decoration ($ and thousands separators) and
// parses the remainder as a decimal. Empty cells are a zero value, not an
// error.
func parseMoney(col, raw string) (decimal.Decimal, *apperrors.ParseError) {
	if raw == "" {
		return decimal.Zero, nil
	}
	cleaned := strings.ReplaceAll(raw, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	// Some exports write negatives as ($12.50)
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, apperrors.NewParseError(col, raw, err)
	}
	return d, nil
}

func parseInt(col, raw string, issues []*apperrors.ParseError) (int, []*apperrors.ParseError) {
	if raw == "" {
		return 0, issues
	}
	cleaned := strings.ReplaceAll(raw, ",", "")
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		// Exports occasionally write integer columns as "2.0"
		if f, ferr := strconv.ParseFloat(cleaned, 64); ferr == nil {
			return int(f), issues
		}
		return 0, append(issues, apperrors.NewParseError(col, raw, err))
	}
	return n, issues
}

// parseTime tries each known layout; an unparsable timestamp becomes absent
// (zero time) rather than fatal.
func parseTime(col, raw string) (time.Time, *apperrors.ParseError) {
	if raw == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, apperrors.NewParseError(col, raw, lastErr)
}
