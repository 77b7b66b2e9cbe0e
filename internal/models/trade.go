// Package models defines the canonical trade record shared by all components.
package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TradeRecord represents one closed futures trade as reported by a broker
// export. Monetary fields are signed decimals; a zero time.Time means the
// timestamp was absent or unparsable.
type TradeRecord struct {
	TradeNumber  int
	Instrument   string
	Account      string
	Strategy     string
	MarketPos    string // "Long" / "Short"
	Qty          int
	EntryPrice   decimal.Decimal
	ExitPrice    decimal.Decimal
	EntryTime    time.Time
	ExitTime     time.Time
	EntryName    string
	ExitName     string
	Profit       decimal.Decimal
	CumNetProfit decimal.Decimal
	Commission   decimal.Decimal
	MAE          decimal.Decimal
	MFE          decimal.Decimal
}

// HasExitTime reports whether the record carries a parsed exit timestamp.
func (t TradeRecord) HasExitTime() bool {
	return !t.ExitTime.IsZero()
}

// TradeSet is an ordered sequence of trade records. Order is insertion order
// (source-file concatenation order) unless explicitly re-sorted. A TradeSet
// is request-scoped and never mutated after construction, so it needs no
// locking.
type TradeSet []TradeRecord

// SortByExitTime returns a copy of the set stably sorted by exit time
// ascending. Records without an exit time sort first and keep their
// relative order.
func (s TradeSet) SortByExitTime() TradeSet {
	sorted := make(TradeSet, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExitTime.Before(sorted[j].ExitTime)
	})
	return sorted
}

// Accounts returns the distinct account values in first-occurrence order.
func (s TradeSet) Accounts() []string {
	seen := make(map[string]bool)
	var accounts []string
	for _, t := range s {
		if !seen[t.Account] {
			seen[t.Account] = true
			accounts = append(accounts, t.Account)
		}
	}
	return accounts
}
