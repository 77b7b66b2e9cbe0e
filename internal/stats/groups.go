package stats

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"futures-journal/internal/models"
)

// Dimension selects the grouping key for a breakdown.
type Dimension string

const (
	DimensionStrategy Dimension = "strategy"
	DimensionAccount  Dimension = "account"
)

// ParseDimension validates a dimension name from user input.
func ParseDimension(name string) (Dimension, error) {
	switch Dimension(name) {
	case DimensionStrategy, DimensionAccount:
		return Dimension(name), nil
	}
	return "", fmt.Errorf("unknown dimension %q (want strategy or account)", name)
}

// GroupStat holds per-group aggregates for one distinct key value.
// NetProfit is only populated for the account dimension, where it is the
// last CumNetProfit seen in that group's current order.
type GroupStat struct {
	Key          string
	Trades       int
	Wins         int
	WinRate      float64
	ProfitSum    decimal.Decimal
	NetProfit    decimal.Decimal
	HasNetProfit bool
}

// GroupBy partitions the set by the chosen dimension and aggregates each
// partition. Every record lands in exactly one group; records with an empty
// key value form their own "" group. Results are emitted in alphabetical
// key order so output is deterministic.
func GroupBy(set models.TradeSet, dim Dimension) []GroupStat {
	if len(set) == 0 {
		return nil
	}

	groups := make(map[string]*GroupStat)
	for _, t := range set {
		key := t.Strategy
		if dim == DimensionAccount {
			key = t.Account
		}
		g, ok := groups[key]
		if !ok {
			g = &GroupStat{Key: key}
			groups[key] = g
		}
		g.Trades++
		if t.Profit.Sign() > 0 {
			g.Wins++
		}
		g.ProfitSum = g.ProfitSum.Add(t.Profit)
		if dim == DimensionAccount {
			g.NetProfit = t.CumNetProfit
			g.HasNetProfit = true
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]GroupStat, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		g.WinRate = float64(g.Wins) / float64(g.Trades)
		out = append(out, *g)
	}
	return out
}
