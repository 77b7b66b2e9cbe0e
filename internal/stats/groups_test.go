package stats

import (
	"testing"

	"github.com/shopspring/decimal"

	"futures-journal/internal/models"
)

func tradeFor(strategy, account string, profit float64) models.TradeRecord {
	return models.TradeRecord{
		Strategy: strategy,
		Account:  account,
		Profit:   decimal.NewFromFloat(profit),
	}
}

func TestGroupByStrategyScenario(t *testing.T) {
	// {A: [10,-5], B: [20]}
	set := models.TradeSet{
		tradeFor("A", "", 10),
		tradeFor("A", "", -5),
		tradeFor("B", "", 20),
	}

	groups := GroupBy(set, DimensionStrategy)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "A" || groups[1].Key != "B" {
		t.Fatalf("expected alphabetical order, got %q, %q", groups[0].Key, groups[1].Key)
	}

	a, b := groups[0], groups[1]
	if a.ProfitSum.String() != "5" {
		t.Errorf("A profit_sum = %s, want 5", a.ProfitSum)
	}
	if b.ProfitSum.String() != "20" {
		t.Errorf("B profit_sum = %s, want 20", b.ProfitSum)
	}
	if a.Trades != 2 || a.Wins != 1 {
		t.Errorf("A = %+v", a)
	}

	// Partition invariant: group sums equal the ungrouped total.
	total := Compute(set).TotalProfit
	if !a.ProfitSum.Add(b.ProfitSum).Equal(total) {
		t.Errorf("partition invariant broken: %s + %s != %s", a.ProfitSum, b.ProfitSum, total)
	}
}

func TestGroupByEmptyKeyFormsOwnGroup(t *testing.T) {
	set := models.TradeSet{
		tradeFor("", "", 7),
		tradeFor("Scalp", "", 3),
	}

	groups := GroupBy(set, DimensionStrategy)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	// "" sorts before any named key.
	if groups[0].Key != "" || groups[0].Trades != 1 {
		t.Errorf("empty-key group missing: %+v", groups)
	}
	if groups[0].ProfitSum.String() != "7" {
		t.Errorf("empty-key profit = %s, want 7", groups[0].ProfitSum)
	}
}

func TestGroupByAccountNetProfit(t *testing.T) {
	set := models.TradeSet{
		{Account: "Sim101", Profit: decimal.NewFromInt(10), CumNetProfit: decimal.NewFromInt(10)},
		{Account: "Sim101", Profit: decimal.NewFromInt(-4), CumNetProfit: decimal.NewFromInt(6)},
		{Account: "Live1", Profit: decimal.NewFromInt(2), CumNetProfit: decimal.NewFromInt(2)},
	}

	groups := GroupBy(set, DimensionAccount)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	byKey := map[string]GroupStat{}
	for _, g := range groups {
		byKey[g.Key] = g
	}

	sim := byKey["Sim101"]
	if !sim.HasNetProfit || sim.NetProfit.String() != "6" {
		t.Errorf("Sim101 net profit = %+v, want 6", sim)
	}
	if byKey["Live1"].NetProfit.String() != "2" {
		t.Errorf("Live1 net profit = %s", byKey["Live1"].NetProfit)
	}
}

func TestGroupByStrategyHasNoNetProfit(t *testing.T) {
	set := models.TradeSet{tradeFor("A", "", 1)}
	groups := GroupBy(set, DimensionStrategy)
	if groups[0].HasNetProfit {
		t.Error("strategy dimension must not carry net profit")
	}
}

func TestGroupByEmptySet(t *testing.T) {
	if groups := GroupBy(nil, DimensionStrategy); len(groups) != 0 {
		t.Fatalf("expected empty mapping, got %+v", groups)
	}
}

func TestGroupByDeterministicOrder(t *testing.T) {
	set := models.TradeSet{
		tradeFor("zeta", "", 1),
		tradeFor("alpha", "", 1),
		tradeFor("mid", "", 1),
		tradeFor("zeta", "", 1),
	}
	first := GroupBy(set, DimensionStrategy)
	for i := 0; i < 10; i++ {
		again := GroupBy(set, DimensionStrategy)
		for j := range first {
			if again[j].Key != first[j].Key {
				t.Fatalf("iteration order changed between runs: %v vs %v", again, first)
			}
		}
	}
	if first[0].Key != "alpha" || first[1].Key != "mid" || first[2].Key != "zeta" {
		t.Errorf("expected alphabetical keys, got %+v", first)
	}
}

func TestParseDimension(t *testing.T) {
	if _, err := ParseDimension("strategy"); err != nil {
		t.Errorf("strategy: %v", err)
	}
	if _, err := ParseDimension("account"); err != nil {
		t.Errorf("account: %v", err)
	}
	if _, err := ParseDimension("instrument"); err == nil {
		t.Error("expected error for unknown dimension")
	}
}
