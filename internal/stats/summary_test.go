package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"futures-journal/internal/models"
)

func tradeWithProfit(profit float64) models.TradeRecord {
	return models.TradeRecord{Profit: decimal.NewFromFloat(profit)}
}

func setFromProfits(profits ...float64) models.TradeSet {
	set := make(models.TradeSet, 0, len(profits))
	for _, p := range profits {
		set = append(set, tradeWithProfit(p))
	}
	return set
}

func TestComputeEmptySetReturnsNoSummary(t *testing.T) {
	if got := Compute(nil); got != nil {
		t.Fatalf("Compute(nil) = %+v, want nil", got)
	}
	if got := Compute(models.TradeSet{}); got != nil {
		t.Fatalf("Compute(empty) = %+v, want nil", got)
	}
}

func TestComputeReferenceScenario(t *testing.T) {
	// profits [100, -50, 0]
	set := setFromProfits(100, -50, 0)
	s := Compute(set)
	if s == nil {
		t.Fatal("expected a summary")
	}

	if s.TotalTrades != 3 || s.WinningTrades != 1 || s.LosingTrades != 1 || s.BreakEven != 1 {
		t.Errorf("counts: %+v", s)
	}

	view := s.View()
	checks := map[string]string{
		"win_rate":     view.WinRate,
		"total_profit": view.TotalProfit,
		"avg_profit":   view.AvgProfit,
		"avg_win":      view.AvgWin,
		"avg_loss":     view.AvgLoss,
		"risk_reward":  view.RiskReward,
		"expectancy":   view.Expectancy,
	}
	want := map[string]string{
		"win_rate":     "33.3%",
		"total_profit": "$50.00",
		"avg_profit":   "$16.67",
		"avg_win":      "$100.00",
		"avg_loss":     "-$50.00",
		"risk_reward":  "2.00",
		"expectancy":   "$16.67",
	}
	for k, w := range want {
		if checks[k] != w {
			t.Errorf("%s = %q, want %q", k, checks[k], w)
		}
	}
}

func TestComputeLargestWinLoss(t *testing.T) {
	s := Compute(setFromProfits(-10, -250.5, -3))
	if s.LargestWin.String() != "-3" {
		t.Errorf("LargestWin = %s, want -3 (max of an all-loss set)", s.LargestWin)
	}
	if s.LargestLoss.String() != "-250.5" {
		t.Errorf("LargestLoss = %s, want -250.5", s.LargestLoss)
	}
}

func TestComputeRiskRewardSentinel(t *testing.T) {
	cases := []models.TradeSet{
		setFromProfits(10, 20),  // no losses
		setFromProfits(-10, -5), // no wins
		setFromProfits(0, 0),    // all break even
	}
	for i, set := range cases {
		s := Compute(set)
		if s.HasRiskReward {
			t.Errorf("case %d: expected N/A risk/reward, got %s", i, s.RiskReward)
		}
		if s.View().RiskReward != "N/A" {
			t.Errorf("case %d: view = %q", i, s.View().RiskReward)
		}
	}
}

func TestComputeNetProfitIsOrderSensitive(t *testing.T) {
	early := models.TradeRecord{
		Profit:       decimal.NewFromInt(10),
		CumNetProfit: decimal.NewFromInt(10),
		ExitTime:     time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	late := models.TradeRecord{
		Profit:       decimal.NewFromInt(5),
		CumNetProfit: decimal.NewFromInt(15),
		ExitTime:     time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
	}

	// Store order is exit_time descending; Compute does not re-sort.
	s := Compute(models.TradeSet{late, early})
	if s.NetProfit.String() != "10" {
		t.Errorf("NetProfit on raw store order = %s, want 10", s.NetProfit)
	}

	// Sorting first yields the latest realized figure.
	s = Compute(models.TradeSet{late, early}.SortByExitTime())
	if s.NetProfit.String() != "15" {
		t.Errorf("NetProfit after exit-time sort = %s, want 15", s.NetProfit)
	}
}

func TestComputeBreakEvenOnly(t *testing.T) {
	s := Compute(setFromProfits(0, 0, 0))
	if s.WinRate != 0 {
		t.Errorf("WinRate = %f, want 0", s.WinRate)
	}
	if !s.Expectancy.IsZero() {
		t.Errorf("Expectancy = %s, want 0", s.Expectancy)
	}
	if s.View().WinRate != "0.0%" {
		t.Errorf("WinRate view = %q", s.View().WinRate)
	}
}

func TestComputeDoubleIngestDoublesTotals(t *testing.T) {
	// Re-ingesting the same file keeps duplicates as distinct records.
	once := setFromProfits(100, -50, 0)
	twice := append(append(models.TradeSet{}, once...), once...)

	s1 := Compute(once)
	s2 := Compute(twice)
	if s2.TotalTrades != 2*s1.TotalTrades {
		t.Errorf("TotalTrades = %d, want %d", s2.TotalTrades, 2*s1.TotalTrades)
	}
	if !s2.TotalProfit.Equal(s1.TotalProfit.Mul(decimal.NewFromInt(2))) {
		t.Errorf("TotalProfit = %s, want doubled %s", s2.TotalProfit, s1.TotalProfit)
	}
}
