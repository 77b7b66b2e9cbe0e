// Package stats computes aggregate performance metrics over a TradeSet.
package stats

import (
	"fmt"

	"github.com/shopspring/decimal"

	"futures-journal/internal/models"
	"futures-journal/pkg/utils"
)

// Summary is an immutable snapshot of aggregate metrics computed from
// exactly one TradeSet. It is always recomputed from scratch, never mutated.
type Summary struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	BreakEven     int
	WinRate       float64 // fraction in [0,1]
	TotalProfit   decimal.Decimal
	AvgProfit     decimal.Decimal
	AvgWin        decimal.Decimal
	AvgLoss       decimal.Decimal // signed, i.e. negative
	LargestWin    decimal.Decimal
	LargestLoss   decimal.Decimal
	NetProfit     decimal.Decimal
	RiskReward    decimal.Decimal
	HasRiskReward bool // false renders as "N/A"
	Expectancy    decimal.Decimal
}

// Compute derives a Summary from the set. It returns nil for an empty set:
// callers must treat a nil summary as "no data to display", not as an error.
//
// NetProfit is the CumNetProfit of the last record in the set's current
// order; Compute never re-sorts. Callers that want the most recent realized
// figure must sort the set by exit time ascending first.
func Compute(set models.TradeSet) *Summary {
	n := len(set)
	if n == 0 {
		return nil
	}

	var (
		wins, losses, breakEven    int
		sumAll, sumWins, sumLosses decimal.Decimal
		largestWin                 = set[0].Profit
		largestLoss                = set[0].Profit
	)

	for _, t := range set {
		p := t.Profit
		sumAll = sumAll.Add(p)
		switch p.Sign() {
		case 1:
			wins++
			sumWins = sumWins.Add(p)
		case -1:
			losses++
			sumLosses = sumLosses.Add(p)
		default:
			breakEven++
		}
		if p.GreaterThan(largestWin) {
			largestWin = p
		}
		if p.LessThan(largestLoss) {
			largestLoss = p
		}
	}

	total := decimal.NewFromInt(int64(n))
	s := &Summary{
		TotalTrades:   n,
		WinningTrades: wins,
		LosingTrades:  losses,
		BreakEven:     breakEven,
		WinRate:       float64(wins) / float64(n),
		TotalProfit:   sumAll,
		AvgProfit:     sumAll.Div(total),
		LargestWin:    largestWin,
		LargestLoss:   largestLoss,
		NetProfit:     set[n-1].CumNetProfit,
	}

	if wins > 0 {
		s.AvgWin = sumWins.Div(decimal.NewFromInt(int64(wins)))
	}
	if losses > 0 {
		s.AvgLoss = sumLosses.Div(decimal.NewFromInt(int64(losses)))
	}
	if wins > 0 && losses > 0 && !s.AvgLoss.IsZero() {
		s.RiskReward = s.AvgWin.Div(s.AvgLoss.Abs())
		s.HasRiskReward = true
	}

	probWin := decimal.NewFromInt(int64(wins)).Div(total)
	probLoss := decimal.NewFromInt(int64(losses)).Div(total)
	s.Expectancy = probWin.Mul(s.AvgWin).Add(probLoss.Mul(s.AvgLoss))

	return s
}

// SummaryView is the display form of a Summary: percentages with one decimal
// place, currency with two.
type SummaryView struct {
	TotalTrades   int    `json:"total_trades"`
	WinningTrades int    `json:"winning_trades"`
	LosingTrades  int    `json:"losing_trades"`
	BreakEven     int    `json:"break_even"`
	WinRate       string `json:"win_rate"`
	TotalProfit   string `json:"total_profit"`
	AvgProfit     string `json:"avg_profit"`
	AvgWin        string `json:"avg_win"`
	AvgLoss       string `json:"avg_loss"`
	LargestWin    string `json:"largest_win"`
	LargestLoss   string `json:"largest_loss"`
	NetProfit     string `json:"net_profit"`
	RiskReward    string `json:"risk_reward"`
	Expectancy    string `json:"expectancy"`
}

// View formats the summary for display.
func (s *Summary) View() SummaryView {
	riskReward := "N/A"
	if s.HasRiskReward {
		riskReward = s.RiskReward.StringFixed(2)
	}
	return SummaryView{
		TotalTrades:   s.TotalTrades,
		WinningTrades: s.WinningTrades,
		LosingTrades:  s.LosingTrades,
		BreakEven:     s.BreakEven,
		WinRate:       FormatWinRate(s.WinRate),
		TotalProfit:   utils.FormatUSD(s.TotalProfit),
		AvgProfit:     utils.FormatUSD(s.AvgProfit),
		AvgWin:        utils.FormatUSD(s.AvgWin),
		AvgLoss:       utils.FormatUSD(s.AvgLoss),
		LargestWin:    utils.FormatUSD(s.LargestWin),
		LargestLoss:   utils.FormatUSD(s.LargestLoss),
		NetProfit:     utils.FormatUSD(s.NetProfit),
		RiskReward:    riskReward,
		Expectancy:    utils.FormatUSD(s.Expectancy),
	}
}

// FormatWinRate renders a win-rate fraction as a percentage with one decimal
// place.
func FormatWinRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}
