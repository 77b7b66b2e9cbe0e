// Package series derives the ordered and binned numeric series that chart
// rendering consumes. Every builder is a pure function of the TradeSet; no
// I/O happens here.
package series

import (
	"sort"
	"time"

	"futures-journal/internal/models"
	"futures-journal/internal/stats"
)

// HistogramBins is the fixed bin count for the profit distribution.
const HistogramBins = 15

// Point is one sample of a time-ordered series.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// CumulativeProfit emits (exit time, cumulative net profit) pairs in exit
// time ascending order, regardless of input order. Records without an exit
// timestamp are skipped; when none qualify the series is omitted (nil).
func CumulativeProfit(set models.TradeSet) []Point {
	var points []Point
	for _, t := range set.SortByExitTime() {
		if !t.HasExitTime() {
			continue
		}
		points = append(points, Point{
			Time:  t.ExitTime,
			Value: t.CumNetProfit.InexactFloat64(),
		})
	}
	return points
}

// Outcomes is the win/loss/break-even triple for the outcome bar chart.
type Outcomes struct {
	Wins      int `json:"wins"`
	Losses    int `json:"losses"`
	BreakEven int `json:"break_even"`
}

// OutcomeCounts counts trade outcomes; nil for an empty set.
func OutcomeCounts(set models.TradeSet) *Outcomes {
	if len(set) == 0 {
		return nil
	}
	var o Outcomes
	for _, t := range set {
		switch t.Profit.Sign() {
		case 1:
			o.Wins++
		case -1:
			o.Losses++
		default:
			o.BreakEven++
		}
	}
	return &o
}

// Histogram buckets profit values into HistogramBins equal-width bins across
// the observed min..max range. Edges has one more element than Counts.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// ProfitHistogram builds the profit distribution; nil for an empty set.
// A degenerate range (all profits identical) is widened by half a unit on
// each side so bins keep nonzero width.
func ProfitHistogram(set models.TradeSet) *Histogram {
	if len(set) == 0 {
		return nil
	}

	lo := set[0].Profit.InexactFloat64()
	hi := lo
	for _, t := range set[1:] {
		v := t.Profit.InexactFloat64()
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / HistogramBins
	h := &Histogram{
		Edges:  make([]float64, HistogramBins+1),
		Counts: make([]int, HistogramBins),
	}
	for i := 0; i <= HistogramBins; i++ {
		h.Edges[i] = lo + float64(i)*width
	}
	for _, t := range set {
		idx := int((t.Profit.InexactFloat64() - lo) / width)
		if idx >= HistogramBins {
			idx = HistogramBins - 1 // max value closes the last bin
		}
		if idx < 0 {
			idx = 0
		}
		h.Counts[idx]++
	}
	return h
}

// Bar is one group's profit sum, tagged with its sign category for
// presentation coloring.
type Bar struct {
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Negative bool    `json:"negative"`
}

// GroupProfitBars sums profit per group of the chosen dimension and sorts
// the bars ascending by value.
func GroupProfitBars(set models.TradeSet, dim stats.Dimension) []Bar {
	groups := stats.GroupBy(set, dim)
	if len(groups) == 0 {
		return nil
	}

	bars := make([]Bar, 0, len(groups))
	for _, g := range groups {
		v := g.ProfitSum.InexactFloat64()
		bars = append(bars, Bar{Label: g.Key, Value: v, Negative: v < 0})
	}
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Value < bars[j].Value
	})
	return bars
}
