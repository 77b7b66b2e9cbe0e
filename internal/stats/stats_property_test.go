package stats

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"futures-journal/internal/models"
)

func profitsToSet(profits []float64) models.TradeSet {
	set := make(models.TradeSet, 0, len(profits))
	for _, p := range profits {
		set = append(set, models.TradeRecord{Profit: decimal.NewFromFloat(p)})
	}
	return set
}

func testParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())
	return parameters
}

// profitGen rounds to cents so generated profits look like real fills and
// decimal conversion stays exact.
var profitGen = gen.Float64Range(-10000, 10000).Map(func(v float64) float64 {
	return math.Round(v*100) / 100
})

// Property: outcome counts always partition the set, i.e.
// winning + losing + break-even == total, for any profits.
func TestProperty_OutcomeCountsPartitionTheSet(t *testing.T) {
	properties := gopter.NewProperties(testParameters())

	properties.Property("wins+losses+breakeven == total", prop.ForAll(
		func(profits []float64) bool {
			s := Compute(profitsToSet(profits))
			if s == nil {
				return len(profits) == 0
			}
			return s.WinningTrades+s.LosingTrades+s.BreakEven == s.TotalTrades
		},
		gen.SliceOf(profitGen),
	))

	properties.TestingRun(t)
}

// Property: TotalProfit equals the exact decimal sum of per-record profit.
func TestProperty_TotalProfitIsExactSum(t *testing.T) {
	properties := gopter.NewProperties(testParameters())

	properties.Property("total profit equals decimal sum", prop.ForAll(
		func(profits []float64) bool {
			set := profitsToSet(profits)
			s := Compute(set)
			if s == nil {
				return len(profits) == 0
			}
			sum := decimal.Zero
			for _, trade := range set {
				sum = sum.Add(trade.Profit)
			}
			return s.TotalProfit.Equal(sum)
		},
		gen.SliceOf(profitGen),
	))

	properties.TestingRun(t)
}

// Property: expectancy equals win_rate*avg_win + loss_rate*avg_loss within
// floating tolerance, for any non-empty set.
func TestProperty_ExpectancyIdentity(t *testing.T) {
	properties := gopter.NewProperties(testParameters())

	properties.Property("expectancy identity", prop.ForAll(
		func(profits []float64) bool {
			s := Compute(profitsToSet(profits))
			if s == nil {
				return len(profits) == 0
			}
			n := float64(s.TotalTrades)
			winRate := float64(s.WinningTrades) / n
			lossRate := float64(s.LosingTrades) / n
			want := winRate*s.AvgWin.InexactFloat64() + lossRate*s.AvgLoss.InexactFloat64()
			return math.Abs(s.Expectancy.InexactFloat64()-want) < 1e-6
		},
		gen.SliceOf(profitGen),
	))

	properties.TestingRun(t)
}

// Property: risk/reward is the N/A sentinel exactly when the set has no
// wins or no losses.
func TestProperty_RiskRewardSentinel(t *testing.T) {
	properties := gopter.NewProperties(testParameters())

	properties.Property("risk/reward sentinel condition", prop.ForAll(
		func(profits []float64) bool {
			s := Compute(profitsToSet(profits))
			if s == nil {
				return len(profits) == 0
			}
			defined := s.WinningTrades > 0 && s.LosingTrades > 0 && !s.AvgLoss.IsZero()
			return s.HasRiskReward == defined
		},
		gen.SliceOf(profitGen),
	))

	properties.TestingRun(t)
}

// Property: for any dimension, group profit sums add up to the ungrouped
// total and group trade counts add up to the set size.
func TestProperty_GroupPartitionInvariant(t *testing.T) {
	properties := gopter.NewProperties(testParameters())

	strategies := []string{"", "alpha", "breakout", "scalp", "swing"}
	recordGen := gopter.CombineGens(
		gen.IntRange(0, len(strategies)-1),
		profitGen,
	).Map(func(values []interface{}) models.TradeRecord {
		return models.TradeRecord{
			Strategy: strategies[values[0].(int)],
			Profit:   decimal.NewFromFloat(values[1].(float64)),
		}
	})

	properties.Property("group sums equal ungrouped total", prop.ForAll(
		func(records []models.TradeRecord) bool {
			set := models.TradeSet(records)
			groups := GroupBy(set, DimensionStrategy)

			sum := decimal.Zero
			trades := 0
			for _, g := range groups {
				sum = sum.Add(g.ProfitSum)
				trades += g.Trades
			}

			if len(set) == 0 {
				return len(groups) == 0
			}
			return trades == len(set) && sum.Equal(Compute(set).TotalProfit)
		},
		gen.SliceOf(recordGen),
	))

	properties.TestingRun(t)
}
