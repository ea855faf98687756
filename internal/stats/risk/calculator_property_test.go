// Package risk 风险指标属性测试
package risk

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"kalshi-trade-analyzer/internal/core/model"
)

// **Feature: kalshi-trade-analyzer, Property: 总收益可加性**

func TestCompute_TotalReturnAdditivity_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("total_return = Σ利润 / 本金（与平仓日分布无关）", prop.ForAll(
		func(profits []float64, capital float64, exitDays []int) bool {
			if capital <= 0 {
				capital = 1000
			}

			var matched []*model.MatchedTrade
			var sum float64
			for i, p := range profits {
				d := 2
				if i < len(exitDays) && exitDays[i] >= 2 && exitDays[i] <= 28 {
					d = exitDays[i]
				}
				sum += p
				matched = append(matched, &model.MatchedTrade{
					EntryDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
					ExitDate:       time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC),
					RealizedProfit: p,
				})
			}
			if len(matched) == 0 {
				return Compute(matched, capital, 252) == Metrics{}
			}

			got := Compute(matched, capital, 252)
			want := sum / capital
			return approx(got.TotalReturn, want, 1e-9)
		},
		gen.SliceOfN(5, gen.Float64Range(-50, 50)),
		gen.Float64Range(100, 100000),
		gen.SliceOfN(5, gen.IntRange(2, 28)),
	))

	properties.TestingRun(t)
}

// **Feature: kalshi-trade-analyzer, Property: 退化输入全零**

func TestCompute_DegenerateZero_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("本金非正时恒为全零指标", prop.ForAll(
		func(capital float64, profit float64) bool {
			if capital > 0 {
				capital = -capital
			}
			matched := []*model.MatchedTrade{{
				EntryDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				ExitDate:       time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
				RealizedProfit: profit,
			}}
			return Compute(matched, capital, 252) == Metrics{}
		},
		gen.Float64Range(-100000, 0),
		gen.Float64Range(-100, 100),
	))

	properties.TestingRun(t)
}
