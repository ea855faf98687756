// Package match FIFO 配对器属性测试
package match

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"kalshi-trade-analyzer/internal/core/model"
)

// **Feature: kalshi-trade-analyzer, Property: 合约数量守恒**

func TestMatcher_ContractConservation_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("配对合约总数 = min(开仓总量, 平仓总量)（单市场同方向）", prop.ForAll(
		func(entryQtys []int, exitQtys []int) bool {
			var trades []*model.Trade
			d := 1
			entryTotal := 0
			for _, q := range entryQtys {
				if q <= 0 {
					continue
				}
				entryTotal += q
				trades = append(trades, &model.Trade{
					Ticker:       "MKT",
					Type:         model.TypeTrade,
					Direction:    model.DirectionYes,
					Contracts:    q,
					AveragePrice: 40,
					Date:         time.Date(2025, 1, 1, 0, 0, d, 0, time.UTC),
				})
				d++
			}
			exitTotal := 0
			for _, q := range exitQtys {
				if q <= 0 {
					continue
				}
				exitTotal += q
				trades = append(trades, &model.Trade{
					Ticker:         "MKT",
					Type:           model.TypeTrade,
					Direction:      model.DirectionYes,
					Contracts:      q,
					AveragePrice:   60,
					RealizedProfit: float64(q) * 0.2,
					RealizedCost:   float64(q) * 0.4,
					Date:           time.Date(2025, 1, 1, 0, 0, d, 0, time.UTC),
				})
				d++
			}

			res := New(nil).Match(trades)

			matchedTotal := 0
			for _, mt := range res.Matched {
				if mt.Contracts <= 0 {
					return false
				}
				matchedTotal += mt.Contracts
			}

			want := entryTotal
			if exitTotal < want {
				want = exitTotal
			}
			return matchedTotal == want
		},
		gen.SliceOfN(4, gen.IntRange(1, 50)),
		gen.SliceOfN(4, gen.IntRange(1, 50)),
	))

	properties.TestingRun(t)
}

// **Feature: kalshi-trade-analyzer, Property: 成本与费用线性分摊**

func TestMatcher_ProrationAdditivity_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("全部平掉时各拆分的成本/费用之和等于整笔", prop.ForAll(
		func(contracts int, priceCents float64, entryFee, exitFee float64, splitAt int) bool {
			if contracts < 2 {
				contracts = 2
			}
			if splitAt < 1 {
				splitAt = 1
			}
			if splitAt >= contracts {
				splitAt = contracts - 1
			}

			e := &model.Trade{
				Ticker:       "MKT",
				Type:         model.TypeTrade,
				Direction:    model.DirectionYes,
				Contracts:    contracts,
				AveragePrice: priceCents,
				Fees:         entryFee,
				Date:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			}
			x1 := &model.Trade{
				Ticker:         "MKT",
				Type:           model.TypeTrade,
				Direction:      model.DirectionYes,
				Contracts:      splitAt,
				AveragePrice:   55,
				RealizedProfit: 0.01,
				RealizedCost:   float64(splitAt) * priceCents / 100,
				Fees:           exitFee,
				Date:           time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC),
			}
			x2 := &model.Trade{
				Ticker:         "MKT",
				Type:           model.TypeTrade,
				Direction:      model.DirectionYes,
				Contracts:      contracts - splitAt,
				AveragePrice:   55,
				RealizedProfit: 0.01,
				RealizedCost:   float64(contracts-splitAt) * priceCents / 100,
				Fees:           exitFee,
				Date:           time.Date(2025, 1, 1, 0, 0, 2, 0, time.UTC),
			}

			res := New(nil).Match([]*model.Trade{e, x1, x2})
			if len(res.Matched) != 2 {
				return false
			}

			var costSum, entryFeeSum float64
			for _, mt := range res.Matched {
				costSum += mt.EntryCost
				entryFeeSum += mt.EntryFee
			}
			wholeCost := float64(contracts) * priceCents / 100
			return approx(costSum, wholeCost, 1e-6) && approx(entryFeeSum, entryFee, 1e-6)
		},
		gen.IntRange(2, 500),
		gen.Float64Range(1, 99),
		gen.Float64Range(0, 10),
		gen.Float64Range(0, 10),
		gen.IntRange(1, 499),
	))

	properties.TestingRun(t)
}
