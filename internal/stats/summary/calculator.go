// Package summary 实现基础统计摘要的聚合计算。
// 纯函数：输入 (规范化成交, 配对平仓) 产出 model.BasicStats，无内部状态。
package summary

import (
	"kalshi-trade-analyzer/internal/core/model"
)

// Compute 计算基础统计摘要
// 所有比率与加权均值在分母为零时取 0，不产生 NaN/Inf。
func Compute(trades []*model.Trade, matched []*model.MatchedTrade) model.BasicStats {
	stats := model.BasicStats{
		TotalTrades:  len(trades),
		MatchedCount: len(matched),
	}

	tickers := make(map[string]bool)
	for _, t := range trades {
		tickers[t.Ticker] = true
		stats.TotalFees += t.Fees
		stats.TotalProfit += t.RealizedProfit

		// 方向分布只统计 Yes/No，Unknown 不计入
		switch t.Direction {
		case model.DirectionYes:
			stats.YesContracts += t.Contracts
		case model.DirectionNo:
			stats.NoContracts += t.Contracts
		}
	}
	stats.UniqueTickers = len(tickers)

	if len(matched) == 0 {
		return stats
	}

	var (
		totalContracts  int
		entryPriceSum   float64
		exitPriceSum    float64
		totalEntryCost  float64
		holdingCostSum  float64
		wins            int
		settled         int
		settledWins     int
	)
	for _, m := range matched {
		totalContracts += m.Contracts
		entryPriceSum += m.EntryPrice * float64(m.Contracts)
		exitPriceSum += m.ExitPrice * float64(m.Contracts)
		totalEntryCost += m.EntryCost
		holdingCostSum += m.HoldingPeriodDays * m.EntryCost

		if m.IsWin() {
			wins++
		}
		if m.IsSettlement() {
			settled++
			if m.IsWin() {
				settledWins++
			}
		}
	}

	if totalContracts > 0 {
		stats.AvgContractPurchasePrice = entryPriceSum / float64(totalContracts)
		stats.AvgContractFinalPrice = exitPriceSum / float64(totalContracts)
	}
	if totalEntryCost > 0 {
		stats.WeightedHoldingPeriod = holdingCostSum / totalEntryCost
	}
	stats.WinRate = float64(wins) / float64(len(matched))
	if settled > 0 {
		stats.SettledWinRate = float64(settledWins) / float64(settled)
	}

	return stats
}
