// Package match 实现开平仓记录的 FIFO 配对。
// 按市场维护先进先出的持仓队列，把平仓记录与最早的未平持仓配对，
// 支持部分平仓拆分与费用/成本的线性分摊。
package match

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"kalshi-trade-analyzer/internal/core/model"
	"kalshi-trade-analyzer/internal/util/timeutil"
)

// Result 一次配对运行的输出
type Result struct {
	// Matched 配对平仓记录
	Matched []*model.MatchedTrade
	// Stats 本次运行的诊断统计（作为返回值输出，不落全局状态）
	Stats model.MatchStats
}

// Matcher FIFO 配对器
// 每次 Match 调用独立运行：持仓池只存活于单次运行内部，
// 运行结束后仍未平仓的持仓直接丢弃，不作为未平库存上报。
type Matcher struct {
	// logger 诊断日志（未匹配平仓等降级事件记录于此）
	logger *zap.Logger
}

// New 创建配对器
// 参数 logger: 诊断日志，可为 zap.NewNop()
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// arena 持仓池
// 持仓记录集中存放，按市场维护插入序（即 FIFO 序）的下标队列；
// 配对通过下标查找并原地递减，所有权始终归属持仓池。
type arena struct {
	positions []*model.Position
	byTicker  map[string][]int
}

func newArena() *arena {
	return &arena{byTicker: make(map[string][]int)}
}

func (a *arena) push(p *model.Position) {
	idx := len(a.positions)
	a.positions = append(a.positions, p)
	a.byTicker[p.Ticker] = append(a.byTicker[p.Ticker], idx)
}

// Match 对规范化成交记录执行一次完整的 FIFO 配对
// 输入为一个批次的全部可配对记录（新版导出的 PreMatched 记录已在上游
// 自带配对，这里防御性跳过）。输入按解析时间升序处理，
// 每条记录的 TradeCost 在此补算并写回。
func (m *Matcher) Match(trades []*model.Trade) *Result {
	res := &Result{}

	sorted := make([]*model.Trade, 0, len(trades))
	for _, t := range trades {
		if t == nil || t.PreMatched {
			continue
		}
		sorted = append(sorted, t)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	open := newArena()

	for _, t := range sorted {
		t.TradeCost = tradeCost(t)

		if t.IsEntry() {
			res.Stats.Entries++
			open.push(&model.Position{
				Ticker:    t.Ticker,
				Direction: t.Direction,
				Contracts: t.Contracts,
				Original:  t.Contracts,
				AvgPrice:  t.AveragePrice,
				EntryDate: t.Date,
				EntryFee:  t.Fees,
				Cost:      t.TradeCost,
			})
			continue
		}

		res.Stats.Exits++
		m.applyExit(open, t, res)
	}

	return res
}

// applyExit 用一条平仓记录按 FIFO 序消耗可平持仓
// 同方向与相反方向（Yes/No 互补）的持仓同等可平，仅按入场先后排序。
// 找不到任何可平持仓时告警并跳过（不产出配对记录，处理继续）。
func (m *Matcher) applyExit(open *arena, t *model.Trade, res *Result) {
	exitPrice := effectiveExitPrice(t)

	var profitPerContract float64
	if t.RealizedProfit != 0 {
		profitPerContract = t.RealizedProfit / float64(t.Contracts)
	}

	remaining := t.Contracts
	matchedAny := false

	for _, idx := range open.byTicker[t.Ticker] {
		if remaining == 0 {
			break
		}
		pos := open.positions[idx]
		if !pos.Open() || !pos.Direction.CanClose(t.Direction) {
			continue
		}

		closed := remaining
		if pos.Contracts < closed {
			closed = pos.Contracts
		}

		// 结算平仓按行内利润分摊；市场成交平仓按价差计算：
		// Yes/No 合约对在结算时合计 100 美分，已实现价差为
		// 开仓价对平仓价的互补，利润 = closed × (100 - entry - exit) / 100
		var profit float64
		if t.Type == model.TypeSettlement {
			profit = profitPerContract * float64(closed)
		} else {
			profit = float64(closed) * (100 - pos.AvgPrice - exitPrice) / 100
		}

		posFrac := float64(closed) / float64(pos.Original)
		exitFrac := float64(closed) / float64(t.Contracts)

		entryFee := pos.EntryFee * posFrac
		exitFee := t.Fees * exitFrac
		totalFees := entryFee + exitFee

		mt := &model.MatchedTrade{
			Ticker:            t.Ticker,
			EntryDirection:    pos.Direction,
			ExitType:          t.Type,
			EntryDate:         pos.EntryDate,
			ExitDate:          t.Date,
			Contracts:         closed,
			EntryCost:         pos.Cost * posFrac,
			RealizedProfit:    profit,
			NetProfit:         profit - totalFees,
			TotalFees:         totalFees,
			EntryFee:          entryFee,
			ExitFee:           exitFee,
			EntryPrice:        pos.AvgPrice,
			ExitPrice:         exitPrice,
			HoldingPeriodDays: timeutil.Days(pos.EntryDate, t.Date),
		}
		mt.SetROI()

		res.Matched = append(res.Matched, mt)
		res.Stats.Matches++

		pos.Contracts -= closed
		if pos.Contracts == 0 {
			pos.Closed = true
		}
		remaining -= closed
		matchedAny = true
	}

	if !matchedAny {
		res.Stats.UnmatchedExits++
		m.logger.Warn("平仓记录找不到可平持仓，跳过",
			zap.String("ticker", t.Ticker),
			zap.String("direction", string(t.Direction)),
			zap.Int("contracts", t.Contracts))
		return
	}
	if remaining > 0 {
		m.logger.Debug("平仓数量超出可平持仓，剩余数量丢弃",
			zap.String("ticker", t.Ticker),
			zap.Int("remaining", remaining))
	}
}

// tradeCost 补算成本基数
// 结算记录或携带非零利润的平仓成交取 |已实现成本|；
// 纯开仓成交取 合约数 × 均价 / 100。
func tradeCost(t *model.Trade) float64 {
	if t.Type == model.TypeSettlement || (t.Type == model.TypeTrade && t.RealizedProfit != 0) {
		return math.Abs(t.RealizedCost)
	}
	return float64(t.Contracts) * t.AveragePrice / 100
}

// effectiveExitPrice 计算有效平仓价（美分）
// 结算：已实现收入 / 合约数 × 100；市场成交：行内均价。
func effectiveExitPrice(t *model.Trade) float64 {
	if t.Type == model.TypeSettlement {
		return t.RealizedRevenue / float64(t.Contracts) * 100
	}
	return t.AveragePrice
}
