// Package risk 实现基于合成每日净值序列的风险指标计算。
// 从配对平仓记录重建逐日组合净值，导出波动率与 Sharpe 风格的年化比率。
package risk

import (
	"math"
	"sort"

	"kalshi-trade-analyzer/internal/core/model"
	"kalshi-trade-analyzer/internal/util/timeutil"
)

// DefaultTradingDays 年化换算采用的交易日约定
const DefaultTradingDays = 252

// Metrics 风险指标快照
// 输入退化（无配对记录、本金非正、无交易活动）时为全零记录，不报错。
type Metrics struct {
	// TotalReturn 总收益率 (终值 - 本金) / 本金
	TotalReturn float64 `json:"total_return"`
	// AvgDailyReturn 日均收益率（含零变动日）
	AvgDailyReturn float64 `json:"avg_daily_return"`
	// DailyStdDev 日收益率标准差（总体标准差，含零变动日）
	DailyStdDev float64 `json:"daily_std_dev"`
	// AnnualizedReturn 年化收益率（日均 × 交易日数）
	AnnualizedReturn float64 `json:"annualized_return"`
	// AnnualizedVolatility 年化波动率（日标准差 × √交易日数）
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	// SharpeRatio 年化比率 (日均/日标准差) × √交易日数，标准差为 0 时取 0
	SharpeRatio float64 `json:"sharpe_ratio"`
	// TradingDays 收益率非零的天数
	TradingDays int `json:"trading_days"`
}

// Compute 计算风险指标
// 参数 matched: 配对平仓记录
// 参数 initialCapital: 用户指定的初始本金（须 > 0，否则返回全零记录）
// 参数 tradingDays: 年化交易日约定（<= 0 时取 DefaultTradingDays）
//
// 合成序列：从最早开仓日到最晚平仓日逐日建值并初始化为本金；
// 按平仓日期升序遍历配对记录，把每笔的无费已实现利润从其平仓日起
// 累加到序列末尾。随后按相邻日对导出日收益率，全部收益率（含零变动日）
// 参与均值/标准差，仅非零收益日计入 TradingDays。
func Compute(matched []*model.MatchedTrade, initialCapital float64, tradingDays int) Metrics {
	if len(matched) == 0 || initialCapital <= 0 {
		return Metrics{}
	}
	if tradingDays <= 0 {
		tradingDays = DefaultTradingDays
	}

	start := timeutil.DayFloor(matched[0].EntryDate)
	end := timeutil.DayFloor(matched[0].ExitDate)
	for _, m := range matched {
		if d := timeutil.DayFloor(m.EntryDate); d.Before(start) {
			start = d
		}
		if d := timeutil.DayFloor(m.ExitDate); d.After(end) {
			end = d
		}
	}

	numDays := timeutil.DayIndex(start, end) + 1
	if numDays < 2 {
		// 单日内的活动构不成日收益序列
		return Metrics{}
	}

	values := make([]float64, numDays)
	for i := range values {
		values[i] = initialCapital
	}

	byExit := make([]*model.MatchedTrade, len(matched))
	copy(byExit, matched)
	sort.SliceStable(byExit, func(i, j int) bool {
		return byExit[i].ExitDate.Before(byExit[j].ExitDate)
	})

	for _, m := range byExit {
		idx := timeutil.DayIndex(start, m.ExitDate)
		if idx < 0 {
			idx = 0
		}
		for d := idx; d < numDays; d++ {
			values[d] += m.RealizedProfit
		}
	}

	returns := make([]float64, 0, numDays-1)
	for i := 1; i < numDays; i++ {
		prev := values[i-1]
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (values[i]-prev)/prev)
	}

	var sum float64
	active := 0
	for _, r := range returns {
		sum += r
		if r != 0 {
			active++
		}
	}
	mean := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))
	std := math.Sqrt(variance)

	annFactor := math.Sqrt(float64(tradingDays))
	metrics := Metrics{
		TotalReturn:          (values[numDays-1] - initialCapital) / initialCapital,
		AvgDailyReturn:       mean,
		DailyStdDev:          std,
		AnnualizedReturn:     mean * float64(tradingDays),
		AnnualizedVolatility: std * annFactor,
		TradingDays:          active,
	}
	if std > 0 {
		metrics.SharpeRatio = mean / std * annFactor
	}
	return metrics
}
