// Package risk 风险指标测试
package risk

import (
	"math"
	"testing"
	"time"

	"kalshi-trade-analyzer/internal/core/model"
)

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func mt(entryDay, exitDay int, profit float64) *model.MatchedTrade {
	return &model.MatchedTrade{
		EntryDate:      time.Date(2025, 1, entryDay, 10, 0, 0, 0, time.UTC),
		ExitDate:       time.Date(2025, 1, exitDay, 15, 0, 0, 0, time.UTC),
		RealizedProfit: profit,
	}
}

func TestCompute_DegenerateInputs(t *testing.T) {
	zero := Metrics{}

	if got := Compute(nil, 1000, 252); got != zero {
		t.Fatalf("空配对记录应产出全零指标: %+v", got)
	}
	if got := Compute([]*model.MatchedTrade{mt(1, 3, 10)}, 0, 252); got != zero {
		t.Fatalf("本金为 0 应产出全零指标: %+v", got)
	}
	if got := Compute([]*model.MatchedTrade{mt(1, 3, 10)}, -100, 252); got != zero {
		t.Fatalf("本金为负应产出全零指标: %+v", got)
	}
	// 开平同日构不成日收益序列
	if got := Compute([]*model.MatchedTrade{mt(5, 5, 10)}, 1000, 252); got != zero {
		t.Fatalf("单日活动应产出全零指标: %+v", got)
	}
}

func TestCompute_TwoTradeSeries(t *testing.T) {
	// 序列跨 1/1 - 1/4 共 4 天，本金 1000：
	// 1/3 平仓 +10 → [1000, 1000, 1010, 1010]
	// 1/4 平仓 -5  → [1000, 1000, 1010, 1005]
	matched := []*model.MatchedTrade{
		mt(1, 3, 10),
		mt(1, 4, -5),
	}

	got := Compute(matched, 1000, 252)

	r2 := 10.0 / 1000
	r3 := -5.0 / 1010
	wantMean := (0 + r2 + r3) / 3
	wantVar := (wantMean*wantMean + (r2-wantMean)*(r2-wantMean) + (r3-wantMean)*(r3-wantMean)) / 3
	wantStd := math.Sqrt(wantVar)

	if !approx(got.TotalReturn, 5.0/1000, 1e-12) {
		t.Fatalf("total_return=%f, want %f", got.TotalReturn, 5.0/1000)
	}
	if !approx(got.AvgDailyReturn, wantMean, 1e-12) {
		t.Fatalf("avg_daily_return=%f, want %f", got.AvgDailyReturn, wantMean)
	}
	if !approx(got.DailyStdDev, wantStd, 1e-12) {
		t.Fatalf("daily_std_dev=%f, want %f", got.DailyStdDev, wantStd)
	}
	if !approx(got.AnnualizedReturn, wantMean*252, 1e-9) {
		t.Fatalf("annualized_return=%f", got.AnnualizedReturn)
	}
	if !approx(got.AnnualizedVolatility, wantStd*math.Sqrt(252), 1e-9) {
		t.Fatalf("annualized_volatility=%f", got.AnnualizedVolatility)
	}
	if !approx(got.SharpeRatio, wantMean/wantStd*math.Sqrt(252), 1e-9) {
		t.Fatalf("sharpe_ratio=%f", got.SharpeRatio)
	}
	if got.TradingDays != 2 {
		t.Fatalf("trading_days=%d, want 2（仅收益非零的天数）", got.TradingDays)
	}
}

func TestCompute_ZeroProfitNoSharpe(t *testing.T) {
	// 利润全为 0 → 净值序列恒定，标准差为 0，Sharpe 取 0 而非 Inf
	matched := []*model.MatchedTrade{
		mt(1, 3, 0),
		mt(2, 5, 0),
	}

	got := Compute(matched, 1000, 252)

	if got.SharpeRatio != 0 || got.DailyStdDev != 0 {
		t.Fatalf("恒定净值序列: sharpe=%f std=%f, want 0/0", got.SharpeRatio, got.DailyStdDev)
	}
	if got.TotalReturn != 0 || got.TradingDays != 0 {
		t.Fatalf("恒定净值序列: total_return=%f trading_days=%d", got.TotalReturn, got.TradingDays)
	}
}

func TestCompute_DefaultTradingDays(t *testing.T) {
	matched := []*model.MatchedTrade{mt(1, 3, 10)}

	explicit := Compute(matched, 1000, 252)
	defaulted := Compute(matched, 1000, 0)

	if !approx(explicit.AnnualizedReturn, defaulted.AnnualizedReturn, 1e-12) {
		t.Fatalf("tradingDays<=0 应回退到 %d", DefaultTradingDays)
	}
	if !approx(explicit.AnnualizedVolatility, defaulted.AnnualizedVolatility, 1e-12) {
		t.Fatalf("年化波动率不一致: %f vs %f", explicit.AnnualizedVolatility, defaulted.AnnualizedVolatility)
	}
}

func TestCompute_ProfitPersistsToSeriesEnd(t *testing.T) {
	// 早期平仓的利润应一直延续到序列末尾，而非只作用当日
	matched := []*model.MatchedTrade{
		mt(1, 2, 100),
		mt(1, 5, 0),
	}

	got := Compute(matched, 1000, 252)

	if !approx(got.TotalReturn, 100.0/1000, 1e-12) {
		t.Fatalf("total_return=%f, want 0.1", got.TotalReturn)
	}
	if got.TradingDays != 1 {
		t.Fatalf("trading_days=%d, want 1", got.TradingDays)
	}
}
