// Package model 定义分析器中使用的核心数据结构。
package model

import (
	"time"
)

// MatchedTrade 配对平仓记录
// 一次完整或部分完成的往返仓位，一条开仓记录被多次平仓时会产生多条。
// 同一开仓产生的所有 MatchedTrade 的 Contracts 之和不超过开仓原始数量。
type MatchedTrade struct {
	// Ticker 市场标识
	Ticker string `json:"ticker"`
	// EntryDirection 开仓方向
	EntryDirection Direction `json:"entry_direction"`
	// ExitType 平仓方式: trade 或 settlement
	ExitType TradeType `json:"exit_type"`
	// EntryDate 开仓时间
	EntryDate time.Time `json:"entry_date"`
	// ExitDate 平仓时间
	// 正常数据满足 ExitDate >= EntryDate；合成/回退时间戳不强制此约束
	ExitDate time.Time `json:"exit_date"`
	// Contracts 本次配对关闭的合约数量
	Contracts int `json:"contracts"`
	// EntryCost 开仓成本（美元），按关闭比例线性分摊
	EntryCost float64 `json:"entry_cost"`
	// RealizedProfit 已实现利润（美元，不含手续费）
	RealizedProfit float64 `json:"realized_profit"`
	// NetProfit 净利润（美元，含手续费）
	NetProfit float64 `json:"net_profit"`
	// TotalFees 总手续费（美元，开仓 + 平仓分摊之和）
	TotalFees float64 `json:"total_fees"`
	// EntryFee 开仓手续费分摊（美元）
	EntryFee float64 `json:"entry_fee"`
	// ExitFee 平仓手续费分摊（美元）
	ExitFee float64 `json:"exit_fee"`
	// EntryPrice 开仓价格（美分）
	EntryPrice float64 `json:"entry_price"`
	// ExitPrice 平仓价格（美分）
	ExitPrice float64 `json:"exit_price"`
	// HoldingPeriodDays 持仓时长（天），(ExitDate - EntryDate) / 86400s
	HoldingPeriodDays float64 `json:"holding_period_days"`
	// ROI 净收益率 NetProfit / EntryCost
	// EntryCost 为 0 时无定义，输出中省略（不产生 NaN/Inf）
	ROI *float64 `json:"roi,omitempty"`
}

// IsWin 判断是否盈利（按净利润）
func (m *MatchedTrade) IsWin() bool {
	return m.NetProfit > 0
}

// IsSettlement 判断是否通过结算平仓
func (m *MatchedTrade) IsSettlement() bool {
	return m.ExitType == TypeSettlement
}

// SetROI 按净利润与开仓成本设置 ROI
// EntryCost <= 0 时保持 nil，避免除零。
func (m *MatchedTrade) SetROI() {
	if m.EntryCost > 0 {
		roi := m.NetProfit / m.EntryCost
		m.ROI = &roi
	}
}
