// Package model 定义分析器中使用的核心数据结构。
// 包含规范化成交记录、配对平仓记录、持仓等核心类型。
package model

import (
	"strings"
	"time"
)

// TradeType 成交记录类型
type TradeType string

const (
	// TypeTrade 市场成交
	// 通过主动买卖开仓或平仓
	TypeTrade TradeType = "trade"
	// TypeSettlement 合约结算
	// 合约到期结算，价格收敛到 0 或 100 美分
	TypeSettlement TradeType = "settlement"
	// TypeCredit 账户信用调整
	// 非交易事件，规范化阶段直接丢弃
	TypeCredit TradeType = "credit"
)

// Direction 合约方向
type Direction string

const (
	// DirectionYes Yes 合约
	DirectionYes Direction = "Yes"
	// DirectionNo No 合约
	DirectionNo Direction = "No"
	// DirectionUnknown 无法识别的方向
	DirectionUnknown Direction = "Unknown"
)

// NormalizeDirection 将导出文件中的方向字段归一化
// "yes"/"no"（忽略大小写与首尾空白）映射为标准方向，其余为 Unknown。
func NormalizeDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return DirectionYes
	case "no":
		return DirectionNo
	default:
		return DirectionUnknown
	}
}

// Opposite 获取逻辑相反方向
// Yes 与 No 互为对手方向；Unknown 无对手方向，返回自身。
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionYes:
		return DirectionNo
	case DirectionNo:
		return DirectionYes
	default:
		return d
	}
}

// CanClose 判断方向 d 的持仓能否被方向 exit 的平仓记录关闭
// 同方向与相反方向（Yes/No 互补）均为合法的平仓对。
func (d Direction) CanClose(exit Direction) bool {
	return d == exit || (d == DirectionYes && exit == DirectionNo) || (d == DirectionNo && exit == DirectionYes)
}

// Trade 规范化成交记录
// 两种导出格式经规范化后统一为此结构，每条可用输入行产生一条记录。
type Trade struct {
	// Ticker 市场标识，非空
	Ticker string `json:"ticker"`
	// Type 记录类型: trade 或 settlement
	Type TradeType `json:"type"`
	// Direction 持仓方向: Yes / No / Unknown
	Direction Direction `json:"direction"`
	// Contracts 合约数量，恒大于 0（非正数量的行在规范化阶段丢弃）
	Contracts int `json:"contracts"`
	// AveragePrice 每张合约均价（美分，0-100）
	AveragePrice float64 `json:"average_price"`
	// RealizedRevenue 已实现收入（美元），纯开仓行为 0
	RealizedRevenue float64 `json:"realized_revenue"`
	// RealizedCost 已实现成本（美元），纯开仓行为 0
	RealizedCost float64 `json:"realized_cost"`
	// RealizedProfit 已实现利润（美元，不含手续费），纯开仓行为 0
	RealizedProfit float64 `json:"realized_profit"`
	// Fees 手续费（美元，>= 0）
	Fees float64 `json:"fees"`
	// Timestamp 原始时间戳字符串（保留用于追溯）
	Timestamp string `json:"timestamp"`
	// Date 解析后的时间点，用于排序与展示
	// 始终有值：解析失败时回退为当前时间（降级行为，见 ingest）
	Date time.Time `json:"date"`
	// TradeCost 成本基数（美元），配对阶段补算
	// 结算或携带非零利润的平仓行取 |RealizedCost|；纯开仓行取 Contracts × AveragePrice / 100
	TradeCost float64 `json:"trade_cost"`
	// PreMatched 新版导出的行在规范化时已自带开平配对
	// 置位的记录绕过 FIFO 配对器，对应的 MatchedTrade 由规范化阶段直接产出
	PreMatched bool `json:"pre_matched,omitempty"`
}

// IsEntry 判断是否为开仓记录
// 市场成交且未携带已实现利润视为开仓。
func (t *Trade) IsEntry() bool {
	return t.Type == TypeTrade && t.RealizedProfit == 0
}

// IsExit 判断是否为平仓记录
// 结算记录，或携带非零已实现利润的市场成交，视为平仓。
func (t *Trade) IsExit() bool {
	return t.Type == TypeSettlement || (t.Type == TypeTrade && t.RealizedProfit != 0)
}
