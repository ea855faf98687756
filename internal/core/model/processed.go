// Package model 定义分析器中使用的核心数据结构。
package model

// RawRow 原始导出行（列名 -> 单元格），保留用于追溯与排查
type RawRow = map[string]string

// BasicStats 基础统计摘要
// 由统计聚合器在 (Trades, Matched) 上计算，展示层只读。
type BasicStats struct {
	// TotalTrades 规范化成交记录总数
	TotalTrades int `json:"total_trades"`
	// MatchedCount 配对平仓记录总数
	MatchedCount int `json:"matched_count"`
	// UniqueTickers 涉及的市场数量（去重）
	UniqueTickers int `json:"unique_tickers"`
	// YesContracts Yes 方向合约数量之和
	YesContracts int `json:"yes_contracts"`
	// NoContracts No 方向合约数量之和
	NoContracts int `json:"no_contracts"`
	// TotalFees 手续费总额（美元）
	TotalFees float64 `json:"total_fees"`
	// TotalProfit 已实现利润总额（美元，不含手续费）
	TotalProfit float64 `json:"total_profit"`
	// AvgContractPurchasePrice 合约数量加权的开仓均价（美分）
	AvgContractPurchasePrice float64 `json:"avg_contract_purchase_price"`
	// AvgContractFinalPrice 合约数量加权的平仓均价（美分）
	AvgContractFinalPrice float64 `json:"avg_contract_final_price"`
	// WeightedHoldingPeriod 按开仓成本占比加权的持仓天数
	WeightedHoldingPeriod float64 `json:"weighted_holding_period"`
	// WinRate 净利润为正的配对占比
	WinRate float64 `json:"win_rate"`
	// SettledWinRate 仅结算平仓的配对中净利润为正的占比
	SettledWinRate float64 `json:"settled_win_rate"`
}

// MatchStats 配对运行诊断统计
// 由配对器作为返回值输出，不使用全局计数器。
type MatchStats struct {
	// Entries 识别为开仓的记录数
	Entries int `json:"entries"`
	// Exits 识别为平仓的记录数
	Exits int `json:"exits"`
	// Matches 产出的配对记录数
	Matches int `json:"matches"`
	// UnmatchedExits 找不到任何可平持仓的平仓记录数（告警后跳过）
	UnmatchedExits int `json:"unmatched_exits"`
}

// ProcessedData 返回给展示层的聚合结果
// 每个上传批次组合后整体生成，替换而非原地修改；清空会话时整体丢弃。
type ProcessedData struct {
	// RawRows 原始导出行（全部文件拼接）
	RawRows []RawRow `json:"raw_rows"`
	// Trades 规范化成交记录
	Trades []*Trade `json:"trades"`
	// Matched 配对平仓记录
	Matched []*MatchedTrade `json:"matched_trades"`
	// Stats 基础统计摘要
	Stats BasicStats `json:"stats"`
	// MatchStats 配对运行诊断统计
	MatchStats MatchStats `json:"match_stats"`
}

// EmptyProcessedData 构造全零结果
// 展示层在"无有效数据"/复位状态下使用。
func EmptyProcessedData() *ProcessedData {
	return &ProcessedData{
		RawRows: []RawRow{},
		Trades:  []*Trade{},
		Matched: []*MatchedTrade{},
	}
}
