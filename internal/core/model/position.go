// Package model 定义分析器中使用的核心数据结构。
package model

import (
	"time"
)

// Position 未平仓持仓（配对器内部状态）
// 由开仓记录创建，随每次匹配的平仓记录递减 Contracts，
// 余量归零时标记关闭。仅存活于一次配对运行内部的持仓池中。
type Position struct {
	// Ticker 市场标识
	Ticker string
	// Direction 持仓方向
	Direction Direction
	// Contracts 剩余合约数量（随平仓递减）
	Contracts int
	// Original 开仓原始合约数量
	// 成本与开仓手续费按 closed / Original 线性分摊
	Original int
	// AvgPrice 每张合约均价（美分）
	AvgPrice float64
	// EntryDate 开仓时间
	EntryDate time.Time
	// EntryFee 开仓手续费（美元，整笔，部分平仓时分摊）
	EntryFee float64
	// Cost 开仓成本基数（美元，整笔）
	Cost float64
	// Closed 是否已全部平仓
	Closed bool
}

// Open 判断持仓是否仍可被平仓
func (p *Position) Open() bool {
	return !p.Closed && p.Contracts > 0
}
