// Package ingest 实现导出文件的规范化。
// 支持两种互不兼容的导出格式：旧版（按行流水）与新版（开平合一），
// 一次性嗅探格式后分派到对应的纯转换函数，统一产出规范化 Trade 记录。
package ingest

import (
	"errors"

	"kalshi-trade-analyzer/internal/csvio"
)

// Schema 导出文件格式
type Schema string

const (
	// SchemaLegacy 旧版导出格式
	// 每行一条成交流水，开仓与平仓分列不同行，金额以美元计
	SchemaLegacy Schema = "legacy"
	// SchemaModern 新版导出格式
	// 每行同时携带开仓与平仓事件，金额以美分计
	SchemaModern Schema = "modern"
	// SchemaUnknown 无法识别的格式
	SchemaUnknown Schema = "unknown"
)

// 两种格式各自要求的完整列集合（归一化列名）
var (
	legacyColumns = []string{"ticker", "type", "direction", "contracts", "average_price", "created"}
	modernColumns = []string{"market_ticker", "quantity", "side", "entry_price_cents", "exit_price_cents", "realized_pnl_with_fees_cents"}
)

var (
	// ErrUnknownSchema 表头不满足任一格式的完整必需列集合
	ErrUnknownSchema = errors.New("无法识别的导出格式：表头不包含任一已知格式的必需列")
	// ErrNoTrades 规范化过滤后没有剩下任何可用成交记录
	ErrNoTrades = errors.New("导出文件中没有可用的成交记录")
)

// DetectSchema 嗅探表格的导出格式
// 检查两组互斥的必需列是否完整存在（列名已在 CSV 解析时归一化）。
func DetectSchema(table *csvio.Table) Schema {
	if table.HasColumns(legacyColumns...) {
		return SchemaLegacy
	}
	if table.HasColumns(modernColumns...) {
		return SchemaModern
	}
	return SchemaUnknown
}
