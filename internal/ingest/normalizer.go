// Package ingest 实现导出文件的规范化。
package ingest

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"kalshi-trade-analyzer/internal/core/model"
	"kalshi-trade-analyzer/internal/csvio"
	"kalshi-trade-analyzer/internal/util/fastparse"
	"kalshi-trade-analyzer/internal/util/timeutil"
)

// Batch 一个导出文件的规范化结果
type Batch struct {
	// Schema 识别出的导出格式
	Schema Schema
	// Trades 规范化成交记录
	Trades []*model.Trade
	// Matched 新版格式直接产出的配对记录（旧版格式为空，由配对器产出）
	Matched []*model.MatchedTrade
}

// Normalizer 导出文件规范化器
type Normalizer struct {
	// logger 诊断日志（行级降级行为记录于此，不中断处理）
	logger *zap.Logger
	// nowFn 当前时间来源，便于测试注入
	nowFn func() time.Time
}

// NewNormalizer 创建规范化器
// 参数 logger: 诊断日志，可为 zap.NewNop()
func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger, nowFn: time.Now}
}

// Normalize 规范化一个导出文件
// 一次性嗅探格式后分派到格式专属转换；表头不匹配返回 ErrUnknownSchema，
// 过滤后无可用记录返回 ErrNoTrades，两者对该文件均为致命错误。
func (n *Normalizer) Normalize(table *csvio.Table) (*Batch, error) {
	schema := DetectSchema(table)

	batch := &Batch{Schema: schema}
	switch schema {
	case SchemaLegacy:
		batch.Trades = n.normalizeLegacy(table)
	case SchemaModern:
		batch.Trades, batch.Matched = n.normalizeModern(table)
	default:
		return nil, fmt.Errorf("%w（表头: %v）", ErrUnknownSchema, table.Header)
	}

	if len(batch.Trades) == 0 {
		return nil, ErrNoTrades
	}
	return batch, nil
}

// normalizeLegacy 转换旧版导出行
// 字段近乎直通：数量/价格按浮点解析（失败降级 0），美元字段剥离 $，
// Created 经时间戳解析（失败降级为当前时间并记录日志）。
// 丢弃：无 ticker 的行、credit 行、数量非正的行。
func (n *Normalizer) normalizeLegacy(table *csvio.Table) []*model.Trade {
	trades := make([]*model.Trade, 0, len(table.Rows))

	for i, row := range table.Rows {
		ticker := row["ticker"]
		if ticker == "" {
			n.logger.Debug("丢弃无 ticker 的行", zap.Int("row", i))
			continue
		}

		typ := normalizeType(row["type"])
		if typ == model.TypeCredit {
			continue
		}

		contracts := int(fastparse.MustParseFloat(row["contracts"]))
		if contracts <= 0 {
			n.logger.Debug("丢弃数量非正的行", zap.Int("row", i), zap.String("ticker", ticker))
			continue
		}

		created := row["created"]
		trades = append(trades, &model.Trade{
			Ticker:          ticker,
			Type:            typ,
			Direction:       model.NormalizeDirection(row["direction"]),
			Contracts:       contracts,
			AveragePrice:    fastparse.MustParseFloat(row["average_price"]),
			RealizedRevenue: fastparse.MustParseDollar(row["realized_revenue"]),
			RealizedCost:    fastparse.MustParseDollar(row["realized_cost"]),
			RealizedProfit:  fastparse.MustParseDollar(row["realized_profit"]),
			Fees:            fastparse.MustParseDollar(row["fees"]),
			Timestamp:       created,
			Date:            n.resolveDate(created, i),
		})
	}

	return trades
}

// 新版格式的时间戳别名列，按声明顺序取第一个非空值
var (
	modernEntryTSColumns = []string{"open_timestamp", "opened_at", "created_at"}
	modernExitTSColumns  = []string{"close_timestamp", "closed_at", "updated_at"}
)

// normalizeModern 转换新版导出行
// 新版每行已自带开平配对，因此同时产出规范化 Trade 与 MatchedTrade，
// 该批次整体绕过 FIFO 配对器。货币字段以美分计，除以 100 转为美元。
func (n *Normalizer) normalizeModern(table *csvio.Table) ([]*model.Trade, []*model.MatchedTrade) {
	trades := make([]*model.Trade, 0, len(table.Rows))
	matched := make([]*model.MatchedTrade, 0, len(table.Rows))

	now := n.nowFn()
	total := len(table.Rows)

	for i, row := range table.Rows {
		ticker := row["market_ticker"]
		if ticker == "" {
			n.logger.Debug("丢弃无 ticker 的行", zap.Int("row", i))
			continue
		}

		contracts := fastparse.MustParseInt(row["quantity"])
		if contracts <= 0 {
			n.logger.Debug("丢弃数量非正的行", zap.Int("row", i), zap.String("ticker", ticker))
			continue
		}

		entryCents := fastparse.MustParseFloat(row["entry_price_cents"])
		exitCents := fastparse.MustParseFloat(row["exit_price_cents"])

		entryFee := fastparse.CentsToDollars(fastparse.MustParseFloat(row["open_fees_cents"]))
		exitFee := fastparse.CentsToDollars(fastparse.MustParseFloat(row["close_fees_cents"]))
		fees := entryFee + exitFee

		// 净利润来自含费字段；无费利润优先取专用列，缺失时由净利润加回手续费还原
		netProfit := fastparse.CentsToDollars(fastparse.MustParseFloat(row["realized_pnl_with_fees_cents"]))
		grossProfit := netProfit + fees
		if raw, ok := row["realized_pnl_without_fees_cents"]; ok && raw != "" {
			grossProfit = fastparse.CentsToDollars(fastparse.MustParseFloat(raw))
		}

		// 开仓时间：别名列的第一个非空值；整行缺失时按"距今每行一秒"合成，保持相对顺序
		entryRaw := firstNonEmpty(row, modernEntryTSColumns)
		var entryDate time.Time
		if entryRaw == "" {
			entryDate = now.Add(-time.Duration(total-i) * time.Second)
		} else {
			entryDate = n.resolveDate(entryRaw, i)
		}

		// 平仓时间：缺失时沿用开仓时间
		exitRaw := firstNonEmpty(row, modernExitTSColumns)
		exitDate := entryDate
		if exitRaw != "" {
			exitDate = n.resolveDate(exitRaw, i)
		}

		// 平仓价为 0 或 100 美分视为结算，显式 type 列优先生效
		typ := model.TypeTrade
		if exitCents == 0 || exitCents == 100 || normalizeType(row["type"]) == model.TypeSettlement {
			typ = model.TypeSettlement
		}

		direction := model.NormalizeDirection(row["side"])
		entryCost := float64(contracts) * entryCents / 100

		timestamp := exitRaw
		if timestamp == "" {
			timestamp = entryRaw
		}

		trades = append(trades, &model.Trade{
			Ticker:          ticker,
			Type:            typ,
			Direction:       direction,
			Contracts:       contracts,
			AveragePrice:    entryCents,
			RealizedRevenue: float64(contracts) * exitCents / 100,
			RealizedCost:    entryCost,
			RealizedProfit:  grossProfit,
			Fees:            fees,
			Timestamp:       timestamp,
			Date:            exitDate,
			TradeCost:       entryCost,
			PreMatched:      true,
		})

		m := &model.MatchedTrade{
			Ticker:            ticker,
			EntryDirection:    direction,
			ExitType:          typ,
			EntryDate:         entryDate,
			ExitDate:          exitDate,
			Contracts:         contracts,
			EntryCost:         entryCost,
			RealizedProfit:    grossProfit,
			NetProfit:         netProfit,
			TotalFees:         fees,
			EntryFee:          entryFee,
			ExitFee:           exitFee,
			EntryPrice:        entryCents,
			ExitPrice:         exitCents,
			HoldingPeriodDays: timeutil.Days(entryDate, exitDate),
		}
		m.SetROI()
		matched = append(matched, m)
	}

	return trades, matched
}

// resolveDate 解析时间戳，失败时降级为当前时间并记录日志
// 这是约定的降级行为而非致命错误；畸形行可能因此排到序列末尾。
func (n *Normalizer) resolveDate(raw string, rowIdx int) time.Time {
	t, err := timeutil.Parse(raw)
	if err != nil {
		n.logger.Warn("时间戳解析失败，以当前时间代替",
			zap.Int("row", rowIdx),
			zap.String("timestamp", raw),
			zap.Error(err))
		return n.nowFn()
	}
	return t
}

// normalizeType 归一化记录类型字段
// credit 行在调用方丢弃；无法识别的值按市场成交处理。
func normalizeType(s string) model.TradeType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "settlement":
		return model.TypeSettlement
	case "credit":
		return model.TypeCredit
	default:
		return model.TypeTrade
	}
}

func firstNonEmpty(row csvio.Row, cols []string) string {
	for _, c := range cols {
		if v := row[c]; v != "" {
			return v
		}
	}
	return ""
}
