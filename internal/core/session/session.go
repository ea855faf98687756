// Package session 维护一次上传会话的内存状态。
// 单写者、同步处理：逐个文件规范化，全部完成后一次性组合；
// 会话结果整体替换（从不增量修补），清空会话即整体丢弃。
package session

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kalshi-trade-analyzer/internal/core/match"
	"kalshi-trade-analyzer/internal/core/model"
	"kalshi-trade-analyzer/internal/csvio"
	"kalshi-trade-analyzer/internal/ingest"
	"kalshi-trade-analyzer/internal/stats/summary"
)

// Batch 一个已被会话接受的导出文件
type Batch struct {
	// ID 批次标识
	ID uuid.UUID
	// Filename 上传文件名（会话内去重依据）
	Filename string
	// Schema 识别出的导出格式
	Schema ingest.Schema
	// RawRows 原始行（追溯用）
	RawRows []model.RawRow
	// Trades 规范化成交记录
	Trades []*model.Trade
	// PreMatched 新版格式直接产出的配对记录
	PreMatched []*model.MatchedTrade
}

// FileError 单文件处理失败
// 多文件上传中逐个累积，不中断其余文件。
type FileError struct {
	// Filename 失败的文件名
	Filename string
	// Err 失败原因
	Err error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Filename, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Session 上传会话
type Session struct {
	logger     *zap.Logger
	normalizer *ingest.Normalizer
	matcher    *match.Matcher

	// seen 会话内已接受的文件名（重复上传跳过）
	seen map[string]bool
	// batches 已接受的批次，按接受顺序
	batches []*Batch
	// failures 累积的单文件失败
	failures []*FileError
	// current 最近一次组合的结果（整体替换）
	current *model.ProcessedData
}

// New 创建上传会话
// 参数 logger: 诊断日志，可为 zap.NewNop()
func New(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		logger:     logger,
		normalizer: ingest.NewNormalizer(logger),
		matcher:    match.New(logger),
		seen:       make(map[string]bool),
	}
}

// Process 处理一个上传文件
// 会话内重复的文件名直接跳过（返回 nil）。解析或规范化失败对该文件
// 致命：记入失败列表并返回错误，但不影响同批其余文件的处理。
func (s *Session) Process(filename string, data []byte) error {
	if s.seen[filename] {
		s.logger.Info("跳过重复文件", zap.String("file", filename))
		return nil
	}

	table, err := csvio.Parse(data, true)
	if err != nil {
		return s.fail(filename, err)
	}

	batch, err := s.normalizer.Normalize(table)
	if err != nil {
		return s.fail(filename, err)
	}

	s.seen[filename] = true
	s.batches = append(s.batches, &Batch{
		ID:         uuid.New(),
		Filename:   filename,
		Schema:     batch.Schema,
		RawRows:    table.Rows,
		Trades:     batch.Trades,
		PreMatched: batch.Matched,
	})

	s.logger.Info("文件规范化完成",
		zap.String("file", filename),
		zap.String("schema", string(batch.Schema)),
		zap.Int("trades", len(batch.Trades)),
		zap.Int("pre_matched", len(batch.Matched)))
	return nil
}

func (s *Session) fail(filename string, err error) error {
	fe := &FileError{Filename: filename, Err: err}
	s.failures = append(s.failures, fe)
	s.logger.Warn("文件处理失败", zap.String("file", filename), zap.Error(err))
	return fe
}

// Combine 组合全部已接受批次为统一结果
// 拼接原始行与成交记录，按日期重排后对可配对记录从零重跑 FIFO 配对——
// 从不合并既有配对结果，保证跨文件边界（如跨年度导出）的 FIFO 正确性。
// 新版格式的源内配对记录属于输入事实而非配对器输出，直接拼接。
// 结果整体替换会话当前数据。
func (s *Session) Combine() *model.ProcessedData {
	if len(s.batches) == 0 {
		s.current = model.EmptyProcessedData()
		return s.current
	}

	var rawRows []model.RawRow
	var trades []*model.Trade
	var preMatched []*model.MatchedTrade
	for _, b := range s.batches {
		rawRows = append(rawRows, b.RawRows...)
		trades = append(trades, b.Trades...)
		preMatched = append(preMatched, b.PreMatched...)
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Date.Before(trades[j].Date)
	})

	res := s.matcher.Match(trades)
	matched := append(res.Matched, preMatched...)

	s.current = &model.ProcessedData{
		RawRows:    rawRows,
		Trades:     trades,
		Matched:    matched,
		Stats:      summary.Compute(trades, matched),
		MatchStats: res.Stats,
	}

	s.logger.Info("批次组合完成",
		zap.Int("batches", len(s.batches)),
		zap.Int("trades", len(trades)),
		zap.Int("matched", len(matched)),
		zap.Int("unmatched_exits", res.Stats.UnmatchedExits))
	return s.current
}

// Current 获取会话当前结果
// 尚未组合（或已清空）时返回全零结果，供展示层的复位状态使用。
func (s *Session) Current() *model.ProcessedData {
	if s.current == nil {
		return model.EmptyProcessedData()
	}
	return s.current
}

// Failures 获取累积的单文件失败列表
func (s *Session) Failures() []*FileError {
	return s.failures
}

// BatchCount 获取已接受的批次数
func (s *Session) BatchCount() int {
	return len(s.batches)
}

// Clear 清空会话
// 丢弃全部批次、失败记录与组合结果。
func (s *Session) Clear() {
	s.seen = make(map[string]bool)
	s.batches = nil
	s.failures = nil
	s.current = nil
}
