// Package main 是交易导出分析器的入口点。
// 本分析器读取预测市场交易平台的逐账户导出文件（两种 CSV 格式），
// 规范化后按 FIFO 配对开平仓，计算摘要统计与风险指标，
// 并以 JSONL 报告输出。全部处理在内存中同步完成，无网络 I/O。
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kalshi-trade-analyzer/internal/config"
	"kalshi-trade-analyzer/internal/core/model"
	"kalshi-trade-analyzer/internal/core/session"
	"kalshi-trade-analyzer/internal/output/jsonl"
	"kalshi-trade-analyzer/internal/stats/risk"
)

// summarySnapshot 摘要快照输出结构
// 每次运行末尾写出一条，便于离线复盘。
type summarySnapshot struct {
	// GeneratedAt 快照生成时间
	GeneratedAt time.Time `json:"generated_at"`
	// FilesProcessed 成功规范化的文件数
	FilesProcessed int `json:"files_processed"`
	// FileFailures 单文件失败消息（按发生顺序）
	FileFailures []string `json:"file_failures,omitempty"`
	// InitialCapital 风险指标采用的初始本金
	InitialCapital float64 `json:"initial_capital"`
	// Stats 基础统计摘要
	Stats model.BasicStats `json:"stats"`
	// MatchStats 配对运行诊断统计
	MatchStats model.MatchStats `json:"match_stats"`
	// Risk 风险指标
	Risk risk.Metrics `json:"risk"`
}

func main() {
	var configPath string
	var capitalFlag float64
	flag.StringVar(&configPath, "config", "config.yaml", "配置文件路径")
	flag.Float64Var(&capitalFlag, "capital", 0, "初始本金（覆盖配置文件，0 表示使用配置值）")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "用法: analyzer [-config config.yaml] [-capital N] <导出文件.csv>...")
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.App.LogLevel)
	defer logger.Sync()

	capital := cfg.Risk.InitialCapital
	if capitalFlag > 0 {
		capital = capitalFlag
	}

	sess := session.New(logger)

	// 逐个文件处理：单文件失败累积上报，不中断其余文件
	var failures []string
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("读取导出文件失败", zap.String("file", path), zap.Error(err))
			failures = append(failures, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		if err := sess.Process(filepath.Base(path), data); err != nil {
			failures = append(failures, err.Error())
		}
	}

	if sess.BatchCount() == 0 {
		logger.Error("没有成功规范化的导出文件", zap.Strings("failures", failures))
		os.Exit(1)
	}

	data := sess.Combine()
	metrics := risk.Compute(data.Matched, capital, cfg.Risk.TradingDays)

	if err := writeReports(cfg, data, metrics, capital, sess.BatchCount(), failures); err != nil {
		logger.Error("写出报告失败", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("分析完成",
		zap.Int("files", sess.BatchCount()),
		zap.Int("file_failures", len(failures)),
		zap.Int("trades", len(data.Trades)),
		zap.Int("matched", len(data.Matched)),
		zap.Int("unmatched_exits", data.MatchStats.UnmatchedExits),
		zap.Float64("total_profit", data.Stats.TotalProfit),
		zap.Float64("win_rate", data.Stats.WinRate),
		zap.Float64("total_return", metrics.TotalReturn),
		zap.Float64("sharpe", metrics.SharpeRatio))
}

// writeReports 按配置写出 JSONL 报告
func writeReports(cfg *config.Config, data *model.ProcessedData, metrics risk.Metrics, capital float64, filesProcessed int, failures []string) error {
	if cfg.Output.TradesEnabled {
		w, err := jsonl.NewWriter(fmt.Sprintf("%s/trades.jsonl", cfg.Output.Dir), cfg.Output.BufferSize)
		if err != nil {
			return fmt.Errorf("创建 trades writer 失败: %w", err)
		}
		for _, t := range data.Trades {
			_ = w.Write(t)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("关闭 trades writer 失败: %w", err)
		}
	}

	if cfg.Output.MatchedEnabled {
		w, err := jsonl.NewWriter(fmt.Sprintf("%s/matched_trades.jsonl", cfg.Output.Dir), cfg.Output.BufferSize)
		if err != nil {
			return fmt.Errorf("创建 matched_trades writer 失败: %w", err)
		}
		for _, m := range data.Matched {
			_ = w.Write(m)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("关闭 matched_trades writer 失败: %w", err)
		}
	}

	if cfg.Output.SummaryEnabled {
		w, err := jsonl.NewWriter(fmt.Sprintf("%s/summary.jsonl", cfg.Output.Dir), cfg.Output.BufferSize)
		if err != nil {
			return fmt.Errorf("创建 summary writer 失败: %w", err)
		}
		_ = w.Write(summarySnapshot{
			GeneratedAt:    time.Now(),
			FilesProcessed: filesProcessed,
			FileFailures:   failures,
			InitialCapital: capital,
			Stats:          data.Stats,
			MatchStats:     data.MatchStats,
			Risk:           metrics,
		})
		if err := w.Close(); err != nil {
			return fmt.Errorf("关闭 summary writer 失败: %w", err)
		}
	}

	return nil
}

func newLogger(level string) *zap.Logger {
	lvl := zapcore.InfoLevel
	if err := lvl.Set(level); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
