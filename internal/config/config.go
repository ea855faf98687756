// Package config 负责加载和验证 YAML 配置文件。
// 提供应用程序所需的所有配置项，包括日志级别、风险指标参数、报告输出设置。
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config 应用配置根结构
// 包含所有子模块的配置项
type Config struct {
	// App 应用基础配置
	App AppConfig `yaml:"app"`
	// Risk 风险指标配置
	Risk RiskConfig `yaml:"risk"`
	// Output 报告输出配置
	Output OutputConfig `yaml:"output"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	// Name 应用名称，用于日志标识
	Name string `yaml:"name"`
	// LogLevel 日志级别: debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// RiskConfig 风险指标配置
type RiskConfig struct {
	// InitialCapital 合成净值序列的初始本金（美元，须为正数）
	InitialCapital float64 `yaml:"initial_capital"`
	// TradingDays 年化换算采用的交易日数（默认 252）
	TradingDays int `yaml:"trading_days"`
}

// OutputConfig 报告输出配置
type OutputConfig struct {
	// Dir 输出目录
	Dir string `yaml:"dir"`
	// TradesEnabled 是否输出规范化成交文件
	TradesEnabled bool `yaml:"trades_enabled"`
	// MatchedEnabled 是否输出配对平仓文件
	MatchedEnabled bool `yaml:"matched_enabled"`
	// SummaryEnabled 是否输出摘要快照文件
	SummaryEnabled bool `yaml:"summary_enabled"`
	// BufferSize 异步写入缓冲区大小
	BufferSize int `yaml:"buffer_size"`
}

// Load 从文件加载配置并验证
// 参数 path: 配置文件路径
// 返回: 解析后的配置对象，若失败则返回错误
func Load(path string) (*Config, error) {
	// 读取配置文件
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析 YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 设置默认值
	cfg.setDefaults()

	// 验证配置
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return &cfg, nil
}

// setDefaults 设置配置默认值
func (c *Config) setDefaults() {
	// 应用默认值
	if c.App.Name == "" {
		c.App.Name = "kalshi-trade-analyzer"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}

	// 风险指标默认值
	if c.Risk.InitialCapital == 0 {
		c.Risk.InitialCapital = 10000
	}
	if c.Risk.TradingDays == 0 {
		c.Risk.TradingDays = 252
	}

	// 输出默认值
	if c.Output.Dir == "" {
		c.Output.Dir = "./output"
	}
	if c.Output.BufferSize == 0 {
		c.Output.BufferSize = 1000
	}
}

// Validate 验证配置合法性
// 检查所有必填项和数值范围
// 返回: 若配置无效则返回描述性错误
func (c *Config) Validate() error {
	var errs []string

	// 验证风险指标参数
	if c.Risk.InitialCapital <= 0 {
		errs = append(errs, fmt.Sprintf("risk.initial_capital: 初始本金必须为正数，当前值: %f", c.Risk.InitialCapital))
	}
	if c.Risk.TradingDays <= 0 {
		errs = append(errs, fmt.Sprintf("risk.trading_days: 交易日数必须为正数，当前值: %d", c.Risk.TradingDays))
	}

	// 验证输出参数
	if c.Output.BufferSize < 0 {
		errs = append(errs, "output.buffer_size: 缓冲区大小不能为负数")
	}

	// 验证日志级别
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.App.LogLevel)] {
		errs = append(errs, fmt.Sprintf("app.log_level: 无效的日志级别 '%s'，有效值: debug, info, warn, error", c.App.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("配置验证错误:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
