// Package timeutil 提供导出时间戳的解析与时间计算工具。
// 导出文件中的时间戳有两种形态：机器可解析的标准格式，
// 以及 "<月份> <日>, <年份> at <时>:<分> <AM|PM> <时区缩写>" 的人类可读格式。
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SecondsPerDay 一天的秒数，用于持仓天数计算
const SecondsPerDay = 86400.0

// tzOffsets 美国常用时区缩写 -> 固定 UTC 偏移（小时）
// 导出文件只携带缩写，不携带 IANA 时区名，因此查表解析。
var tzOffsets = map[string]int{
	"PST":  -8,
	"PDT":  -7,
	"MST":  -7,
	"MDT":  -6,
	"CST":  -6,
	"CDT":  -5,
	"EST":  -5,
	"EDT":  -4,
	"AKST": -9,
	"AKDT": -8,
	"HST":  -10,
	"HDT":  -9,
	"AST":  -4,
	"ADT":  -3,
	"UTC":  0,
	"GMT":  0,
}

// defaultTZOffset 未识别缩写时回退的偏移（太平洋标准时间）
const defaultTZOffset = -8

// months 月份名称（全称与三字母缩写）-> time.Month
var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// humanPattern 人类可读时间戳模式
// 形如 "Jan 20, 2025 at 10:04 AM PST"，忽略大小写，AM/PM 前空格可省略。
var humanPattern = regexp.MustCompile(`(?i)^\s*([A-Za-z]+)\s+(\d{1,2}),\s*(\d{4})\s+at\s+(\d{1,2}):(\d{2})\s*([AP]M)\s+([A-Za-z]+)\s*$`)

// fallbackLayouts 自由格式回退解析尝试的布局
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	time.RFC1123,
	time.UnixDate,
}

// Parse 解析导出时间戳
// 先匹配人类可读模式（时区缩写查表，未识别回退 PST 偏移），
// 再依次尝试自由格式布局。两者都失败时返回错误，由调用方决定降级行为
// （规范化阶段记录日志并以当前时间代替，不视为致命错误）。
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("时间戳为空")
	}

	if m := humanPattern.FindStringSubmatch(s); m != nil {
		return parseHuman(m)
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("无法解析时间戳: %q", s)
}

// parseHuman 将人类可读模式的捕获组构造为带固定偏移的时间点
func parseHuman(m []string) (time.Time, error) {
	month, ok := months[strings.ToLower(m[1])]
	if !ok {
		return time.Time{}, fmt.Errorf("无法识别的月份: %q", m[1])
	}

	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	if day < 1 || day > 31 || hour < 1 || hour > 12 || minute > 59 {
		return time.Time{}, fmt.Errorf("时间字段超出范围: %s", m[0])
	}

	// 12 小时制 -> 24 小时制
	if strings.EqualFold(m[6], "PM") && hour != 12 {
		hour += 12
	}
	if strings.EqualFold(m[6], "AM") && hour == 12 {
		hour = 0
	}

	abbrev := strings.ToUpper(m[7])
	offset, ok := tzOffsets[abbrev]
	if !ok {
		offset = defaultTZOffset
	}
	loc := time.FixedZone(abbrev, offset*3600)

	return time.Date(year, month, day, hour, minute, 0, 0, loc), nil
}

// Days 计算两个时间点之间的天数（浮点，按 86400 秒一天）
func Days(from, to time.Time) float64 {
	return to.Sub(from).Seconds() / SecondsPerDay
}

// DayFloor 将时间截断到 UTC 整天
// 风险指标的合成每日序列按 UTC 日历天构建。
func DayFloor(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayIndex 计算 t 所在天相对 base 所在天的序号
// base 同日为 0，次日为 1，依此类推。
func DayIndex(base, t time.Time) int {
	return int(DayFloor(t).Sub(DayFloor(base)).Hours() / 24)
}
