// Package fastparse 提供导出文件字段的容错解析函数。
// 导出文件中的数值字段可能为空、携带美元符号或千分位逗号；
// 行级解析失败按约定降级为 0，不中断规范化流程。
package fastparse

import (
	"strconv"
	"strings"
)

// ParseFloat 解析浮点数字符串
// 参数 s: 待解析的字符串，如 "12345.67"
// 返回: 解析后的浮点数和可能的错误
func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// MustParseFloat 解析浮点数，失败时返回 0
// 用于导出行中允许缺失/畸形的数值字段（降级为 0 是约定行为）
// 参数 s: 待解析的字符串
// 返回: 解析后的浮点数，失败返回 0
func MustParseFloat(s string) float64 {
	v, err := ParseFloat(s)
	if err != nil {
		return 0
	}
	return v
}

// MustParseInt 解析整数，失败时返回 0
// 合约数量字段可能以浮点形式出现（如 "10.0"），先按浮点解析再截断
// 参数 s: 待解析的字符串
// 返回: 解析后的整数，失败返回 0
func MustParseInt(s string) int {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err == nil {
		return int(v)
	}
	f, ferr := ParseFloat(s)
	if ferr != nil {
		return 0
	}
	return int(f)
}

// MustParseDollar 解析美元金额字符串，失败时返回 0
// 剥离前导 $、千分位逗号与首尾空白后按浮点解析
// 参数 s: 待解析的字符串，如 "$1,234.56" 或 "-$3.50"
// 返回: 解析后的美元金额，失败返回 0
func MustParseDollar(s string) float64 {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if neg {
		return -v
	}
	return v
}

// CentsToDollars 将美分金额转换为美元
// 新版导出的货币字段均以美分计
func CentsToDollars(cents float64) float64 {
	return cents / 100
}
