// Package csvio 实现导出文件的 CSV 解析服务。
// 输入原始文件字节与"首行为表头"选项，输出归一化表头与按列名索引的行。
// 核心引擎只依赖此契约，不直接触碰 CSV 细节。
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// Row 一行数据（归一化列名 -> 单元格原文）
type Row = map[string]string

// Table 解析后的表格
type Table struct {
	// Header 归一化表头（小写、去首尾空白，保持原列序）
	Header []string
	// Rows 数据行，按归一化列名索引
	Rows []Row
}

// HasColumns 判断表头是否包含给定的全部列名（列名须已归一化）
func (t *Table) HasColumns(cols ...string) bool {
	set := make(map[string]bool, len(t.Header))
	for _, h := range t.Header {
		set[h] = true
	}
	for _, c := range cols {
		if !set[c] {
			return false
		}
	}
	return true
}

// Parse 解析 CSV 文件内容
// 参数 data: 原始文件字节
// 参数 headerRow: 是否将首行视为表头；为 false 时生成 col0, col1, ... 占位列名
// 返回: 解析后的表格，文件不可解析时返回错误
func Parse(data []byte, headerRow bool) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	// 导出文件的行可能携带多余列，不按首行锁定列数
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析 CSV 失败: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV 文件为空")
	}

	var header []string
	var body [][]string
	if headerRow {
		header = normalizeHeader(records[0])
		body = records[1:]
	} else {
		header = make([]string, len(records[0]))
		for i := range header {
			header[i] = fmt.Sprintf("col%d", i)
		}
		body = records
	}

	rows := make([]Row, 0, len(body))
	for _, rec := range body {
		if isBlank(rec) {
			continue
		}
		row := make(Row, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// normalizeHeader 归一化表头：小写并去除首尾空白
func normalizeHeader(raw []string) []string {
	header := make([]string, len(raw))
	for i, h := range raw {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return header
}

// isBlank 判断整行是否为空
func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
