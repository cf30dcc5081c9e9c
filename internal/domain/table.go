/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

// Sample 是输入表中的一行：坐标与数值。
type Sample struct {
	X     float64
	Y     float64
	Value float64
}

// ParseTable 解析逗号分隔文本为采样点序列。
//
// 规则：
//  1. 跳过表头前的说明行，表头为第一个包含 X 列名（原样、全大写或首字母大写）的行；
//  2. 列名按大小写不敏感方式匹配 XCol / YCol / ValCol；
//  3. 空行忽略，任一数值解析失败立即返回 MalformedGridError（精确到行号）；
//  4. Multiplier 不为 1 时数值乘以该系数。
func ParseTable(text string, opts Options) ([]Sample, error) {
	lines := strings.Split(text, "\n")
	start := findHeaderLine(lines, opts.XCol)
	if start < 0 {
		return nil, malformed("未找到包含列 %q 的表头", opts.XCol)
	}

	body := strings.Join(lines[start:], "\n")
	reader := csv.NewReader(strings.NewReader(body))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, malformed("表头读取失败: %v", err)
	}
	xi, yi, vi := columnIndex(header, opts.XCol), columnIndex(header, opts.YCol), columnIndex(header, opts.ValCol)
	switch {
	case xi < 0:
		return nil, malformed("缺少 X 列 %q", opts.XCol)
	case yi < 0:
		return nil, malformed("缺少 Y 列 %q", opts.YCol)
	case vi < 0:
		return nil, malformed("缺少数值列 %q", opts.ValCol)
	}

	samples := make([]Sample, 0, len(lines)-start)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed("表格解析失败: %v", err)
		}
		line, _ := reader.FieldPos(0)
		line += start
		if isBlankRecord(record) {
			continue
		}
		s, err := parseSample(record, xi, yi, vi)
		if err != nil {
			return nil, malformed("第 %d 行: %v", line, err)
		}
		if opts.Multiplier != 1 {
			s.Value *= opts.Multiplier
		}
		samples = append(samples, s)
	}
	if len(samples) == 0 {
		return nil, malformed("表中没有数据行")
	}
	return samples, nil
}

// findHeaderLine 返回第一个包含列名（原样/全大写/首字母大写）的行号，未找到返回 -1。
func findHeaderLine(lines []string, col string) int {
	variants := []string{col, strings.ToUpper(col), capitalize(col)}
	for i, line := range lines {
		for _, v := range variants {
			if v != "" && strings.Contains(line, v) {
				return i
			}
		}
	}
	return -1
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func columnIndex(header []string, name string) int {
	name = strings.TrimSpace(name)
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), name) {
			return i
		}
	}
	return -1
}

func isBlankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseSample(record []string, xi, yi, vi int) (Sample, error) {
	var s Sample
	fields := [...]struct {
		idx int
		dst *float64
	}{{xi, &s.X}, {yi, &s.Y}, {vi, &s.Value}}
	for _, f := range fields {
		if f.idx >= len(record) {
			return s, errors.New("字段数不足")
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(record[f.idx]), 64)
		if err != nil {
			return s, err
		}
		*f.dst = v
	}
	return s, nil
}
