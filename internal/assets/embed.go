/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package assets

import (
	"bufio"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
)

// PaletteSize 色带固定条目数。
const PaletteSize = 429

// paletteText 是 KML aabbggrr 格式的色带，每行一个颜色，从低值到高值。
//
//go:embed palette.txt
var paletteText string

// ScaleTemplate 是图例 KML 模板。
// 占位符：[name_file]、[coord_0..49]、[val_0..6]、[point_0..6]。
//
//go:embed scale.kml.tmpl
var ScaleTemplate string

var palette = sync.OnceValues(func() ([]string, error) {
	return parsePalette(paletteText)
})

// Palette 返回内置的 429 色色带（只读，调用方不得修改）。
func Palette() []string {
	p, err := palette()
	if err != nil {
		// 内置资源在构建期即确定，解析失败属于程序错误
		panic(err)
	}
	return p
}

func parsePalette(text string) ([]string, error) {
	colors := make([]string, 0, PaletteSize)
	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(line) != 8 {
			return nil, fmt.Errorf("色带第 %d 行颜色格式无效: %q", lineNo, line)
		}
		colors = append(colors, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(colors) != PaletteSize {
		return nil, fmt.Errorf("色带条目数应为 %d，实际为 %d", PaletteSize, len(colors))
	}
	return colors, nil
}

// LoadScaleTemplate 读取外部图例模板；path 为空时返回内置模板。
func LoadScaleTemplate(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ScaleTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("无法读取图例模板 %s: %w", path, err)
	}
	return string(data), nil
}
