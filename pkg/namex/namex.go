/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package namex

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxNameLength 标识符最大 rune 数（0 表示不截断）。
const DefaultMaxNameLength = 64

// Sanitize 把文件名转换为可用作 KML Schema id 的标识符。
//
// 处理流程:
//  1. 取路径最后一段，去掉扩展名后的第一个点之后的部分（a.b.csv -> a）。
//  2. NFKC 归一化（全角字符转半角）。
//  3. 仅保留字母、数字、下划线与连字符，连续非法字符折叠为单个下划线，去首尾下划线。
//  4. 以数字或连字符开头时前置下划线；结果为空时返回 "unnamed"。
//  5. 按 DefaultMaxNameLength 截断。
func Sanitize(filePath string) string {
	base := filepath.Base(strings.TrimSpace(filePath))
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}

	name := fold(base)
	if name == "" || name == "." {
		return "unnamed"
	}
	if r, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(r) || r == '-' {
		name = "_" + name
	}
	if DefaultMaxNameLength > 0 {
		name = strings.TrimRight(truncateRunes(name, DefaultMaxNameLength), "_")
	}
	return name
}

func fold(s string) string {
	s = norm.NFKC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	prevUnderscore := false
	for _, r := range s {
		if r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevUnderscore = r == '_'
			continue
		}
		if !prevUnderscore {
			b.WriteByte('_')
			prevUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}

// truncateRunes 按 rune 计数截断。
func truncateRunes(s string, max int) string {
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
