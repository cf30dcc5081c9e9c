/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"isokml/internal/util"
)

// renderNameTemplate 负责将名称模板中的占位符替换为实际值。
// 支持占位符:
//
//	{name}                 源文件名（不含扩展名）
//	{index[:width]}        当前序号
//	{count}                总数量
//	{date[:layout]}        日期 (默认 20060102, 可指定 Go time layout)
//	{ts}                   Unix 秒级时间戳
//	{uuid}                 随机 UUID v4
//	{rand[:len]}           随机字符串 (默认 8 位)
//	:lower|upper|title     可用于所有占位符，表示转换结果的大小写。
func renderNameTemplate(tmpl string, baseName string, index int, count int, now time.Time) string {
	var out strings.Builder
	for len(tmpl) > 0 {
		start := strings.IndexByte(tmpl, '{')
		if start == -1 {
			out.WriteString(tmpl)
			break
		}
		out.WriteString(tmpl[:start])
		tmpl = tmpl[start+1:]
		end := strings.IndexByte(tmpl, '}')
		if end == -1 { // 无闭合，原样输出剩余
			out.WriteString("{" + tmpl)
			break
		}
		full := tmpl[:end]
		tmpl = tmpl[end+1:]
		out.WriteString(resolveToken(full, baseName, index, count, now))
	}
	return out.String()
}

func resolveToken(token string, baseName string, index int, count int, now time.Time) string {
	parts := strings.Split(token, ":")
	nameRaw := parts[0]
	if nameRaw == "" {
		return "{" + token + "}"
	}
	name := strings.ToLower(nameRaw)

	// 大小写修饰符可出现在任意位置，取最后一次
	caseTransform := ""
	args := make([]string, 0, len(parts)-1)
	for _, a := range parts[1:] {
		la := strings.ToLower(a)
		if la == "lower" || la == "upper" || la == "title" {
			caseTransform = la
			continue
		}
		args = append(args, a)
	}

	firstArg := ""
	if len(args) > 0 {
		firstArg = args[0]
	}

	var result string
	switch name {
	case "name":
		result = baseName
	case "index":
		width := len(firstArg)
		offset := 0
		if firstArg != "" {
			if v, err := strconv.Atoi(firstArg); err == nil {
				offset = v
			}
		}
		result = fmt.Sprintf("%0*d", width, index+offset)
	case "count":
		result = strconv.Itoa(count)
	case "date":
		layout := "20060102"
		if firstArg != "" {
			layout = firstArg
		}
		result = now.Format(layout)
	case "ts":
		result = strconv.FormatInt(now.Unix(), 10)
	case "uuid":
		result = util.NewUUID()
	case "rand":
		length := 8
		if firstArg != "" {
			if n, e := strconv.Atoi(firstArg); e == nil && n > 0 {
				length = n
			}
		}
		result = util.RandomString(length)
	default:
		// 未知 token 原样返回
		result = "{" + token + "}"
	}

	switch caseTransform {
	case "lower":
		result = strings.ToLower(result)
	case "upper":
		result = strings.ToUpper(result)
	case "title":
		if len(result) > 0 {
			result = strings.ToUpper(result[:1]) + result[1:]
		}
	}
	return result
}

// cleanFileName 把路径分隔符等非法字符替换为下划线。
func cleanFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
