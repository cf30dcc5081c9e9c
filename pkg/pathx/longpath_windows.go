//go:build windows

/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package pathx

import (
	"fmt"
	"strings"

	"golang.org/x/sys/windows"
)

const caseInsensitive = true

// normalize 统一分隔符、展开 8.3 短路径、盘符大写并去除尾部分隔符（根路径保留）。
func normalize(p string) string {
	if !strings.HasPrefix(p, `\\?\`) {
		p = strings.ReplaceAll(p, `/`, `\`)
	}
	if long, err := GetLongPathName(p); err == nil && long != "" {
		p = long
	}
	if len(p) >= 2 && p[1] == ':' && p[0] >= 'a' && p[0] <= 'z' {
		p = strings.ToUpper(p[:1]) + p[1:]
	}
	for len(p) > 3 && strings.HasSuffix(p, `\`) {
		if strings.HasPrefix(p, `\\?\`) && len(p) <= 7 {
			break
		}
		p = strings.TrimSuffix(p, `\`)
	}
	return p
}

// GetLongPathName 返回规范的长路径形式。失败时回退原路径。
func GetLongPathName(shortPath string) (string, error) {
	if shortPath == "" {
		return "", fmt.Errorf("路径不能为空")
	}
	utf16Path, err := windows.UTF16PtrFromString(shortPath)
	if err != nil {
		return "", fmt.Errorf("转换路径为UTF16失败: %w", err)
	}
	buffer := make([]uint16, windows.MAX_PATH)
	length, err := windows.GetLongPathName(utf16Path, &buffer[0], uint32(len(buffer)))
	if err != nil || length == 0 {
		return shortPath, nil
	}
	if int(length) > len(buffer) {
		buffer = make([]uint16, length)
		length, err = windows.GetLongPathName(utf16Path, &buffer[0], uint32(len(buffer)))
		if err != nil || length == 0 {
			return shortPath, nil
		}
	}
	return windows.UTF16ToString(buffer[:length]), nil
}
