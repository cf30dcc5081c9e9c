/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// 构建时通过 -ldflags "-X" 注入
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// GetAbout 返回工具简介与构建信息。
func GetAbout() string {
	var b strings.Builder
	b.WriteString("ISOKML - 网格数据等值面 KML 转换工具\n")
	b.WriteString("将 (x, y, value) 网格数据转换为嵌套的等值面 KML 与色带图例 KML。\n\n")
	fmt.Fprintf(&b, "版本:     %s\n", Version)
	fmt.Fprintf(&b, "提交:     %s\n", shortCommit(Commit))
	fmt.Fprintf(&b, "构建时间: %s\n", BuildDate)
	fmt.Fprintf(&b, "运行环境: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return b.String()
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}
