/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import "fmt"

// MalformedGridError 表示输入行无法重建为规则网格（解析失败、点数与坐标轴不匹配等）。
type MalformedGridError struct {
	Reason string
}

func (e *MalformedGridError) Error() string {
	return "网格数据无效: " + e.Reason
}

func malformed(format string, args ...any) error {
	return &MalformedGridError{Reason: fmt.Sprintf(format, args...)}
}

// ProjectionError 表示投影族/带号/椭球组合无法解析。
type ProjectionError struct {
	Family string
	Zone   string
	Datum  string
	Err    error
}

func (e *ProjectionError) Error() string {
	msg := fmt.Sprintf("投影无法解析 (family=%q zone=%q datum=%q)", e.Family, e.Zone, e.Datum)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProjectionError) Unwrap() error { return e.Err }

// IOError 表示模板或输出路径读写失败。
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s 失败: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
