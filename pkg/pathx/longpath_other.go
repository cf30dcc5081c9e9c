//go:build !windows

/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package pathx

const caseInsensitive = false

func normalize(p string) string { return p }

// GetLongPathName 在非 Windows 平台原样返回。
func GetLongPathName(path string) (string, error) { return path, nil }
