/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package pathx

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Equal 判断两个路径是否逻辑相等（绝对化后比较，Windows 下忽略大小写）。
func Equal(path1, path2 string) (bool, error) {
	if path1 == "" || path2 == "" {
		return false, fmt.Errorf("路径不能为空")
	}
	abs1, err := Resolve(path1)
	if err != nil {
		return false, fmt.Errorf("无法获取路径1的绝对路径: %w", err)
	}
	abs2, err := Resolve(path2)
	if err != nil {
		return false, fmt.Errorf("无法获取路径2的绝对路径: %w", err)
	}
	if caseInsensitive {
		return strings.EqualFold(abs1, abs2), nil
	}
	return abs1 == abs2, nil
}

// Resolve 绝对化路径并解析符号链接，再做平台相关的规范化。
func Resolve(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", fmt.Errorf("路径不能为空")
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	} else {
		p = filepath.Clean(p)
	}
	// 仅在路径存在时解析符号链接
	if _, err := os.Lstat(p); err == nil {
		if real, rerr := filepath.EvalSymlinks(p); rerr == nil {
			p = real
		}
	}
	return normalize(p), nil
}

// Exists 判断路径是否存在。不存在返回 (false,nil)。
func Exists(path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("路径不能为空")
	}
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("检查路径时出错: %w", err)
}

// IsDir 判断路径是否为目录，不存在时返回 (false,nil)。
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("检查目录时出错: %w", err)
	}
	return info.IsDir(), nil
}

// Stem 返回最后路径元素去除末尾扩展后的主体。
//   - a.tar.gz -> a.tar
//   - .gitignore 保持不变
func Stem(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", fmt.Errorf("路径不能为空")
	}
	base := filepath.Base(p)
	if base == "." || base == string(os.PathSeparator) {
		return "", fmt.Errorf("路径 '%s' 无有效基础名称", p)
	}
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return base, nil
	}
	return base[:len(base)-len(ext)], nil
}

// ReadFile 读取文件内容并计算 SHA-256 哈希。
func ReadFile(path string) ([]byte, string, error) {
	norm, err := Resolve(path)
	if err != nil {
		return nil, "", err
	}
	content, err := os.ReadFile(norm)
	if err != nil {
		return nil, "", fmt.Errorf("无法读取文件 %s: %w", norm, err)
	}
	sum := sha256.Sum256(content)
	return content, hex.EncodeToString(sum[:]), nil
}

// WalkDir 遍历目录并按深度与扩展名过滤。
//   - maxDepth: -1 不限制；0 仅 root 文件；1 root+子目录；依次类推
//   - extensions: 允许的扩展集合（大小写不敏感，支持不带点）
func WalkDir(root string, maxDepth int, sortResult bool, extensions []string) ([]string, error) {
	nRoot, err := Resolve(root)
	if err != nil {
		return nil, err
	}
	if ok, err := IsDir(nRoot); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("根路径不存在或不是目录: %s", nRoot)
	}

	allowed := extSet(extensions)

	type node struct {
		path  string
		depth int
	}
	stack := []node{{path: nRoot, depth: 0}}
	files := make([]string, 0, 64)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(current.path)
		if err != nil {
			return nil, fmt.Errorf("读取目录失败 %s: %w", current.path, err)
		}
		for _, entry := range entries {
			fullPath := filepath.Join(current.path, entry.Name())
			if entry.IsDir() {
				if maxDepth < 0 || current.depth < maxDepth {
					stack = append(stack, node{path: fullPath, depth: current.depth + 1})
				}
				continue
			}
			if hasAllowedExt(entry.Name(), allowed) {
				files = append(files, fullPath)
			}
		}
	}
	if sortResult {
		stablePathSort(files)
	}
	return files, nil
}

// CollectFiles 收集混合输入（文件或目录）中匹配扩展名的文件，去重并可排序。
// 不存在的路径被忽略；目录按 maxDepth 递归；extensions 为空表示不过滤。
func CollectFiles(inputs []string, maxDepth int, extensions []string, sortResult bool) ([]string, error) {
	allowed := extSet(extensions)
	seen := make(map[string]struct{}, len(inputs))
	out := make([]string, 0, len(inputs))
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}

	for _, in := range inputs {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		resolved, err := Resolve(in)
		if err != nil {
			return nil, fmt.Errorf("解析路径失败 '%s': %w", in, err)
		}
		exists, err := Exists(resolved)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		isDir, err := IsDir(resolved)
		if err != nil {
			return nil, err
		}
		if isDir {
			files, err := WalkDir(resolved, maxDepth, false, extensions)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				add(f)
			}
			continue
		}
		if hasAllowedExt(filepath.Base(resolved), allowed) {
			add(resolved)
		}
	}

	if sortResult {
		stablePathSort(out)
	}
	return out, nil
}

// extSet 把扩展名规范为小写且带点的集合；空集合表示不过滤。
func extSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[strings.ToLower(e)] = struct{}{}
	}
	return set
}

func hasAllowedExt(name string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[strings.ToLower(filepath.Ext(name))]
	return ok
}

// stablePathSort 主键为不区分大小写的值，次键为原值。
func stablePathSort(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		ai, aj := strings.ToLower(paths[i]), strings.ToLower(paths[j])
		if ai == aj {
			return paths[i] < paths[j]
		}
		return ai < aj
	})
}
