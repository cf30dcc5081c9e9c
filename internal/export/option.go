/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"isokml/internal/domain"
	"isokml/pkg/logger"
	"isokml/pkg/pathx"
)

// DefaultNameTemplate 输出名默认模板：小写文件名加秒级时间戳。
const DefaultNameTemplate = "{name:lower}_{ts}"

const (
	ProcessedFileName = ".processed"
	documentExt       = ".kml"
	geoJSONExt        = ".geojson"
)

// ConvertConfig 汇集了从命令行接收到的所有转换参数。
type ConvertConfig struct {
	InputPaths    []string
	Depth         int
	OutputDir     string // 为空时输出到输入文件旁
	OutputPath    string // 显式指定输出文档路径，仅允许单个输入
	NameTemplate  string
	DryRun        bool
	SkipProcessed bool
	GeoJSON       bool
	MetricsFile   string
	ScaleTemplate string // 外部图例模板，为空时使用内置模板

	Options domain.Options
}

// Verify 校验并规范化配置。
func (c *ConvertConfig) Verify() error {
	// 1. 验证输入
	if len(c.InputPaths) == 0 {
		return errors.New("至少提供一个 --input / -i")
	}
	for i, input := range c.InputPaths {
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			return fmt.Errorf("第 %d 个输入为空", i+1)
		}
		c.InputPaths[i] = trimmed
	}
	// 2. 验证递归深度
	if c.Depth < -1 {
		return errors.New("depth 不能小于 -1")
	}

	// 3. 输出目录，未指定时留空表示与输入同目录
	if dir := strings.TrimSpace(c.OutputDir); dir != "" {
		resolved, err := pathx.Resolve(dir)
		if err != nil {
			return fmt.Errorf("无法解析输出目录 '%s': %w", dir, err)
		}
		if exists, err := pathx.Exists(resolved); err != nil {
			return fmt.Errorf("无法检查输出目录 '%s': %w", resolved, err)
		} else if exists {
			isDir, err := pathx.IsDir(resolved)
			if err != nil {
				return fmt.Errorf("无法检查输出目录 '%s': %w", resolved, err)
			}
			if !isDir {
				return fmt.Errorf("输出目录 '%s' 不是文件夹", resolved)
			}
		}
		c.OutputDir = resolved
	} else {
		c.OutputDir = ""
	}

	// 4. 显式输出路径
	if out := strings.TrimSpace(c.OutputPath); out != "" {
		resolved, err := pathx.Resolve(out)
		if err != nil {
			return fmt.Errorf("无法解析输出路径 '%s': %w", out, err)
		}
		if filepath.Ext(resolved) == "" {
			resolved += documentExt
		}
		c.OutputPath = resolved
	}

	// 5. 名称模板，去掉用户误带的扩展名
	nameTemplate := strings.TrimSpace(c.NameTemplate)
	if nameTemplate == "" {
		nameTemplate = DefaultNameTemplate
	} else if stem, err := pathx.Stem(nameTemplate); err == nil {
		nameTemplate = stem
	}
	c.NameTemplate = nameTemplate

	// 6. 转换参数
	if err := c.Options.Validate(); err != nil {
		return fmt.Errorf("转换参数无效: %w", err)
	}
	return nil
}

// Prepare 创建输出目录。
func (c *ConvertConfig) Prepare() error {
	if c.DryRun {
		logger.Log().Debug("已启用 --dry-run 模式, 将不会写入文件")
		return nil
	}
	dirs := make([]string, 0, 2)
	if c.OutputDir != "" {
		dirs = append(dirs, c.OutputDir)
	}
	if c.OutputPath != "" {
		dirs = append(dirs, filepath.Dir(c.OutputPath))
	}
	for _, dir := range dirs {
		logger.Log().Debug("创建输出目录", "dir", dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	return nil
}

// ProcessFileDir 返回处理历史记录文件所在的目录。
func (c *ConvertConfig) ProcessFileDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	if c.OutputPath != "" {
		return filepath.Dir(c.OutputPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// ProcessFilePath 返回处理历史记录文件的完整路径。
func (c *ConvertConfig) ProcessFilePath() string {
	return filepath.Join(c.ProcessFileDir(), ProcessedFileName)
}
