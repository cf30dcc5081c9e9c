/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"isokml/internal/kml"
	"isokml/internal/util"
	"isokml/pkg/logger"
	"isokml/pkg/pathx"
)

// ConvertPlan 定义了单个转换任务的源和目标。
type ConvertPlan struct {
	Source      string // 源文件路径
	Hash        string // 源文件哈希
	OutputPath  string // 主文档路径
	LegendPath  string // 图例路径
	GeoJSONPath string // GeoJSON 附带文件路径，未启用时为空
}

// generatePlans 为每个源文件生成输出路径。
func (e *Exporter) generatePlans(files []FileCache) []ConvertPlan {
	tmpl := strings.TrimSpace(e.Config.NameTemplate)
	if e.UsedNames == nil {
		e.UsedNames = make(map[string]struct{})
	}
	now := e.Clock.Now()
	total := len(files)
	plans := make([]ConvertPlan, 0, total)

	for i, f := range files {
		out := e.Config.OutputPath
		if out == "" {
			stem, err := pathx.Stem(f.Path)
			if err != nil || strings.TrimSpace(stem) == "" {
				stem = fmt.Sprintf("file_%d", i+1)
			}
			name := cleanFileName(renderNameTemplate(tmpl, stem, i+1, total, now))
			dir := e.Config.OutputDir
			if dir == "" {
				dir = filepath.Dir(f.Path)
			}
			out = e.uniquePath(filepath.Join(dir, name+documentExt))
		}

		plan := ConvertPlan{
			Source:     f.Path,
			Hash:       f.Hash,
			OutputPath: out,
			LegendPath: kml.LegendPath(out),
		}
		if e.Config.GeoJSON {
			plan.GeoJSONPath = strings.TrimSuffix(out, filepath.Ext(out)) + geoJSONExt
		}
		plans = append(plans, plan)
	}
	return plans
}

// uniquePath 同一批次内出现同名输出时追加 _2、_3 ...
func (e *Exporter) uniquePath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	candidate := path
	for n := 2; ; n++ {
		key := strings.ToLower(candidate)
		if _, used := e.UsedNames[key]; !used {
			e.UsedNames[key] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, n, ext)
	}
}

// progress 返回 "[i/n]" 形式的进度前缀。
func progress(i, total int) string {
	width := util.IntDigits(total)
	return fmt.Sprintf("%12s", fmt.Sprintf("[%0*d/%d]", width, i+1, total))
}

// previewPlans 打印转换计划的预览信息。
func (e *Exporter) previewPlans(plans []ConvertPlan) {
	total := len(plans)
	logger.Log().Info("预览转换计划", "totalPlans", total, "levels", e.Config.Options.Levels)
	for i, plan := range plans {
		args := []any{"source", plan.Source, "target", plan.OutputPath, "legend", plan.LegendPath}
		if plan.GeoJSONPath != "" {
			args = append(args, "geojson", plan.GeoJSONPath)
		}
		logger.Log().Info(progress(i, total), args...)
	}
}
