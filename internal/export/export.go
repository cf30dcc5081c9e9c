/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package export

import (
	"errors"
	"fmt"

	"isokml/internal/assets"
	"isokml/internal/domain"
	"isokml/internal/observability"
	"isokml/internal/process"
	"isokml/pkg/logger"
	"isokml/pkg/pathx"

	"github.com/jonboulle/clockwork"
)

var filterExtensions = []string{".csv", ".txt", ".dat"}

var (
	// ErrNoInputFiles 表示未找到任何可用于转换的输入文件。
	ErrNoInputFiles = errors.New("未找到可转换的输入文件")
	// ErrAllFailed 表示批次中的所有文件均转换失败。
	ErrAllFailed = errors.New("所有文件均转换失败")
)

type FileCache struct {
	Path    string
	Content []byte
	Hash    string
}

// Exporter 是负责执行整个批量转换流程的协调器。
type Exporter struct {
	Config    ConvertConfig
	History   *process.ProcessHistory
	Clock     clockwork.Clock
	Metrics   *observability.Metrics
	Cache     *domain.TransformCache
	Template  string
	UsedNames map[string]struct{}
	Results   []Result

	readFile func(path string) ([]byte, string, error)
}

// NewExporter 创建一个新的转换器实例。
func NewExporter(config ConvertConfig) (*Exporter, error) {
	if err := config.Verify(); err != nil {
		return nil, fmt.Errorf("参数验证失败: %w", err)
	}
	if err := config.Prepare(); err != nil {
		return nil, fmt.Errorf("环境配置失败: %w", err)
	}
	template, err := assets.LoadScaleTemplate(config.ScaleTemplate)
	if err != nil {
		return nil, &domain.IOError{Op: "读取图例模板", Path: config.ScaleTemplate, Err: err}
	}

	historyFile := ""
	if config.SkipProcessed && !config.DryRun {
		historyFile = config.ProcessFilePath()
	}
	history, err := process.NewProcessHistory(historyFile)
	if err != nil {
		return nil, fmt.Errorf("无法初始化处理历史: %w", err)
	}
	return &Exporter{
		Config:    config,
		History:   history,
		Clock:     clockwork.NewRealClock(),
		Metrics:   observability.NewMetrics(),
		Cache:     domain.NewTransformCache(),
		Template:  template,
		UsedNames: make(map[string]struct{}),
		readFile:  pathx.ReadFile,
	}, nil
}

// converter 返回共享投影缓存与指标的转换器。
func (e *Exporter) converter() *Converter {
	c := NewConverter(e.Config.Options)
	c.Template = e.Template
	c.Cache = e.Cache
	c.Metrics = e.Metrics
	c.Clock = e.Clock
	return c
}

// collect 收集并读取输入文件，跳过重复内容与已处理文件。
func (e *Exporter) collect() ([]FileCache, error) {
	sourceFiles, err := pathx.CollectFiles(e.Config.InputPaths, e.Config.Depth, filterExtensions, true)
	if err != nil {
		return nil, fmt.Errorf("收集文件失败: %w", err)
	}
	if len(sourceFiles) == 0 {
		return nil, ErrNoInputFiles
	}
	if e.Config.OutputPath != "" && len(sourceFiles) > 1 {
		return nil, fmt.Errorf("指定输出路径时只能有一个输入文件，实际为 %d 个", len(sourceFiles))
	}

	seen := make(map[string]struct{}, len(sourceFiles))
	files := make([]FileCache, 0, len(sourceFiles))
	var skipped, unreadable int
	for _, file := range sourceFiles {
		content, hash, err := e.readFile(file)
		if err != nil {
			logger.Log().Error("读取文件失败", "path", file, "error", err)
			e.Metrics.FilesTotal.WithLabelValues("failed").Inc()
			unreadable++
			continue
		}
		if _, dup := seen[hash]; dup {
			logger.Log().Warn("跳过重复文件", "path", file)
			skipped++
			continue
		}
		seen[hash] = struct{}{}
		if e.Config.SkipProcessed {
			if out, ok := e.History.Lookup(hash); ok {
				logger.Log().Warn("跳过已处理文件", "path", file, "output", out)
				skipped++
				continue
			}
		}
		files = append(files, FileCache{Path: file, Content: content, Hash: hash})
	}
	e.Metrics.FilesTotal.WithLabelValues("skipped").Add(float64(skipped))
	logger.Log().Info("文件收集完成", "total", len(sourceFiles), "pending", len(files), "skipped", skipped, "failed", unreadable)
	if len(files) == 0 && unreadable > 0 {
		return nil, ErrAllFailed
	}
	return files, nil
}

// Execute 收集输入、生成计划并逐个转换。单个文件失败只记录日志，不影响其余文件。
func (e *Exporter) Execute() error {
	logger.Log().Info("开始处理任务", "preview", e.Config.DryRun, "skipProcessed", e.Config.SkipProcessed)
	files, err := e.collect()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Log().Info("没有需要转换的文件")
		return nil
	}

	plans := e.generatePlans(files)
	if e.Config.DryRun {
		e.previewPlans(plans)
		return nil
	}

	converted, failed := e.executePlans(files, plans)
	logger.Log().Info("转换完成", "success", converted, "failure", failed, "projections", e.Cache.Len())

	if e.Config.MetricsFile != "" {
		if err := e.Metrics.WriteTextfile(e.Config.MetricsFile); err != nil {
			logger.Log().Error("写入指标文件失败", "path", e.Config.MetricsFile, "error", err)
		}
	}
	if converted == 0 && failed > 0 {
		return ErrAllFailed
	}
	return nil
}

// executePlans 顺序执行所有计划，返回成功与失败数。
func (e *Exporter) executePlans(files []FileCache, plans []ConvertPlan) (converted, failed int) {
	total := len(plans)
	logger.Log().Info("执行转换计划", "totalPlans", total, "levels", e.Config.Options.Levels)
	conv := e.converter()

	for i, plan := range plans {
		res, err := conv.ConvertFile(files[i].Content, plan)
		if err != nil {
			logger.Log().Error(progress(i, total), "source", plan.Source, "error", err)
			e.Metrics.FilesTotal.WithLabelValues("failed").Inc()
			failed++
			continue
		}
		if herr := e.History.Record(plan.Hash, plan.OutputPath); herr != nil {
			logger.Log().Warn("记录处理历史失败", "path", plan.Source, "error", herr)
		}
		e.Metrics.FilesTotal.WithLabelValues("converted").Inc()
		e.Results = append(e.Results, *res)
		converted++
		logger.Log().Info(progress(i, total), "source", plan.Source, "target", plan.OutputPath, "levels", res.Levels)
	}
	return converted, failed
}
