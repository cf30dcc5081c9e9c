/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"isokml/internal/assets"
	"isokml/internal/domain"
	"isokml/internal/kml"
	"isokml/internal/observability"
	"isokml/pkg/charset"
	"isokml/pkg/logger"
	"isokml/pkg/namex"

	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb"
)

// Converter 执行单个网格到 KML 的完整转换。投影缓存可在多次顺序转换间共享。
type Converter struct {
	Options  domain.Options
	Palette  []string
	Template string
	Cache    *domain.TransformCache
	Metrics  *observability.Metrics
	Clock    clockwork.Clock
}

// NewConverter 使用内置色带与模板创建转换器。
func NewConverter(opts domain.Options) *Converter {
	return &Converter{
		Options:  opts,
		Palette:  assets.Palette(),
		Template: assets.ScaleTemplate,
		Cache:    domain.NewTransformCache(),
		Metrics:  observability.NewMetrics(),
		Clock:    clockwork.NewRealClock(),
	}
}

// Rendering 是一次转换写盘前的结果，坐标均已投影为经纬度。
type Rendering struct {
	Document kml.Document
	Legend   kml.LegendInput // DocName 在写出时填入
	Rings    int             // 提取出的环总数
}

// Result 是一次成功转换的输出路径。
type Result struct {
	Source       string
	DocumentPath string
	LegendPath   string
	GeoJSONPath  string
	Levels       int // 写出的等值面 Placemark 数
}

// ConvertFile 解码并解析表格文本，然后按计划写出文档与图例。
func (c *Converter) ConvertFile(content []byte, plan ConvertPlan) (*Result, error) {
	start := c.Clock.Now()
	g, err := c.GridFromTable(content)
	if err != nil {
		return nil, err
	}
	res, err := c.ConvertGrid(g, plan)
	if err != nil {
		return nil, err
	}
	c.Metrics.ConvertDuration.Observe(c.Clock.Since(start).Seconds())
	return res, nil
}

// GridFromTable 把原始文件内容转换为规则网格。
func (c *Converter) GridFromTable(content []byte) (*domain.Grid, error) {
	text, enc, err := charset.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("文件解码失败: %w", err)
	}
	logger.Log().Debug("文件解码完成", "encoding", enc, "size", len(content))
	samples, err := domain.ParseTable(text, c.Options)
	if err != nil {
		return nil, err
	}
	return domain.BuildGrid(samples)
}

// ConvertGrid 对已构建的网格执行转换并写出全部文件。
func (c *Converter) ConvertGrid(g *domain.Grid, plan ConvertPlan) (*Result, error) {
	r, err := c.Render(g, plan.Source)
	if err != nil {
		return nil, err
	}
	if err := c.Write(r, plan); err != nil {
		return nil, err
	}
	return &Result{
		Source:       plan.Source,
		DocumentPath: plan.OutputPath,
		LegendPath:   plan.LegendPath,
		GeoJSONPath:  plan.GeoJSONPath,
		Levels:       len(r.Document.Levels),
	}, nil
}

// Render 依次执行等值线提取、环嵌套、配色与投影，得到待写出的文档。
// source 仅用于生成 Schema/Folder 名称。
func (c *Converter) Render(g *domain.Grid, source string) (*Rendering, error) {
	opts := c.Options
	levels, err := domain.ExtractLevels(g, opts.Levels)
	if err != nil {
		return nil, err
	}
	rings := domain.RingCount(levels)
	c.Metrics.GridCells.Observe(float64(g.Rows() * g.Cols()))
	c.Metrics.RingsTraced.Add(float64(rings))
	logger.Log().Debug("等值线提取完成", "levels", len(levels), "rings", rings)

	plans := domain.PlanRings(levels)
	effMax := domain.EffectiveMax(levels, opts.Static, opts.MaxScale)
	ramp := domain.NewColorRamp(c.Palette, opts.MinScale, effMax)

	rp, err := domain.NewReprojector(c.Cache, opts.Projection())
	if err != nil {
		return nil, err
	}
	c.Metrics.TransformCache.Set(float64(c.Cache.Len()))

	geo, err := rp.TransformLevels(levels)
	if err != nil {
		return nil, err
	}
	bound, err := rp.Bound(g.Nodes())
	if err != nil {
		return nil, err
	}

	placemarks := buildPlacemarks(plans, geo, ramp, opts.MinScale)

	return &Rendering{
		Document: kml.Document{
			Name:     namex.Sanitize(source),
			Variable: opts.Variable,
			Bound:    bound,
			Levels:   placemarks,
		},
		Legend: kml.LegendInput{
			Template:     c.Template,
			Left:         bound.Min,
			Right:        orb.Point{bound.Max[0], bound.Min[1]},
			XShift:       opts.XShift,
			YShift:       opts.YShift,
			XScaleFactor: opts.XScaleFactor,
			YScaleFactor: opts.YScaleFactor,
			Min:          opts.MinScale,
			Max:          effMax,
			Static:       opts.Static,
		},
		Rings: rings,
	}, nil
}

// buildPlacemarks 为每个不低于 minScale 的层生成 Placemark，边界替换为投影后的环。
// 没有任何边界的层同样输出，几何为空。
func buildPlacemarks(plans []domain.LevelPlan, geo []domain.Level, ramp *domain.ColorRamp, minScale float64) []kml.LevelPlacemark {
	placemarks := make([]kml.LevelPlacemark, 0, len(plans))
	for _, p := range plans {
		if p.Value < minScale {
			continue
		}
		boundaries := make([]domain.Boundary, len(p.Boundaries))
		for k, b := range p.Boundaries {
			b.Ring = geo[b.LevelIndex].Rings[b.RingIndex]
			boundaries[k] = b
		}
		placemarks = append(placemarks, kml.LevelPlacemark{
			Index:      p.Index,
			Value:      p.Value,
			Color:      ramp.Color(p.Value),
			Boundaries: boundaries,
		})
	}
	return placemarks
}

// Write 按计划写出主文档、图例与可选的 GeoJSON。
func (c *Converter) Write(r *Rendering, plan ConvertPlan) error {
	legendIn := r.Legend
	legendIn.DocName = plan.OutputPath
	legend, err := kml.BuildLegend(legendIn)
	if err != nil {
		return &domain.IOError{Op: "生成图例", Path: plan.LegendPath, Err: err}
	}

	if err := writeFile(plan.OutputPath, func(w io.Writer) error {
		return kml.WriteDocument(w, r.Document)
	}); err != nil {
		return err
	}
	if err := writeFile(plan.LegendPath, func(w io.Writer) error {
		_, err := io.WriteString(w, legend)
		return err
	}); err != nil {
		return err
	}
	if plan.GeoJSONPath != "" {
		if err := writeFile(plan.GeoJSONPath, func(w io.Writer) error {
			return writeGeoJSON(w, r.Document)
		}); err != nil {
			return err
		}
	}
	c.Metrics.LevelsWritten.Add(float64(len(r.Document.Levels)))
	return nil
}

// writeFile 以创建/截断方式写文件，失败时返回 IOError。
func writeFile(path string, fill func(w io.Writer) error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return &domain.IOError{Op: "创建", Path: path, Err: err}
	}
	bw := bufio.NewWriter(f)
	if err := fill(bw); err != nil {
		f.Close()
		return &domain.IOError{Op: "写入", Path: path, Err: err}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return &domain.IOError{Op: "写入", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &domain.IOError{Op: "关闭", Path: path, Err: err}
	}
	return nil
}
