/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"fmt"

	"isokml/internal/domain"
	"isokml/internal/export"
	"isokml/pkg/logger"

	"github.com/spf13/cobra"
)

// 命令行参数变量
var (
	convertInputPaths    []string
	convertDepth         int
	convertOutputDir     string
	convertOutputPath    string
	convertNameTemplate  string
	convertDryRun        bool
	convertSkipProcessed bool
	convertGeoJSON       bool
	convertMetricsFile   string
	convertScaleTemplate string

	convertOptions = domain.DefaultOptions()
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert gridded samples to isoline KML",
	Long: `读取含 X/Y/数值三列的分隔文本，提取等值线并按层嵌套为多边形，投影到 WGS84 经纬度后写出 KML 与色带图例。

输出命名:
  * 默认输出到输入文件旁，--output 指定输出目录，--output-file 指定单个输出文件。
  * 图例文件名为主文档名加 "_scale" 后缀。

名称模板占位符:
  * {name}: 源文件名（不含扩展名）。
  * {index[:width]}: 当前处理文件的序号，支持用 :width 指定补零宽度 (如 {index:03})。
  * {count}: 本次任务处理的总文件数。
  * {date[:layout]}: 当前日期，支持用 :layout 指定 Go 时间格式 (默认 20060102)。
  * {ts}: Unix 秒级时间戳。
  * {uuid}: 一个随机的 UUID v4 字符串。
  * {rand[:len]}: 一个随机的字母数字字符串，支持用 :len 指定长度 (默认 8 位)。

所有占位符都支持大小写修饰符，例如 {name:upper} 会将名称转换为大写。默认模板为 "{name:lower}_{ts}"。

示例:
  # 转换 data 目录下的所有 CSV，UTM 32 带，400 层，输出到 out
  isokml convert -i data -o out --zone 32 --levels 400

  # 静态色带，上限 5，低于 0.5 的层不输出，并附带 GeoJSON
  isokml convert -i run.csv --static --max-scale 5 --min-scale 0.5 --geojson
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(export.ConvertConfig{
			InputPaths:    append(convertInputPaths, args...),
			Depth:         convertDepth,
			OutputDir:     convertOutputDir,
			OutputPath:    convertOutputPath,
			NameTemplate:  convertNameTemplate,
			DryRun:        convertDryRun,
			SkipProcessed: convertSkipProcessed,
			GeoJSON:       convertGeoJSON,
			MetricsFile:   convertMetricsFile,
			ScaleTemplate: convertScaleTemplate,
			Options:       convertOptions,
		})
		if err != nil {
			logger.Log().Error("创建转换器失败", "error", err)
			return fmt.Errorf("创建转换器失败: %w", err)
		}
		logger.Log().Debug("开始执行转换", "options", fmt.Sprintf("%+v", convertOptions))
		return exporter.Execute()
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	f := convertCmd.Flags()
	f.StringArrayVarP(&convertInputPaths, "input", "i", nil, "输入文件或目录，可重复指定")
	f.IntVar(&convertDepth, "depth", -1, "递归深度：0=仅当前目录，正数=最大层级，-1=无限")
	f.StringVarP(&convertOutputDir, "output", "o", "", "输出目录，默认与输入文件同目录")
	f.StringVar(&convertOutputPath, "output-file", "", "输出文档路径，仅允许单个输入")
	f.StringVar(&convertNameTemplate, "name", "", "文件名模板，支持占位符 {name}{index}{count}{date}{ts}{uuid}{rand}")
	f.BoolVar(&convertDryRun, "dry-run", false, "仅预览转换计划，不执行写入")
	f.BoolVar(&convertSkipProcessed, "skip-processed", false, "跳过 .processed 中已记录的输入")
	f.BoolVar(&convertGeoJSON, "geojson", false, "同时写出 GeoJSON 等值线文件")
	f.StringVar(&convertMetricsFile, "metrics-file", "", "批次结束后写出 Prometheus textfile 指标")
	f.StringVar(&convertScaleTemplate, "scale-template", "", "外部图例 KML 模板，默认使用内置模板")

	o := &convertOptions
	f.IntVar(&o.Levels, "levels", o.Levels, "等值线层数")
	f.StringVar(&o.Variable, "variable", o.Variable, "变量显示名")
	f.StringVar(&o.Zone, "zone", o.Zone, `投影带号，可带纬度带字母，如 "32" 或 "32 T"`)
	f.StringVar(&o.ProjIn, "proj-in", o.ProjIn, "源投影：utm | longlat | proj4 字符串")
	f.StringVar(&o.ProjOut, "proj-out", o.ProjOut, "椭球/基准面")
	f.BoolVar(&o.Static, "static", o.Static, "使用静态色带上限 --max-scale")
	f.Float64Var(&o.MaxScale, "max-scale", o.MaxScale, "静态色带上限")
	f.Float64Var(&o.MinScale, "min-scale", o.MinScale, "色带下限，低于该值的层不输出")
	f.StringVar(&o.XCol, "x-col", o.XCol, "X 列名")
	f.StringVar(&o.YCol, "y-col", o.YCol, "Y 列名")
	f.StringVar(&o.ValCol, "value-col", o.ValCol, "数值列名")
	f.Float64Var(&o.Multiplier, "multiplier", o.Multiplier, "数值乘数")
	f.Float64Var(&o.XShift, "x-shift", o.XShift, "图例经度平移")
	f.Float64Var(&o.YShift, "y-shift", o.YShift, "图例纬度平移")
	f.Float64Var(&o.XScaleFactor, "x-scale-factor", o.XScaleFactor, "图例经向缩放")
	f.Float64Var(&o.YScaleFactor, "y-scale-factor", o.YScaleFactor, "图例纬向缩放")

	convertCmd.MarkFlagsMutuallyExclusive("output", "output-file")
}
