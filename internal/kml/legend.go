/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package kml

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/floats"
)

// 图例参数
const (
	SwatchCount = 50
	LabelCount  = 7

	// 色块厚度（纬度差，度）
	swatchDelta = 0.00124488953312607
	// 标签相对底边的下移量
	labelDrop = 3 * swatchDelta

	legendSuffix = "_scale"
	staticPrefix = "≥ "
)

// LegendInput 是生成图例所需的全部输入。
type LegendInput struct {
	Template string // 含占位符的模板文本
	DocName  string // 主文档文件名，用于 [name_file]

	// 网格外框底边的左、右端点（经纬度）
	Left  orb.Point
	Right orb.Point

	XShift       float64
	YShift       float64
	XScaleFactor float64
	YScaleFactor float64

	Min    float64 // 色带下限
	Max    float64 // 色带上限（静态或动态）
	Static bool
}

// LegendPath 返回主文档对应的图例路径：<stem>_scale<ext>。
func LegendPath(docPath string) string {
	ext := filepath.Ext(docPath)
	return strings.TrimSuffix(docPath, ext) + legendSuffix + ext
}

// BuildLegend 在模板中替换色块、标签与文件名占位符，返回图例文档文本。
func BuildLegend(in LegendInput) (string, error) {
	if err := checkTemplate(in.Template); err != nil {
		return "", err
	}

	pairs := make([]string, 0, 2*(SwatchCount+2*LabelCount+1))
	for i, s := range swatches(in) {
		pairs = append(pairs, fmt.Sprintf("[coord_%d]", i), s)
	}
	for i, p := range labelPoints(in) {
		pairs = append(pairs,
			fmt.Sprintf("[val_%d]", i), LabelText(in, i),
			fmt.Sprintf("[point_%d]", i), fmt.Sprintf("%s, %s, 0", FormatValue(p[0]), FormatValue(p[1])),
		)
	}
	pairs = append(pairs, "[name_file]", escape(filepath.Base(LegendPath(in.DocName))))

	return strings.NewReplacer(pairs...).Replace(in.Template), nil
}

func checkTemplate(tmpl string) error {
	var missing []string
	check := func(ph string) {
		if !strings.Contains(tmpl, ph) {
			missing = append(missing, ph)
		}
	}
	for i := 0; i < SwatchCount; i++ {
		check(fmt.Sprintf("[coord_%d]", i))
	}
	for i := 0; i < LabelCount; i++ {
		check(fmt.Sprintf("[val_%d]", i))
		check(fmt.Sprintf("[point_%d]", i))
	}
	if len(missing) > 0 {
		return fmt.Errorf("图例模板缺少占位符: %s", strings.Join(missing, ", "))
	}
	return nil
}

// LabelText 返回第 i 个标签文本；静态色带的最后一个标签带 "≥ " 前缀。
func LabelText(in LegendInput, i int) string {
	text := FormatLabel(labelValue(in.Min, in.Max, i))
	if i == LabelCount-1 && in.Static {
		text = staticPrefix + text
	}
	return text
}

func labelValue(min, max float64, i int) float64 {
	v := min + (max-min)*float64(i)/float64(LabelCount-1)
	return math.Round(v*1e6) / 1e6
}

// FormatLabel 格式化图例标签：默认两位小数；>= 99 或 < 0.1 时使用两位小数的科学计数法，
// 去掉 "e+00" 后缀，非零值再去掉末尾的 ".00"。
func FormatLabel(v float64) string {
	if v < 99 && v >= 0.1 {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	s := strconv.FormatFloat(v, 'e', 2, 64)
	if strings.HasSuffix(s, "e+00") {
		s = strings.TrimSuffix(s, "e+00")
		if v != 0 {
			s = strings.TrimSuffix(s, ".00")
		}
	}
	return s
}

// swatches 计算 50 个色块的坐标串，每个色块 5 个顶点（闭合）。
func swatches(in LegendInput) []string {
	const n = SwatchCount + 1
	xs := make([]float64, n)
	up := make([]float64, n)
	down := make([]float64, n)
	for i := range xs {
		t := float64(i) / SwatchCount
		xs[i] = in.Left[0] + (in.Right[0]-in.Left[0])*t + in.XShift
		y := in.Left[1] + (in.Right[1]-in.Left[1])*t + in.YShift
		up[i] = y - swatchDelta
		down[i] = up[i] - swatchDelta
	}
	scaleAboutMean(xs, in.XScaleFactor)
	for i := range up {
		if in.YScaleFactor == 1 {
			break
		}
		m := (up[i] + down[i]) / 2
		up[i] = m + (up[i]-m)*in.YScaleFactor
		down[i] = m + (down[i]-m)*in.YScaleFactor
	}

	vertex := func(x, y float64) string {
		return FormatValue(x) + "," + FormatValue(y) + ",0"
	}
	out := make([]string, SwatchCount)
	for i := range out {
		first := vertex(xs[i+1], down[i+1])
		out[i] = strings.Join([]string{
			first,
			"\t\t\t\t" + vertex(xs[i], down[i]),
			"\t\t\t\t" + vertex(xs[i], up[i]),
			"\t\t\t\t" + vertex(xs[i+1], up[i+1]),
			"\t\t\t\t" + first,
		}, "\n")
	}
	return out
}

// labelPoints 计算 7 个标签点，位于色块下方。
func labelPoints(in LegendInput) []orb.Point {
	xs := make([]float64, LabelCount)
	ys := make([]float64, LabelCount)
	for i := range xs {
		t := float64(i) / (LabelCount - 1)
		xs[i] = in.Left[0] + (in.Right[0]-in.Left[0])*t + in.XShift
		ys[i] = in.Left[1] + (in.Right[1]-in.Left[1])*t + in.YShift - labelDrop
	}
	scaleAboutMean(xs, in.XScaleFactor)
	scaleAboutMean(ys, in.YScaleFactor)

	points := make([]orb.Point, LabelCount)
	for i := range points {
		points[i] = orb.Point{xs[i], ys[i]}
	}
	return points
}

// scaleAboutMean 以均值为中心缩放。
func scaleAboutMean(v []float64, factor float64) {
	if factor == 1 || len(v) == 0 {
		return
	}
	mean := floats.Sum(v) / float64(len(v))
	for i := range v {
		v[i] = mean + (v[i]-mean)*factor
	}
}
