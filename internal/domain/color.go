/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ColorRamp 把等值面值映射到固定色带。
// 在 [min, max] 之间均匀划分与色带等长的台阶，取离值最近的台阶（并列取较小序号）；
// 值 >= max 时固定取色带最后一项。
type ColorRamp struct {
	palette []string
	steps   []float64
	max     float64
}

// NewColorRamp 创建色带映射。palette 不能为空。
func NewColorRamp(palette []string, minScale, effectiveMax float64) *ColorRamp {
	steps := make([]float64, len(palette))
	if len(steps) == 1 {
		steps[0] = minScale
	} else {
		floats.Span(steps, minScale, effectiveMax)
	}
	return &ColorRamp{palette: palette, steps: steps, max: effectiveMax}
}

// EffectiveMax 返回色带上限：静态时为 maxScale，否则为所有层的最大值。
func EffectiveMax(levels []Level, static bool, maxScale float64) float64 {
	if static || len(levels) == 0 {
		return maxScale
	}
	values := make([]float64, len(levels))
	for i, l := range levels {
		values[i] = l.Value
	}
	return floats.Max(values)
}

// Max 返回色带上限。
func (c *ColorRamp) Max() float64 { return c.max }

// Index 返回值对应的色带序号。
func (c *ColorRamp) Index(v float64) int {
	if v >= c.max {
		return len(c.palette) - 1
	}
	best, bestDiff := 0, math.Inf(1)
	for i, s := range c.steps {
		if d := math.Abs(s - v); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best
}

// Color 返回值对应的颜色（KML aabbggrr）。
func (c *ColorRamp) Color(v float64) string {
	return c.palette[c.Index(v)]
}
