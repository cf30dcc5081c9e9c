/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"fmt"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/floats"
)

// Ring 是一条等值线环，顶点位于网格的原生坐标系中。
type Ring = orb.Ring

// Level 是一个等值面值及其提取出的环。
type Level struct {
	Value float64
	Rings []Ring
}

// LevelValues 在网格数值范围 [min, max] 内生成 n 个等间距等值面值（含两端）。
func LevelValues(g *Grid, n int) []float64 {
	lo, hi := g.Range()
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// ExtractLevels 对每个等值面值追踪等值线，返回按值升序排列的层。
// 没有任何顶点的线段被丢弃。
func ExtractLevels(g *Grid, n int) ([]Level, error) {
	if g == nil || g.Rows() < 2 || g.Cols() < 2 {
		return nil, malformed("网格为空或尺寸不足")
	}
	if n < 1 {
		return nil, fmt.Errorf("等值线层数必须为正数，当前为 %d", n)
	}
	values := LevelValues(g, n)
	levels := make([]Level, len(values))
	for i, v := range values {
		traced := traceIsolines(g, v)
		rings := make([]Ring, 0, len(traced))
		for _, r := range traced {
			if len(r) == 0 {
				continue
			}
			rings = append(rings, r)
		}
		levels[i] = Level{Value: v, Rings: rings}
	}
	return levels, nil
}

// RingCount 返回所有层的环总数。
func RingCount(levels []Level) int {
	n := 0
	for _, l := range levels {
		n += len(l.Rings)
	}
	return n
}
