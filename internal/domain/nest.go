/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Winding 表示环在多边形中的角色。
type Winding int

const (
	Outer Winding = iota
	Inner
)

func (w Winding) String() string {
	if w == Inner {
		return "inner"
	}
	return "outer"
}

func (w Winding) flip() Winding {
	if w == Outer {
		return Inner
	}
	return Outer
}

// Boundary 是输出计划中的一项：一个环及其边界类型。
// LevelIndex/RingIndex 指向环在 ExtractLevels 结果中的位置，便于替换为投影后的坐标。
type Boundary struct {
	Ring       Ring
	Winding    Winding
	LevelIndex int
	RingIndex  int
}

// LevelPlan 是某一层的输出计划。
type LevelPlan struct {
	Index      int // 层在提取结果中的序号（从 0 开始）
	Value      float64
	Boundaries []Boundary
}

// planBuilder 每追加一个环即翻转边界类型，保证从 outer 开始严格交替。
type planBuilder struct {
	next Winding
	out  []Boundary
}

func (b *planBuilder) add(levels []Level, level, ring int) {
	b.out = append(b.out, Boundary{
		Ring:       levels[level].Rings[ring],
		Winding:    b.next,
		LevelIndex: level,
		RingIndex:  ring,
	})
	b.next = b.next.flip()
}

// PlanRings 计算每层的环嵌套输出计划。
//
//   - 第 0 层：按顺序输出本层所有环；
//   - 中间层：上一层只有一个环时先输出该环作为带状区域的内边界，再输出本层各环；
//     上一层有多个环时，对本层每个环取首个顶点，在上一层中找第一个包含它的环，
//     找到则先输出该环再输出本层环，找不到则只输出本层环；
//     上一层没有环时与第 0 层相同；
//   - 最后一层只作为上一层的上界，不单独输出。
//
// 返回结果不含最后一层，长度为 len(levels)-1（仅一层时返回该层）。
func PlanRings(levels []Level) []LevelPlan {
	if len(levels) == 0 {
		return nil
	}
	last := len(levels) - 1
	plans := make([]LevelPlan, 0, len(levels))
	for i, lvl := range levels {
		if i == last && i != 0 {
			break
		}
		b := &planBuilder{next: Outer}
		var prev []Ring
		if i > 0 {
			prev = levels[i-1].Rings
		}
		switch {
		case len(prev) == 1:
			b.add(levels, i-1, 0)
			for j := range lvl.Rings {
				b.add(levels, i, j)
			}
		case len(prev) > 1:
			for j, r := range lvl.Rings {
				if len(r) > 0 {
					if parent := firstContaining(prev, r[0]); parent >= 0 {
						b.add(levels, i-1, parent)
					}
				}
				b.add(levels, i, j)
			}
		default:
			// 第 0 层，或上一层没有环：只输出本层环，从 outer 开始交替。
			// 上一层为空时不补外边界，本层环按第 0 层处理。
			for j := range lvl.Rings {
				b.add(levels, i, j)
			}
		}
		plans = append(plans, LevelPlan{Index: i, Value: lvl.Value, Boundaries: b.out})
	}
	return plans
}

// firstContaining 返回第一个包含点 p 的环的序号，没有时返回 -1。
func firstContaining(rings []Ring, p orb.Point) int {
	for i, r := range rings {
		if ringContains(r, p) {
			return i
		}
	}
	return -1
}

func ringContains(r Ring, p orb.Point) bool {
	if len(r) < 3 {
		return false
	}
	if !r.Closed() {
		closed := make(Ring, len(r), len(r)+1)
		copy(closed, r)
		r = append(closed, r[0])
	}
	return planar.RingContains(r, p)
}
