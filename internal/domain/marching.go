/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import "github.com/paulmach/orb"

// segment 连接同一单元格内的两条穿越边，端点用边编号表示。
type segment struct{ a, b int }

// 单元格四条边
const (
	edgeBottom = iota
	edgeRight
	edgeTop
	edgeLeft
)

// 角点编码：1=左下 2=右下 4=右上 8=左上（值 > z 时置位）。
// 每种情况给出 0~2 条线段，鞍点（5、10）按单元格中心值拆分。
var caseSegments = [16][][2]int{
	0:  nil,
	1:  {{edgeLeft, edgeBottom}},
	2:  {{edgeBottom, edgeRight}},
	3:  {{edgeLeft, edgeRight}},
	4:  {{edgeRight, edgeTop}},
	6:  {{edgeBottom, edgeTop}},
	7:  {{edgeLeft, edgeTop}},
	8:  {{edgeTop, edgeLeft}},
	9:  {{edgeBottom, edgeTop}},
	11: {{edgeRight, edgeTop}},
	12: {{edgeLeft, edgeRight}},
	13: {{edgeBottom, edgeRight}},
	14: {{edgeLeft, edgeBottom}},
	15: nil,
}

// traceIsolines 以 marching squares 追踪值为 z 的等值线。
// 线段按单元格行优先顺序生成并串接：先输出端点在网格边界上的开放线，再输出闭合环（首尾点相同）。
func traceIsolines(g *Grid, z float64) []Ring {
	nx, ny := g.Cols(), g.Rows()
	points := make(map[int]orb.Point)
	var segs []segment

	// 水平边 (r,c)-(r,c+1) 编号为 2*(r*nx+c)，竖直边 (r,c)-(r+1,c) 为 2*(r*nx+c)+1
	edgeID := func(r, c, side int) int {
		switch side {
		case edgeBottom:
			return 2 * (r*nx + c)
		case edgeTop:
			return 2 * ((r+1)*nx + c)
		case edgeLeft:
			return 2*(r*nx+c) + 1
		default: // edgeRight
			return 2*(r*nx+c+1) + 1
		}
	}
	crossing := func(r, c, side int) orb.Point {
		var r0, c0, r1, c1 int
		switch side {
		case edgeBottom:
			r0, c0, r1, c1 = r, c, r, c+1
		case edgeTop:
			r0, c0, r1, c1 = r+1, c, r+1, c+1
		case edgeLeft:
			r0, c0, r1, c1 = r, c, r+1, c
		default:
			r0, c0, r1, c1 = r, c+1, r+1, c+1
		}
		v0, v1 := g.Z[r0][c0], g.Z[r1][c1]
		t := (z - v0) / (v1 - v0)
		return orb.Point{
			g.X[c0] + t*(g.X[c1]-g.X[c0]),
			g.Y[r0] + t*(g.Y[r1]-g.Y[r0]),
		}
	}
	addSegment := func(r, c, sa, sb int) {
		a, b := edgeID(r, c, sa), edgeID(r, c, sb)
		if _, ok := points[a]; !ok {
			points[a] = crossing(r, c, sa)
		}
		if _, ok := points[b]; !ok {
			points[b] = crossing(r, c, sb)
		}
		segs = append(segs, segment{a, b})
	}

	for r := 0; r < ny-1; r++ {
		for c := 0; c < nx-1; c++ {
			bl, br := g.Z[r][c], g.Z[r][c+1]
			tr, tl := g.Z[r+1][c+1], g.Z[r+1][c]
			idx := 0
			if bl > z {
				idx |= 1
			}
			if br > z {
				idx |= 2
			}
			if tr > z {
				idx |= 4
			}
			if tl > z {
				idx |= 8
			}
			switch idx {
			case 5, 10:
				centerAbove := (bl+br+tr+tl)/4 > z
				// 中心与对角高值连通时，低值角被各自切出，反之亦然
				if (idx == 5) == centerAbove {
					addSegment(r, c, edgeBottom, edgeRight)
					addSegment(r, c, edgeLeft, edgeTop)
				} else {
					addSegment(r, c, edgeLeft, edgeBottom)
					addSegment(r, c, edgeRight, edgeTop)
				}
			default:
				for _, s := range caseSegments[idx] {
					addSegment(r, c, s[0], s[1])
				}
			}
		}
	}
	return linkSegments(segs, points)
}

// linkSegments 将共享穿越边的线段串接为折线或闭合环。
func linkSegments(segs []segment, points map[int]orb.Point) []Ring {
	adj := make(map[int][]int, len(points))
	for i, s := range segs {
		adj[s.a] = append(adj[s.a], i)
		adj[s.b] = append(adj[s.b], i)
	}
	used := make([]bool, len(segs))

	walk := func(si, from int) Ring {
		ring := Ring{points[from]}
		cur := from
		for si >= 0 {
			used[si] = true
			next := segs[si].b
			if next == cur {
				next = segs[si].a
			}
			ring = append(ring, points[next])
			cur = next
			si = -1
			for _, cand := range adj[cur] {
				if !used[cand] {
					si = cand
					break
				}
			}
		}
		return ring
	}

	var rings []Ring
	// 开放线从度为 1 的端点开始
	for i, s := range segs {
		if used[i] {
			continue
		}
		switch {
		case len(adj[s.a]) == 1:
			rings = append(rings, walk(i, s.a))
		case len(adj[s.b]) == 1:
			rings = append(rings, walk(i, s.b))
		}
	}
	for i, s := range segs {
		if !used[i] {
			rings = append(rings, walk(i, s.a))
		}
	}
	return rings
}
