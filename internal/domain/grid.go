/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Grid 是规则网格：升序且唯一的 X/Y 坐标轴与按 [行=Y][列=X] 索引的数值矩阵。
// 构建后首末行与首末列恒为 0，保证等值线在边界处闭合。
type Grid struct {
	X []float64
	Y []float64
	Z [][]float64
}

// Rows 返回行数（|Y|）。
func (g *Grid) Rows() int { return len(g.Y) }

// Cols 返回列数（|X|）。
func (g *Grid) Cols() int { return len(g.X) }

// Range 返回矩阵中的最小值与最大值。
func (g *Grid) Range() (lo, hi float64) {
	for r, row := range g.Z {
		if r == 0 {
			lo, hi = floats.Min(row), floats.Max(row)
			continue
		}
		lo = min(lo, floats.Min(row))
		hi = max(hi, floats.Max(row))
	}
	return lo, hi
}

// Nodes 返回所有网格节点的坐标（行优先），用于整体重投影与外包范围计算。
func (g *Grid) Nodes() (xs, ys []float64) {
	n := len(g.X) * len(g.Y)
	xs = make([]float64, 0, n)
	ys = make([]float64, 0, n)
	for _, y := range g.Y {
		for _, x := range g.X {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys
}

// BuildGrid 由无序表格行重建网格。
//
// 坐标轴取 X、Y 的去重升序值；数值按输入顺序重排为矩阵：
// 若前两行 X 相同则视为按列存储（X 外层循环），否则视为按行存储。
// 点数必须恰好等于 |X|×|Y|，且每个轴至少 2 个唯一值。
func BuildGrid(samples []Sample) (*Grid, error) {
	if len(samples) < 2 {
		return nil, malformed("至少需要 2 行数据，当前 %d 行", len(samples))
	}
	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i], ys[i] = s.X, s.Y
	}
	ux, uy := uniqueSorted(xs), uniqueSorted(ys)
	if len(ux) < 2 || len(uy) < 2 {
		return nil, malformed("坐标轴唯一值不足 (|X|=%d, |Y|=%d)", len(ux), len(uy))
	}
	nx, ny := len(ux), len(uy)
	if nx*ny != len(samples) {
		return nil, malformed("%d 个数值无法重排为 %d×%d 矩阵", len(samples), ny, nx)
	}

	columnMajor := samples[0].X == samples[1].X
	z := newMatrix(ny, nx)
	for i, s := range samples {
		if columnMajor {
			z[i%ny][i/ny] = s.Value
		} else {
			z[i/nx][i%nx] = s.Value
		}
	}
	g := &Grid{X: ux, Y: uy, Z: z}
	g.zeroBorder()
	return g, nil
}

// NewGrid 由已切片的矩阵及其坐标轴构建网格（矩阵按 [行=Y][列=X]）。
// 降序坐标轴会连同矩阵一起翻转为升序；矩阵会被复制。
func NewGrid(x, y []float64, z [][]float64) (*Grid, error) {
	if len(x) < 2 || len(y) < 2 {
		return nil, malformed("坐标轴长度不足 (|X|=%d, |Y|=%d)", len(x), len(y))
	}
	if len(z) != len(y) {
		return nil, malformed("矩阵行数 %d 与 Y 轴长度 %d 不一致", len(z), len(y))
	}
	for r, row := range z {
		if len(row) != len(x) {
			return nil, malformed("矩阵第 %d 行列数 %d 与 X 轴长度 %d 不一致", r, len(row), len(x))
		}
	}
	xs, ys := slices.Clone(x), slices.Clone(y)
	m := newMatrix(len(ys), len(xs))
	for r := range z {
		copy(m[r], z[r])
	}

	flipX, err := axisOrder(xs, "X")
	if err != nil {
		return nil, err
	}
	flipY, err := axisOrder(ys, "Y")
	if err != nil {
		return nil, err
	}
	if flipX {
		slices.Reverse(xs)
		for _, row := range m {
			slices.Reverse(row)
		}
	}
	if flipY {
		slices.Reverse(ys)
		slices.Reverse(m)
	}
	g := &Grid{X: xs, Y: ys, Z: m}
	g.zeroBorder()
	return g, nil
}

// axisOrder 检查坐标轴严格单调，降序时返回 true。
func axisOrder(axis []float64, name string) (bool, error) {
	desc := axis[1] < axis[0]
	for i := 1; i < len(axis); i++ {
		if axis[i] == axis[i-1] || (axis[i] < axis[i-1]) != desc {
			return false, malformed("%s 轴不是严格单调序列 (索引 %d)", name, i)
		}
	}
	return desc, nil
}

func (g *Grid) zeroBorder() {
	last := len(g.Z) - 1
	for c := range g.Z[0] {
		g.Z[0][c] = 0
		g.Z[last][c] = 0
	}
	for _, row := range g.Z {
		row[0] = 0
		row[len(row)-1] = 0
	}
}

func newMatrix(rows, cols int) [][]float64 {
	backing := make([]float64, rows*cols)
	m := make([][]float64, rows)
	for r := range m {
		m[r] = backing[r*cols : (r+1)*cols : (r+1)*cols]
	}
	return m
}

func uniqueSorted(v []float64) []float64 {
	out := slices.Clone(v)
	slices.Sort(out)
	return slices.Compact(out)
}
