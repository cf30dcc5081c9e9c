/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowMajorSamples(xs, ys []float64, value func(x, y float64) float64) []Sample {
	var out []Sample
	for _, y := range ys {
		for _, x := range xs {
			out = append(out, Sample{X: x, Y: y, Value: value(x, y)})
		}
	}
	return out
}

func columnMajorSamples(xs, ys []float64, value func(x, y float64) float64) []Sample {
	var out []Sample
	for _, x := range xs {
		for _, y := range ys {
			out = append(out, Sample{X: x, Y: y, Value: value(x, y)})
		}
	}
	return out
}

func assertZeroBorder(t *testing.T, g *Grid) {
	t.Helper()
	last := g.Rows() - 1
	for c := 0; c < g.Cols(); c++ {
		assert.Zero(t, g.Z[0][c], "first row col %d", c)
		assert.Zero(t, g.Z[last][c], "last row col %d", c)
	}
	for r := 0; r < g.Rows(); r++ {
		assert.Zero(t, g.Z[r][0], "first col row %d", r)
		assert.Zero(t, g.Z[r][g.Cols()-1], "last col row %d", r)
	}
}

func TestBuildGrid_RowMajor(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{10, 20, 30}
	samples := rowMajorSamples(xs, ys, func(x, y float64) float64 { return x + y })

	g, err := BuildGrid(samples)
	require.NoError(t, err)

	assert.Equal(t, xs, g.X)
	assert.Equal(t, ys, g.Y)
	require.Len(t, g.Z, 3)
	require.Len(t, g.Z[0], 4)
	// 内部点保持原值：行 1 (y=20)，列 1..2
	assert.Equal(t, 21.0, g.Z[1][1])
	assert.Equal(t, 22.0, g.Z[1][2])
	assertZeroBorder(t, g)
}

func TestBuildGrid_ColumnMajor(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{10, 20, 30, 40}
	samples := columnMajorSamples(xs, ys, func(x, y float64) float64 { return 100*x + y })

	g, err := BuildGrid(samples)
	require.NoError(t, err)

	assert.Equal(t, 120.0, g.Z[1][1]) // x=1, y=20
	assert.Equal(t, 230.0, g.Z[2][2]) // x=2, y=30
	assert.Equal(t, 220.0, g.Z[1][2]) // x=2, y=20
	assertZeroBorder(t, g)
}

func TestBuildGrid_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
	}{
		{"empty", nil},
		{"single row", []Sample{{X: 0, Y: 0, Value: 1}}},
		{"one unique x", []Sample{{0, 0, 1}, {0, 1, 1}, {0, 2, 1}}},
		{"not divisible", []Sample{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildGrid(tt.samples)
			var mge *MalformedGridError
			require.True(t, errors.As(err, &mge), "want MalformedGridError, got %v", err)
		})
	}
}

func TestNewGrid_FlipsDescendingAxes(t *testing.T) {
	x := []float64{2, 1, 0}
	y := []float64{0, 1, 2}
	z := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}
	g, err := NewGrid(x, y, z)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1, 2}, g.X)
	assert.Equal(t, 5.0, g.Z[1][1])
	assertZeroBorder(t, g)
	// 输入矩阵不被修改
	assert.Equal(t, 1.0, z[0][0])
}

func TestNewGrid_RejectsBadShape(t *testing.T) {
	_, err := NewGrid([]float64{0, 1}, []float64{0, 1}, [][]float64{{1, 2}})
	var mge *MalformedGridError
	require.ErrorAs(t, err, &mge)

	_, err = NewGrid([]float64{0, 1, 1}, []float64{0, 1}, [][]float64{{1, 2, 3}, {4, 5, 6}})
	require.ErrorAs(t, err, &mge)
}

func TestGrid_RangeAndNodes(t *testing.T) {
	g, err := NewGrid([]float64{0, 1, 2}, []float64{0, 1, 2}, [][]float64{
		{9, 9, 9},
		{9, 7, 9},
		{9, 9, 9},
	})
	require.NoError(t, err)

	lo, hi := g.Range()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 7.0, hi)

	xs, ys := g.Nodes()
	assert.Len(t, xs, 9)
	assert.Equal(t, []float64{0, 1, 2, 0, 1, 2, 0, 1, 2}, xs)
	assert.Equal(t, []float64{0, 0, 0, 1, 1, 1, 2, 2, 2}, ys)
}
