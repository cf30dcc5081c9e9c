/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peakGrid(t *testing.T, peak float64) *Grid {
	t.Helper()
	g, err := NewGrid([]float64{0, 1, 2}, []float64{0, 1, 2}, [][]float64{
		{0, 0, 0},
		{0, peak, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)
	return g
}

func TestLevelValues_EvenlySpaced(t *testing.T) {
	g := peakGrid(t, 9)
	values := LevelValues(g, 10)
	require.Len(t, values, 10)
	for i, v := range values {
		assert.InDelta(t, float64(i), v, 1e-12)
	}
}

func TestExtractLevels_SinglePeak(t *testing.T) {
	g := peakGrid(t, 9)
	levels, err := ExtractLevels(g, 10)
	require.NoError(t, err)
	require.Len(t, levels, 10)

	peak := orb.Point{1, 1}
	for i := 0; i < 9; i++ {
		require.Len(t, levels[i].Rings, 1, "level %d", i)
		ring := levels[i].Rings[0]
		assert.Len(t, ring, 5, "level %d", i)
		assert.True(t, ring.Closed(), "level %d", i)
		assert.True(t, planar.RingContains(ring, peak), "level %d should enclose the peak", i)
	}
	// 最高层与峰值相等，没有严格高于它的点
	assert.Empty(t, levels[9].Rings)
}

func TestExtractLevels_DiamondGeometry(t *testing.T) {
	g := peakGrid(t, 4)
	levels, err := ExtractLevels(g, 5) // 0,1,2,3,4
	require.NoError(t, err)

	ring := levels[2].Rings[0] // z=2，半径 0.5 的菱形
	for _, p := range ring {
		d := abs(p[0]-1) + abs(p[1]-1)
		assert.InDelta(t, 0.5, d, 1e-12)
	}
}

func TestExtractLevels_TwoPeaks(t *testing.T) {
	g, err := NewGrid([]float64{0, 1, 2, 3, 4}, []float64{0, 1, 2}, [][]float64{
		{0, 0, 0, 0, 0},
		{0, 5, 0, 5, 0},
		{0, 0, 0, 0, 0},
	})
	require.NoError(t, err)

	levels, err := ExtractLevels(g, 3) // 0, 2.5, 5
	require.NoError(t, err)
	require.Len(t, levels[1].Rings, 2)
	assert.True(t, planar.RingContains(levels[1].Rings[0], orb.Point{1, 1}))
	assert.True(t, planar.RingContains(levels[1].Rings[1], orb.Point{3, 1}))
}

func TestExtractLevels_Saddle(t *testing.T) {
	// 对角两个高值，中心平均值高于 z 时两峰连通为一个环
	g, err := NewGrid([]float64{0, 1, 2, 3}, []float64{0, 1, 2, 3}, [][]float64{
		{0, 0, 0, 0},
		{0, 8, 1, 0},
		{0, 1, 8, 0},
		{0, 0, 0, 0},
	})
	require.NoError(t, err)

	connected := traceIsolines(g, 3) // 中心均值 4.5 > 3
	assert.Len(t, connected, 1)

	split := traceIsolines(g, 5) // 中心均值 4.5 < 5
	assert.Len(t, split, 2)
}

func TestExtractLevels_InvalidInput(t *testing.T) {
	_, err := ExtractLevels(nil, 10)
	require.Error(t, err)

	_, err = ExtractLevels(peakGrid(t, 1), 0)
	require.Error(t, err)
}

func TestRingCount(t *testing.T) {
	levels := []Level{{Rings: make([]Ring, 2)}, {}, {Rings: make([]Ring, 3)}}
	assert.Equal(t, 5, RingCount(levels))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
