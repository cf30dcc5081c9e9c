/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package export

import (
	"path/filepath"
	"strings"
	"testing"

	"isokml/internal/domain"
	"isokml/internal/kml"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peakGrid(t *testing.T, peak float64) *domain.Grid {
	t.Helper()
	g, err := domain.NewGrid([]float64{0, 1, 2}, []float64{0, 1, 2}, [][]float64{
		{0, 0, 0},
		{0, peak, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)
	return g
}

func TestConverter_RenderSkipsLevelsBelowMinScale(t *testing.T) {
	opts := testOptions()
	opts.MinScale = 4
	c := NewConverter(opts)

	r, err := c.Render(peakGrid(t, 9), "/data/Peak.csv")
	require.NoError(t, err)

	require.Len(t, r.Document.Levels, 5) // 4,5,6,7,8
	assert.Equal(t, 4, r.Document.Levels[0].Index)
	assert.Equal(t, 4.0, r.Document.Levels[0].Value)
	assert.Equal(t, "Peak", r.Document.Name)
	assert.Equal(t, 9, r.Rings)

	assert.Equal(t, 4.0, r.Legend.Min)
	assert.Equal(t, 9.0, r.Legend.Max)
	assert.Equal(t, r.Document.Bound.Min, r.Legend.Left)
	assert.Equal(t, r.Document.Bound.Min[1], r.Legend.Right[1])
	assert.Equal(t, r.Document.Bound.Max[0], r.Legend.Right[0])
}

func TestConverter_RenderReprojectsBoundaries(t *testing.T) {
	c := NewConverter(testOptions())
	r, err := c.Render(peakGrid(t, 9), "peak.csv")
	require.NoError(t, err)

	b := r.Document.Bound
	for _, lvl := range r.Document.Levels {
		for _, bd := range lvl.Boundaries {
			for _, p := range bd.Ring {
				assert.True(t, b.Contains(p), "level %d vertex %v outside grid bound", lvl.Index, p)
			}
		}
	}
	// 嵌套：第 1 层起先输出上一层的环作为外边界，再输出本层环作为内边界
	require.Len(t, r.Document.Levels[1].Boundaries, 2)
	assert.Equal(t, domain.Outer, r.Document.Levels[1].Boundaries[0].Winding)
	assert.Equal(t, domain.Inner, r.Document.Levels[1].Boundaries[1].Winding)
	assert.Equal(t, r.Document.Levels[0].Boundaries[0].Ring, r.Document.Levels[1].Boundaries[0].Ring)
}

func TestConverter_StaticScaleColoursAndLegend(t *testing.T) {
	opts := testOptions()
	opts.Static = true
	opts.MaxScale = 4
	c := NewConverter(opts)

	r, err := c.Render(peakGrid(t, 9), "peak.csv")
	require.NoError(t, err)
	last := c.Palette[len(c.Palette)-1]
	for _, lvl := range r.Document.Levels {
		if lvl.Value >= 4 {
			assert.Equal(t, last, lvl.Color, "level %d", lvl.Index)
		} else {
			assert.NotEqual(t, last, lvl.Color, "level %d", lvl.Index)
		}
	}
	assert.Equal(t, "≥ 4.00", kml.LabelText(r.Legend, kml.LabelCount-1))
}

func TestConverter_ProjectionError(t *testing.T) {
	opts := testOptions()
	opts.Zone = "99"
	c := NewConverter(opts)

	_, err := c.Render(peakGrid(t, 9), "peak.csv")
	var pe *domain.ProjectionError
	assert.ErrorAs(t, err, &pe)
}

func TestConverter_MalformedTable(t *testing.T) {
	c := NewConverter(testOptions())
	_, err := c.GridFromTable([]byte("x_km,y_km,value\n0,0,1\n0,1,2\n1,0,3\n"))
	var me *domain.MalformedGridError
	assert.ErrorAs(t, err, &me)
}

func TestConverter_UnwritableTarget(t *testing.T) {
	c := NewConverter(testOptions())
	out := filepath.Join(t.TempDir(), "missing", "peak.kml")
	_, err := c.ConvertGrid(peakGrid(t, 9), ConvertPlan{
		Source:     "peak.csv",
		OutputPath: out,
		LegendPath: kml.LegendPath(out),
	})
	var ioe *domain.IOError
	require.ErrorAs(t, err, &ioe)
	assert.Equal(t, out, ioe.Path)
}

func TestConverter_BrokenTemplate(t *testing.T) {
	c := NewConverter(testOptions())
	c.Template = "<kml>[name_file]</kml>"
	out := filepath.Join(t.TempDir(), "peak.kml")
	_, err := c.ConvertGrid(peakGrid(t, 9), ConvertPlan{Source: "peak.csv", OutputPath: out, LegendPath: kml.LegendPath(out)})
	var ioe *domain.IOError
	assert.ErrorAs(t, err, &ioe)
	assert.NoFileExists(t, out)
}

func TestConverter_LongLatInputPassesThrough(t *testing.T) {
	opts := testOptions()
	opts.ProjIn = "longlat"
	c := NewConverter(opts)

	g, err := domain.NewGrid([]float64{12, 12.1, 12.2}, []float64{41, 41.1, 41.2}, [][]float64{
		{0, 0, 0},
		{0, 9, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)

	dir := tempDir(t)
	res, err := c.ConvertGrid(g, ConvertPlan{
		Source:     "ll.csv",
		OutputPath: filepath.Join(dir, "ll.kml"),
		LegendPath: filepath.Join(dir, "ll_scale.kml"),
	})
	require.NoError(t, err)
	assert.Equal(t, 9, res.Levels)

	r, err := c.Render(g, "ll.csv")
	require.NoError(t, err)
	b := r.Document.Bound
	assert.InDelta(t, 12.0, b.Min[0], 1e-9)
	assert.InDelta(t, 41.0, b.Min[1], 1e-9)
	assert.InDelta(t, 12.2, b.Max[0], 1e-9)
	assert.InDelta(t, 41.2, b.Max[1], 1e-9)
	for _, p := range r.Document.Levels[0].Boundaries[0].Ring {
		assert.True(t, b.Contains(p), "vertex %v outside bound", p)
	}
}

func TestBuildPlacemarks_KeepsLevelsWithoutBoundaries(t *testing.T) {
	ring := domain.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}
	geo := []domain.Level{
		{Value: 1, Rings: []domain.Ring{{{9, 45}, {9.1, 45}, {9.1, 45.1}, {9, 45}}}},
		{Value: 2},
		{Value: 3},
	}
	plans := []domain.LevelPlan{
		{Index: 0, Value: 1, Boundaries: []domain.Boundary{{Ring: ring, Winding: domain.Outer, LevelIndex: 0, RingIndex: 0}}},
		{Index: 1, Value: 2},
	}
	ramp := domain.NewColorRamp([]string{"ff0000ff", "ff00ff00"}, 0, 3)

	got := buildPlacemarks(plans, geo, ramp, 0)
	require.Len(t, got, 2)
	assert.Equal(t, geo[0].Rings[0], got[0].Boundaries[0].Ring)
	assert.Equal(t, ring, plans[0].Boundaries[0].Ring, "plans keep planar rings")
	assert.Equal(t, 1, got[1].Index)
	assert.Empty(t, got[1].Boundaries)
	assert.NotEmpty(t, got[1].Color)

	got = buildPlacemarks(plans, geo, ramp, 1.5)
	require.Len(t, got, 1)
	assert.Equal(t, 2.0, got[0].Value)

	var buf strings.Builder
	require.NoError(t, kml.WriteDocument(&buf, kml.Document{Name: "empty", Variable: "Odor", Levels: got}))
	assert.Contains(t, buf.String(), "<name>Level 2: Conc(Odor)=2</name>")
	assert.Contains(t, buf.String(), "<MultiGeometry></MultiGeometry>")
}
