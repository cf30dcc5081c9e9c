/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package kml

import (
	"strings"
	"testing"

	"isokml/internal/assets"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.05, "5.00e-02"},
		{150, "1.50e+02"},
		{99, "9.90e+01"},
		{98.999, "99.00"},
		{42, "42.00"},
		{0.1, "0.10"},
		{0, "0.00"},
		{-5, "-5"},
		{-2.5, "-2.50"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLabel(tt.in))
		})
	}
}

func TestLegendPath(t *testing.T) {
	assert.Equal(t, "/out/run_1700000000_scale.kml", LegendPath("/out/run_1700000000.kml"))
	assert.Equal(t, "noext_scale", LegendPath("noext"))
}

func legendInput() LegendInput {
	return LegendInput{
		Template:     assets.ScaleTemplate,
		DocName:      "/tmp/out/field_1700000000.kml",
		Left:         orb.Point{9, 45},
		Right:        orb.Point{10, 45},
		XScaleFactor: 1,
		YScaleFactor: 1,
		Min:          0,
		Max:          9,
	}
}

func TestBuildLegend_SubstitutesEverything(t *testing.T) {
	out, err := BuildLegend(legendInput())
	require.NoError(t, err)

	for _, ph := range []string{"[coord_", "[val_", "[point_", "[name_file]"} {
		assert.NotContains(t, out, ph)
	}
	assert.Contains(t, out, "<name>field_1700000000_scale.kml</name>")
	assert.Contains(t, out, "<name>0.00</name>")
	assert.Contains(t, out, "<name>1.50</name>")
	assert.Contains(t, out, "<name>9.00</name>")
	assert.NotContains(t, out, "≥")

	// 第一个标签点位于左端点正下方
	base := 45.0
	assert.Contains(t, out, "<Point><coordinates>9, "+FormatValue(base-labelDrop)+", 0</coordinates></Point>")
}

func TestBuildLegend_StaticPrefixesTopLabel(t *testing.T) {
	in := legendInput()
	in.Static = true
	in.Max = 130
	out, err := BuildLegend(in)
	require.NoError(t, err)
	assert.Contains(t, out, "<name>≥ 1.30e+02</name>")
	assert.Equal(t, 1, strings.Count(out, "≥"))

	assert.Equal(t, "≥ 1.30e+02", LabelText(in, LabelCount-1))
	assert.Equal(t, "21.67", LabelText(in, 1))
}

func TestBuildLegend_MissingPlaceholders(t *testing.T) {
	in := legendInput()
	in.Template = "<kml>[name_file][coord_0]</kml>"
	_, err := BuildLegend(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[coord_1]")
}

func TestSwatches_Geometry(t *testing.T) {
	in := legendInput()
	got := swatches(in)
	require.Len(t, got, SwatchCount)

	lines := strings.Split(got[0], "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, lines[0], strings.TrimPrefix(lines[4], "\t\t\t\t"))

	base := 45.0
	up := FormatValue(base - swatchDelta)
	down := FormatValue(base - swatchDelta - swatchDelta)
	assert.Equal(t, "\t\t\t\t9,"+down+",0", lines[1])
	assert.Equal(t, "\t\t\t\t9,"+up+",0", lines[2])

	// 最后一个色块的右边界落在右端点
	last := strings.Split(got[SwatchCount-1], "\n")
	assert.True(t, strings.HasPrefix(last[0], "10,"))
}

func TestScaleAboutMean(t *testing.T) {
	v := []float64{0, 2, 4}
	scaleAboutMean(v, 0.5)
	assert.Equal(t, []float64{1, 2, 3}, v)

	w := []float64{0.1, 0.7}
	scaleAboutMean(w, 1)
	assert.Equal(t, []float64{0.1, 0.7}, w)
}
