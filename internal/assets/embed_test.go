/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package assets

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPalette_Size(t *testing.T) {
	p := Palette()
	require.Len(t, p, PaletteSize)
	assert.Equal(t, "0000ffff", p[0])
	assert.Equal(t, "4e440055", p[len(p)-1])
}

func TestParsePalette_RejectsBadLine(t *testing.T) {
	_, err := parsePalette("0000ffff\nnothex\n")
	require.Error(t, err)
}

func TestParsePalette_RejectsWrongCount(t *testing.T) {
	_, err := parsePalette("# header\n0000ffff\n0100ffff\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestScaleTemplate_Placeholders(t *testing.T) {
	assert.Contains(t, ScaleTemplate, "[name_file]")
	for i := range 50 {
		assert.Contains(t, ScaleTemplate, "[coord_"+strconv.Itoa(i)+"]")
	}
	for i := range 7 {
		assert.Contains(t, ScaleTemplate, "[val_"+strconv.Itoa(i)+"]")
		assert.Contains(t, ScaleTemplate, "[point_"+strconv.Itoa(i)+"]")
	}
}

func TestLoadScaleTemplate(t *testing.T) {
	got, err := LoadScaleTemplate("")
	require.NoError(t, err)
	assert.Equal(t, ScaleTemplate, got)

	path := filepath.Join(t.TempDir(), "custom.kml")
	require.NoError(t, os.WriteFile(path, []byte("<kml>[name_file]</kml>"), 0o644))
	got, err = LoadScaleTemplate(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "<kml>"))

	_, err = LoadScaleTemplate(filepath.Join(t.TempDir(), "missing.kml"))
	require.Error(t, err)
}
