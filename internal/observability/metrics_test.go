/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.FilesTotal.WithLabelValues("converted").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.FilesTotal.WithLabelValues("converted")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.FilesTotal.WithLabelValues("converted")))
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.FilesTotal.WithLabelValues("failed").Add(2)
	m.LevelsWritten.Add(9)
	m.ConvertDuration.Observe(0.2)

	path := filepath.Join(t.TempDir(), "isokml.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `isokml_files_total{result="failed"} 2`)
	assert.Contains(t, out, "isokml_levels_written_total 9")
	assert.Contains(t, out, "isokml_convert_duration_seconds_count 1")
}

func TestWriteTextfile_BadDirectory(t *testing.T) {
	m := NewMetrics()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	assert.Error(t, err)
}
