/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "isokml"

// Metrics 汇总一次批量转换的计数与耗时，使用独立 registry，可重复创建。
type Metrics struct {
	registry *prometheus.Registry

	FilesTotal      *prometheus.CounterVec // labels: result={converted,failed,skipped}
	LevelsWritten   prometheus.Counter
	RingsTraced     prometheus.Counter
	ConvertDuration prometheus.Histogram
	GridCells       prometheus.Histogram
	TransformCache  prometheus.Gauge
}

// NewMetrics 创建并注册全部指标。
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FilesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Input files processed, by result.",
		}, []string{"result"}),
		LevelsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_written_total",
			Help:      "Level placemarks written to KML documents.",
		}),
		RingsTraced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rings_traced_total",
			Help:      "Closed isoline rings extracted from grids.",
		}),
		ConvertDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "convert_duration_seconds",
			Help:      "Duration of a single grid to KML conversion.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		GridCells: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grid_cells",
			Help:      "Number of cells per converted grid.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		}),
		TransformCache: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transform_cache_entries",
			Help:      "Projection transforms built during the run.",
		}),
	}

	m.registry.MustRegister(
		m.FilesTotal,
		m.LevelsWritten,
		m.RingsTraced,
		m.ConvertDuration,
		m.GridCells,
		m.TransformCache,
	)
	return m
}

// Registry 返回指标所在的 registry。
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile 以 node_exporter textfile 格式写出全部指标。
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("写入指标文件失败 %s: %w", path, err)
	}
	return nil
}
