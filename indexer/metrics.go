package indexer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

const (
	modeSerial   = "serial"
	modeParallel = "parallel"
)

var tracer = otel.Tracer("adaptive-quadtree.indexer")

var (
	rebuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quadtree_rebuild_duration_seconds",
		Help:    "Time to rebuild the tree from the point store",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"mode"})

	treeNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quadtree_nodes",
		Help: "Live nodes after the most recent rebuild",
	})

	treePoints = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quadtree_indexed_points",
		Help: "Points held by the root after the most recent rebuild",
	})

	droppedPoints = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quadtree_dropped_points_total",
		Help: "Points skipped because they lie outside the root rectangle",
	})

	depthLimitedNodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quadtree_depth_limited_nodes_total",
		Help: "Nodes left oversized because the depth or cell-size limit stopped a split",
	})
)

func observeRebuild(mode string, s RebuildStats) {
	rebuildDuration.WithLabelValues(mode).Observe(s.Duration.Seconds())
	treeNodes.Set(float64(s.Nodes))
	treePoints.Set(float64(s.Points))
	droppedPoints.Add(float64(s.Dropped))
	depthLimitedNodes.Add(float64(s.DepthLimited))
}
