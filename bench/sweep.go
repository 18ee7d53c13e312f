package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/ic-timon/adaptive-quadtree/bench/metrics"
	"github.com/ic-timon/adaptive-quadtree/indexer"
)

const searchRuns = 100

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Rebuild under each split threshold and storage strategy",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSweep(cfg)
	},
}

func runSweep(c benchConfig) error {
	ps, min, max, err := initialPoints(c, c.Points)
	if err != nil {
		return err
	}
	queries := searchAreas(min, max, searchRuns, c.Seed)

	var rows []metrics.SweepRow
	for _, k := range c.Thresholds {
		for _, kind := range []indexer.StorageKind{indexer.StorageArena, indexer.StorageRecursive} {
			slog.Info("sweep", "split_threshold", k, "storage", kind)

			metrics.GC()
			tc := c.Tree
			tc.SplitThreshold = k
			tc.Storage = kind
			tree, err := indexer.NewTree(min, max, &tc)
			if err != nil {
				return err
			}

			rebuilds := make([]time.Duration, c.Runs)
			var s indexer.RebuildStats
			for i := range rebuilds {
				s = tree.Rebuild(ps)
				rebuilds[i] = s.Duration
			}
			searches := make([]time.Duration, len(queries))
			for i, q := range queries {
				t0 := time.Now()
				tree.Search(q)
				searches[i] = time.Since(t0)
			}
			after := metrics.Take()
			tree.Close()

			rs := metrics.LatencyStatsFromDurations(rebuilds)
			ss := metrics.LatencyStatsFromDurations(searches)
			rows = append(rows, metrics.SweepRow{
				SplitThreshold: k,
				Storage:        string(kind),
				PointCount:     ps.Len(),
				Nodes:          s.Nodes,
				MaxDepth:       s.MaxDepth,
				RebuildP50Ms:   rs.P50Ms,
				RebuildP99Ms:   rs.P99Ms,
				SearchP50Ms:    ss.P50Ms,
				HeapAllocMB:    float64(after.HeapAlloc) / 1024 / 1024,
			})
			fmt.Printf("  nodes=%d depth=%d rebuild P50=%.3fms search P50=%.4fms\n",
				s.Nodes, s.MaxDepth, rs.P50Ms, ss.P50Ms)
		}
	}

	path := metrics.ReportPath(c.ReportDir, "bench_report_sweep_")
	if err := metrics.WriteSweepCSV(rows, path); err != nil {
		return err
	}
	slog.Info("report written", "path", path)
	return nil
}

// searchAreas returns n random query rectangles inside [min, max), each
// spanning up to a tenth of the extent per axis.
func searchAreas(min, max indexer.Vec2, n int, seed int64) []indexer.Rect {
	rng := rand.New(rand.NewSource(seed + 1))
	w, h := max.X-min.X, max.Y-min.Y
	out := make([]indexer.Rect, n)
	for i := range out {
		x := min.X + rng.Float64()*w
		y := min.Y + rng.Float64()*h
		out[i] = indexer.Rect{
			Min: indexer.Vec2{X: x, Y: y},
			Max: indexer.Vec2{X: x + rng.Float64()*w/10, Y: y + rng.Float64()*h/10},
		}
	}
	return out
}
