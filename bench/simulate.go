package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ic-timon/adaptive-quadtree/bench/gen"
	"github.com/ic-timon/adaptive-quadtree/bench/metrics"
	"github.com/ic-timon/adaptive-quadtree/indexer"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Move points every tick and rebuild the tree from scratch",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimulate(cmd.Context(), cfg)
	},
}

func runSimulate(ctx context.Context, c benchConfig) error {
	var rows []metrics.SimulateRow
	for _, n := range c.scales() {
		ps, min, max, err := initialPoints(c, n)
		if err != nil {
			return err
		}
		n = ps.Len()
		slog.Info("simulate", "points", n, "ticks", c.Ticks, "storage", c.Tree.Storage)

		tree, err := indexer.NewTree(min, max, &c.Tree)
		if err != nil {
			return err
		}
		vel := gen.Velocities(n, c.Speed, c.Seed)

		metrics.GC()
		before := metrics.Take()
		durations := make([]time.Duration, c.Ticks)
		var nodes int
		for tick := 0; tick < c.Ticks; tick++ {
			if err := ctx.Err(); err != nil {
				tree.Close()
				return err
			}
			t0 := time.Now()
			s, err := step(ctx, tree, ps, vel, tick)
			if err != nil {
				tree.Close()
				return err
			}
			durations[tick] = time.Since(t0)
			nodes += s.Nodes
		}
		after := metrics.Take()
		tree.Close()
		_, gcs := metrics.Diff(before, after)
		stats := metrics.LatencyStatsFromDurations(durations)

		row := metrics.SimulateRow{
			PointCount:     n,
			Ticks:          c.Ticks,
			Storage:        string(tree.Config().Storage),
			TickP50Ms:      stats.P50Ms,
			TickP99Ms:      stats.P99Ms,
			AvgNodes:       float64(nodes) / float64(c.Ticks),
			AllocsPerTick:  metrics.MallocsPer(before, after, c.Ticks),
			GCPerKiloTicks: float64(gcs) * 1000 / float64(c.Ticks),
		}
		rows = append(rows, row)
		fmt.Printf("  tick P50=%.3fms P99=%.3fms nodes=%.0f allocs/tick=%.1f\n",
			row.TickP50Ms, row.TickP99Ms, row.AvgNodes, row.AllocsPerTick)
	}

	path := metrics.ReportPath(c.ReportDir, "bench_report_simulate_")
	if err := metrics.WriteSimulateCSV(rows, path); err != nil {
		return err
	}
	slog.Info("report written", "path", path)
	return nil
}

// step advances the simulation by one tick: move, reflect at the walls,
// then rebuild. Parallel rebuild is used when a worker cap is configured.
func step(ctx context.Context, tree *indexer.Tree, ps *indexer.PointStore, vel []indexer.Vec2, tick int) (indexer.RebuildStats, error) {
	ctx, span := tracer.Start(ctx, "bench.tick", trace.WithAttributes(attribute.Int("tick", tick)))
	defer span.End()

	ps.Move(vel)
	ps.Bounce(tree.Bounds(), vel)
	if tree.Config().ParallelWorkers > 0 {
		return tree.RebuildParallel(ctx, ps)
	}
	return tree.Rebuild(ps), nil
}
