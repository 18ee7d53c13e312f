package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/ic-timon/adaptive-quadtree/bench/metrics"
	"github.com/ic-timon/adaptive-quadtree/indexer"
)

var parallelCmd = &cobra.Command{
	Use:   "parallel",
	Short: "Compare serial and parallel rebuilds",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParallel(cmd.Context(), cfg)
	},
}

func runParallel(ctx context.Context, c benchConfig) error {
	var rows []metrics.ParallelRow
	for _, n := range c.scales() {
		ps, min, max, err := initialPoints(c, n)
		if err != nil {
			return err
		}
		serial, err := indexer.NewTree(min, max, &c.Tree)
		if err != nil {
			return err
		}
		serialDur := make([]time.Duration, c.Runs)
		var want indexer.RebuildStats
		for i := range serialDur {
			want = serial.Rebuild(ps)
			serialDur[i] = want.Duration
		}
		serial.Close()
		ss := metrics.LatencyStatsFromDurations(serialDur)

		for _, w := range c.Workers {
			slog.Info("parallel", "points", ps.Len(), "workers", w)
			tc := c.Tree
			tc.ParallelWorkers = w
			tree, err := indexer.NewTree(min, max, &tc)
			if err != nil {
				return err
			}
			parDur := make([]time.Duration, c.Runs)
			var got indexer.RebuildStats
			for i := range parDur {
				got, err = tree.RebuildParallel(ctx, ps)
				if err != nil {
					tree.Close()
					return err
				}
				parDur[i] = got.Duration
			}
			tree.Close()
			if got.Nodes != want.Nodes || got.Points != want.Points || got.MaxDepth != want.MaxDepth {
				return fmt.Errorf("parallel rebuild diverged: serial %+v, parallel %+v", want, got)
			}
			pst := metrics.LatencyStatsFromDurations(parDur)
			row := metrics.ParallelRow{
				Workers:       w,
				PointCount:    ps.Len(),
				SerialP50Ms:   ss.P50Ms,
				ParallelP50Ms: pst.P50Ms,
				NumGoroutine:  runtime.NumGoroutine(),
			}
			if pst.P50Ms > 0 {
				row.Speedup = ss.P50Ms / pst.P50Ms
			}
			rows = append(rows, row)
			fmt.Printf("  workers=%d serial P50=%.3fms parallel P50=%.3fms speedup=%.2f\n",
				w, row.SerialP50Ms, row.ParallelP50Ms, row.Speedup)
		}
	}

	path := metrics.ReportPath(c.ReportDir, "bench_report_parallel_")
	if err := metrics.WriteParallelCSV(rows, path); err != nil {
		return err
	}
	slog.Info("report written", "path", path)
	return nil
}
