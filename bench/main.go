// Command bench drives the quadtree: it owns the point store, moves points
// each tick, rebuilds the index and writes CSV reports under report/.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/ic-timon/adaptive-quadtree/bench/metrics"
	"github.com/ic-timon/adaptive-quadtree/indexer"
)

var tracer = otel.Tracer("adaptive-quadtree.bench")

var (
	configPath string
	cfg        benchConfig

	flagPoints    int
	flagTicks     int
	flagSeed      int64
	flagStorage   string
	flagThreshold int
	flagFixture   string
	flagReportDir string
	flagMetrics   string
	flagLogLevel  string

	rootCmd = &cobra.Command{
		Use:           "bench",
		Short:         "Drive and measure the adaptive quadtree",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadBenchConfig(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &c)
			if err := c.validate(); err != nil {
				return err
			}
			cfg = c
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: parseLevel(cfg.LogLevel),
			})))
			slog.Debug("bench config", "points", cfg.Points, "storage", cfg.Tree.Storage,
				"split_threshold", cfg.Tree.SplitThreshold, "cpu", metrics.CPUDescription())
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.MetricsFile == "" {
				return nil
			}
			if err := prometheus.WriteToTextfile(cfg.MetricsFile, prometheus.DefaultGatherer); err != nil {
				return fmt.Errorf("write metrics: %w", err)
			}
			slog.Info("metrics written", "path", cfg.MetricsFile)
			return nil
		},
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML config file")
	pf.IntVarP(&flagPoints, "points", "n", 0, "number of points")
	pf.IntVar(&flagTicks, "ticks", 0, "ticks per simulate run")
	pf.Int64Var(&flagSeed, "seed", 0, "random seed")
	pf.StringVar(&flagStorage, "storage", "", "node storage: arena | recursive")
	pf.IntVarP(&flagThreshold, "split-threshold", "k", 0, "points in a quadrant that trigger a child")
	pf.StringVar(&flagFixture, "fixture", "", "load initial points from a fixture file")
	pf.StringVar(&flagReportDir, "report-dir", "", "directory for CSV reports")
	pf.StringVar(&flagMetrics, "metrics-file", "", "write Prometheus metrics to this file on exit")
	pf.StringVar(&flagLogLevel, "log-level", "", "debug | info | warn | error")

	rootCmd.AddCommand(simulateCmd, sweepCmd, parallelCmd, fixtureCmd)
}

// applyFlags lets explicitly set flags override the file.
func applyFlags(cmd *cobra.Command, c *benchConfig) {
	f := cmd.Flags()
	if f.Changed("points") {
		c.Points = flagPoints
		c.Scales = nil
	}
	if f.Changed("ticks") {
		c.Ticks = flagTicks
	}
	if f.Changed("seed") {
		c.Seed = flagSeed
	}
	if f.Changed("storage") {
		c.Tree.Storage = indexer.StorageKind(flagStorage)
	}
	if f.Changed("split-threshold") {
		c.Tree.SplitThreshold = flagThreshold
	}
	if f.Changed("fixture") {
		c.Fixture = flagFixture
	}
	if f.Changed("report-dir") {
		c.ReportDir = flagReportDir
	}
	if f.Changed("metrics-file") {
		c.MetricsFile = flagMetrics
	}
	if f.Changed("log-level") {
		c.LogLevel = flagLogLevel
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("bench failed", "err", err)
		stop()
		os.Exit(1)
	}
}
