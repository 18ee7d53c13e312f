package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ic-timon/adaptive-quadtree/bench/gen"
	"github.com/ic-timon/adaptive-quadtree/bench/metrics"
	"github.com/ic-timon/adaptive-quadtree/indexer"
	"github.com/ic-timon/adaptive-quadtree/indexer/store"
)

var (
	fixtureClusters int
	fixtureJSON     string
)

// fixtureSummary is the JSON form of fixture info.
type fixtureSummary struct {
	Path   string               `json:"path"`
	Header store.Header         `json:"header"`
	Stats  indexer.RebuildStats `json:"stats"`
	CPU    string               `json:"cpu"`
}

var (
	fixtureCmd = &cobra.Command{
		Use:   "fixture",
		Short: "Write or inspect point fixture files",
	}
	fixtureWriteCmd = &cobra.Command{
		Use:   "write <path>",
		Short: "Generate points and write them to a fixture file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeFixture(args[0], cfg, fixtureClusters)
		},
	}
	fixtureInfoCmd = &cobra.Command{
		Use:   "info <path>",
		Short: "Print a fixture's header and the tree built from it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fixtureInfo(cmd, args[0], fixtureJSON)
		},
	}
)

func init() {
	fixtureWriteCmd.Flags().IntVar(&fixtureClusters, "clusters", 0, "draw points around this many centres instead of uniformly")
	fixtureInfoCmd.Flags().StringVar(&fixtureJSON, "json", "", "also write the summary as JSON to this path")
	fixtureCmd.AddCommand(fixtureWriteCmd, fixtureInfoCmd)
}

func writeFixture(path string, c benchConfig, clusters int) error {
	var pts []indexer.Vec2
	if clusters > 0 {
		pts = gen.Clustered(c.Points, clusters, c.Extent, c.Extent/50, c.Seed)
	} else {
		pts = gen.RandomPoints(c.Points, c.Extent, c.Seed)
	}
	ps := gen.Store(pts, c.Seed)
	recs := make([]store.Record, ps.Len())
	for i := range recs {
		p := ps.At(i)
		recs[i] = store.Record{X: p.X, Y: p.Y, ID: ps.ID(i)}
	}
	min, max := c.bounds()
	if err := store.WritePointsAtomic(path, [4]float64{min.X, min.Y, max.X, max.Y}, recs); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	slog.Info("fixture written", "path", path, "points", len(recs))
	return nil
}

// loadFixture reads every record of the fixture at path into a new store and
// returns the root corners recorded in its header.
func loadFixture(path string) (*indexer.PointStore, indexer.Vec2, indexer.Vec2, error) {
	src, err := store.OpenPoints(path)
	if err != nil {
		return nil, indexer.Vec2{}, indexer.Vec2{}, err
	}
	defer src.Close()
	return fromSource(src)
}

func fromSource(src store.Source) (*indexer.PointStore, indexer.Vec2, indexer.Vec2, error) {
	h := src.Header()
	ps := indexer.NewPointStore(src.Len())
	for i := 0; i < src.Len(); i++ {
		r := src.Record(i)
		ps.AddWithID(indexer.Vec2{X: r.X, Y: r.Y}, uuid.UUID(r.ID))
	}
	return ps, indexer.Vec2{X: h.MinX, Y: h.MinY}, indexer.Vec2{X: h.MaxX, Y: h.MaxY}, nil
}

// initialPoints returns the starting store for a run of n points: the fixture
// when one is configured, generated points otherwise.
func initialPoints(c benchConfig, n int) (*indexer.PointStore, indexer.Vec2, indexer.Vec2, error) {
	if c.Fixture != "" {
		return loadFixture(c.Fixture)
	}
	min, max := c.bounds()
	return gen.Store(gen.RandomPoints(n, c.Extent, c.Seed), c.Seed), min, max, nil
}

func fixtureInfo(cmd *cobra.Command, path, jsonPath string) error {
	src, err := store.OpenPoints(path)
	if err != nil {
		return err
	}
	defer src.Close()
	h := src.Header()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "version=%d points=%d bounds=[(%g,%g),(%g,%g))\n",
		h.Version, h.Count, h.MinX, h.MinY, h.MaxX, h.MaxY)

	ps, min, max, err := fromSource(src)
	if err != nil {
		return err
	}
	tree, err := indexer.NewTree(min, max, &cfg.Tree)
	if err != nil {
		return err
	}
	defer tree.Close()
	s := tree.Rebuild(ps)
	fmt.Fprintf(out, "indexed=%d dropped=%d nodes=%d max_depth=%d depth_limited=%d rebuild=%s\n",
		s.Points, s.Dropped, s.Nodes, s.MaxDepth, s.DepthLimited, s.Duration)
	if jsonPath == "" {
		return nil
	}
	sum := fixtureSummary{Path: path, Header: *h, Stats: s, CPU: metrics.CPUDescription()}
	if err := metrics.WriteJSON(sum, jsonPath); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	slog.Info("summary written", "path", jsonPath)
	return nil
}
