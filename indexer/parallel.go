package indexer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// cancelCheckEvery is how many inserts a worker makes between context checks.
const cancelCheckEvery = 4096

// RebuildParallel produces the same tree as Rebuild using one goroutine per
// root quadrant.
//
// The root's point list and its split decisions are made serially. Each
// quadrant that splits is then built by a worker into private storage from
// the tree's read-only copy of the positions, and the subtrees are attached
// after all workers have joined. ps may be mutated as soon as
// RebuildParallel returns.
//
// On error (context cancellation) the tree is left with an empty root.
func (t *Tree) RebuildParallel(ctx context.Context, ps *PointStore) (RebuildStats, error) {
	ctx, span := tracer.Start(ctx, "Tree.RebuildParallel",
		trace.WithAttributes(
			attribute.Int("quadtree.points", ps.Len()),
			attribute.String("quadtree.storage", string(t.cfg.Storage)),
		),
	)
	defer span.End()

	start := time.Now()
	t.snapshot(ps)
	t.nodes.reset(t.bounds, 0)

	var quads [4][]int
	for i, p := range t.pos {
		if !t.bounds.Contains(p) {
			continue
		}
		t.nodes.appendPoint(rootID, i)
		t.indexed[i] = true
		q := QuadrantIndex(QuadrantOf(t.bounds, p))
		quads[q] = append(quads[q], i)
	}

	root := builder{cfg: &t.cfg, nodes: t.nodes, pos: t.pos}
	if root.canSplit(rootID) {
		subs, err := t.buildQuadrants(ctx, quads)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			t.nodes.reset(t.bounds, 0)
			clear(t.indexed)
			t.stats = RebuildStats{}
			return t.stats, err
		}
		for q, sub := range subs {
			if sub != nil {
				t.nodes.graft(rootID, q, sub)
			}
		}
	}

	t.finish(modeParallel, time.Since(start))
	span.SetAttributes(
		attribute.Int("quadtree.nodes", t.stats.Nodes),
		attribute.Int("quadtree.max_depth", t.stats.MaxDepth),
	)
	return t.stats, nil
}

// buildQuadrants builds a subtree for every quadrant holding at least
// SplitThreshold points. Workers share only the pool and the read-only
// positions.
func (t *Tree) buildQuadrants(ctx context.Context, quads [4][]int) ([4]storage, error) {
	var subs [4]storage
	g, gctx := errgroup.WithContext(ctx)
	if t.cfg.ParallelWorkers > 0 {
		g.SetLimit(t.cfg.ParallelWorkers)
	}
	for q := 0; q < 4; q++ {
		if len(quads[q]) < t.cfg.SplitThreshold {
			continue
		}
		g.Go(func() error {
			sub := newStorage(t.cfg.Storage, t.pool)
			sub.reset(ChildRect(t.bounds, q), 1)
			b := builder{cfg: &t.cfg, nodes: sub, pos: t.pos}
			for n, i := range quads[q] {
				if n%cancelCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						sub.release()
						return err
					}
				}
				b.insert(i)
			}
			subs[q] = sub
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, sub := range subs {
			if sub != nil {
				sub.release()
			}
		}
		return [4]storage{}, err
	}
	return subs, nil
}
