package indexer

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// ErrInvalidRoot is returned by NewTree when the root rectangle has no area
// or a non-finite corner.
var ErrInvalidRoot = errors.New("invalid root rectangle")

// Tree is an adaptive quadtree over the points of a PointStore.
//
// Every node lists the indices of all points inside its rectangle, so a point
// appears in its resting node and in every ancestor up to the root. A quadrant
// gets a child node once SplitThreshold of the parent's points fall in it.
//
// A Tree is not safe for concurrent use. Queries must not overlap a rebuild.
type Tree struct {
	cfg     Config
	bounds  Rect
	pool    *Pool
	nodes   storage
	pos     []Vec2 // tree-owned copy of the positions it was built from
	indexed []bool // indexed[i] once point i is in the root list
	stats   RebuildStats
}

// RebuildStats describes the tree produced by a rebuild.
type RebuildStats struct {
	Points       int           // points held by the root
	Dropped      int           // points outside the root rectangle
	Nodes        int           // live nodes, root included
	MaxDepth     int           // deepest live node
	DepthLimited int           // nodes with a quadrant at or over SplitThreshold that could not split
	Duration     time.Duration // wall time of the rebuild
}

// NewTree creates a tree whose root covers [min, max). Uses default config if
// cfg is nil. The root rectangle is fixed for the tree's lifetime.
func NewTree(min, max Vec2, cfg *Config) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := *cfg.OrDefault()
	bounds := Rect{Min: min, Max: max}
	if !finite(min) || !finite(max) || bounds.Empty() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, bounds)
	}
	pool := NewPool(defaultBufCap)
	t := &Tree{
		cfg:    c,
		bounds: bounds,
		pool:   pool,
		nodes:  newStorage(c.Storage, pool),
	}
	t.nodes.reset(bounds, 0)
	return t, nil
}

func finite(v Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Config returns the normalized configuration.
func (t *Tree) Config() Config {
	return t.cfg
}

// Bounds returns the root rectangle.
func (t *Tree) Bounds() Rect {
	return t.bounds
}

// Stats returns the statistics of the last rebuild or insert.
func (t *Tree) Stats() RebuildStats {
	return t.stats
}

// Insert indexes point i of ps on top of the current tree.
//
// Only point i's position is taken from ps. Points already indexed keep the
// position the tree saw when they were indexed until the next rebuild, so
// moving them in ps does not disturb existing nodes.
//
// Returns false if i is already indexed or lies outside the root rectangle;
// out-of-root points are dropped, not reported as errors.
func (t *Tree) Insert(ps *PointStore, i int) bool {
	t.sync(ps, i)
	if t.indexed[i] {
		return false
	}
	t.pos[i] = ps.At(i)
	b := builder{cfg: &t.cfg, nodes: t.nodes, pos: t.pos}
	ok := b.insert(i)
	t.indexed[i] = ok
	d := t.stats.Duration
	t.stats = t.summarize()
	t.stats.Duration = d
	return ok
}

// sync grows the tree's position copy to cover index i of ps. Positions of
// points already known to the tree are left untouched.
func (t *Tree) sync(ps *PointStore, i int) {
	if i < 0 || i >= ps.Len() {
		panic(fmt.Sprintf("indexer: point %d out of range [0,%d)", i, ps.Len()))
	}
	if n := len(t.pos); n < ps.Len() {
		t.pos = append(t.pos, ps.Positions()[n:]...)
		t.indexed = append(t.indexed, make([]bool, ps.Len()-n)...)
	}
}

// snapshot copies the positions of ps into the tree's own buffer.
func (t *Tree) snapshot(ps *PointStore) {
	t.pos = append(t.pos[:0], ps.Positions()...)
	t.indexed = append(t.indexed[:0], make([]bool, len(t.pos))...)
}

// Rebuild discards every node but the root and re-inserts all points of ps.
// The resulting tree depends only on the point positions, not on their order.
// The positions are copied, so ps may be mutated as soon as Rebuild returns.
func (t *Tree) Rebuild(ps *PointStore) RebuildStats {
	start := time.Now()
	t.snapshot(ps)
	t.nodes.reset(t.bounds, 0)
	b := builder{cfg: &t.cfg, nodes: t.nodes, pos: t.pos}
	for i := range t.pos {
		t.indexed[i] = b.insert(i)
	}
	t.finish(modeSerial, time.Since(start))
	return t.stats
}

// Close returns every node buffer to the pool and drops the pool's idle
// buffers. The tree must not be used afterwards.
func (t *Tree) Close() {
	t.nodes.release()
	t.pool.Close()
	t.pos, t.indexed = nil, nil
	t.stats = RebuildStats{}
}

func (t *Tree) finish(mode string, d time.Duration) {
	s := t.summarize()
	s.Duration = d
	t.stats = s
	if s.DepthLimited > 0 {
		slog.Debug("quadtree: split limit reached",
			"nodes", s.DepthLimited,
			"max_depth", t.cfg.MaxDepth,
			"min_cell_size", t.cfg.MinCellSize)
	}
	observeRebuild(mode, s)
}

// summarize walks the tree once. Everything it reports is a function of the
// final tree, so serial and parallel rebuilds agree.
func (t *Tree) summarize() RebuildStats {
	var s RebuildStats
	s.Points = len(t.nodes.points(rootID))
	for i, p := range t.pos {
		if !t.indexed[i] && !t.bounds.Contains(p) {
			s.Dropped++
		}
	}
	b := builder{cfg: &t.cfg, nodes: t.nodes, pos: t.pos}
	t.nodes.walk(func(id NodeID) bool {
		s.Nodes++
		s.MaxDepth = max(s.MaxDepth, t.nodes.depth(id))
		if !b.canSplit(id) && b.overflowing(id) {
			s.DepthLimited++
		}
		return true
	})
	return s
}

// builder runs the descent algorithm against one storage.
type builder struct {
	cfg   *Config
	nodes storage
	pos   []Vec2
}

// insert places point i at the root and walks it down, creating children
// whose quadrant has reached the split threshold.
func (b *builder) insert(i int) bool {
	p := b.pos[i]
	s := b.nodes
	cur := rootID
	if !s.rect(cur).Contains(p) {
		return false
	}
	s.appendPoint(cur, i)
	for {
		r := s.rect(cur)
		if !r.Contains(p) {
			break
		}
		q := QuadrantIndex(QuadrantOf(r, p))
		// An existing child implies the quadrant already met the threshold;
		// counts only grow during a build, so the recount can be skipped.
		if c, ok := s.child(cur, q); ok {
			s.appendPoint(c, i)
			cur = c
			continue
		}
		if b.countInQuadrant(cur, q) < b.cfg.SplitThreshold {
			break
		}
		if !b.canSplit(cur) {
			break
		}
		c := s.materialize(cur, q)
		cr := s.rect(c)
		// backfill: the new child sees every point its parent already holds
		// in that quadrant, i included
		for _, j := range s.points(cur) {
			if cr.Contains(b.pos[j]) {
				s.appendPoint(c, j)
			}
		}
		cur = c
	}
	return true
}

// countInQuadrant counts the points of id inside its child rectangle q.
func (b *builder) countInQuadrant(id NodeID, q int) int {
	cr := ChildRect(b.nodes.rect(id), q)
	n := 0
	for _, j := range b.nodes.points(id) {
		if cr.Contains(b.pos[j]) {
			n++
		}
	}
	return n
}

func (b *builder) canSplit(id NodeID) bool {
	return b.nodes.depth(id) < b.cfg.MaxDepth && splittable(b.nodes.rect(id), b.cfg.MinCellSize)
}

// overflowing reports whether some quadrant of id holds SplitThreshold points
// or more without a child.
func (b *builder) overflowing(id NodeID) bool {
	r := b.nodes.rect(id)
	var counts [4]int
	for _, j := range b.nodes.points(id) {
		q := QuadrantIndex(QuadrantOf(r, b.pos[j]))
		counts[q]++
		if counts[q] >= b.cfg.SplitThreshold {
			if _, ok := b.nodes.child(id, q); !ok {
				return true
			}
		}
	}
	return false
}
