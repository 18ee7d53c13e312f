package indexer

import "iter"

// NodeView is a read-only view of one node, valid until the next rebuild or
// insert. Points must not be modified.
type NodeView struct {
	ID         NodeID
	Rect       Rect
	Depth      int
	PointCount int
	Points     []int
	Children   uint8 // bit q set when quadrant q has a child
}

// Leaf reports whether the node has no children.
func (n NodeView) Leaf() bool { return n.Children == 0 }

// Size returns the number of indexed points, which is the root's point count.
func (t *Tree) Size() int {
	return len(t.nodes.points(rootID))
}

// Node returns the view of node id.
func (t *Tree) Node(id NodeID) NodeView {
	pts := t.nodes.points(id)
	v := NodeView{
		ID:         id,
		Rect:       t.nodes.rect(id),
		Depth:      t.nodes.depth(id),
		PointCount: len(pts),
		Points:     pts,
	}
	for q := 0; q < 4; q++ {
		if _, ok := t.nodes.child(id, q); ok {
			v.Children |= 1 << q
		}
	}
	return v
}

// Child returns the child of id at quadrant q, if materialized.
func (t *Tree) Child(id NodeID, q int) (NodeID, bool) {
	return t.nodes.child(id, q)
}

// Root returns the root node id.
func (t *Tree) Root() NodeID {
	return rootID
}

// Walk visits every node in pre-order until fn returns false.
func (t *Tree) Walk(fn func(NodeView) bool) {
	t.nodes.walk(func(id NodeID) bool {
		return fn(t.Node(id))
	})
}

// Nodes returns a restartable sequence over every live node, root first.
func (t *Tree) Nodes() iter.Seq[NodeView] {
	return func(yield func(NodeView) bool) {
		t.Walk(yield)
	}
}

// Points returns a restartable sequence over the indexed points as
// (store index, position) pairs.
func (t *Tree) Points() iter.Seq2[int, Vec2] {
	return func(yield func(int, Vec2) bool) {
		for _, i := range t.nodes.points(rootID) {
			if !yield(i, t.pos[i]) {
				return
			}
		}
	}
}

// Search returns the indices of indexed points inside area.
// A node lying wholly inside area contributes its whole list without descent.
func (t *Tree) Search(area Rect) []int {
	var out []int
	t.search(rootID, area, &out)
	return out
}

func (t *Tree) search(id NodeID, area Rect, out *[]int) {
	r := t.nodes.rect(id)
	if !r.Intersects(area) {
		return
	}
	pts := t.nodes.points(id)
	if area.Covers(r) {
		*out = append(*out, pts...)
		return
	}
	var kids [4]NodeID
	var has uint8
	for q := 0; q < 4; q++ {
		if c, ok := t.nodes.child(id, q); ok {
			kids[q] = c
			has |= 1 << q
		}
	}
	// a child holds every point of its quadrant, so only points in
	// quadrants without a child are tested here
	for _, i := range pts {
		p := t.pos[i]
		if has&(1<<QuadrantIndex(QuadrantOf(r, p))) != 0 {
			continue
		}
		if area.Contains(p) {
			*out = append(*out, i)
		}
	}
	for q := 0; q < 4; q++ {
		if has&(1<<q) != 0 {
			t.search(kids[q], area, out)
		}
	}
}
