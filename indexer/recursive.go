package indexer

// boxNode owns its children directly.
type boxNode struct {
	id       NodeID
	rect     Rect
	points   []int
	children [4]*boxNode
	depth    int
}

// recursive is the pointer-per-child strategy. byID only gives nodes an
// address for the NodeID surface; ownership runs through children.
type recursive struct {
	root *boxNode
	byID []*boxNode
	pool *Pool
}

func newRecursive(pool *Pool) *recursive {
	return &recursive{pool: pool}
}

func (r *recursive) reset(rect Rect, depth int) {
	r.release()
	r.root = &boxNode{id: rootID, rect: rect, points: r.pool.Get(), depth: depth}
	r.byID = append(r.byID, r.root)
}

func (r *recursive) release() {
	for _, n := range r.byID {
		r.pool.Put(n.points)
	}
	clear(r.byID)
	r.byID = r.byID[:0]
	r.root = nil
}

func (r *recursive) rect(id NodeID) Rect    { return r.byID[id].rect }
func (r *recursive) depth(id NodeID) int    { return r.byID[id].depth }
func (r *recursive) points(id NodeID) []int { return r.byID[id].points }
func (r *recursive) len() int               { return len(r.byID) }

func (r *recursive) appendPoint(id NodeID, p int) {
	n := r.byID[id]
	n.points = append(n.points, p)
}

func (r *recursive) child(id NodeID, q int) (NodeID, bool) {
	mustQuadrant(q)
	c := r.byID[id].children[q]
	if c == nil {
		return noNode, false
	}
	return c.id, true
}

func (r *recursive) materialize(id NodeID, q int) NodeID {
	mustQuadrant(q)
	p := r.byID[id]
	if c := p.children[q]; c != nil {
		return c.id
	}
	c := &boxNode{
		id:     NodeID(len(r.byID)),
		rect:   ChildRect(p.rect, q),
		points: r.pool.Get(),
		depth:  p.depth + 1,
	}
	p.children[q] = c
	r.byID = append(r.byID, c)
	return c.id
}

func (r *recursive) walk(fn func(id NodeID) bool) {
	if r.root != nil {
		walkBox(r.root, fn)
	}
}

func walkBox(n *boxNode, fn func(id NodeID) bool) bool {
	if !fn(n.id) {
		return false
	}
	for _, c := range n.children {
		if c != nil && !walkBox(c, fn) {
			return false
		}
	}
	return true
}

func (r *recursive) graft(id NodeID, q int, sub storage) {
	src := sub.(*recursive)
	if src.root == nil {
		return
	}
	mustQuadrant(q)
	p := r.byID[id]
	if p.children[q] != nil {
		panic("indexer: graft onto an occupied quadrant")
	}
	offset := NodeID(len(r.byID))
	for _, n := range src.byID {
		n.id += offset
	}
	p.children[q] = src.root
	r.byID = append(r.byID, src.byID...)
	clear(src.byID)
	src.byID = src.byID[:0]
	src.root = nil
}
