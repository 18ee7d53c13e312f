package indexer

// arenaNode is one slot of the arena. Reserved but unmaterialized slots keep
// their rectangle and a nil point list.
type arenaNode struct {
	rect     Rect
	points   []int
	children NodeID // base of four consecutive child slots, noNode if none reserved
	existing uint8  // bit q set once slot children+q is materialized
	depth    int
}

// arena stores all nodes in one growable slice. Children of a node are
// reserved four at a time so that quadrant q lives at children+q.
type arena struct {
	nodes []arenaNode
	pool  *Pool
}

func newArena(pool *Pool) *arena {
	return &arena{pool: pool}
}

func (a *arena) reset(r Rect, depth int) {
	a.putBuffers()
	a.nodes = append(a.nodes[:0], arenaNode{
		rect:     r,
		points:   a.pool.Get(),
		children: noNode,
		depth:    depth,
	})
}

func (a *arena) release() {
	a.putBuffers()
	a.nodes = a.nodes[:0]
}

func (a *arena) putBuffers() {
	for i := range a.nodes {
		a.pool.Put(a.nodes[i].points)
		a.nodes[i].points = nil
	}
}

func (a *arena) rect(id NodeID) Rect    { return a.nodes[id].rect }
func (a *arena) depth(id NodeID) int    { return a.nodes[id].depth }
func (a *arena) points(id NodeID) []int { return a.nodes[id].points }
func (a *arena) len() int {
	n := 0
	a.walk(func(NodeID) bool { n++; return true })
	return n
}

func (a *arena) appendPoint(id NodeID, p int) {
	a.nodes[id].points = append(a.nodes[id].points, p)
}

func (a *arena) child(id NodeID, q int) (NodeID, bool) {
	mustQuadrant(q)
	n := &a.nodes[id]
	if n.existing&(1<<q) == 0 {
		return noNode, false
	}
	return n.children + NodeID(q), true
}

// reserve appends the four child slots of id in one step and returns their base.
func (a *arena) reserve(id NodeID) NodeID {
	if base := a.nodes[id].children; base != noNode {
		return base
	}
	parent := a.nodes[id]
	base := NodeID(len(a.nodes))
	for q := 0; q < 4; q++ {
		a.nodes = append(a.nodes, arenaNode{
			rect:     ChildRect(parent.rect, q),
			children: noNode,
			depth:    parent.depth + 1,
		})
	}
	a.nodes[id].children = base
	return base
}

func (a *arena) materialize(id NodeID, q int) NodeID {
	mustQuadrant(q)
	if c, ok := a.child(id, q); ok {
		return c
	}
	c := a.reserve(id) + NodeID(q)
	a.nodes[c].points = a.pool.Get()
	a.nodes[id].existing |= 1 << q
	return c
}

func (a *arena) walk(fn func(id NodeID) bool) {
	if len(a.nodes) == 0 {
		return
	}
	a.walkFrom(rootID, fn)
}

func (a *arena) walkFrom(id NodeID, fn func(id NodeID) bool) bool {
	if !fn(id) {
		return false
	}
	n := a.nodes[id]
	for q := 0; q < 4; q++ {
		if n.existing&(1<<q) != 0 {
			if !a.walkFrom(n.children+NodeID(q), fn) {
				return false
			}
		}
	}
	return true
}

func (a *arena) graft(id NodeID, q int, sub storage) {
	src := sub.(*arena)
	if len(src.nodes) == 0 {
		return
	}
	if _, ok := a.child(id, q); ok {
		panic("indexer: graft onto an occupied quadrant")
	}
	c := a.materialize(id, q)
	a.pool.Put(a.nodes[c].points)
	a.nodes[c].points = src.nodes[rootID].points
	a.copyChildren(c, src, rootID)
	src.nodes = src.nodes[:0]
}

// copyChildren re-bases the children of src node s under dst node d.
// Point buffers change owner; nothing is copied element-wise.
func (a *arena) copyChildren(d NodeID, src *arena, s NodeID) {
	sn := src.nodes[s]
	if sn.children == noNode {
		return
	}
	base := NodeID(len(a.nodes))
	for q := 0; q < 4; q++ {
		cn := src.nodes[sn.children+NodeID(q)]
		a.nodes = append(a.nodes, arenaNode{
			rect:     cn.rect,
			points:   cn.points,
			children: noNode,
			depth:    cn.depth,
		})
	}
	a.nodes[d].children = base
	a.nodes[d].existing = sn.existing
	for q := 0; q < 4; q++ {
		if sn.existing&(1<<q) != 0 {
			a.copyChildren(base+NodeID(q), src, sn.children+NodeID(q))
		}
	}
}
