package indexer

import "fmt"

// NodeID addresses a node within a tree. The root is always 0. IDs are
// reassigned on every rebuild.
type NodeID int

const (
	rootID NodeID = 0
	noNode NodeID = -1
)

// storage is the node substrate. Both implementations give identical trees;
// they differ only in how child nodes are owned and addressed.
type storage interface {
	// reset discards every node and leaves a single empty root covering r at
	// the given depth. Point buffers go back to the pool.
	reset(r Rect, depth int)
	// release returns every point buffer to the pool and leaves no nodes.
	release()
	rect(id NodeID) Rect
	depth(id NodeID) int
	points(id NodeID) []int
	appendPoint(id NodeID, p int)
	// child returns the materialized child of id at quadrant q.
	child(id NodeID, q int) (NodeID, bool)
	// materialize creates an empty child of id at quadrant q and returns it.
	materialize(id NodeID, q int) NodeID
	len() int
	// walk visits every live node in pre-order until fn returns false.
	walk(fn func(id NodeID) bool)
	// graft moves the whole of sub under id at quadrant q. sub must be of the
	// same kind, rooted at ChildRect(rect(id), q), and is left empty.
	graft(id NodeID, q int, sub storage)
}

func newStorage(kind StorageKind, pool *Pool) storage {
	switch kind {
	case StorageArena, "":
		return newArena(pool)
	case StorageRecursive:
		return newRecursive(pool)
	default:
		panic(fmt.Sprintf("indexer: unknown storage kind %q", kind))
	}
}
