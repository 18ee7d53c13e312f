// Package indexer provides an adaptive quadtree over a moving set of 2-D points.
//
// The tree never owns point data. A PointStore holds the positions and the
// tree keeps only dense indices into it, so the driver can move points freely
// between rebuilds.
//
// Quick start:
//
//	ps := indexer.NewPointStore(0)
//	ps.Add(indexer.Vec2{X: -5, Y: -5})
//	tree, err := indexer.NewTree(indexer.Vec2{X: -10, Y: -10}, indexer.Vec2{X: 10, Y: 10}, nil)
//	stats := tree.Rebuild(ps)
//	for n := range tree.Nodes() {
//		draw(n.Rect, n.PointCount)
//	}
package indexer
