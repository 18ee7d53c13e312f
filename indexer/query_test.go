package indexer

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bruteSearch(tree *Tree, ps *PointStore, area Rect) []int {
	var out []int
	for i := 0; i < ps.Len(); i++ {
		p := ps.At(i)
		if tree.Bounds().Contains(p) && area.Contains(p) {
			out = append(out, i)
		}
	}
	return out
}

func TestSearchMatchesBruteForce(t *testing.T) {
	for _, kind := range storageKinds {
		t.Run(string(kind), func(t *testing.T) {
			tree := newTestTree(t, 100, &Config{Storage: kind, SplitThreshold: 4})
			ps := clusteredStore(3000, 100, 17)
			for i, p := range randomStore(1000, 120, 18).Positions() {
				if i%2 == 0 {
					ps.Add(p)
				}
			}
			tree.Rebuild(ps)

			rng := rand.New(rand.NewSource(19))
			areas := []Rect{
				tree.Bounds(),
				{Min: Vec2{X: -1000, Y: -1000}, Max: Vec2{X: 1000, Y: 1000}},
				{Min: Vec2{X: 0, Y: 0}, Max: Vec2{X: 0, Y: 0}},
				ChildRect(tree.Bounds(), NE),
			}
			for i := 0; i < 200; i++ {
				x, y := rng.Float64()*240-120, rng.Float64()*240-120
				areas = append(areas, Rect{
					Min: Vec2{X: x, Y: y},
					Max: Vec2{X: x + rng.Float64()*60, Y: y + rng.Float64()*60},
				})
			}
			for _, a := range areas {
				got := tree.Search(a)
				slices.Sort(got)
				require.Equal(t, bruteSearch(tree, ps, a), got, "area %v", a)
			}
		})
	}
}

func TestNodeViewAndWalk(t *testing.T) {
	tree := newTestTree(t, 10, nil)
	ps := storeOf(Vec2{X: -5, Y: -5}, Vec2{X: -5, Y: -4}, Vec2{X: 5, Y: 5})
	s := tree.Rebuild(ps)

	root := tree.Node(tree.Root())
	assert.Equal(t, 0, root.Depth)
	assert.Equal(t, 3, root.PointCount)
	assert.Equal(t, tree.Bounds(), root.Rect)
	assert.False(t, root.Leaf())

	var visited []NodeView
	tree.Walk(func(n NodeView) bool {
		visited = append(visited, n)
		return true
	})
	require.Len(t, visited, s.Nodes)
	assert.Equal(t, tree.Root(), visited[0].ID)
	// pre-order: every node appears after its parent
	seen := map[NodeID]bool{}
	for _, n := range visited {
		seen[n.ID] = true
		for q := 0; q < 4; q++ {
			if c, ok := tree.Child(n.ID, q); ok {
				assert.False(t, seen[c], "child %d visited before parent %d", c, n.ID)
			}
		}
	}

	count := 0
	tree.Walk(func(NodeView) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestNodesIteratorRestartable(t *testing.T) {
	tree := newTestTree(t, 100, nil)
	tree.Rebuild(clusteredStore(500, 100, 2))
	seq := tree.Nodes()

	var a, b int
	for range seq {
		a++
	}
	for range seq {
		b++
	}
	assert.Equal(t, tree.Stats().Nodes, a)
	assert.Equal(t, a, b)

	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestPointsIterator(t *testing.T) {
	tree := newTestTree(t, 10, nil)
	ps := storeOf(Vec2{X: 1, Y: 1}, Vec2{X: 50, Y: 50}, Vec2{X: -2, Y: 3})
	tree.Rebuild(ps)

	got := map[int]Vec2{}
	for i, p := range tree.Points() {
		got[i] = p
	}
	assert.Equal(t, map[int]Vec2{0: {X: 1, Y: 1}, 2: {X: -2, Y: 3}}, got)
}

func BenchmarkSearch(b *testing.B) {
	ps := randomStore(100_000, 500, 42)
	tree := newTestTree(b, 500, nil)
	tree.Rebuild(ps)
	area := Rect{Min: Vec2{X: -50, Y: -50}, Max: Vec2{X: 50, Y: 50}}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Search(area)
	}
}
