package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadrantIndexRoundTrip(t *testing.T) {
	for idx := 0; idx < 4; idx++ {
		assert.Equal(t, idx, QuadrantIndex(IndexQuadrant(idx)))
	}
	assert.Equal(t, SW, QuadrantIndex(Quadrant{}))
	assert.Equal(t, SE, QuadrantIndex(Quadrant{XBit: true}))
	assert.Equal(t, NW, QuadrantIndex(Quadrant{YBit: true}))
	assert.Equal(t, NE, QuadrantIndex(Quadrant{XBit: true, YBit: true}))
}

func TestQuadrantOutOfRangePanics(t *testing.T) {
	r := Rect{Max: Vec2{X: 1, Y: 1}}
	for _, idx := range []int{-1, 4, 100} {
		assert.Panics(t, func() { ChildRect(r, idx) }, "ChildRect(%d)", idx)
		assert.Panics(t, func() { IndexQuadrant(idx) }, "IndexQuadrant(%d)", idx)
	}
}

func TestChildRectTilesParent(t *testing.T) {
	r := Rect{Min: Vec2{X: -10, Y: -4}, Max: Vec2{X: 6, Y: 12}}
	var area float64
	for q := 0; q < 4; q++ {
		c := ChildRect(r, q)
		require.True(t, r.Covers(c))
		area += c.Width() * c.Height()
		for o := q + 1; o < 4; o++ {
			assert.False(t, c.Intersects(ChildRect(r, o)), "children %d and %d overlap", q, o)
		}
	}
	assert.Equal(t, r.Width()*r.Height(), area)

	assert.Equal(t, Rect{Min: Vec2{X: -10, Y: -4}, Max: Vec2{X: -2, Y: 4}}, ChildRect(r, SW))
	assert.Equal(t, Rect{Min: Vec2{X: -2, Y: 4}, Max: Vec2{X: 6, Y: 12}}, ChildRect(r, NE))
}

func TestQuadrantOfAgreesWithChildRect(t *testing.T) {
	r := Rect{Min: Vec2{X: -10, Y: -10}, Max: Vec2{X: 10, Y: 10}}
	pts := []Vec2{
		{X: -5, Y: -5}, {X: 5, Y: -5}, {X: -5, Y: 5}, {X: 5, Y: 5},
		{X: 0, Y: 0}, {X: 0, Y: -3}, {X: -3, Y: 0}, {X: -10, Y: -10},
		{X: 9.999, Y: 9.999},
	}
	for _, p := range pts {
		q := QuadrantIndex(QuadrantOf(r, p))
		assert.True(t, ChildRect(r, q).Contains(p), "%v classified into %d", p, q)
		for o := 0; o < 4; o++ {
			if o != q {
				assert.False(t, ChildRect(r, o).Contains(p), "%v also in %d", p, o)
			}
		}
	}
	// the midpoint goes to the upper side on both axes
	assert.Equal(t, NE, QuadrantIndex(QuadrantOf(r, Vec2{})))
}

func TestRectContainsHalfOpen(t *testing.T) {
	r := Rect{Min: Vec2{X: 0, Y: 0}, Max: Vec2{X: 1, Y: 1}}
	assert.True(t, r.Contains(Vec2{X: 0, Y: 0}))
	assert.False(t, r.Contains(Vec2{X: 1, Y: 0.5}))
	assert.False(t, r.Contains(Vec2{X: 0.5, Y: 1}))
	assert.False(t, r.Contains(Vec2{X: -0.1, Y: 0.5}))
	assert.True(t, Rect{Min: Vec2{X: 1, Y: 1}, Max: Vec2{X: 1, Y: 2}}.Empty())
}

func TestSplittable(t *testing.T) {
	r := Rect{Max: Vec2{X: 8, Y: 8}}
	assert.True(t, splittable(r, 0))
	assert.True(t, splittable(r, 4))
	assert.False(t, splittable(r, 4.5))

	// adjacent floats have no distinct midpoint
	tiny := Rect{Min: Vec2{X: 1, Y: 1}, Max: Vec2{X: 1 + 2.220446049250313e-16, Y: 2}}
	assert.False(t, splittable(tiny, 0))
}
