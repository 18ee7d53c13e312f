package indexer

import "fmt"

// Vec2 is a 2-D coordinate.
type Vec2 struct {
	X float64
	Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Rect is an axis-aligned rectangle, half-open on both axes: [Min, Max).
type Rect struct {
	Min Vec2
	Max Vec2
}

// Mid returns the geometric midpoint.
func (r Rect) Mid() Vec2 {
	return Vec2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Width returns Max.X - Min.X.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns Max.Y - Min.Y.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies in [Min, Max) on both axes.
// A point on a shared edge belongs only to the rectangle whose Min it touches.
func (r Rect) Contains(p Vec2) bool {
	return r.Min.X <= p.X && p.X < r.Max.X && r.Min.Y <= p.Y && p.Y < r.Max.Y
}

// Covers reports whether o lies entirely within r.
func (r Rect) Covers(o Rect) bool {
	return r.Min.X <= o.Min.X && o.Max.X <= r.Max.X && r.Min.Y <= o.Min.Y && o.Max.Y <= r.Max.Y
}

// Intersects reports whether r and o share any area.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X && r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return !(r.Min.X < r.Max.X && r.Min.Y < r.Max.Y)
}

func (r Rect) String() string {
	return fmt.Sprintf("[(%g,%g),(%g,%g))", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// Quadrant is the side of a node's midpoint a point falls on, per axis.
type Quadrant struct {
	XBit bool // east of the midpoint
	YBit bool // north of the midpoint
}

// Quadrant indices as produced by QuadrantIndex.
const (
	SW = 0 // x low,  y low
	SE = 1 // x high, y low
	NW = 2 // x low,  y high
	NE = 3 // x high, y high
)

// QuadrantOf classifies p relative to the midpoint of r.
// A coordinate on the midpoint line goes to the upper side so that the result
// always agrees with ChildRect(...).Contains(p). Classifying ties with a strict
// "> 0" instead would send them to the lower side, whose half-open child
// rectangle does not contain them.
func QuadrantOf(r Rect, p Vec2) Quadrant {
	d := p.Sub(r.Mid())
	return Quadrant{XBit: d.X >= 0, YBit: d.Y >= 0}
}

// QuadrantIndex bit-packs q into 0..3: x in bit 0, y in bit 1.
func QuadrantIndex(q Quadrant) int {
	idx := 0
	if q.XBit {
		idx |= 1
	}
	if q.YBit {
		idx |= 2
	}
	return idx
}

// IndexQuadrant is the inverse of QuadrantIndex. It panics on idx outside 0..3.
func IndexQuadrant(idx int) Quadrant {
	mustQuadrant(idx)
	return Quadrant{XBit: idx&1 != 0, YBit: idx&2 != 0}
}

// ChildRect returns the quarter of r at quadrant index idx.
// The four quarters tile r exactly and share edges at the midpoint.
// It panics on idx outside 0..3.
func ChildRect(r Rect, idx int) Rect {
	mustQuadrant(idx)
	mid := r.Mid()
	c := Rect{Min: r.Min, Max: mid}
	if idx&1 != 0 {
		c.Min.X, c.Max.X = mid.X, r.Max.X
	}
	if idx&2 != 0 {
		c.Min.Y, c.Max.Y = mid.Y, r.Max.Y
	}
	return c
}

func mustQuadrant(idx int) {
	if idx < 0 || idx > 3 {
		panic(fmt.Sprintf("indexer: quadrant index %d out of range 0..3", idx))
	}
}

// splittable reports whether r can be halved into children no smaller than
// minSize on either axis and whose midpoint is distinct from both corners in
// floating point.
func splittable(r Rect, minSize float64) bool {
	mid := r.Mid()
	if !(r.Min.X < mid.X && mid.X < r.Max.X && r.Min.Y < mid.Y && mid.Y < r.Max.Y) {
		return false
	}
	return r.Width()/2 >= minSize && r.Height()/2 >= minSize
}
