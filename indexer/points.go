package indexer

import (
	"slices"

	"github.com/google/uuid"
)

// PointStore owns the authoritative positions of all tracked points.
// Points are addressed by a dense index that stays stable for the store's
// lifetime; each point also carries an opaque identifier.
//
// A PointStore is not safe for concurrent mutation. The driver mutates it
// between rebuilds and the tree only reads it during Rebuild.
type PointStore struct {
	pos []Vec2
	ids []uuid.UUID
}

// NewPointStore creates an empty store with room for capacity points.
func NewPointStore(capacity int) *PointStore {
	if capacity < 0 {
		capacity = 0
	}
	return &PointStore{
		pos: make([]Vec2, 0, capacity),
		ids: make([]uuid.UUID, 0, capacity),
	}
}

// Add appends a point with a fresh random identifier and returns its index.
func (s *PointStore) Add(p Vec2) int {
	return s.AddWithID(p, uuid.New())
}

// AddWithID appends a point with the given identifier and returns its index.
func (s *PointStore) AddWithID(p Vec2, id uuid.UUID) int {
	s.pos = append(s.pos, p)
	s.ids = append(s.ids, id)
	return len(s.pos) - 1
}

// Len returns the number of points.
func (s *PointStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pos)
}

// At returns the position of point i.
func (s *PointStore) At(i int) Vec2 { return s.pos[i] }

// ID returns the identifier of point i.
func (s *PointStore) ID(i int) uuid.UUID { return s.ids[i] }

// Set moves point i to p.
func (s *PointStore) Set(i int, p Vec2) { s.pos[i] = p }

// Move translates every point by its velocity. Velocities beyond Len are ignored;
// missing velocities leave the point in place.
func (s *PointStore) Move(vel []Vec2) {
	n := min(len(vel), len(s.pos))
	for i := 0; i < n; i++ {
		s.pos[i].X += vel[i].X
		s.pos[i].Y += vel[i].Y
	}
}

// Bounce reflects every point that left bounds back inside by negating the
// offending coordinate, and flips the matching velocity component.
// vel may be nil.
func (s *PointStore) Bounce(bounds Rect, vel []Vec2) {
	for i := range s.pos {
		p := &s.pos[i]
		if p.X >= bounds.Max.X || p.X < bounds.Min.X {
			p.X = reflect(p.X, bounds.Min.X, bounds.Max.X)
			if i < len(vel) {
				vel[i].X = -vel[i].X
			}
		}
		if p.Y >= bounds.Max.Y || p.Y < bounds.Min.Y {
			p.Y = reflect(p.Y, bounds.Min.Y, bounds.Max.Y)
			if i < len(vel) {
				vel[i].Y = -vel[i].Y
			}
		}
	}
}

func reflect(v, lo, hi float64) float64 {
	if v < lo {
		v = lo + (lo - v)
	} else if v >= hi {
		v = hi - (v - hi)
	}
	// a single reflection can overshoot when the step exceeds the extent
	if v < lo || v >= hi {
		v = (lo + hi) / 2
	}
	return v
}

// Snapshot returns a copy of all positions.
func (s *PointStore) Snapshot() []Vec2 {
	return slices.Clone(s.pos)
}

// Positions returns the backing slice without copying. Callers must not
// retain it across mutations.
func (s *PointStore) Positions() []Vec2 {
	if s == nil {
		return nil
	}
	return s.pos
}
