// Package gen generates reproducible point sets and motion for the bench driver.
package gen

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/ic-timon/adaptive-quadtree/indexer"
)

// RandomPoints returns n points uniform in [-extent, extent) on both axes.
func RandomPoints(n int, extent float64, seed int64) []indexer.Vec2 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]indexer.Vec2, n)
	for i := range out {
		out[i] = indexer.Vec2{
			X: (rng.Float64()*2 - 1) * extent,
			Y: (rng.Float64()*2 - 1) * extent,
		}
	}
	return out
}

// Velocities returns n per-tick displacements with components in [-speed, speed).
func Velocities(n int, speed float64, seed int64) []indexer.Vec2 {
	rng := rand.New(rand.NewSource(seed ^ 0x5eed))
	out := make([]indexer.Vec2, n)
	for i := range out {
		out[i] = indexer.Vec2{
			X: (rng.Float64()*2 - 1) * speed,
			Y: (rng.Float64()*2 - 1) * speed,
		}
	}
	return out
}

// Clustered returns n points drawn around a few centres, which drives the
// tree much deeper than a uniform set.
func Clustered(n, clusters int, extent, spread float64, seed int64) []indexer.Vec2 {
	if clusters < 1 {
		clusters = 1
	}
	rng := rand.New(rand.NewSource(seed))
	centres := make([]indexer.Vec2, clusters)
	for i := range centres {
		centres[i] = indexer.Vec2{
			X: (rng.Float64()*2 - 1) * extent * 0.8,
			Y: (rng.Float64()*2 - 1) * extent * 0.8,
		}
	}
	out := make([]indexer.Vec2, n)
	for i := range out {
		c := centres[rng.Intn(clusters)]
		out[i] = indexer.Vec2{
			X: c.X + rng.NormFloat64()*spread,
			Y: c.Y + rng.NormFloat64()*spread,
		}
	}
	return out
}

// Store loads pts into a new PointStore with identifiers derived from seed,
// so two runs with the same seed produce the same identifiers.
func Store(pts []indexer.Vec2, seed int64) *indexer.PointStore {
	rng := rand.New(rand.NewSource(seed))
	ps := indexer.NewPointStore(len(pts))
	for _, p := range pts {
		var raw [16]byte
		rng.Read(raw[:])
		id, _ := uuid.FromBytes(raw[:])
		ps.AddWithID(p, id)
	}
	return ps
}
