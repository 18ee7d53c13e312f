package indexer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointStoreBasics(t *testing.T) {
	ps := NewPointStore(-1)
	assert.Equal(t, 0, ps.Len())

	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	i := ps.AddWithID(Vec2{X: 1, Y: 2}, id)
	j := ps.Add(Vec2{X: 3, Y: 4})
	assert.Equal(t, 0, i)
	assert.Equal(t, 1, j)
	assert.Equal(t, id, ps.ID(i))
	assert.NotEqual(t, uuid.Nil, ps.ID(j))
	assert.NotEqual(t, ps.ID(i), ps.ID(j))

	snap := ps.Snapshot()
	ps.Set(0, Vec2{X: 9, Y: 9})
	assert.Equal(t, Vec2{X: 1, Y: 2}, snap[0])
	assert.Equal(t, Vec2{X: 9, Y: 9}, ps.At(0))

	var nilStore *PointStore
	assert.Equal(t, 0, nilStore.Len())
	assert.Nil(t, nilStore.Positions())
}

func TestPointStoreMove(t *testing.T) {
	ps := storeOf(Vec2{X: 0, Y: 0}, Vec2{X: 1, Y: 1}, Vec2{X: 2, Y: 2})
	ps.Move([]Vec2{{X: 1, Y: -1}, {X: 0.5, Y: 0.5}})
	assert.Equal(t, []Vec2{{X: 1, Y: -1}, {X: 1.5, Y: 1.5}, {X: 2, Y: 2}}, ps.Snapshot())
}

func TestPointStoreBounce(t *testing.T) {
	bounds := Rect{Min: Vec2{X: 0, Y: 0}, Max: Vec2{X: 10, Y: 10}}
	ps := storeOf(
		Vec2{X: 11, Y: 5},  // past max x
		Vec2{X: 5, Y: -1},  // below min y
		Vec2{X: 10, Y: 10}, // exactly on the exclusive edge
		Vec2{X: 25, Y: 5},  // overshoots the whole extent
		Vec2{X: 3, Y: 3},   // inside
	)
	vel := []Vec2{{X: 2, Y: 0}, {X: 0, Y: -2}, {X: 1, Y: 1}, {X: 20, Y: 0}, {X: 1, Y: 1}}
	ps.Bounce(bounds, vel)

	assert.Equal(t, Vec2{X: 9, Y: 5}, ps.At(0))
	assert.Equal(t, Vec2{X: -2, Y: 0}, vel[0])
	assert.Equal(t, Vec2{X: 5, Y: 1}, ps.At(1))
	assert.Equal(t, Vec2{X: 0, Y: 2}, vel[1])
	assert.Equal(t, Vec2{X: 5, Y: 5}, ps.At(2))
	assert.Equal(t, Vec2{X: -1, Y: -1}, vel[2])
	assert.Equal(t, Vec2{X: 5, Y: 5}, ps.At(3))
	assert.Equal(t, Vec2{X: 3, Y: 3}, ps.At(4))
	assert.Equal(t, Vec2{X: 1, Y: 1}, vel[4])

	for i := 0; i < ps.Len(); i++ {
		require.True(t, bounds.Contains(ps.At(i)), "point %d at %v", i, ps.At(i))
	}

	// nil velocities only reflect positions
	ps.Set(0, Vec2{X: -3, Y: 4})
	ps.Bounce(bounds, nil)
	assert.Equal(t, Vec2{X: 3, Y: 4}, ps.At(0))
}
