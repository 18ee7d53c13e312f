package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomPointsDeterministic(t *testing.T) {
	a := RandomPoints(500, 10, 7)
	b := RandomPoints(500, 10, 7)
	require.Equal(t, a, b)
	for _, p := range a {
		assert.True(t, p.X >= -10 && p.X < 10, "x out of range: %v", p)
		assert.True(t, p.Y >= -10 && p.Y < 10, "y out of range: %v", p)
	}
}

func TestStoreIdentifiersStable(t *testing.T) {
	pts := RandomPoints(10, 1, 3)
	a := Store(pts, 99)
	b := Store(pts, 99)
	require.Equal(t, a.Len(), b.Len())
	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.ID(i), b.ID(i))
		assert.Equal(t, a.At(i), b.At(i))
	}
}
