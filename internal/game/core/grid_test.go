package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_Idx(t *testing.T) {
	g := NewGrid(5, 5)

	tests := []struct {
		x, y     int
		expected TileID
	}{
		{0, 0, 0},
		{4, 0, 4},
		{0, 1, 5},
		{2, 2, 12},
		{4, 4, 24},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, g.Idx(tt.x, tt.y))
		x, y := g.XY(tt.expected)
		assert.Equal(t, tt.x, x)
		assert.Equal(t, tt.y, y)
	}
}

func TestGrid_InBounds(t *testing.T) {
	g := NewGrid(3, 2)

	assert.True(t, g.InBounds(0, 0))
	assert.True(t, g.InBounds(2, 1))
	assert.False(t, g.InBounds(3, 0))
	assert.False(t, g.InBounds(0, 2))
	assert.False(t, g.InBounds(-1, 0))
}

func TestGrid_Neighbors(t *testing.T) {
	g := NewGrid(3, 3)

	t.Run("corner", func(t *testing.T) {
		assert.Equal(t, []TileID{3, 1}, g.Neighbors(0))
	})

	t.Run("center", func(t *testing.T) {
		assert.Equal(t, []TileID{1, 7, 3, 5}, g.Neighbors(4))
	})

	t.Run("edge", func(t *testing.T) {
		assert.Equal(t, []TileID{4, 6, 8}, g.Neighbors(7))
	})
}

func TestGrid_Distance(t *testing.T) {
	g := NewGrid(10, 10)
	assert.Equal(t, 0, g.Distance(1, 1, 1, 1))
	assert.Equal(t, 7, g.Distance(0, 0, 3, 4))
	assert.Equal(t, 7, g.Distance(3, 4, 0, 0))
}

func TestGrid_MapState(t *testing.T) {
	g := NewGrid(4, 3)
	m := g.MapState()

	require.Len(t, m.Owners, 12)
	for id, owner := range m.Owners {
		assert.Equal(t, Unclaimed, owner, "tile %d should start unclaimed", id)
		assert.Equal(t, Plains, m.TerrainOf(id))
	}
	assert.Equal(t, g.Neighbors(5), m.Neighbors(5))
	require.NoError(t, m.Validate())
}
