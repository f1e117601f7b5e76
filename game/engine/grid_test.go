package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	g := NewGrid(8)

	assert.Equal(t, 8, g.Size())
	assert.Equal(t, 0, g.OccupiedCount())
	assert.Empty(t, g.FullRows())
	assert.Empty(t, g.FullCols())
}

func TestGrid_OccupyAndClear(t *testing.T) {
	g := NewGrid(8)

	g.Occupy(2, 5, Red)
	assert.True(t, g.IsOccupied(2, 5))
	assert.False(t, g.IsOccupied(5, 2), "x and y must not be swapped")
	assert.Equal(t, Red, g.ColorAt(2, 5))

	g.ClearCell(2, 5)
	assert.False(t, g.IsOccupied(2, 5))
	assert.Equal(t, Color(""), g.ColorAt(2, 5), "cleared cell must drop its color")
}

func TestGrid_InBounds(t *testing.T) {
	g := NewGrid(8)

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{7, 7, true},
		{-1, 0, false},
		{0, -1, false},
		{8, 0, false},
		{0, 8, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.InBounds(tt.x, tt.y), "(%d,%d)", tt.x, tt.y)
	}
}

func TestGrid_FullRowsAndCols(t *testing.T) {
	g := mustLayout(t,
		"BBBBBBBB",
		"...B....",
		"...B....",
		"...B....",
		"...B....",
		"...B....",
		"...B....",
		"GGGBGGG.",
	)

	assert.Equal(t, []int{0}, g.FullRows())
	assert.Equal(t, []int{3}, g.FullCols())
}

func TestGrid_ClearRowsAndCols(t *testing.T) {
	g := mustLayout(t,
		"...B....",
		"...B....",
		"BBBBBBBB",
		"...B....",
		"...B....",
		"...B..R.",
		"...B....",
		"...B....",
	)

	g.ClearRowsAndCols(g.FullRows(), g.FullCols())

	assert.Equal(t, 1, g.OccupiedCount(), "only the stray cell should survive")
	assert.True(t, g.IsOccupied(6, 5))
	assert.Empty(t, g.FullRows())
	assert.Empty(t, g.FullCols())
}

func TestGrid_SnapshotIsCopy(t *testing.T) {
	g := NewGrid(8)
	snap := g.Snapshot()
	snap[0][0] = Cell{Occupied: true, Color: Blue}

	assert.False(t, g.IsOccupied(0, 0))
}

func TestGrid_Reset(t *testing.T) {
	g := mustLayout(t, staggeredLayout...)
	require.NotZero(t, g.OccupiedCount())

	g.Reset()
	assert.Equal(t, 0, g.OccupiedCount())
}

func TestGridFromLayout_RoundTrip(t *testing.T) {
	layout := []string{
		"B.......",
		".G......",
		"..R.....",
		"...Y....",
		"....P...",
		".....O..",
		"......C.",
		"........",
	}
	g := mustLayout(t, layout...)

	assert.Equal(t, layout, g.Layout())
	assert.Equal(t, Purple, g.ColorAt(4, 4))
}

func TestGridFromLayout_Invalid(t *testing.T) {
	_, err := GridFromLayout(nil)
	assert.Error(t, err)

	_, err = GridFromLayout([]string{"..", "."})
	assert.Error(t, err)
}

func TestGridFromSnapshot(t *testing.T) {
	src := mustLayout(t, "G...", ".R..", "....", "...C")

	g, err := GridFromSnapshot(src.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, src.Layout(), g.Layout())

	g.Occupy(2, 2, Blue)
	assert.False(t, src.IsOccupied(2, 2), "rebuilt grid does not alias the snapshot source")

	_, err = GridFromSnapshot(nil)
	assert.Error(t, err)
	_, err = GridFromSnapshot([][]Cell{make([]Cell, 2)})
	assert.Error(t, err)
}
