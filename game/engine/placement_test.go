package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shape(t *testing.T, id int) Shape {
	t.Helper()
	s, ok := ShapeByID(id)
	require.True(t, ok, "shape %d", id)
	return s
}

func TestFit_Reasons(t *testing.T) {
	g := mustLayout(t,
		"B.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	line3 := shape(t, 3)

	assert.NoError(t, Fit(g, line3, 1, 0))
	assert.NoError(t, Fit(g, line3, 5, 7))

	err := Fit(g, line3, 6, 0)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	err = Fit(g, line3, 0, 0)
	assert.True(t, errors.Is(err, ErrCellOccupied))

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	require.NotNil(t, rejected.At)
	assert.Equal(t, Position{X: 0, Y: 0}, *rejected.At)

	assert.True(t, errors.Is(Fit(g, line3, -1, 3), ErrOutOfBounds))
	assert.True(t, errors.Is(Fit(g, line3, 2, 8), ErrOutOfBounds))
}

// CanPlace is false exactly when some target cell is off the board or taken.
func TestCanPlace_MatchesCellwiseDefinition(t *testing.T) {
	grids := map[string]*Grid{
		"empty":     NewGrid(8),
		"staggered": mustLayout(t, staggeredLayout...),
	}

	for name, g := range grids {
		t.Run(name, func(t *testing.T) {
			before := g.Snapshot()
			for _, s := range Catalog() {
				for y := -3; y < 11; y++ {
					for x := -3; x < 11; x++ {
						want := true
						for _, o := range s.Offsets {
							gx, gy := x+o.DX, y+o.DY
							if gx < 0 || gx >= 8 || gy < 0 || gy >= 8 || g.IsOccupied(gx, gy) {
								want = false
								break
							}
						}
						assert.Equal(t, want, CanPlace(g, s, x, y), "shape %d at (%d,%d)", s.ID, x, y)
					}
				}
			}
			assert.Equal(t, before, g.Snapshot(), "CanPlace must not mutate the grid")
		})
	}
}

func TestHasAnyValidPlacement(t *testing.T) {
	g := mustLayout(t, staggeredLayout...)

	assert.True(t, HasAnyValidPlacement(g, shape(t, 0)))
	for id := 1; id < CatalogSize(); id++ {
		assert.False(t, HasAnyValidPlacement(g, shape(t, id)), "shape %d", id)
	}
	assert.True(t, HasAnyValidPlacement(NewGrid(8), shape(t, 9)))
}

func TestValidPlacements(t *testing.T) {
	g := NewGrid(8)

	// A 3x2 shape has 6x7 anchors on an empty 8x8 board.
	assert.Len(t, ValidPlacements(g, shape(t, 6)), 6*7)
	assert.Len(t, ValidPlacements(g, shape(t, 0)), 64)
	assert.Len(t, ValidPlacements(mustLayout(t, staggeredLayout...), shape(t, 0)), 16)
}

func fullExceptLastCell(t *testing.T) *Grid {
	t.Helper()
	layout := make([]string, 8)
	for i := range layout {
		layout[i] = "BBBBBBBB"
	}
	layout[7] = "BBBBBBB."
	return mustLayout(t, layout...)
}

func TestBoardIsDeadlocked(t *testing.T) {
	g := fullExceptLastCell(t)

	t.Run("two-cell shape cannot fit", func(t *testing.T) {
		tray := NewTray(3)
		require.NoError(t, tray.Refill(NewSequenceSelector(1, 0, 0)))
		require.NoError(t, tray.Consume(1))
		require.NoError(t, tray.Consume(2))

		assert.True(t, BoardIsDeadlocked(g, tray))
	})

	t.Run("one-cell shape fits the last hole", func(t *testing.T) {
		tray := NewTray(3)
		require.NoError(t, tray.Refill(NewSequenceSelector(0, 1, 1)))
		require.NoError(t, tray.Consume(1))
		require.NoError(t, tray.Consume(2))

		assert.False(t, BoardIsDeadlocked(g, tray))
	})

	t.Run("any fitting shape is enough", func(t *testing.T) {
		tray := NewTray(3)
		require.NoError(t, tray.Refill(NewSequenceSelector(5, 9, 0)))

		assert.False(t, BoardIsDeadlocked(g, tray))
	})

	t.Run("empty tray is never deadlocked", func(t *testing.T) {
		assert.False(t, BoardIsDeadlocked(g, NewTray(3)))
	})
}

func TestLinesCompletedBy(t *testing.T) {
	g := mustLayout(t,
		"BBBBB...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	before := g.Snapshot()

	rows, cols := LinesCompletedBy(g, shape(t, 3), 5, 0)
	assert.Equal(t, []int{0}, rows)
	assert.Empty(t, cols)
	assert.Equal(t, before, g.Snapshot())
}
