package engine

// Fit checks whether shape can be dropped with its origin at (x,y). It
// returns ErrOutOfBounds or ErrCellOccupied for the first offending cell.
func Fit(grid *Grid, shape Shape, x, y int) error {
	for _, o := range shape.Offsets {
		gx, gy := x+o.DX, y+o.DY
		if !grid.InBounds(gx, gy) {
			return reject(ErrOutOfBounds, gx, gy)
		}
		if grid.IsOccupied(gx, gy) {
			return reject(ErrCellOccupied, gx, gy)
		}
	}
	return nil
}

// CanPlace reports whether shape fits at anchor (x,y). It never mutates the grid.
func CanPlace(grid *Grid, shape Shape, x, y int) bool {
	return Fit(grid, shape, x, y) == nil
}

// HasAnyValidPlacement scans every anchor and stops at the first legal one.
func HasAnyValidPlacement(grid *Grid, shape Shape) bool {
	n := grid.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if CanPlace(grid, shape, x, y) {
				return true
			}
		}
	}
	return false
}

// ValidPlacements lists every legal anchor for shape, row by row.
func ValidPlacements(grid *Grid, shape Shape) []Position {
	var out []Position
	n := grid.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if CanPlace(grid, shape, x, y) {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}

// BoardIsDeadlocked is true when no shape left in the tray fits anywhere.
// Empty slots are ignored, and an empty tray is never deadlocked since a
// refill is due first.
func BoardIsDeadlocked(grid *Grid, tray *Tray) bool {
	if !tray.AnyOccupied() {
		return false
	}
	for _, shape := range tray.Shapes() {
		if HasAnyValidPlacement(grid, shape) {
			return false
		}
	}
	return true
}

// LinesCompletedBy reports the rows and columns that placing shape at (x,y)
// would complete. The grid is not modified; the caller must have checked Fit.
func LinesCompletedBy(grid *Grid, shape Shape, x, y int) (rows, cols []int) {
	probe := grid.Clone()
	for _, o := range shape.Offsets {
		probe.Occupy(x+o.DX, y+o.DY, shape.Color)
	}
	return probe.FullRows(), probe.FullCols()
}
