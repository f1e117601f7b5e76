package engine

// Grid is a fixed-size square occupancy matrix. Cells are addressed as
// cells[y][x]; callers must keep coordinates inside [0, Size()).
type Grid struct {
	size  int
	cells [][]Cell
}

// NewGrid creates an empty n x n grid
func NewGrid(n int) *Grid {
	cells := make([][]Cell, n)
	for y := range cells {
		cells[y] = make([]Cell, n)
	}
	return &Grid{size: n, cells: cells}
}

// Size returns the grid dimension.
func (g *Grid) Size() int {
	return g.size
}

// InBounds reports whether (x,y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// IsOccupied reports whether the cell at (x,y) holds a block.
func (g *Grid) IsOccupied(x, y int) bool {
	return g.cells[y][x].Occupied
}

// ColorAt returns the color stored at (x,y), or "" when the cell is empty.
func (g *Grid) ColorAt(x, y int) Color {
	return g.cells[y][x].Color
}

// Occupy fills the cell. The caller must have validated that it was empty.
func (g *Grid) Occupy(x, y int, color Color) {
	g.cells[y][x] = Cell{Occupied: true, Color: color}
}

// ClearCell empties the cell and drops its color.
func (g *Grid) ClearCell(x, y int) {
	g.cells[y][x] = Cell{}
}

// FullRows returns the indices of rows where every column is occupied.
func (g *Grid) FullRows() []int {
	var rows []int
	for y := 0; y < g.size; y++ {
		full := true
		for x := 0; x < g.size; x++ {
			if !g.cells[y][x].Occupied {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, y)
		}
	}
	return rows
}

// FullCols returns the indices of columns where every row is occupied.
func (g *Grid) FullCols() []int {
	var cols []int
	for x := 0; x < g.size; x++ {
		full := true
		for y := 0; y < g.size; y++ {
			if !g.cells[y][x].Occupied {
				full = false
				break
			}
		}
		if full {
			cols = append(cols, x)
		}
	}
	return cols
}

// ClearRowsAndCols empties every cell in the listed rows and columns.
// Intersections are simply cleared twice.
func (g *Grid) ClearRowsAndCols(rows, cols []int) {
	for _, y := range rows {
		for x := 0; x < g.size; x++ {
			g.ClearCell(x, y)
		}
	}
	for _, x := range cols {
		for y := 0; y < g.size; y++ {
			g.ClearCell(x, y)
		}
	}
}

// Reset empties the whole grid.
func (g *Grid) Reset() {
	for y := range g.cells {
		clear(g.cells[y])
	}
}

// OccupiedCount counts filled cells.
func (g *Grid) OccupiedCount() int {
	count := 0
	for _, row := range g.cells {
		for _, cell := range row {
			if cell.Occupied {
				count++
			}
		}
	}
	return count
}

// Snapshot returns a deep copy of the cells, row-major.
func (g *Grid) Snapshot() [][]Cell {
	out := make([][]Cell, g.size)
	for y, row := range g.cells {
		out[y] = make([]Cell, len(row))
		copy(out[y], row)
	}
	return out
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{size: g.size, cells: g.Snapshot()}
}
