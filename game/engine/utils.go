package engine

import (
	"fmt"
	"strings"
)

// Layout characters: '.' is an empty cell, any other character is occupied.
// Letters map to colors by their initial; unknown letters become Blue.
var layoutColors = map[byte]Color{
	'B': Blue,
	'G': Green,
	'R': Red,
	'Y': Yellow,
	'P': Purple,
	'O': Orange,
	'C': Cyan,
}

// GridFromLayout builds a grid from one string per row.
func GridFromLayout(layout []string) (*Grid, error) {
	n := len(layout)
	if n == 0 {
		return nil, fmt.Errorf("layout is empty")
	}
	g := NewGrid(n)
	for y, row := range layout {
		if len(row) != n {
			return nil, fmt.Errorf("layout row %d must have %d characters, got %d", y+1, n, len(row))
		}
		for x := 0; x < n; x++ {
			ch := row[x]
			if ch == '.' {
				continue
			}
			color, ok := layoutColors[ch]
			if !ok {
				color = Blue
			}
			g.Occupy(x, y, color)
		}
	}
	return g, nil
}

// GridFromSnapshot rebuilds a grid from GameState.Grid, e.g. for planning
// moves against a snapshot.
func GridFromSnapshot(cells [][]Cell) (*Grid, error) {
	n := len(cells)
	if n == 0 {
		return nil, fmt.Errorf("snapshot is empty")
	}
	g := NewGrid(n)
	for y, row := range cells {
		if len(row) != n {
			return nil, fmt.Errorf("snapshot row %d must have %d cells, got %d", y+1, n, len(row))
		}
		copy(g.cells[y], row)
	}
	return g, nil
}

// Layout renders the grid in GridFromLayout's format.
func (g *Grid) Layout() []string {
	rows := make([]string, g.size)
	var b strings.Builder
	for y := 0; y < g.size; y++ {
		b.Reset()
		for x := 0; x < g.size; x++ {
			cell := g.cells[y][x]
			if !cell.Occupied {
				b.WriteByte('.')
				continue
			}
			b.WriteByte(colorInitial(cell.Color))
		}
		rows[y] = b.String()
	}
	return rows
}

func (g *Grid) String() string {
	return strings.Join(g.Layout(), "\n")
}

func colorInitial(c Color) byte {
	if c == "" {
		return '#'
	}
	return strings.ToUpper(string(c))[0]
}

// CountFitting counts the catalog shapes that have at least one legal anchor.
func CountFitting(grid *Grid) int {
	count := 0
	for _, s := range catalog {
		if HasAnyValidPlacement(grid, s) {
			count++
		}
	}
	return count
}
