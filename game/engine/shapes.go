package engine

import "slices"

// Offset is a cell position relative to a shape's anchor.
type Offset struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Shape is an immutable polyomino: an ordered set of offsets plus a color.
// Connectivity is not validated; the catalog is authored data.
type Shape struct {
	ID      int      `json:"id"`
	Offsets []Offset `json:"offsets"`
	Color   Color    `json:"color"`
}

// Size returns the number of cells in the shape.
func (s Shape) Size() int {
	return len(s.Offsets)
}

// Bounds returns the width and height of the shape's bounding box.
func (s Shape) Bounds() (w, h int) {
	for _, o := range s.Offsets {
		w = max(w, o.DX+1)
		h = max(h, o.DY+1)
	}
	return w, h
}

// clone returns a copy whose offsets can't alias the catalog.
func (s Shape) clone() Shape {
	s.Offsets = slices.Clone(s.Offsets)
	return s
}

var catalog = []Shape{
	{ID: 0, Color: Blue, Offsets: []Offset{{0, 0}}},
	{ID: 1, Color: Green, Offsets: []Offset{{0, 0}, {1, 0}}},
	{ID: 2, Color: Green, Offsets: []Offset{{0, 0}, {0, 1}}},
	{ID: 3, Color: Red, Offsets: []Offset{{0, 0}, {1, 0}, {2, 0}}},
	{ID: 4, Color: Red, Offsets: []Offset{{0, 0}, {0, 1}, {0, 2}}},
	{ID: 5, Color: Yellow, Offsets: []Offset{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
	{ID: 6, Color: Orange, Offsets: []Offset{{0, 0}, {1, 0}, {2, 0}, {2, 1}}},
	{ID: 7, Color: Orange, Offsets: []Offset{{0, 0}, {1, 0}, {2, 0}, {0, 1}}},
	{ID: 8, Color: Purple, Offsets: []Offset{{0, 0}, {1, 0}, {1, 1}}},
	{ID: 9, Color: Cyan, Offsets: []Offset{{0, 0}, {1, 0}, {2, 0}, {1, 1}}},
}

// Catalog returns a copy of every shape that can appear in the tray.
func Catalog() []Shape {
	out := make([]Shape, len(catalog))
	for i, s := range catalog {
		out[i] = s.clone()
	}
	return out
}

// CatalogSize returns the number of shapes in the catalog.
func CatalogSize() int {
	return len(catalog)
}

// ShapeByID looks up a catalog shape.
func ShapeByID(id int) (Shape, bool) {
	if id < 0 || id >= len(catalog) {
		return Shape{}, false
	}
	return catalog[id].clone(), true
}
