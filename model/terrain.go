package model

// Grid is a row-major byte map over map cells; any non-zero value is "set".
// The bridge uses it for the static pathing/placement layer (sent once) and
// for creep (sent every step it changes).
type Grid struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   []byte `json:"data"`
}

// At returns whether cell (x, y) is set. Out-of-bounds cells are unset.
func (g *Grid) At(x, y int) bool {
	if g == nil || x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return false
	}
	i := y*g.Width + x
	if i >= len(g.Data) {
		return false
	}
	return g.Data[i] != 0
}

// AtPoint returns the cell containing p.
func (g *Grid) AtPoint(p Point) bool {
	return g.At(int(p.X), int(p.Y))
}

// PlacementGrid marks which cells accept structures at the start of the game.
type PlacementGrid struct {
	Grid
}

// FootprintClear reports whether every cell of a size x size square centered
// on p is buildable. Odd footprints center on a cell, even ones on a corner.
func (g *PlacementGrid) FootprintClear(p Point, size int) bool {
	if g == nil {
		return false
	}
	return footprintAll(p, size, func(x, y int) bool { return g.At(x, y) })
}

// FootprintOn reports whether the whole footprint lies on set cells of g.
// A nil grid means the layer is unknown and counts as set everywhere.
func (g *Grid) FootprintOn(p Point, size int) bool {
	if g == nil {
		return true
	}
	return footprintAll(p, size, g.At)
}

func footprintAll(p Point, size int, ok func(x, y int) bool) bool {
	half := float64(size) / 2
	x0 := int(p.X - half + 0.5)
	y0 := int(p.Y - half + 0.5)
	for y := y0; y < y0+size; y++ {
		for x := x0; x < x0+size; x++ {
			if !ok(x, y) {
				return false
			}
		}
	}
	return true
}
