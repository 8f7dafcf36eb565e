package hamui

// Grid is a fixed-size 2D array of cells. The invariant len(g) == height
// and len(row) == width for every row holds between exported calls; resize
// re-establishes it before returning.
type Grid []Row

// newGrid creates a grid of empty cells with the given dimensions.
func newGrid(size Vec2) Grid {
	g := make(Grid, size.Y)
	for y := range g {
		g[y] = fillRow(size.X)
	}
	return g
}

// resize pads or truncates the grid to the new dimensions, padding with
// empty cells. Columns are resized before rows so that freshly appended
// rows are already the correct width. Shrinking loses data; a redraw
// follows every resize so that is acceptable.
func (g Grid) resize(size Vec2) Grid {
	for y, row := range g {
		switch {
		case len(row) > size.X:
			g[y] = row[:size.X]
		case len(row) < size.X:
			grown := make(Row, size.X)
			copy(grown, row)
			empty := EmptyCell()
			for x := len(row); x < size.X; x++ {
				grown[x] = empty
			}
			g[y] = grown
		}
	}

	switch {
	case len(g) > size.Y:
		g = g[:size.Y]
	case len(g) < size.Y:
		for y := len(g); y < size.Y; y++ {
			g = append(g, fillRow(size.X))
		}
	}
	return g
}

// clear resets every cell to empty without changing dimensions.
func (g Grid) clear() {
	empty := EmptyCell()
	for _, row := range g {
		for x := range row {
			row[x] = empty
		}
	}
}
