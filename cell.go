package hamui

// Vec2 is an (x, y) pair used for both positions and sizes.
type Vec2 struct {
	X, Y int
}

// Cell is the smallest renderable unit: one character of screen content.
//
// Empty is authoritative for the diff pass. It is kept in sync with Rune by
// the constructors, but a direct struct literal can set them inconsistently,
// so nothing downstream re-derives Empty from Rune.
type Cell struct {
	Rune  rune
	Empty bool
}

// EmptyCell returns the blank cell used for padding and erasing.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Empty: true}
}

// NewCell creates a cell from a rune. A space is an empty cell.
func NewCell(r rune) Cell {
	return Cell{Rune: r, Empty: r == ' '}
}

// Row is a single line of cells.
type Row []Cell

// fillRow creates a row of width empty cells.
func fillRow(width int) Row {
	row := make(Row, width)
	empty := EmptyCell()
	for i := range row {
		row[i] = empty
	}
	return row
}

// equal reports whether two rows have the same cells.
func (r Row) equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}
	return true
}
