package hamui

// Change is a single recorded cell write.
type Change struct {
	Pos  Vec2
	Cell Cell
}

// ChangeLog is an ordered, append-only sequence of cell writes produced by
// an isolated rendering pass. A producer "overwrites" a position by
// appending a newer entry for the same coordinates, so replay order
// matters: later entries win.
type ChangeLog []Change

// MergeLogs concatenates change logs in the order given. Callers pass logs
// in z-order: a later pass's write for the same coordinate supersedes an
// earlier one when the merged log is replayed.
func MergeLogs(logs ...ChangeLog) ChangeLog {
	var merged ChangeLog
	for _, log := range logs {
		merged = append(merged, log...)
	}
	return merged
}

// Canvas records writes into a change log instead of a live buffer. Each
// rendering pass gets its own canvas, so independently implemented widgets
// can render into a shared coordinate space without knowing about each
// other; the caller merges their logs and feeds them to Buffer.Absorb.
type Canvas struct {
	size    Vec2
	changes ChangeLog
}

// NewCanvas creates a canvas bounds-checked against the given size,
// normally the buffer's current size.
func NewCanvas(size Vec2) *Canvas {
	return &Canvas{size: size}
}

// Size returns the drawable area of the canvas.
func (c *Canvas) Size() Vec2 {
	return c.size
}

// Write records a single cell write. Returns ErrOutOfBounds if pos is
// outside the canvas.
func (c *Canvas) Write(pos Vec2, cell Cell) error {
	if pos.Y < 0 || pos.Y >= c.size.Y || pos.X < 0 || pos.X >= c.size.X {
		return ErrOutOfBounds
	}
	c.changes = append(c.changes, Change{Pos: pos, Cell: cell})
	return nil
}

// WriteText records one write per character at consecutive x offsets.
// Fails on the first character that falls out of bounds.
func (c *Canvas) WriteText(pos Vec2, text string) error {
	i := 0
	for _, r := range text {
		if err := c.Write(Vec2{X: pos.X + i, Y: pos.Y}, NewCell(r)); err != nil {
			return err
		}
		i++
	}
	return nil
}

// Changes returns the recorded change log.
func (c *Canvas) Changes() ChangeLog {
	return c.changes
}

// SetChanges replaces the recorded change log. Used when composing the
// logs of child renders back into a parent canvas.
func (c *Canvas) SetChanges(log ChangeLog) {
	c.changes = log
}
