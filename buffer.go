package hamui

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrOutOfBounds is returned when a row or column index falls outside the
// current grid dimensions. It is never fatal; callers treat it as a no-op
// or skip the write.
var ErrOutOfBounds = errors.New("position out of bounds")

// Buffer owns the pending and committed grids plus the output sink, and
// runs the commit/diff pass that converges the terminal with the desired
// content.
//
// The sink is owned exclusively by the Buffer. Anything else that needs to
// touch the terminal byte stream (cursor moves, raw control sequences)
// goes through the Buffer's interface so writes never interleave.
type Buffer struct {
	out   io.Writer
	queue bytes.Buffer // pending terminal output, flushed at commit

	size Vec2
	// pending holds what should go on screen next; committed mirrors what
	// is on screen now. Both always match size outside of Resize.
	pending   Grid
	committed Grid
}

// NewBuffer creates a double buffer of the given size writing to out.
func NewBuffer(out io.Writer, size Vec2) *Buffer {
	return &Buffer{
		out:       out,
		size:      size,
		pending:   newGrid(size),
		committed: newGrid(size),
	}
}

// Size returns the current buffer dimensions.
func (b *Buffer) Size() Vec2 {
	return b.size
}

// Write places a cell at pos. Non-empty cells go to the pending grid and
// reach the screen on the next Commit. Empty cells write to the committed
// grid directly: erasing must take effect immediately rather than waiting
// for a diff pass, because the diff never erases (deferred empties caused
// visible artifacts during text deletion).
func (b *Buffer) Write(pos Vec2, cell Cell) error {
	grid := b.pending
	if cell.Empty {
		grid = b.committed
	}
	if pos.Y < 0 || pos.Y >= len(grid) {
		return ErrOutOfBounds
	}
	row := grid[pos.Y]
	if pos.X < 0 || pos.X >= len(row) {
		return ErrOutOfBounds
	}
	row[pos.X] = cell
	return nil
}

// WriteText writes text one cell per character at consecutive x offsets
// starting at pos. Fails on the first character that fails.
func (b *Buffer) WriteText(pos Vec2, text string) error {
	i := 0
	for _, r := range text {
		if err := b.Write(Vec2{X: pos.X + i, Y: pos.Y}, NewCell(r)); err != nil {
			return err
		}
		i++
	}
	return nil
}

// FillRange overwrites columns [xStart, xEnd) of pending row rowY with
// cell. Returns ErrOutOfBounds if the row or range is invalid.
func (b *Buffer) FillRange(rowY, xStart, xEnd int, cell Cell) error {
	if rowY < 0 || rowY >= len(b.pending) {
		return ErrOutOfBounds
	}
	row := b.pending[rowY]
	if xStart < 0 || xEnd > len(row) || xStart > xEnd {
		return ErrOutOfBounds
	}
	for x := xStart; x < xEnd; x++ {
		row[x] = cell
	}
	return nil
}

// Read returns the committed-grid cell at pos, i.e. what is on screen now.
// Used to de-duplicate incoming changes before they are applied.
func (b *Buffer) Read(pos Vec2) (Cell, error) {
	if pos.Y < 0 || pos.Y >= len(b.committed) {
		return Cell{}, ErrOutOfBounds
	}
	row := b.committed[pos.Y]
	if pos.X < 0 || pos.X >= len(row) {
		return Cell{}, ErrOutOfBounds
	}
	return row[pos.X], nil
}

// Resize resizes both grids together and updates the buffer size. Content
// within the surviving region is preserved.
func (b *Buffer) Resize(size Vec2) {
	b.pending = b.pending.resize(size)
	b.committed = b.committed.resize(size)
	b.size = size
}

// Absorb replays a change log into the buffer. Each entry is compared to
// the committed cell at its position first: identical writes are dropped
// silently, which avoids redundant diff work and keeps no-op writes from
// perturbing the next diff. Entries that fall outside the current grid
// (stale after a shrink) are skipped.
func (b *Buffer) Absorb(log ChangeLog) error {
	for _, ch := range log {
		current, err := b.Read(ch.Pos)
		if err != nil {
			continue
		}
		if current == ch.Cell {
			continue
		}
		if err := b.Write(ch.Pos, ch.Cell); err != nil {
			return err
		}
	}
	return nil
}

// Commit diffs the pending grid against the committed grid, emits the
// terminal writes needed to converge them, flushes the sink, and resets
// pending to all-empty.
//
// Write granularity is whole-row: any changed cell causes one write of the
// full committed row, positioned at column 0 via a single cursor move.
// That trades some redundant bytes for far simpler cursor management;
// repeated per-cell cursor jumps interfered with mouse event delivery on
// some terminals.
func (b *Buffer) Commit() error {
	emptyRow := fillRow(b.size.X)

	for y, row := range b.pending {
		// An all-empty pending row means no queued changes for this row,
		// since pending is reset to all-empty after every commit.
		if row.equal(emptyRow) {
			continue
		}

		// Committed can briefly be short after a shrink-then-grow race.
		// Skip rather than fail; a redraw is imminent.
		if y >= len(b.committed) {
			continue
		}
		committed := b.committed[y]

		for x, cell := range row {
			if x >= len(committed) {
				continue
			}
			if committed[x].Rune == cell.Rune {
				continue
			}
			// Only an explicit empty write may erase a cell; the diff
			// pass never implicitly erases.
			if cell.Empty && !committed[x].Empty {
				continue
			}
			committed[x] = cell
		}

		b.MoveTo(Vec2{X: 0, Y: y})
		for _, cell := range committed {
			b.queue.WriteRune(cell.Rune)
		}
	}

	if err := b.Flush(); err != nil {
		return err
	}

	b.pending.clear()
	return nil
}

// MoveTo queues a cursor move to pos (zero-based).
func (b *Buffer) MoveTo(pos Vec2) {
	fmt.Fprintf(&b.queue, "\x1b[%d;%dH", pos.Y+1, pos.X+1)
}

// ClearScreen queues a whole-screen clear and resets both grids to empty
// so the next commit repaints from scratch.
func (b *Buffer) ClearScreen() {
	b.queue.WriteString(escClearScreen)
	b.pending.clear()
	b.committed.clear()
}

// WriteRaw queues raw bytes for the terminal. The bytes bypass the grids
// entirely; callers are responsible for keeping the committed grid in sync
// with what they print.
func (b *Buffer) WriteRaw(p []byte) {
	b.queue.Write(p)
}

// WriteRawString queues a raw control string for the terminal.
func (b *Buffer) WriteRawString(s string) {
	b.queue.WriteString(s)
}

// Flush writes all queued output to the sink. A failed flush is an I/O
// failure; the top-level loop treats it as fatal.
func (b *Buffer) Flush() error {
	if b.queue.Len() == 0 {
		return nil
	}
	if _, err := b.out.Write(b.queue.Bytes()); err != nil {
		return fmt.Errorf("terminal write failed: %w", err)
	}
	b.queue.Reset()
	return nil
}
