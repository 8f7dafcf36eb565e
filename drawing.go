package hamui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RectBoundary is the area a rendering helper covered: position and size.
// Purely a value; hit-testing consumes it.
type RectBoundary struct {
	Pos  Vec2
	Size Vec2
}

// Component renders into its canvas and reports the boundary it covered
// plus the change log to absorb into a buffer.
type Component interface {
	Render(window Vec2, rect RectBoundary) (RectBoundary, ChangeLog, error)
}

// Center returns the top-left position that centers a box of the given
// size within the window.
func Center(window, size Vec2) Vec2 {
	return Vec2{X: window.X/2 - size.X/2, Y: window.Y/2 - size.Y/2}
}

// Clicked reports whether the state's last click (the anchor in pointer
// mode) falls inside rect. The x range is [pos.x, pos.x+size.x) and the y
// range [pos.y, pos.y+size.y).
func Clicked(st *State, rect RectBoundary) bool {
	x, y := st.Anchor.X, st.Anchor.Y
	if x < rect.Pos.X || x >= rect.Pos.X+rect.Size.X {
		return false
	}
	if y < rect.Pos.Y || y >= rect.Pos.Y+rect.Size.Y {
		return false
	}
	return true
}

// OnClick runs the transition function if the last click landed inside
// rect, replacing the state with its result. Otherwise the state is
// returned unchanged.
func OnClick(st State, rect RectBoundary, run func(State) State) State {
	if Clicked(&st, rect) {
		return run(st)
	}
	return st
}

// DownwardsLine draws a vertical line of the given height starting at
// start, using ch for the body and endCh for the final cell (corners).
func DownwardsLine(c *Canvas, height int, start Vec2, ch, endCh string) (RectBoundary, error) {
	for i := 0; i < height; i++ {
		pos := Vec2{X: start.X, Y: start.Y + i}
		if i == height-1 {
			if err := c.WriteText(pos, endCh); err != nil {
				return RectBoundary{}, err
			}
			break
		}
		if err := c.WriteText(pos, ch); err != nil {
			return RectBoundary{}, err
		}
	}
	return RectBoundary{Pos: start, Size: Vec2{X: 1, Y: height}}, nil
}

// QuickBox draws a rounded box.
type QuickBox struct {
	Canvas *Canvas
}

// NewQuickBox creates a box rendering into the given canvas.
func NewQuickBox(c *Canvas) *QuickBox {
	return &QuickBox{Canvas: c}
}

// Render draws the box outline. The height is clamped so the bottom line
// stays on the window: the box occupies rows pos.Y through pos.Y+size.Y.
func (b *QuickBox) Render(window Vec2, rect RectBoundary) (RectBoundary, ChangeLog, error) {
	pos := rect.Pos
	size := rect.Size

	if pos.Y+size.Y >= window.Y {
		size.Y = window.Y - pos.Y - 1
	}

	top := "╭" + strings.Repeat("─", size.X-2) + "╮"
	bottom := strings.Repeat("─", size.X-2)

	if err := b.Canvas.WriteText(pos, top); err != nil {
		return RectBoundary{}, nil, err
	}

	if _, err := DownwardsLine(b.Canvas, size.Y, Vec2{X: pos.X, Y: pos.Y + 1}, "│", "╰"); err != nil {
		return RectBoundary{}, nil, err
	}
	if _, err := DownwardsLine(b.Canvas, size.Y, Vec2{X: pos.X + size.X - 1, Y: pos.Y + 1}, "│", "╯"); err != nil {
		return RectBoundary{}, nil, err
	}

	if err := b.Canvas.WriteText(Vec2{X: pos.X + 1, Y: pos.Y + size.Y}, bottom); err != nil {
		return RectBoundary{}, nil, err
	}

	return RectBoundary{Pos: pos, Size: size}, b.Canvas.Changes(), nil
}

// Text renders text leaves.
type Text struct {
	Canvas *Canvas
}

// NewText creates a text renderer drawing into the given canvas.
func NewText(c *Canvas) *Text {
	return &Text{Canvas: c}
}

// Render draws a leaf at pos.
func (t *Text) Render(leaf TextLeaf, pos Vec2) (RectBoundary, ChangeLog, error) {
	if err := t.Canvas.WriteText(pos, leaf.Text); err != nil {
		return RectBoundary{}, nil, err
	}
	size := Vec2{X: runewidth.StringWidth(leaf.Text), Y: 1}
	return RectBoundary{Pos: pos, Size: size}, t.Canvas.Changes(), nil
}

// RenderCenter draws a leaf horizontally centered within parentWidth,
// offset by pos.
func (t *Text) RenderCenter(leaf TextLeaf, pos Vec2, parentWidth int) (RectBoundary, ChangeLog, error) {
	width := runewidth.StringWidth(leaf.Text)
	center := Center(Vec2{X: parentWidth, Y: 1}, Vec2{X: width, Y: 1})

	at := Vec2{X: center.X + pos.X, Y: pos.Y}
	if err := t.Canvas.WriteText(at, leaf.Text); err != nil {
		return RectBoundary{}, nil, err
	}
	return RectBoundary{Pos: pos, Size: Vec2{X: width, Y: 1}}, t.Canvas.Changes(), nil
}

// RenderButton draws a leaf styled as a clickable button.
func (t *Text) RenderButton(leaf TextLeaf, pos Vec2) (RectBoundary, ChangeLog, error) {
	if err := t.Canvas.WriteText(pos, "\x1b[107;30m➚ "+leaf.Text+"\x1b[0m"); err != nil {
		return RectBoundary{}, nil, err
	}
	size := Vec2{X: runewidth.StringWidth(leaf.Text), Y: 1}
	return RectBoundary{Pos: pos, Size: size}, t.Canvas.Changes(), nil
}

// StatusLine draws a full-width inverted line.
type StatusLine struct {
	Canvas *Canvas
}

// NewStatusLine creates a status line rendering into the given canvas.
func NewStatusLine(c *Canvas) *StatusLine {
	return &StatusLine{Canvas: c}
}

// Render draws the line: white background, black text.
func (s *StatusLine) Render(window Vec2, rect RectBoundary) (RectBoundary, ChangeLog, error) {
	if err := s.Canvas.WriteText(rect.Pos, "\x1b[107;30m"); err != nil {
		return RectBoundary{}, nil, err
	}
	if err := s.Canvas.WriteText(rect.Pos, strings.Repeat(" ", rect.Size.X)); err != nil {
		return RectBoundary{}, nil, err
	}
	if err := s.Canvas.WriteText(Vec2{X: rect.Pos.X + rect.Size.X, Y: rect.Pos.Y}, "\x1b[0m"); err != nil {
		return RectBoundary{}, nil, err
	}
	return RectBoundary{Pos: rect.Pos, Size: Vec2{X: window.X, Y: 1}}, s.Canvas.Changes(), nil
}

// RowItem is one entry of a QuickRow: a leaf plus its offset relative to
// the previous item.
type RowItem struct {
	Leaf   TextLeaf
	Offset Vec2
}

// QuickRow lays out text leaves left to right.
type QuickRow struct {
	Canvas *Canvas
}

// NewQuickRow creates a row rendering into the given canvas.
func NewQuickRow(c *Canvas) *QuickRow {
	return &QuickRow{Canvas: c}
}

// Render draws the items starting at rect.Pos, each offset from the end of
// the previous one, and merges their change logs in render order.
func (r *QuickRow) Render(rect RectBoundary, items []RowItem) (RectBoundary, ChangeLog, error) {
	var prev *RectBoundary
	merged := r.Canvas.Changes()

	for _, item := range items {
		pos := item.Offset
		if prev != nil {
			pos.X += prev.Pos.X + prev.Size.X
		}

		text := NewText(NewCanvas(r.Canvas.Size()))
		res, changes, err := text.Render(item.Leaf, pos)
		if err != nil {
			return RectBoundary{}, nil, err
		}
		merged = MergeLogs(merged, changes)
		prev = &res
	}

	r.Canvas.SetChanges(merged)
	return rect, merged, nil
}
