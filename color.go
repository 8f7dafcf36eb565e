package hamui

import "fmt"

// Color is an SGR foreground color code.
type Color uint8

const (
	Black Color = iota + 30
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

const (
	BrightBlack Color = iota + 90
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// BackgroundColor is an SGR background color code.
type BackgroundColor uint8

const (
	BgBlack BackgroundColor = iota + 40
	BgRed
	BgGreen
	BgYellow
	BgBlue
	BgMagenta
	BgCyan
	BgWhite
)

const (
	BgBrightBlack BackgroundColor = iota + 100
	BgBrightRed
	BgBrightGreen
	BgBrightYellow
	BgBrightBlue
	BgBrightMagenta
	BgBrightCyan
	BgBrightWhite
)

// TextLeaf is a small piece of text, optionally wrapped in color escape
// sequences, ready to be written into a buffer or canvas.
//
// The escape sequences are injected as literal characters and each byte
// occupies one grid cell, so a colored leaf's encoded length exceeds its
// printed width. Writers sharing a row with a colored leaf must account
// for that.
type TextLeaf struct {
	Text string
}

// NewTextLeaf wraps text in foreground/background color codes.
func NewTextLeaf(text string, fg Color, bg BackgroundColor) TextLeaf {
	return TextLeaf{Text: fmt.Sprintf("\x1b[%d;%dm%s\x1b[0m", fg, bg, text)}
}

// PlainLeaf creates an uncolored leaf.
func PlainLeaf(text string) TextLeaf {
	return TextLeaf{Text: text}
}

func (l TextLeaf) String() string {
	return l.Text
}
