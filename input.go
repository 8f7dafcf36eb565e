package hamui

import "unicode/utf8"

// Event is a decoded terminal input event. Handlers dispatch on the
// concrete type: KeyEvent, MouseEvent or ResizeEvent.
type Event interface {
	isEvent()
}

// Key identifies a non-printable key, or KeyRune for printable input.
type Key uint8

const (
	KeyRune Key = iota
	KeyEsc
	KeyEnter
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyCtrlC
)

// KeyEvent is a single key press. Rune is set only for KeyRune.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// MouseKind classifies a mouse event.
type MouseKind uint8

const (
	MouseLeftUp MouseKind = iota
	MouseMotion
	MouseOther
)

// MouseEvent is a decoded SGR mouse report. Pos is zero-based.
type MouseEvent struct {
	Pos  Vec2
	Kind MouseKind
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Size Vec2
}

func (KeyEvent) isEvent()    {}
func (MouseEvent) isEvent()  {}
func (ResizeEvent) isEvent() {}

// parseInput decodes as many events as possible from a chunk of raw
// terminal input. Escape sequences are assumed to arrive whole within a
// chunk (true in practice for terminal-generated input); a trailing bare
// ESC is reported as the Esc key.
func parseInput(buf []byte) []Event {
	var events []Event

	for len(buf) > 0 {
		switch buf[0] {
		case 0x03: // Ctrl+C
			events = append(events, KeyEvent{Key: KeyCtrlC})
			buf = buf[1:]
		case '\r', '\n':
			events = append(events, KeyEvent{Key: KeyEnter})
			buf = buf[1:]
		case 0x7f, 0x08:
			events = append(events, KeyEvent{Key: KeyBackspace})
			buf = buf[1:]
		case 0x1b:
			ev, n := parseEscape(buf)
			if ev != nil {
				events = append(events, ev)
			}
			buf = buf[n:]
		default:
			r, n := utf8.DecodeRune(buf)
			if r == utf8.RuneError && n <= 1 {
				buf = buf[1:]
				continue
			}
			if r >= ' ' {
				events = append(events, KeyEvent{Key: KeyRune, Rune: r})
			}
			buf = buf[n:]
		}
	}

	return events
}

// parseEscape decodes one escape sequence starting at buf[0] == ESC.
// Returns the event (nil if the sequence is unrecognized) and the number
// of bytes consumed.
func parseEscape(buf []byte) (Event, int) {
	if len(buf) == 1 || buf[1] != '[' {
		return KeyEvent{Key: KeyEsc}, 1
	}

	// CSI sequence: ESC [ params final, where the final byte is 0x40-0x7e.
	i := 2
	for i < len(buf) && (buf[i] < 0x40 || buf[i] > 0x7e) {
		i++
	}
	if i >= len(buf) {
		// Incomplete sequence; treat the ESC as a key and resync.
		return KeyEvent{Key: KeyEsc}, 1
	}
	final := buf[i]
	params := buf[2:i]
	consumed := i + 1

	switch final {
	case 'A':
		return KeyEvent{Key: KeyUp}, consumed
	case 'B':
		return KeyEvent{Key: KeyDown}, consumed
	case 'C':
		return KeyEvent{Key: KeyRight}, consumed
	case 'D':
		return KeyEvent{Key: KeyLeft}, consumed
	case 'M', 'm':
		if len(params) > 0 && params[0] == '<' {
			if ev, ok := parseSGRMouse(params[1:], final); ok {
				return ev, consumed
			}
		}
		return nil, consumed
	default:
		return nil, consumed
	}
}

// parseSGRMouse decodes the parameter body of an SGR mouse report,
// "\x1b[<b;x;yM" (press/motion) or "\x1b[<b;x;ym" (release). Coordinates
// on the wire are one-based.
func parseSGRMouse(params []byte, final byte) (MouseEvent, bool) {
	var nums [3]int
	idx := 0
	for _, c := range params {
		switch {
		case c >= '0' && c <= '9':
			nums[idx] = nums[idx]*10 + int(c-'0')
		case c == ';':
			idx++
			if idx > 2 {
				return MouseEvent{}, false
			}
		default:
			return MouseEvent{}, false
		}
	}
	if idx != 2 {
		return MouseEvent{}, false
	}

	cb, x, y := nums[0], nums[1], nums[2]
	ev := MouseEvent{Pos: Vec2{X: x - 1, Y: y - 1}, Kind: MouseOther}
	switch {
	case cb&32 != 0:
		ev.Kind = MouseMotion
	case final == 'm' && cb&3 == 0:
		ev.Kind = MouseLeftUp
	}
	return ev, true
}
