package hamui

import (
	"bytes"
	"errors"
	"os"
)

// sidePanelReserve keeps the cursor out of the fixed side panel: 50 cells
// of content plus its border column.
const sidePanelReserve = 51

// errQuit signals a clean shutdown request from inside the event loop.
var errQuit = errors.New("quit requested")

// DrawFunc renders one frame. It runs every tick with the current state
// and the buffer to draw into; component-based callers render through
// canvases and feed the merged change log to buf.Absorb.
type DrawFunc func(st *State, buf *Buffer) error

// Frame ties the terminal, the double buffer, the input state and a draw
// callback into a per-tick event loop.
type Frame struct {
	term  *Terminal
	buf   *Buffer
	state State
	draw  DrawFunc
	cfg   Config
}

// NewFrame creates a frame drawing to stdout, sized to the current
// terminal.
func NewFrame(cfg Config, draw DrawFunc) (*Frame, error) {
	term := NewTerminal()
	size, err := term.Size()
	if err != nil {
		return nil, err
	}
	return &Frame{
		term:  term,
		buf:   NewBuffer(os.Stdout, size),
		state: NewState(size),
		draw:  draw,
		cfg:   cfg,
	}, nil
}

// State returns the frame's input state.
func (f *Frame) State() *State {
	return &f.state
}

// Buffer returns the frame's double buffer.
func (f *Frame) Buffer() *Buffer {
	return f.buf
}

// Open prepares the terminal: raw mode, alternate screen, mouse capture.
func (f *Frame) Open() error {
	if err := f.term.EnableRaw(); err != nil {
		return err
	}
	if f.cfg.AltScreen {
		f.buf.WriteRawString(escEnterAltScreen)
	}
	f.buf.WriteRawString(escClearScreen)
	f.buf.WriteRawString(escCursorHome)
	if f.cfg.MouseCapture {
		f.buf.WriteRawString(escMouseEnable)
	}
	if err := f.buf.Flush(); err != nil {
		return err
	}
	f.term.Start()
	log.WithField("size", f.buf.Size()).Info("session opened")
	return nil
}

// Close tears the terminal back down: mouse capture off, alternate screen
// left, cooked mode restored.
func (f *Frame) Close() error {
	f.term.Stop()
	if f.cfg.MouseCapture {
		f.buf.WriteRawString(escMouseDisable)
	}
	if f.cfg.AltScreen {
		f.buf.WriteRawString(escLeaveAltScreen)
	}
	flushErr := f.buf.Flush()
	if err := f.term.DisableRaw(); err != nil {
		return err
	}
	log.Info("session closed")
	return flushErr
}

// Run drives the loop until the quit combo or a fatal I/O error. Each tick
// consumes at most one pending event, then always performs a draw/commit
// pass. The poll never blocks longer than the configured timeout.
func (f *Frame) Run() error {
	for {
		if ev, ok := f.term.Poll(f.cfg.pollTimeout()); ok {
			if err := f.handleEvent(ev); err != nil {
				if errors.Is(err, errQuit) {
					return f.Close()
				}
				log.WithError(err).Error("event handling failed")
				f.Close()
				return err
			}
		}
		if err := f.Step(); err != nil {
			log.WithError(err).Error("render failed")
			f.Close()
			return err
		}
	}
}

// Step performs one draw/commit pass and syncs the real cursor to the
// state's cursor position.
func (f *Frame) Step() error {
	if f.draw != nil {
		if err := f.draw(&f.state, f.buf); err != nil {
			return err
		}
	}
	if err := f.buf.Commit(); err != nil {
		return err
	}
	f.buf.MoveTo(f.state.Cursor)
	return f.buf.Flush()
}

// handleEvent applies one input event to the state machine.
func (f *Frame) handleEvent(ev Event) error {
	switch ev := ev.(type) {
	case ResizeEvent:
		return f.handleResize(ev.Size)
	case KeyEvent:
		return f.handleKey(ev)
	case MouseEvent:
		return f.handleMouse(ev)
	default:
		return nil
	}
}

func (f *Frame) handleResize(size Vec2) error {
	log.WithField("size", size).Debug("resize")
	f.buf.Resize(size)
	f.state.WindowSize = size
	// Both grids and the screen are cleared so the next commit repaints
	// from scratch.
	f.buf.ClearScreen()
	return f.Step()
}

func (f *Frame) handleKey(ev KeyEvent) error {
	st := &f.state

	switch ev.Key {
	case KeyCtrlC:
		return errQuit

	case KeyRune:
		if st.Mode != ModeKeyboard {
			return nil
		}
		return f.insertRune(ev.Rune)

	case KeyEsc:
		if st.Mode == ModePointer {
			st.Mode = ModeKeyboard
			// The anchor becomes the edit origin.
			st.Anchor.X = st.Cursor.X
		} else {
			st.Mode = ModePointer
			st.EditText = ""
		}
		log.WithField("mode", st.Mode).Debug("mode toggled")
		return nil

	case KeyEnter:
		return f.submit()

	case KeyLeft:
		if st.Cursor.X > st.MinX {
			st.Cursor.X--
		}
		return nil

	case KeyRight:
		if st.Cursor.X < st.WindowSize.X-sidePanelReserve {
			st.Cursor.X++
		}
		return nil

	case KeyBackspace:
		return f.backspace()

	default:
		return nil
	}
}

// insertRune inserts a printable character into the edit text at the
// cursor's offset from the anchor and rewrites the edited span.
func (f *Frame) insertRune(r rune) error {
	st := &f.state

	rel := st.Cursor.X - st.Anchor.X
	text := []rune(st.EditText)
	if rel < 0 || rel > len(text) {
		return nil
	}

	text = append(text[:rel], append([]rune{r}, text[rel:]...)...)
	st.EditText = string(text)

	origin := Vec2{X: st.Anchor.X, Y: st.Cursor.Y}
	f.buf.WriteText(origin, st.EditText)
	st.Cursor.X++
	return f.Step()
}

// submit clears the edit text and advances the edit line, wrapping back to
// the top with a screen clear when the bottom row is reached.
func (f *Frame) submit() error {
	st := &f.state
	st.EditText = ""

	if st.Cursor.Y+1 == st.WindowSize.Y {
		f.buf.ClearScreen()
		st.Cursor = Vec2{}
	} else {
		st.Anchor.Y++
		st.Cursor = st.Anchor
	}
	return f.Step()
}

// backspace removes the character before the cursor from the edit text,
// erases the stale tail on screen and rewrites the remaining text.
func (f *Frame) backspace() error {
	st := &f.state

	if st.Mode != ModeKeyboard {
		return nil
	}
	if st.Cursor.X <= st.Anchor.X {
		return nil
	}
	rel := st.Cursor.X - st.Anchor.X
	text := []rune(st.EditText)
	if rel > len(text) {
		return nil
	}

	st.EditText = string(append(text[:rel-1], text[rel:]...))
	st.Cursor.X--

	// Erase the old text plus the now-stale trailing character. The
	// spaces are printed in place and the matching empty writes go
	// straight to the committed grid, so the erase is effective
	// immediately instead of waiting for a diff pass.
	n := len(text)
	origin := Vec2{X: st.Anchor.X, Y: st.Cursor.Y}
	f.buf.MoveTo(origin)
	f.buf.WriteRaw(bytes.Repeat([]byte{' '}, n))
	for i := 0; i < n; i++ {
		f.buf.Write(Vec2{X: origin.X + i, Y: origin.Y}, EmptyCell())
	}

	f.buf.WriteText(origin, st.EditText)
	return f.Step()
}

func (f *Frame) handleMouse(ev MouseEvent) error {
	st := &f.state

	if st.Mode == ModeKeyboard {
		return nil
	}

	switch ev.Kind {
	case MouseLeftUp:
		st.Anchor = ev.Pos
		// Redraw without disturbing the pointer position.
		f.buf.WriteRawString(escSaveCursor)
		if err := f.Step(); err != nil {
			return err
		}
		f.buf.WriteRawString(escRestoreCursor)
		return f.buf.Flush()

	case MouseMotion:
		st.Cursor = ev.Pos
		f.buf.MoveTo(ev.Pos)
		return f.buf.Flush()

	default:
		return nil
	}
}
