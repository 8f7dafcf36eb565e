package hamui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// newTestFrame builds a frame over an in-memory sink with no terminal
// attached; events are fed straight into handleEvent.
func newTestFrame(size Vec2) (*Frame, *bytes.Buffer) {
	var out bytes.Buffer
	return &Frame{
		buf:   NewBuffer(&out, size),
		state: NewState(size),
		cfg:   DefaultConfig(),
	}, &out
}

func key(k Key) KeyEvent { return KeyEvent{Key: k} }

func runeKey(r rune) KeyEvent { return KeyEvent{Key: KeyRune, Rune: r} }

func typeText(t *testing.T, f *Frame, s string) {
	t.Helper()
	for _, r := range s {
		if err := f.handleEvent(runeKey(r)); err != nil {
			t.Fatal(err)
		}
	}
}

func TestModeToggle(t *testing.T) {
	f, _ := newTestFrame(Vec2{X: 80, Y: 24})
	st := f.State()

	if st.Mode != ModePointer {
		t.Fatalf("initial mode = %v, want pointer", st.Mode)
	}

	st.Cursor.X = 7
	if err := f.handleEvent(key(KeyEsc)); err != nil {
		t.Fatal(err)
	}
	if st.Mode != ModeKeyboard {
		t.Errorf("mode = %v, want keyboard", st.Mode)
	}
	if st.Anchor.X != 7 {
		t.Errorf("anchor.x = %d, want pre-toggle cursor.x 7", st.Anchor.X)
	}

	st.EditText = "leftover"
	if err := f.handleEvent(key(KeyEsc)); err != nil {
		t.Fatal(err)
	}
	if st.Mode != ModePointer {
		t.Errorf("mode = %v, want pointer", st.Mode)
	}
	if st.EditText != "" {
		t.Errorf("edit text = %q, want cleared", st.EditText)
	}
}

func TestTyping(t *testing.T) {
	t.Run("InsertAtAnchor", func(t *testing.T) {
		f, _ := newTestFrame(Vec2{X: 80, Y: 24})
		st := f.State()
		st.Cursor.X = 5
		f.handleEvent(key(KeyEsc)) // enter keyboard mode, anchor.x = 5

		typeText(t, f, "hi")

		if st.EditText != "hi" {
			t.Errorf("edit text = %q, want \"hi\"", st.EditText)
		}
		if st.Cursor.X != st.Anchor.X+2 {
			t.Errorf("cursor.x = %d, want anchor.x+2 = %d", st.Cursor.X, st.Anchor.X+2)
		}

		// The edited span lands on screen starting at the anchor.
		for i, want := range "hi" {
			got, _ := f.buf.Read(Vec2{X: st.Anchor.X + i, Y: st.Cursor.Y})
			if got.Rune != want {
				t.Errorf("cell %d = %q, want %q", i, got.Rune, want)
			}
		}
	})

	t.Run("MidTextInsert", func(t *testing.T) {
		f, _ := newTestFrame(Vec2{X: 80, Y: 24})
		st := f.State()
		f.handleEvent(key(KeyEsc))
		typeText(t, f, "ac")

		st.Cursor.X-- // between 'a' and 'c'
		typeText(t, f, "b")

		if st.EditText != "abc" {
			t.Errorf("edit text = %q, want \"abc\"", st.EditText)
		}
	})

	t.Run("IgnoredInPointerMode", func(t *testing.T) {
		f, _ := newTestFrame(Vec2{X: 80, Y: 24})
		st := f.State()
		typeText(t, f, "x")
		if st.EditText != "" {
			t.Errorf("pointer mode accepted input: %q", st.EditText)
		}
	})

	t.Run("CursorPastTextNoOp", func(t *testing.T) {
		f, _ := newTestFrame(Vec2{X: 80, Y: 24})
		st := f.State()
		f.handleEvent(key(KeyEsc))
		st.Cursor.X = st.Anchor.X + 10 // beyond the (empty) edit text
		typeText(t, f, "x")
		if st.EditText != "" {
			t.Errorf("insert past text end should be a no-op, got %q", st.EditText)
		}
	})
}

func TestBackspace(t *testing.T) {
	t.Run("RemovesBeforeCursor", func(t *testing.T) {
		f, _ := newTestFrame(Vec2{X: 80, Y: 24})
		st := f.State()
		st.Cursor.X = 4
		f.handleEvent(key(KeyEsc))
		typeText(t, f, "abc")

		if err := f.handleEvent(key(KeyBackspace)); err != nil {
			t.Fatal(err)
		}

		if st.EditText != "ab" {
			t.Errorf("edit text = %q, want \"ab\"", st.EditText)
		}
		if st.Cursor.X != st.Anchor.X+2 {
			t.Errorf("cursor.x = %d, want anchor.x+2", st.Cursor.X)
		}

		// The stale trailing cell is erased on screen.
		got, _ := f.buf.Read(Vec2{X: st.Anchor.X + 2, Y: st.Cursor.Y})
		if !got.Empty {
			t.Errorf("stale cell = %+v, want empty", got)
		}
	})

	t.Run("AtAnchorNoOp", func(t *testing.T) {
		f, _ := newTestFrame(Vec2{X: 80, Y: 24})
		st := f.State()
		f.handleEvent(key(KeyEsc))
		typeText(t, f, "ab")
		st.Cursor.X = st.Anchor.X

		f.handleEvent(key(KeyBackspace))
		if st.EditText != "ab" {
			t.Errorf("edit text = %q, want unchanged", st.EditText)
		}
	})

	t.Run("PointerModeNoOp", func(t *testing.T) {
		f, _ := newTestFrame(Vec2{X: 80, Y: 24})
		st := f.State()
		st.Cursor.X = 5
		f.handleEvent(key(KeyBackspace))
		if st.Cursor.X != 5 {
			t.Errorf("cursor moved in pointer mode")
		}
	})
}

func TestCursorBounds(t *testing.T) {
	t.Run("LeftStopsAtMinX", func(t *testing.T) {
		f, _ := newTestFrame(Vec2{X: 80, Y: 24})
		st := f.State()
		st.MinX = 3
		st.Cursor.X = 3

		f.handleEvent(key(KeyLeft))
		if st.Cursor.X != 3 {
			t.Errorf("cursor.x = %d, want boundary 3", st.Cursor.X)
		}

		st.Cursor.X = 4
		f.handleEvent(key(KeyLeft))
		if st.Cursor.X != 3 {
			t.Errorf("cursor.x = %d, want 3", st.Cursor.X)
		}
	})

	t.Run("RightStopsAtSidePanel", func(t *testing.T) {
		f, _ := newTestFrame(Vec2{X: 80, Y: 24})
		st := f.State()
		limit := 80 - sidePanelReserve

		st.Cursor.X = limit
		f.handleEvent(key(KeyRight))
		if st.Cursor.X != limit {
			t.Errorf("cursor.x = %d, want boundary %d", st.Cursor.X, limit)
		}

		st.Cursor.X = limit - 1
		f.handleEvent(key(KeyRight))
		if st.Cursor.X != limit {
			t.Errorf("cursor.x = %d, want %d", st.Cursor.X, limit)
		}
	})
}

func TestSubmit(t *testing.T) {
	t.Run("AdvancesEditLine", func(t *testing.T) {
		f, _ := newTestFrame(Vec2{X: 80, Y: 24})
		st := f.State()
		st.Anchor = Vec2{X: 2, Y: 5}
		st.Cursor = Vec2{X: 6, Y: 5}
		st.EditText = "pending"

		if err := f.handleEvent(key(KeyEnter)); err != nil {
			t.Fatal(err)
		}

		if st.EditText != "" {
			t.Errorf("edit text = %q, want cleared", st.EditText)
		}
		if st.Anchor != (Vec2{X: 2, Y: 6}) {
			t.Errorf("anchor = %+v, want (2,6)", st.Anchor)
		}
		if st.Cursor != st.Anchor {
			t.Errorf("cursor = %+v, want anchor %+v", st.Cursor, st.Anchor)
		}
	})

	t.Run("BottomRowWraps", func(t *testing.T) {
		f, out := newTestFrame(Vec2{X: 80, Y: 24})
		st := f.State()
		st.Cursor = Vec2{X: 4, Y: 23}

		if err := f.handleEvent(key(KeyEnter)); err != nil {
			t.Fatal(err)
		}

		if st.Cursor != (Vec2{}) {
			t.Errorf("cursor = %+v, want (0,0)", st.Cursor)
		}
		if !strings.Contains(out.String(), escClearScreen) {
			t.Error("expected a screen clear on bottom-row submit")
		}
	})
}

func TestMouse(t *testing.T) {
	t.Run("LeftUpSetsAnchor", func(t *testing.T) {
		f, out := newTestFrame(Vec2{X: 80, Y: 24})
		st := f.State()

		err := f.handleEvent(MouseEvent{Pos: Vec2{X: 12, Y: 4}, Kind: MouseLeftUp})
		if err != nil {
			t.Fatal(err)
		}
		if st.Anchor != (Vec2{X: 12, Y: 4}) {
			t.Errorf("anchor = %+v, want (12,4)", st.Anchor)
		}
		if !strings.Contains(out.String(), escSaveCursor) ||
			!strings.Contains(out.String(), escRestoreCursor) {
			t.Error("click redraw must save and restore the cursor")
		}
	})

	t.Run("MotionMovesCursor", func(t *testing.T) {
		f, out := newTestFrame(Vec2{X: 80, Y: 24})
		st := f.State()

		err := f.handleEvent(MouseEvent{Pos: Vec2{X: 7, Y: 3}, Kind: MouseMotion})
		if err != nil {
			t.Fatal(err)
		}
		if st.Cursor != (Vec2{X: 7, Y: 3}) {
			t.Errorf("cursor = %+v, want (7,3)", st.Cursor)
		}
		if !strings.Contains(out.String(), "\x1b[4;8H") {
			t.Errorf("expected cursor move escape, got %q", out.String())
		}
	})

	t.Run("IgnoredInKeyboardMode", func(t *testing.T) {
		f, _ := newTestFrame(Vec2{X: 80, Y: 24})
		st := f.State()
		f.handleEvent(key(KeyEsc))

		f.handleEvent(MouseEvent{Pos: Vec2{X: 9, Y: 9}, Kind: MouseLeftUp})
		if st.Anchor == (Vec2{X: 9, Y: 9}) {
			t.Error("keyboard mode must ignore mouse events")
		}
	})
}

func TestResizeEvent(t *testing.T) {
	f, out := newTestFrame(Vec2{X: 80, Y: 24})
	st := f.State()

	if err := f.handleEvent(ResizeEvent{Size: Vec2{X: 40, Y: 12}}); err != nil {
		t.Fatal(err)
	}

	if f.buf.Size() != (Vec2{X: 40, Y: 12}) {
		t.Errorf("buffer size = %+v, want (40,12)", f.buf.Size())
	}
	if st.WindowSize != (Vec2{X: 40, Y: 12}) {
		t.Errorf("window size = %+v, want (40,12)", st.WindowSize)
	}
	if !strings.Contains(out.String(), escClearScreen) {
		t.Error("resize must clear the screen for the full redraw")
	}
}

func TestQuitCombo(t *testing.T) {
	f, _ := newTestFrame(Vec2{X: 80, Y: 24})
	if err := f.handleEvent(key(KeyCtrlC)); !errors.Is(err, errQuit) {
		t.Errorf("got %v, want errQuit", err)
	}
}

func TestStepDrawAndCommit(t *testing.T) {
	f, out := newTestFrame(Vec2{X: 10, Y: 3})
	f.draw = func(st *State, buf *Buffer) error {
		return buf.WriteText(Vec2{X: 0, Y: 0}, "tick")
	}

	if err := f.Step(); err != nil {
		t.Fatal(err)
	}

	got, _ := f.buf.Read(Vec2{X: 0, Y: 0})
	if got.Rune != 't' {
		t.Errorf("draw output not committed, cell = %+v", got)
	}
	// Step ends by syncing the real cursor to the state's cursor.
	if !strings.HasSuffix(out.String(), "\x1b[1;1H") {
		t.Errorf("expected trailing cursor sync, got %q", out.String())
	}
}
