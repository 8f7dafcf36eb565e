package hamui

// Mode selects how input is interpreted: pointer-driven or keyboard-driven.
type Mode uint8

const (
	// ModePointer: the mouse moves the cursor and clicks set the anchor.
	ModePointer Mode = iota
	// ModeKeyboard: printable keys edit text at the cursor.
	ModeKeyboard
)

func (m Mode) String() string {
	if m == ModeKeyboard {
		return "keyboard"
	}
	return "pointer"
}

// State is the per-session input state, mutated exclusively by the frame's
// event loop.
type State struct {
	// WindowSize mirrors the terminal dimensions.
	WindowSize Vec2

	// Mode is the current interaction mode. Pointer initially.
	Mode Mode

	// Anchor is the last click position in pointer mode and the left edge
	// of the text being edited in keyboard mode. The dual use is
	// intentional: a click chooses where editing starts.
	Anchor Vec2

	// EditText is the text currently being edited in keyboard mode.
	EditText string

	// Cursor is the on-screen cursor position.
	Cursor Vec2

	// MinX is the left boundary the cursor may not cross.
	MinX int
}

// NewState creates the initial input state for a window of the given size.
func NewState(window Vec2) State {
	return State{WindowSize: window, Mode: ModePointer}
}
