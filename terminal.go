package hamui

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal control sequences. Colors and grid content are emitted through
// the Buffer; these cover the screen/mode switches around it.
const (
	escEnterAltScreen = "\x1b[?1049h"
	escLeaveAltScreen = "\x1b[?1049l"
	escClearScreen    = "\x1b[2J"
	escCursorHome     = "\x1b[H"

	// SGR extended mouse tracking with all-motion reporting.
	escMouseEnable  = "\x1b[?1003h\x1b[?1006h"
	escMouseDisable = "\x1b[?1006l\x1b[?1003l"

	escSaveCursor    = "\x1b[s"
	escRestoreCursor = "\x1b[u"
)

// Terminal is the input half of the terminal collaborator: raw mode,
// window size, and a decoded event stream. All output goes through the
// Buffer, which owns the sink exclusively.
type Terminal struct {
	in *os.File
	fd int

	prevState *term.State

	events chan Event
	sig    chan os.Signal
	done   chan struct{}
}

// NewTerminal creates a terminal reading events from stdin.
func NewTerminal() *Terminal {
	return &Terminal{
		in:     os.Stdin,
		fd:     int(os.Stdout.Fd()),
		events: make(chan Event, 64),
		sig:    make(chan os.Signal, 1),
		done:   make(chan struct{}),
	}
}

// Size returns the current terminal dimensions.
func (t *Terminal) Size() (Vec2, error) {
	ws, err := unix.IoctlGetWinsize(t.fd, unix.TIOCGWINSZ)
	if err != nil {
		return Vec2{}, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return Vec2{X: int(ws.Col), Y: int(ws.Row)}, nil
}

// EnableRaw puts the terminal into raw input mode.
func (t *Terminal) EnableRaw() error {
	prev, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	t.prevState = prev
	return nil
}

// DisableRaw restores the terminal to its original input mode.
func (t *Terminal) DisableRaw() error {
	if t.prevState == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), t.prevState); err != nil {
		return fmt.Errorf("failed to restore terminal mode: %w", err)
	}
	t.prevState = nil
	return nil
}

// Start launches the input reader and resize watcher. Decoded events are
// delivered through Poll/Read; the loop goroutine is the single consumer,
// so buffer and state stay single-threaded.
func (t *Terminal) Start() {
	signal.Notify(t.sig, unix.SIGWINCH)
	go t.watchResize()
	go t.readLoop()
}

// Stop shuts down the reader and resize watcher.
func (t *Terminal) Stop() {
	signal.Stop(t.sig)
	close(t.done)
}

// Poll returns the next pending event without blocking longer than
// timeout. A zero timeout never waits. The second result reports whether
// an event was available.
func (t *Terminal) Poll(timeout time.Duration) (Event, bool) {
	if timeout <= 0 {
		select {
		case ev := <-t.events:
			return ev, true
		default:
			return nil, false
		}
	}
	select {
	case ev := <-t.events:
		return ev, true
	case <-time.After(timeout):
		return nil, false
	}
}

// Read blocks until the next event arrives.
func (t *Terminal) Read() Event {
	return <-t.events
}

func (t *Terminal) watchResize() {
	for {
		select {
		case <-t.done:
			return
		case <-t.sig:
			size, err := t.Size()
			if err != nil {
				continue
			}
			t.deliver(ResizeEvent{Size: size})
		}
	}
}

func (t *Terminal) readLoop() {
	buf := make([]byte, 256)
	for {
		n, err := t.in.Read(buf)
		if err != nil {
			return
		}
		for _, ev := range parseInput(buf[:n]) {
			t.deliver(ev)
		}
	}
}

func (t *Terminal) deliver(ev Event) {
	select {
	case t.events <- ev:
	case <-t.done:
	}
}
