package main

import (
	"fmt"
	"os"

	"github.com/hkauso/hamui"
)

func main() {
	cfg, err := hamui.LoadConfig(os.Getenv("HAMUI_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.LogFile != "" {
		f, err := hamui.OpenLogFile(cfg.LogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
	}

	frame, err := hamui.NewFrame(cfg, draw)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := frame.Open(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := frame.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// draw renders a boxed side panel with a status line, a colored title and
// a clickable button. Click the button to move the edit boundary; press
// Esc to toggle keyboard mode and type, Enter to submit, Ctrl+C to quit.
func draw(st *hamui.State, buf *hamui.Buffer) error {
	window := buf.Size()
	if window.X < 60 || window.Y < 6 {
		return nil
	}

	canvas := hamui.NewCanvas(window)

	// Side panel box on the right (50 cells + border).
	box := hamui.NewQuickBox(canvas)
	boxRect, boxChanges, err := box.Render(window, hamui.RectBoundary{
		Pos:  hamui.Vec2{X: window.X - 51, Y: 0},
		Size: hamui.Vec2{X: 51, Y: window.Y - 1},
	})
	if err != nil {
		return err
	}

	// Panel title, centered.
	title := hamui.NewText(hamui.NewCanvas(window))
	_, titleChanges, err := title.RenderCenter(
		hamui.NewTextLeaf("hamui", hamui.BrightWhite, hamui.BgBlack),
		hamui.Vec2{X: boxRect.Pos.X, Y: 1}, boxRect.Size.X)
	if err != nil {
		return err
	}

	// Clickable button inside the panel.
	button := hamui.NewText(hamui.NewCanvas(window))
	buttonRect, buttonChanges, err := button.RenderButton(
		hamui.PlainLeaf("clear input"), hamui.Vec2{X: boxRect.Pos.X + 2, Y: 3})
	if err != nil {
		return err
	}
	*st = hamui.OnClick(*st, buttonRect, func(s hamui.State) hamui.State {
		s.EditText = ""
		return s
	})

	// Status line along the bottom.
	status := hamui.NewStatusLine(hamui.NewCanvas(window))
	_, statusChanges, err := status.Render(window, hamui.RectBoundary{
		Pos:  hamui.Vec2{X: 0, Y: window.Y - 1},
		Size: hamui.Vec2{X: window.X - 10, Y: 1},
	})
	if err != nil {
		return err
	}

	// Mode indicator next to the status line.
	mode := hamui.NewQuickRow(hamui.NewCanvas(window))
	_, modeChanges, err := mode.Render(
		hamui.RectBoundary{Pos: hamui.Vec2{X: window.X - 10, Y: window.Y - 1}},
		[]hamui.RowItem{
			{Leaf: hamui.PlainLeaf(st.Mode.String()), Offset: hamui.Vec2{X: window.X - 10, Y: window.Y - 1}},
		})
	if err != nil {
		return err
	}

	merged := hamui.MergeLogs(boxChanges, titleChanges, buttonChanges, statusChanges, modeChanges)
	return buf.Absorb(merged)
}
