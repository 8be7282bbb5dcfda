package terminal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"tpaint/core"
	"tpaint/editor"
)

func testEditor() *editor.Editor {
	return editor.NewEditor(core.Config{Width: 10, Height: 5, ScaleX: 2, ScaleY: 1, BrushWidth: 1, BrushHeight: 1})
}

func newTestSession(t *testing.T) (*Session, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	s := NewSession(screen, testEditor())
	unmount, err := s.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	t.Cleanup(unmount)
	screen.SetSize(80, 24)
	return s, screen
}

func mouse(x, y int, buttons tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, buttons, tcell.ModNone)
}

func bgAt(screen tcell.SimulationScreen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func rowText(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := range w {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestCanvasCell(t *testing.T) {
	s, _ := newTestSession(t)

	tests := []struct {
		x, y   int
		want   core.Point
		inside bool
	}{
		{1, 2, core.Point{X: 0, Y: 0}, true},
		{2, 2, core.Point{X: 0, Y: 0}, true},
		{3, 2, core.Point{X: 1, Y: 0}, true},
		{20, 6, core.Point{X: 9, Y: 4}, true},
		{21, 2, core.Point{X: 10, Y: 0}, false},
		{1, 7, core.Point{X: 0, Y: 5}, false},
		{0, 2, core.Point{X: -1, Y: 0}, false},
		{5, 1, core.Point{X: 2, Y: -1}, false},
	}

	for _, tt := range tests {
		got, inside := s.canvasCell(tt.x, tt.y)
		if got != tt.want || inside != tt.inside {
			t.Errorf("canvasCell(%d, %d) = %v, %v, want %v, %v", tt.x, tt.y, got, inside, tt.want, tt.inside)
		}
	}
}

func TestMouseStroke(t *testing.T) {
	s, _ := newTestSession(t)
	e := s.Editor()
	black := core.Paint(core.Black)

	s.HandleEvent(mouse(1, 2, tcell.Button1))
	s.HandleEvent(mouse(9, 2, tcell.Button1))
	if !e.Stroke().Painting {
		t.Fatal("stroke not in progress after press")
	}
	for x := range 5 {
		if got := e.Grid().Cell(core.Point{X: x, Y: 0}); got != black {
			t.Errorf("cell (%d,0) = %+v, want black", x, got)
		}
	}

	// Released far away from the canvas.
	s.HandleEvent(mouse(70, 20, tcell.ButtonNone))
	if e.Stroke().Painting {
		t.Error("stroke still in progress after release off the canvas")
	}

	s.HandleEvent(mouse(11, 2, tcell.ButtonNone))
	if got := e.Grid().Cell(core.Point{X: 5, Y: 0}); !got.IsTransparent() {
		t.Errorf("hover painted cell (5,0): %+v", got)
	}
	if got := e.Overlay().Cell(core.Point{X: 5, Y: 0}); got.IsTransparent() {
		t.Error("hover did not draw a preview")
	}
}

func TestMouseButtons(t *testing.T) {
	tests := []struct {
		name   string
		button tcell.ButtonMask
		want   core.Cell
	}{
		{"left", tcell.Button1, core.Paint(core.Black)},
		{"right", tcell.Button2, core.Paint(core.White)},
		{"middle", tcell.Button3, core.Paint(core.Black)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			s.HandleEvent(mouse(3, 3, tt.button))
			s.HandleEvent(mouse(3, 3, tcell.ButtonNone))

			if got := s.Editor().Grid().Cell(core.Point{X: 1, Y: 1}); got != tt.want {
				t.Errorf("cell = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMouseLeave(t *testing.T) {
	s, _ := newTestSession(t)
	e := s.Editor()

	s.HandleEvent(mouse(3, 3, tcell.ButtonNone))
	if e.Overlay().Cell(core.Point{X: 1, Y: 1}).IsTransparent() {
		t.Fatal("no preview under the pointer")
	}

	s.HandleEvent(mouse(3, 3, tcell.Button1))
	s.HandleEvent(mouse(50, 20, tcell.Button1))
	if e.Stroke().Painting {
		t.Error("stroke survived leaving the canvas")
	}
	if e.Overlay().Cell(core.Point{X: 1, Y: 1}) != core.Transparent {
		t.Error("preview survived leaving the canvas")
	}

	// Coming back with the button still held does not resume painting.
	s.HandleEvent(mouse(7, 3, tcell.Button1))
	if got := e.Grid().Cell(core.Point{X: 3, Y: 1}); !got.IsTransparent() {
		t.Errorf("cell (3,1) = %+v, want transparent", got)
	}
}

func TestToolbarClicks(t *testing.T) {
	s, _ := newTestSession(t)
	e := s.Editor()

	swatch9 := swatchStart + 9*swatchStride
	s.HandleEvent(mouse(swatch9, toolbarRow, tcell.Button1))
	s.HandleEvent(mouse(swatch9, toolbarRow, tcell.ButtonNone))
	s.HandleEvent(mouse(swatch9+1, toolbarRow, tcell.Button2))
	s.HandleEvent(mouse(swatch9+1, toolbarRow, tcell.ButtonNone))

	primary, secondary := e.Colors()
	if primary != core.Swatches[9] || secondary != core.Swatches[9] {
		t.Errorf("Colors() = %v, %v, want swatch 9 twice", primary, secondary)
	}

	label := toolLabelX(len(e.Palette()))
	s.HandleEvent(mouse(label, toolbarRow, tcell.Button1))
	s.HandleEvent(mouse(label, toolbarRow, tcell.ButtonNone))
	if e.Tool() != core.ToolRubber {
		t.Errorf("Tool() = %v, want Rubber", e.Tool())
	}

	// The gap between swatches does nothing.
	s.HandleEvent(mouse(swatchStart+swatchWidth, toolbarRow, tcell.Button1))
	s.HandleEvent(mouse(swatchStart+swatchWidth, toolbarRow, tcell.ButtonNone))
	if p, _ := e.Colors(); p != core.Swatches[9] {
		t.Errorf("gap click changed primary to %v", p)
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		name     string
		keys     []*tcell.EventKey
		wantQuit bool
		wantTool core.Tool
	}{
		{"rubber", []*tcell.EventKey{tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)}, false, core.ToolRubber},
		{"quit", []*tcell.EventKey{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)}, true, core.ToolPen},
		{"ctrl-c", []*tcell.EventKey{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)}, true, core.ToolPen},
		{"command", []*tcell.EventKey{
			tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone),
			tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
			tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone),
			tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone),
			tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		}, true, core.ToolPen},
		{"escape", []*tcell.EventKey{
			tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone),
			tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
			tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone),
		}, false, core.ToolRubber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			var quit bool
			for _, k := range tt.keys {
				quit = s.HandleEvent(k)
			}
			if quit != tt.wantQuit {
				t.Errorf("HandleEvent() quit = %v, want %v", quit, tt.wantQuit)
			}
			if s.Editor().Tool() != tt.wantTool {
				t.Errorf("Tool() = %v, want %v", s.Editor().Tool(), tt.wantTool)
			}
		})
	}
}

func TestDraw(t *testing.T) {
	s, screen := newTestSession(t)
	e := s.Editor()
	e.SetColor(core.Color{R: 255}, true)

	s.HandleEvent(mouse(1, 2, tcell.Button1))
	s.HandleEvent(mouse(1, 2, tcell.ButtonNone))
	s.Draw()

	red := tcell.NewRGBColor(255, 0, 0)
	for _, x := range []int{1, 2} {
		if got := bgAt(screen, x, 2); got != red {
			t.Errorf("screen (%d,2) background = %v, want red", x, got)
		}
	}
	if got := bgAt(screen, 3, 2); got == red {
		t.Error("neighbouring cell drawn red")
	}
	if bgAt(screen, 3, 2) == bgAt(screen, 5, 2) {
		t.Error("transparent cells show no checkerboard")
	}

	if got := bgAt(screen, swatchStart, toolbarRow); got != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("first swatch background = %v, want black", got)
	}
	if got := rowText(screen, toolbarRow); !strings.Contains(got, "[Pen]") {
		t.Errorf("toolbar = %q, want the tool label", got)
	}
	if got := rowText(screen, 1); !strings.Contains(got, "10x5") {
		t.Errorf("info row = %q, want canvas size", got)
	}

	s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone))
	s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	s.Draw()
	if got := rowText(screen, 23); got != ":s" {
		t.Errorf("status row = %q, want %q", got, ":s")
	}
}

func TestComposite(t *testing.T) {
	white := core.Paint(core.White)

	tests := []struct {
		name string
		cell core.Cell
		over core.Cell
		p    core.Point
		want core.Color
	}{
		{"committed", white, core.Transparent, core.Point{}, core.White},
		{"checker even", core.Transparent, core.Transparent, core.Point{}, checkerDark},
		{"checker odd", core.Transparent, core.Transparent, core.Point{X: 1}, checkerLight},
		{"opaque preview", white, core.Paint(core.Color{G: 255}), core.Point{}, core.Color{G: 255}},
		{"indicator", white, core.Indicator(), core.Point{}, core.Color{R: 153, G: 153, B: 153}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := composite(tt.cell, tt.over, tt.p); got != tt.want {
				t.Errorf("composite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPost(t *testing.T) {
	s, screen := newTestSession(t)

	ran := false
	s.Post(func() { ran = true })
	if quit := handleUntilInterrupt(s, screen); quit {
		t.Error("posted work asked to quit")
	}
	if !ran {
		t.Error("posted function did not run")
	}

	s.Post(func() { s.Editor().HandleKey('q') })
	if quit := handleUntilInterrupt(s, screen); !quit {
		t.Error("quit from posted work was not reported")
	}
}

// handleUntilInterrupt feeds queued events to the session up to and
// including the next interrupt.
func handleUntilInterrupt(s *Session, screen tcell.SimulationScreen) bool {
	for {
		ev := screen.PollEvent()
		quit := s.HandleEvent(ev)
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			return quit
		}
	}
}

func TestRun(t *testing.T) {
	t.Run("quit key", func(t *testing.T) {
		screen := tcell.NewSimulationScreen("UTF-8")
		s := NewSession(screen, testEditor())
		s.onMount = func() {
			screen.SetSize(40, 12)
			_ = screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
		}

		if err := runWithTimeout(t, s, context.Background()); err != nil {
			t.Errorf("Run() error = %v", err)
		}
		if s.Mounted() {
			t.Error("screen still mounted after Run()")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		screen := tcell.NewSimulationScreen("UTF-8")
		s := NewSession(screen, testEditor())
		s.onMount = cancel

		if err := runWithTimeout(t, s, ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	})
}

func runWithTimeout(t *testing.T, s *Session, ctx context.Context) error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	select {
	case err := <-errc:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
		return nil
	}
}

func TestColorDepth(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1 << 24, "truecolor"},
		{256, "256 colors"},
		{8, "8 colors"},
		{0, "mono"},
	}

	for _, tt := range tests {
		if got := colorDepth(tt.n); got != tt.want {
			t.Errorf("colorDepth(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestDrawLargeCanvas(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	e := editor.NewEditor(core.Config{
		Width: core.MaxDimension, Height: core.MaxDimension,
		ScaleX: 2, ScaleY: 1, BrushWidth: 1, BrushHeight: 1,
	})
	e.SetColor(core.Color{G: 255}, true)
	s := NewSession(screen, e)
	unmount, err := s.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	t.Cleanup(unmount)
	screen.SetSize(40, 12)

	// Cell (18,8) sits at columns 37-38 of row 10, the last row above the
	// status line.
	last := core.Point{X: 18, Y: 8}
	e.PointerDown(last, core.ButtonPrimary)
	e.PointerUp()
	s.Draw()

	green := tcell.NewRGBColor(0, 255, 0)
	if got := bgAt(screen, 37, 10); got != green {
		t.Errorf("screen (37,10) background = %v, want green", got)
	}
	if got := bgAt(screen, 39, 11); got == green {
		t.Error("canvas drawn over the status row")
	}
}
