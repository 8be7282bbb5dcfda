package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"tpaint/core"
	"tpaint/geometry"
)

// dragTracker tracks which button is held between press and release.
type dragTracker struct {
	active bool

	// onCanvas is set when the press landed on the canvas, so the release
	// belongs to a stroke.
	onCanvas bool

	button   core.Button
	startPos core.Point
}

func (t *dragTracker) start(pos core.Point, button core.Button, onCanvas bool) {
	t.active = true
	t.onCanvas = onCanvas
	t.button = button
	t.startPos = pos
}

func (t *dragTracker) end() {
	*t = dragTracker{}
}

// HandleEvent applies one tcell event to the editor and reports whether the
// session should end.
func (s *Session) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		key, ok := convertKey(ev)
		if !ok {
			return false
		}
		return s.editor.HandleKey(key)

	case *tcell.EventMouse:
		s.handleMouse(ev)

	case *tcell.EventResize:
		s.screen.Sync()

	case *tcell.EventInterrupt:
		if f, ok := ev.Data().(func()); ok && f != nil {
			f()
		}
		return s.editor.QuitRequested()
	}
	return false
}

// convertKey maps a key event onto the rune the editor understands.
func convertKey(ev *tcell.EventKey) (rune, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return ev.Rune(), true
	case tcell.KeyEnter:
		return 13, true
	case tcell.KeyEscape:
		return 27, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return 127, true
	case tcell.KeyCtrlC:
		return 3, true
	default:
		return 0, false
	}
}

func convertButton(b tcell.ButtonMask) core.Button {
	switch {
	case b&tcell.Button1 != 0:
		return core.ButtonPrimary
	case b&tcell.Button2 != 0:
		return core.ButtonSecondary
	default:
		return core.ButtonOther
	}
}

// canvasCell returns the grid cell under a screen position and whether the
// position is on the canvas.
func (s *Session) canvasCell(x, y int) (core.Point, bool) {
	cfg := s.editor.Config()
	p := core.Point{X: x, Y: y}
	cell := geometry.CellAt(p, CanvasOrigin, cfg.ScaleX, cfg.ScaleY)
	if p.X < CanvasOrigin.X || p.Y < CanvasOrigin.Y {
		return cell, false
	}
	return cell, cell.X < cfg.Width && cell.Y < cfg.Height
}

func (s *Session) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	cell, onCanvas := s.canvasCell(x, y)

	switch {
	case buttons != 0 && !s.drag.active:
		button := convertButton(buttons)
		s.drag.start(core.Point{X: x, Y: y}, button, onCanvas)
		if y == toolbarRow {
			s.toolbarClick(x, button)
			return
		}
		if !onCanvas {
			return
		}
		s.editor.PointerDown(cell, button)
		if button == core.ButtonSecondary {
			s.editor.ContextMenu()
		}
		s.inside = true

	case buttons == 0 && s.drag.active:
		// Releases are honoured anywhere on the screen.
		if s.drag.onCanvas {
			s.editor.PointerUp()
		}
		s.drag.end()

	default:
		s.pointerMotion(cell, onCanvas)
	}
}

func (s *Session) pointerMotion(cell core.Point, onCanvas bool) {
	if onCanvas {
		s.editor.PointerMove(cell)
		s.inside = true
		return
	}
	if s.inside {
		s.editor.PointerLeave()
		s.inside = false
	}
}

// Toolbar layout: one two-column swatch every three columns, then the tool label.
const (
	toolbarRow   = 0
	swatchStart  = 1
	swatchWidth  = 2
	swatchStride = 3
)

func toolLabel(t core.Tool) string {
	return fmt.Sprintf("[%s]", t)
}

func toolLabelX(swatches int) int {
	return swatchStart + swatches*swatchStride + 1
}

// toolbarClick selects a swatch, or toggles the tool when the label is hit.
func (s *Session) toolbarClick(x int, button core.Button) {
	palette := s.editor.Palette()
	for i := range palette {
		sx := swatchStart + i*swatchStride
		if x >= sx && x < sx+swatchWidth {
			switch button {
			case core.ButtonPrimary:
				s.editor.SelectSwatch(i, true)
			case core.ButtonSecondary:
				s.editor.SelectSwatch(i, false)
			}
			return
		}
	}

	lx := toolLabelX(len(palette))
	if x >= lx && x < lx+len(toolLabel(s.editor.Tool())) {
		if s.editor.Tool() == core.ToolPen {
			s.editor.SetTool(core.ToolRubber)
		} else {
			s.editor.SetTool(core.ToolPen)
		}
	}
}
