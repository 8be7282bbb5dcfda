package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"tpaint/core"
	"tpaint/editor"
	"tpaint/geometry"
)

// Checkerboard shown under transparent cells.
var (
	checkerDark  = core.Color{R: 0x30, G: 0x30, B: 0x30}
	checkerLight = core.Color{R: 0x3a, G: 0x3a, B: 0x3a}
)

var textStyle = tcell.StyleDefault

func background(c core.Color) tcell.Style {
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Draw renders the whole screen from the editor state.
func (s *Session) Draw() {
	s.screen.Clear()
	width, height := s.screen.Size()

	s.drawToolbar(width)
	s.drawInfo(width)
	s.drawCanvas(width, height-1)
	s.drawStatus(width, height-1)

	s.screen.Show()
}

func (s *Session) drawToolbar(width int) {
	palette := s.editor.Palette()
	for i, c := range palette {
		x := swatchStart + i*swatchStride
		for dx := range swatchWidth {
			if x+dx < width {
				s.screen.SetContent(x+dx, toolbarRow, ' ', nil, background(c))
			}
		}
	}

	x := toolLabelX(len(palette))
	x += s.drawText(x, toolbarRow, width, textStyle.Bold(true), toolLabel(s.editor.Tool()))

	primary, secondary := s.editor.Colors()
	x += s.drawText(x, toolbarRow, width, textStyle, " ")
	for _, c := range []core.Color{primary, secondary} {
		for range swatchWidth {
			if x < width {
				s.screen.SetContent(x, toolbarRow, ' ', nil, background(c))
			}
			x++
		}
		x++
	}
}

func (s *Session) drawInfo(width int) {
	cfg := s.editor.Config()
	info := fmt.Sprintf(" %dx%d  scale %dx%d  brush %dx%d  %s",
		cfg.Width, cfg.Height, cfg.ScaleX, cfg.ScaleY, cfg.BrushWidth, cfg.BrushHeight,
		colorDepth(s.screen.Colors()))
	s.drawText(0, toolbarRow+1, width, textStyle.Dim(true), info)
}

// colorDepth names what the terminal can show. tcell maps RGB backgrounds
// to the nearest palette entry on anything less than truecolor, so exports
// may look richer than the canvas.
func colorDepth(n int) string {
	switch {
	case n >= 1<<24:
		return "truecolor"
	case n <= 0:
		return "mono"
	default:
		return fmt.Sprintf("%d colors", n)
	}
}

// drawCanvas paints every grid cell as a ScaleX by ScaleY block, with the
// overlay composited on top. Rows at or below maxY are left alone.
func (s *Session) drawCanvas(maxX, maxY int) {
	cfg := s.editor.Config()
	grid, overlay := s.editor.Grid(), s.editor.Overlay()

	for y := range cfg.Height {
		if geometry.DisplayRect(core.Point{Y: y}, CanvasOrigin, cfg.ScaleX, cfg.ScaleY).Y >= maxY {
			break
		}
		for x := range cfg.Width {
			p := core.Point{X: x, Y: y}
			r := geometry.DisplayRect(p, CanvasOrigin, cfg.ScaleX, cfg.ScaleY)
			if r.X >= maxX {
				break
			}
			style := background(composite(grid.Cell(p), overlay.Cell(p), p))
			for dy := range r.H {
				for dx := range r.W {
					if r.X+dx < maxX && r.Y+dy < maxY {
						s.screen.SetContent(r.X+dx, r.Y+dy, ' ', nil, style)
					}
				}
			}
		}
	}
}

// composite returns the color shown for a cell: the overlay over the
// committed cell over the checkerboard.
func composite(cell, over core.Cell, p core.Point) core.Color {
	base := cell.Color
	if cell.IsTransparent() {
		base = checkerDark
		if (p.X+p.Y)%2 == 1 {
			base = checkerLight
		}
	}

	switch over.Alpha {
	case core.AlphaTransparent:
		return base
	case core.AlphaOpaque:
		return over.Color
	}

	blended := toColorful(base).BlendRgb(toColorful(over.Color), float64(over.Alpha)/255)
	r, g, b := blended.Clamped().RGB255()
	return core.Color{R: r, G: g, B: b}
}

func toColorful(c core.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (s *Session) drawStatus(width, row int) {
	if row < 0 {
		return
	}
	text := s.editor.Status()
	style := textStyle
	if s.editor.Mode() == editor.ModeCommand {
		text = ":" + s.editor.Command()
		style = style.Reverse(true)
	}
	s.drawText(0, row, width, style, text)
}

// drawText writes text from column x, cut at the screen edge, and returns
// the number of columns used.
func (s *Session) drawText(x, y, width int, style tcell.Style, text string) int {
	if x >= width {
		return 0
	}
	text = runewidth.Truncate(text, width-x, "…")
	used := 0
	for _, r := range text {
		s.screen.SetContent(x+used, y, r, nil, style)
		used += runewidth.RuneWidth(r)
	}
	return used
}
