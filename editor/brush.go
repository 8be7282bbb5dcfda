package editor

import (
	"tpaint/core"
)

// Footprint returns the cells a brush covers when centered on target.
// Even sizes lean up and to the left.
func Footprint(target core.Point, cfg core.Config) core.Rect {
	bw := max(cfg.BrushWidth, core.MinBrush)
	bh := max(cfg.BrushHeight, core.MinBrush)
	return core.Rect{
		X: target.X - bw/2,
		Y: target.Y - bh/2,
		W: bw,
		H: bh,
	}
}

// Apply paints or erases the footprint around target. The surface clips
// anything that falls outside the grid.
func Apply(s core.Surface, target core.Point, cfg core.Config, tool core.Tool, color core.Color) {
	r := Footprint(target, cfg)
	if tool == core.ToolRubber {
		s.SetRect(r, core.Transparent)
		return
	}
	s.SetRect(r, core.Paint(color))
}

// Brush bundles everything a stroke needs to paint.
type Brush struct {
	Config core.Config
	Tool   core.Tool
	Color  core.Color
}

// Apply paints the brush at target.
func (b Brush) Apply(s core.Surface, target core.Point) {
	Apply(s, target, b.Config, b.Tool, b.Color)
}

// Preview clears the overlay and draws the footprint at target. Rubber shows
// a translucent indicator instead of a color.
func Preview(overlay core.Surface, target core.Point, b Brush) {
	overlay.Clear()

	cell := core.Paint(b.Color)
	if b.Tool == core.ToolRubber {
		cell = core.Indicator()
	}
	overlay.SetRect(Footprint(target, b.Config), cell)
}
