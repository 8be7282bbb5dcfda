package editor

import (
	"tpaint/core"
	"tpaint/geometry"
)

// Stroke is the state of the gesture in progress. The zero value is idle.
type Stroke struct {
	Painting bool
	Previous *core.Point
	// Color is fixed when the stroke starts, so later swatch changes
	// don't recolor the rest of the drag.
	Color core.Color
}

// Down starts a stroke: the footprint is applied once at the pointer and the
// position becomes the anchor for the next move.
func (s Stroke) Down(surface core.Surface, at core.Point, b Brush) Stroke {
	b.Apply(surface, at)

	p := at
	return Stroke{Painting: true, Previous: &p, Color: b.Color}
}

// Move continues a stroke. Every cell on the line from the previous position
// to at gets the footprint, so fast drags leave no gaps on either axis.
// An idle stroke ignores moves.
func (s Stroke) Move(surface core.Surface, at core.Point, b Brush) Stroke {
	if !s.Painting {
		return s
	}
	b.Color = s.Color

	if s.Previous == nil {
		b.Apply(surface, at)
	} else if from, to, ok := geometry.ClipLine(*s.Previous, at, reach(surface, b.Config)); ok {
		for _, p := range geometry.Line(from, to) {
			b.Apply(surface, p)
		}
	}

	p := at
	return Stroke{Painting: true, Previous: &p, Color: s.Color}
}

// reach is the box of brush targets whose footprint touches the surface.
// Lines are cut to it so a far-off pointer costs no more than the grid.
func reach(surface core.Raster, cfg core.Config) core.Rect {
	w, h := surface.Size()
	bw, bh := max(cfg.BrushWidth, 1), max(cfg.BrushHeight, 1)
	return core.Rect{
		X: bw/2 - bw + 1,
		Y: bh/2 - bh + 1,
		W: w + bw - 1,
		H: h + bh - 1,
	}
}

// End finishes the stroke on release or when the pointer leaves the canvas.
func (s Stroke) End() Stroke {
	return Stroke{}
}
