package geometry

import "tpaint/core"

// CellAt converts a display position into a grid cell given the position of
// the canvas origin and the display units per cell on each axis.
// The result is not clamped to the grid; callers clip as needed.
// Scales below 1 are treated as 1.
func CellAt(pointer, origin core.Point, scaleX, scaleY int) core.Point {
	d := pointer.Sub(origin)
	return core.Point{
		X: FloorDiv(d.X, max(scaleX, 1)),
		Y: FloorDiv(d.Y, max(scaleY, 1)),
	}
}

// DisplayRect returns the display-space rectangle covered by a grid cell.
func DisplayRect(cell, origin core.Point, scaleX, scaleY int) core.Rect {
	scaleX, scaleY = max(scaleX, 1), max(scaleY, 1)
	return core.Rect{
		X: origin.X + cell.X*scaleX,
		Y: origin.Y + cell.Y*scaleY,
		W: scaleX,
		H: scaleY,
	}
}
