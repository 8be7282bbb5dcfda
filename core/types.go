// Package core contains the fundamental types used throughout the tpaint editor.
package core

import (
	"fmt"
	"strings"
)

// Point represents a 2D coordinate, either a grid cell or a display position.
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// String returns the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect represents a rectangular block of cells anchored at its top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// Empty returns true if the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W &&
		p.Y >= r.Y && p.Y < r.Y+r.H
}

// Clip returns the part of the rectangle that lies inside a width x height grid.
// The result may be empty.
func (r Rect) Clip(width, height int) Rect {
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.W, width), min(r.Y+r.H, height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Tool is the active drawing tool.
type Tool int

const (
	ToolPen    Tool = iota // Writes color into cells
	ToolRubber             // Clears cells to transparent
)

// String returns the tool name for display.
func (t Tool) String() string {
	switch t {
	case ToolPen:
		return "Pen"
	case ToolRubber:
		return "Rubber"
	default:
		return "Unknown"
	}
}

// ParseTool converts a tool name to a Tool. Matching is case-insensitive.
func ParseTool(s string) (Tool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pen":
		return ToolPen, true
	case "rubber", "eraser":
		return ToolRubber, true
	default:
		return ToolPen, false
	}
}

// Button identifies which pointer button triggered an action.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonOther
)

// String returns the button name.
func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	default:
		return "other"
	}
}
