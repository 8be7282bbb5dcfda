package canvas

import (
	"strings"

	"tpaint/core"
)

// Grid is a width x height buffer of cells and the single source of truth for
// a committed drawing.
//
// Grid is NOT thread-safe. The editor mutates it from one goroutine only.
//
// Coordinate System:
//   - Origin (0,0) is top-left
//   - X increases rightward
//   - Y increases downward
//   - All coordinates are in cells, never in display units
//
// Performance Characteristics:
//   - Cell/Set: O(1)
//   - SetRect: O(clipped area)
//   - Clear, String: O(width × height)
type Grid struct {
	cells  []core.Cell
	width  int
	height int
}

// NewGrid creates a transparent grid. Dimensions are clamped to the
// supported range so the result is always usable.
func NewGrid(width, height int) *Grid {
	width = core.Clamp(width, core.MinDimension, core.MaxDimension)
	height = core.Clamp(height, core.MinDimension, core.MaxDimension)
	return &Grid{
		cells:  make([]core.Cell, width*height),
		width:  width,
		height: height,
	}
}

// NewOverlay creates a preview layer matching a grid's dimensions.
func NewOverlay(g core.Raster) *Grid {
	w, h := g.Size()
	return NewGrid(w, h)
}

// Size returns the width and height of the grid.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// Cell returns the cell at p.
// Returns Transparent if p is out of bounds.
func (g *Grid) Cell(p core.Point) core.Cell {
	if !g.inBounds(p) {
		return core.Transparent
	}
	return g.cells[p.Y*g.width+p.X]
}

// Set writes a single cell. Out-of-range points are ignored.
func (g *Grid) Set(p core.Point, cell core.Cell) {
	if g.inBounds(p) {
		g.cells[p.Y*g.width+p.X] = cell
	}
}

// SetRect fills r with cell after clipping it to the grid.
func (g *Grid) SetRect(r core.Rect, cell core.Cell) {
	r = r.Clip(g.width, g.height)
	if r.Empty() {
		return
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		row := g.cells[y*g.width : (y+1)*g.width]
		for x := r.X; x < r.X+r.W; x++ {
			row[x] = cell
		}
	}
}

// Clear resets the grid to all transparent.
func (g *Grid) Clear() {
	clear(g.cells)
}

// IsEmpty reports whether every cell is transparent.
func (g *Grid) IsEmpty() bool {
	for _, c := range g.cells {
		if !c.IsTransparent() {
			return false
		}
	}
	return true
}

// String returns a debug picture of the grid: '#' for covered cells and '.'
// for transparent ones, one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width + 1))

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x].IsTransparent() {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func (g *Grid) inBounds(p core.Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}
