package canvas

import "tpaint/core"

// Scratch holds a snapshot of a surface at the size it had when the snapshot
// was taken. The zero value is an empty snapshot.
type Scratch struct {
	cells  []core.Cell
	width  int
	height int
}

// Save replaces the snapshot with the full contents of src.
func (s *Scratch) Save(src core.Raster) {
	s.width, s.height = src.Size()
	s.width, s.height = max(s.width, 0), max(s.height, 0)
	s.cells = make([]core.Cell, s.width*s.height)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.cells[y*s.width+x] = src.Cell(core.Point{X: x, Y: y})
		}
	}
}

// Size returns the dimensions of the snapshot.
func (s *Scratch) Size() (width, height int) {
	return s.width, s.height
}

// Cell returns the snapshotted cell at p, or Transparent outside the snapshot.
func (s *Scratch) Cell(p core.Point) core.Cell {
	if p.X < 0 || p.X >= s.width || p.Y < 0 || p.Y >= s.height {
		return core.Transparent
	}
	return s.cells[p.Y*s.width+p.X]
}

// Restore copies the snapshot onto dst at the origin. Only the overlap of the
// two sizes is written. An empty snapshot restores nothing.
func (s *Scratch) Restore(dst core.Surface) {
	if s.width == 0 || s.height == 0 {
		return
	}
	w, h := dst.Size()
	w, h = min(w, s.width), min(h, s.height)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Runs of equal cells go out as one rect.
			start := x
			c := s.cells[y*s.width+x]
			for x+1 < w && s.cells[y*s.width+x+1] == c {
				x++
			}
			dst.SetRect(core.Rect{X: start, Y: y, W: x - start + 1, H: 1}, c)
		}
	}
}

// Resize returns a grid of the new dimensions carrying over every cell of g
// that still fits. Cells beyond the new bounds are dropped and newly exposed
// cells are transparent.
func Resize(g *Grid, width, height int) *Grid {
	var s Scratch
	s.Save(g)

	resized := NewGrid(width, height)
	s.Restore(resized)

	core.Logger().Debug("canvas resized",
		"from_width", g.width, "from_height", g.height,
		"to_width", resized.width, "to_height", resized.height)

	return resized
}
