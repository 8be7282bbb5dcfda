package core

// Raster is a read-only view of a grid of cells.
type Raster interface {
	// Size returns the grid dimensions in cells.
	Size() (width, height int)

	// Cell returns the cell at p, or Transparent if p is outside the grid.
	Cell(p Point) Cell
}

// Surface is a drawable grid of cells. Implementations may be a software
// buffer, an overlay layer, or anything else that can hold cells.
type Surface interface {
	Raster

	// SetRect fills r with cell. The rectangle is clipped to the grid
	// bounds first, so out-of-range writes are never an error.
	SetRect(r Rect, cell Cell)

	// Clear resets every cell to Transparent.
	Clear()
}
