package core

// Limits for the canvas configuration fields.
const (
	MinDimension = 1
	MaxDimension = 2048
	MinScale     = 1
	MaxScale     = 2048
	MinBrush     = 1
	MaxBrush     = 10
)

// Config is the canvas configuration. Width and Height are in cells,
// ScaleX and ScaleY are display units per cell, and the brush is measured in cells.
type Config struct {
	Width       int
	Height      int
	ScaleX      int
	ScaleY      int
	BrushWidth  int
	BrushHeight int
}

// DefaultConfig returns the configuration the editor starts with on a pixel display.
func DefaultConfig() Config {
	return Config{
		Width:       100,
		Height:      40,
		ScaleX:      8,
		ScaleY:      16,
		BrushWidth:  1,
		BrushHeight: 1,
	}
}

// Normalize clamps every field into its valid range.
func (c Config) Normalize() Config {
	return Config{
		Width:       Clamp(c.Width, MinDimension, MaxDimension),
		Height:      Clamp(c.Height, MinDimension, MaxDimension),
		ScaleX:      Clamp(c.ScaleX, MinScale, MaxScale),
		ScaleY:      Clamp(c.ScaleY, MinScale, MaxScale),
		BrushWidth:  Clamp(c.BrushWidth, MinBrush, MaxBrush),
		BrushHeight: Clamp(c.BrushHeight, MinBrush, MaxBrush),
	}
}

// DisplaySize returns the size of the canvas in display units.
func (c Config) DisplaySize() (width, height int) {
	return c.Width * c.ScaleX, c.Height * c.ScaleY
}

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
