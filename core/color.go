package core

import "fmt"

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// Black and White are the default primary and secondary colors.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// String returns the color as "rgb(r,g,b)".
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Alpha levels used by cells.
const (
	AlphaTransparent uint8 = 0
	AlphaIndicator   uint8 = 102 // 0.4, used by the rubber preview
	AlphaOpaque      uint8 = 255
)

// Cell is the content of one grid cell.
// The zero value is fully transparent.
type Cell struct {
	Color
	Alpha uint8
}

// Transparent is the empty cell.
var Transparent = Cell{}

// Paint returns an opaque cell of the given color.
func Paint(c Color) Cell {
	return Cell{Color: c, Alpha: AlphaOpaque}
}

// Indicator returns a translucent cell used for previews that must not read as paint.
func Indicator() Cell {
	return Cell{Color: Black, Alpha: AlphaIndicator}
}

// IsTransparent reports whether the cell has no coverage at all.
func (c Cell) IsTransparent() bool {
	return c.Alpha == AlphaTransparent
}

// RGBA implements image/color.Color with alpha-premultiplied components.
func (c Cell) RGBA() (r, g, b, a uint32) {
	a = uint32(c.Alpha)
	r = uint32(c.R) * a / 0xff
	g = uint32(c.G) * a / 0xff
	b = uint32(c.B) * a / 0xff
	return r | r<<8, g | g<<8, b | b<<8, a | a<<8
}

// Swatches are the 16 fixed palette entries offered by the editor.
var Swatches = [16]Color{
	{0, 0, 0},
	{128, 0, 0},
	{0, 128, 0},
	{128, 128, 0},
	{0, 0, 128},
	{128, 0, 128},
	{0, 128, 128},
	{192, 192, 192},
	{128, 128, 128},
	{255, 0, 0},
	{0, 255, 0},
	{255, 255, 0},
	{0, 0, 255},
	{255, 0, 255},
	{0, 255, 255},
	{255, 255, 255},
}
