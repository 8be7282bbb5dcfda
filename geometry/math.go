// Package geometry maps display coordinates onto the cell grid and
// rasterizes lines between cells.
package geometry

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1 according to the sign of x.
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// FloorDiv divides a by b rounding toward negative infinity.
// b must be positive.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// ChebyshevDistance returns the number of 8-connected steps between two cells.
func ChebyshevDistance(x1, y1, x2, y2 int) int {
	return max(Abs(x2-x1), Abs(y2-y1))
}

// ManhattanDistance calculates the Manhattan distance between two points.
func ManhattanDistance(x1, y1, x2, y2 int) int {
	return Abs(x2-x1) + Abs(y2-y1)
}
