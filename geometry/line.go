package geometry

import "tpaint/core"

// Line returns the cells of an 8-connected line from one cell to another
// using Bresenham's algorithm. The first element is always from and the
// last is always to; consecutive cells differ by at most 1 on each axis.
func Line(from, to core.Point) []core.Point {
	dx := Abs(to.X - from.X)
	dy := Abs(to.Y - from.Y)

	sx := 1
	if from.X > to.X {
		sx = -1
	}
	sy := 1
	if from.Y > to.Y {
		sy = -1
	}

	points := make([]core.Point, 0, max(dx, dy)+1)
	points = append(points, from)

	x, y := from.X, from.Y
	err := dx - dy
	for x != to.X || y != to.Y {
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
		points = append(points, core.Point{X: x, Y: y})
	}

	return points
}
