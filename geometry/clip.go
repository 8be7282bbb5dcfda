package geometry

import (
	"math"

	"tpaint/core"
)

// ClipLine cuts the segment from→to down to the part that lies inside box,
// using Liang–Barsky on cell coordinates. It reports false when the segment
// misses the box entirely. Endpoints already inside the box are returned
// unchanged; cut endpoints are rounded to the nearest cell and kept in the box.
func ClipLine(from, to core.Point, box core.Rect) (core.Point, core.Point, bool) {
	if box.Empty() {
		return from, to, false
	}

	x0, y0 := float64(from.X), float64(from.Y)
	dx, dy := float64(to.X)-x0, float64(to.Y)-y0
	xmin, xmax := float64(box.X), float64(box.X+box.W-1)
	ymin, ymax := float64(box.Y), float64(box.Y+box.H-1)

	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return from, to, false // parallel and outside
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return from, to, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return from, to, false
			}
			t1 = min(t1, r)
		}
	}

	a, b := from, to
	if t0 > 0 {
		a = clipPoint(x0+t0*dx, y0+t0*dy, box)
	}
	if t1 < 1 {
		b = clipPoint(x0+t1*dx, y0+t1*dy, box)
	}
	return a, b, true
}

func clipPoint(x, y float64, box core.Rect) core.Point {
	return core.Point{
		X: core.Clamp(int(math.Round(x)), box.X, box.X+box.W-1),
		Y: core.Clamp(int(math.Round(y)), box.Y, box.Y+box.H-1),
	}
}
