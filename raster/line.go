package raster

import "math"

// Line emits every point of the Bresenham line from (x0, y0) to (x1, y1),
// both ends included.
func Line(x0, y0, x1, y1 int, emit func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		emit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Arrow draws a line from (x0, y0) to the tip (x1, y1) plus two head strokes
// swept back 30 degrees from the shaft. The head length is a third of the
// shaft, capped at maxHead.
func Arrow(x0, y0, x1, y1, maxHead int, emit func(x, y int)) {
	Line(x0, y0, x1, y1, emit)

	fx, fy := float64(x1-x0), float64(y1-y0)
	length := math.Hypot(fx, fy)
	if length < 1 {
		return
	}
	head := math.Min(length/3, float64(maxHead))
	back := math.Atan2(-fy, -fx)
	for _, side := range [2]float64{-math.Pi / 6, math.Pi / 6} {
		sin, cos := math.Sincos(back + side)
		hx := x1 + int(math.Round(cos*head))
		hy := y1 + int(math.Round(sin*head))
		Line(x1, y1, hx, hy, emit)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
