// Package raster turns brush shapes and lines into integer pixel offsets
// and owns the RGBA8 pixel buffer they are written into.
package raster

// Shape is a brush primitive that can be rasterized around an origin.
type Shape uint8

const (
	CircleOutline Shape = iota
	CircleFill
	SquareCentered
	shapeCount
)

func (s Shape) String() string {
	switch s {
	case CircleOutline:
		return "circle-outline"
	case CircleFill:
		return "circle-fill"
	case SquareCentered:
		return "square"
	default:
		return "unknown"
	}
}

// Next cycles to the following brush shape.
func (s Shape) Next() Shape {
	return (s + 1) % shapeCount
}

// Draw calls emit once per offset covered by the shape of the given size,
// centered on (0, 0). For circles size is the radius; for the square it is
// the side length. Sizes below 1 and unknown shapes emit nothing.
//
// The circle outline may emit the same offset more than once where octants
// meet; emit must be idempotent.
func (s Shape) Draw(size int, emit func(dx, dy int)) {
	if size < 1 {
		return
	}
	switch s {
	case CircleOutline:
		midpointCircle(size, func(x, y int) {
			emit(x, y)
			emit(-x, y)
			emit(x, -y)
			emit(-x, -y)
			emit(y, x)
			emit(-y, x)
			emit(y, -x)
			emit(-y, -x)
		})
	case CircleFill:
		span := func(x1, x2, y int) {
			for x := x1; x <= x2; x++ {
				emit(x, y)
			}
		}
		midpointCircle(size, func(x, y int) {
			span(-x, x, y)
			span(-x, x, -y)
			span(-y, y, x)
			span(-y, y, -x)
		})
	case SquareCentered:
		half := size / 2
		if half == 0 {
			emit(0, 0)
			return
		}
		for dy := -half; dy < half; dy++ {
			for dx := -half; dx < half; dx++ {
				emit(dx, dy)
			}
		}
	}
}

// midpointCircle walks the first octant of a circle of radius r using the
// integer decision variable d = 3 - 2r, reporting each (x, y) step until x
// passes y.
func midpointCircle(r int, octant func(x, y int)) {
	x, y := 0, r
	d := 3 - 2*r
	octant(x, y)
	for x < y {
		if d < 0 {
			d += 4*x + 6
		} else {
			y--
			d += 4*(x-y) + 10
		}
		x++
		octant(x, y)
	}
}
