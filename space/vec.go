// Package space provides 2D vectors tagged with the coordinate space they
// belong to. The tag is a type parameter, so adding a Screen vector to a
// World vector is a compile error rather than a rendering bug.
//
// Three spaces exist:
//   - Screen: raw window pixels
//   - Render: pixel-buffer cells (screen pixels divided by the scale factor)
//   - World: simulation coordinates (render cells offset by the camera)
//
// Values only move between spaces through Scale, Unscale, ToWorld, ToRender
// and, at documented boundaries, CastUnit.
package space

import "math"

// Space is implemented by the zero-size coordinate space markers.
type Space interface {
	Screen | Render | World
}

// Screen tags raw window pixel coordinates.
type Screen struct{}

// Render tags pixel-buffer cell coordinates.
type Render struct{}

// World tags simulation coordinates.
type World struct{}

// Number is the set of component types a vector may hold.
type Number interface {
	~int | ~int32 | ~int64 | ~uint32 | ~float32 | ~float64
}

// Vec2 is a 2D vector of T in coordinate space S.
type Vec2[T Number, S Space] struct {
	X, Y T
}

// V builds a vector; the space must be given explicitly, e.g. V[float64, World](1, 2).
func V[T Number, S Space](x, y T) Vec2[T, S] {
	return Vec2[T, S]{X: x, Y: y}
}

func (v Vec2[T, S]) Add(o Vec2[T, S]) Vec2[T, S] { return Vec2[T, S]{v.X + o.X, v.Y + o.Y} }
func (v Vec2[T, S]) Sub(o Vec2[T, S]) Vec2[T, S] { return Vec2[T, S]{v.X - o.X, v.Y - o.Y} }
func (v Vec2[T, S]) Mul(o Vec2[T, S]) Vec2[T, S] { return Vec2[T, S]{v.X * o.X, v.Y * o.Y} }
func (v Vec2[T, S]) Div(o Vec2[T, S]) Vec2[T, S] { return Vec2[T, S]{v.X / o.X, v.Y / o.Y} }

func (v Vec2[T, S]) AddScalar(k T) Vec2[T, S] { return Vec2[T, S]{v.X + k, v.Y + k} }
func (v Vec2[T, S]) SubScalar(k T) Vec2[T, S] { return Vec2[T, S]{v.X - k, v.Y - k} }
func (v Vec2[T, S]) MulScalar(k T) Vec2[T, S] { return Vec2[T, S]{v.X * k, v.Y * k} }
func (v Vec2[T, S]) DivScalar(k T) Vec2[T, S] { return Vec2[T, S]{v.X / k, v.Y / k} }

// Clamp limits each component to the matching components of lo and hi.
func (v Vec2[T, S]) Clamp(lo, hi Vec2[T, S]) Vec2[T, S] {
	return Vec2[T, S]{clamp(v.X, lo.X, hi.X), clamp(v.Y, lo.Y, hi.Y)}
}

// Len returns the Euclidean length as float64.
func (v Vec2[T, S]) Len() float64 {
	x, y := float64(v.X), float64(v.Y)
	return math.Sqrt(x*x + y*y)
}

// Area returns X*Y. Used for buffer sizing.
func (v Vec2[T, S]) Area() T {
	return v.X * v.Y
}

// Map applies f to both components. The result may change numeric type but
// never space.
func Map[D, T Number, S Space](v Vec2[T, S], f func(T) D) Vec2[D, S] {
	return Vec2[D, S]{f(v.X), f(v.Y)}
}

// Cast converts the numeric type, truncating toward zero for float->int.
func Cast[D, T Number, S Space](v Vec2[T, S]) Vec2[D, S] {
	return Vec2[D, S]{D(v.X), D(v.Y)}
}

// CastUnit reinterprets the space tag without touching the values. Only
// call it where two spaces are known to share an origin and unit.
func CastUnit[D Space, T Number, S Space](v Vec2[T, S]) Vec2[T, D] {
	return Vec2[T, D]{v.X, v.Y}
}

func clamp[T Number](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
