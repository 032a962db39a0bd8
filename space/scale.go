package space

// Scale is a factor converting Src vectors to Dst vectors by division.
// A Scale[int, Screen, Render] of 3 means one render cell covers 3x3 screen
// pixels.
type Scale[T Number, Src, Dst Space] struct {
	factor T
}

// NewScale panics on a non-positive factor; callers clamp user input first.
func NewScale[T Number, Src, Dst Space](factor T) Scale[T, Src, Dst] {
	if factor <= 0 {
		panic("space: scale factor must be positive")
	}
	return Scale[T, Src, Dst]{factor: factor}
}

// Get returns the raw factor.
func (s Scale[T, Src, Dst]) Get() T {
	if s.factor == 0 {
		return 1
	}
	return s.factor
}

// ScaleVec divides v by the factor and retags it as Dst. Integer vectors
// truncate, matching how a window size maps onto whole buffer cells.
func ScaleVec[T, F Number, Src, Dst Space](v Vec2[T, Src], s Scale[F, Src, Dst]) Vec2[T, Dst] {
	f := T(s.Get())
	return Vec2[T, Dst]{v.X / f, v.Y / f}
}

// UnscaleVec multiplies v by the factor and retags it as Src.
func UnscaleVec[T, F Number, Src, Dst Space](v Vec2[T, Dst], s Scale[F, Src, Dst]) Vec2[T, Src] {
	f := T(s.Get())
	return Vec2[T, Src]{v.X * f, v.Y * f}
}

// ToWorld offsets a render position by the camera, which holds the world
// position of the viewport's top-left cell.
func ToWorld(v Vec2[float64, Render], camera Vec2[float64, World]) Vec2[float64, World] {
	return CastUnit[World](v).Add(camera)
}

// ToRender is the inverse of ToWorld.
func ToRender(v Vec2[float64, World], camera Vec2[float64, World]) Vec2[float64, Render] {
	return CastUnit[Render](v.Sub(camera))
}
