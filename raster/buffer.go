package raster

import "fmt"

// Buffer is a row-major RGBA8 pixel buffer with its origin at the top left.
type Buffer struct {
	width  int
	height int
	pix    []uint8 // 4 bytes per pixel
}

// NewBuffer allocates a buffer filled with the background color.
func NewBuffer(width, height int) *Buffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("raster: negative buffer size %dx%d", width, height))
	}
	b := &Buffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
	b.Clear(Background)
	return b
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Pix returns the raw bytes. The slice is reused across frames.
func (b *Buffer) Pix() []uint8 { return b.pix }

// Check panics if the byte length does not match the dimensions. A mismatch
// means a resize replaced one without the other.
func (b *Buffer) Check() {
	if want := b.width * b.height * 4; len(b.pix) != want {
		panic(fmt.Sprintf("raster: buffer holds %d bytes, %dx%d needs %d", len(b.pix), b.width, b.height, want))
	}
}

// InBounds reports whether (x, y) addresses a pixel.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// Clear fills every pixel with c.
func (b *Buffer) Clear(c Color) {
	if len(b.pix) == 0 {
		return
	}
	b.pix[0], b.pix[1], b.pix[2], b.pix[3] = c.R, c.G, c.B, c.A
	// Doubling copy: each pass copies everything written so far.
	for filled := 4; filled < len(b.pix); filled *= 2 {
		copy(b.pix[filled:], b.pix[:filled])
	}
}

// Set writes c at (x, y). Out-of-bounds writes are dropped and reported as false.
func (b *Buffer) Set(x, y int, c Color) bool {
	if !b.InBounds(x, y) {
		return false
	}
	i := (y*b.width + x) * 4
	b.pix[i+0] = c.R
	b.pix[i+1] = c.G
	b.pix[i+2] = c.B
	b.pix[i+3] = c.A
	return true
}

// At returns the color at (x, y), or false when out of bounds.
func (b *Buffer) At(x, y int) (Color, bool) {
	if !b.InBounds(x, y) {
		return Color{}, false
	}
	i := (y*b.width + x) * 4
	return Color{R: b.pix[i+0], G: b.pix[i+1], B: b.pix[i+2], A: b.pix[i+3]}, true
}

// Replace swaps in c where the pixel currently equals old.
func (b *Buffer) Replace(x, y int, old, c Color) bool {
	if cur, ok := b.At(x, y); !ok || cur != old {
		return false
	}
	return b.Set(x, y, c)
}
