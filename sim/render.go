package sim

import (
	"math"

	"github.com/olivierh59500/gravity-sim-go/raster"
	"github.com/olivierh59500/gravity-sim-go/space"
)

const arrowHead = 8 // cells

// renderParticles draws every visible particle as a circle outline.
func (s *Simulation) renderParticles() {
	w, h := float64(s.size.X), float64(s.size.Y)
	fg := s.cfg.Palette.Particle
	for _, p := range s.particles {
		pos := space.ToRender(p.Pos, s.camera)
		r := p.Radius
		if pos.X+r < 0 || pos.Y+r < 0 || pos.X-r >= w || pos.Y-r >= h {
			continue
		}
		c := cell(pos)
		raster.CircleOutline.Draw(max(1, int(r)), func(dx, dy int) {
			s.buf.Set(c.X+dx, c.Y+dy, fg)
		})
	}
}

// renderCursor draws the drag guide while dragging, otherwise erases the
// previous frame's brush outline and draws the current one.
func (s *Simulation) renderCursor() {
	m := s.state.Mouse
	if m.Dragging() {
		from := cell(s.screenToRender(m.Press))
		to := cell(s.screenToRender(m.Pos))
		guide := s.cfg.Palette.Guide
		raster.Arrow(from.X, from.Y, to.X, to.Y, arrowHead, func(x, y int) {
			s.buf.Set(x, y, guide)
		})
		return
	}
	s.eraseCursor(s.prev)
	s.drawCursor(s.state)
}

// eraseCursor clears the brush outline recorded in st, touching only pixels
// that still hold the cursor color so particles drawn over it survive.
func (s *Simulation) eraseCursor(st State) {
	c := cell(space.ScaleVec(st.Mouse.Pos, st.Scale))
	cursor, bg := s.cfg.Palette.Cursor, s.cfg.Palette.Background
	st.Shape.Draw(st.DrawSize, func(dx, dy int) {
		s.buf.Replace(c.X+dx, c.Y+dy, cursor, bg)
	})
}

func (s *Simulation) drawCursor(st State) {
	c := cell(space.ScaleVec(st.Mouse.Pos, st.Scale))
	cursor := s.cfg.Palette.Cursor
	st.Shape.Draw(st.DrawSize, func(dx, dy int) {
		s.buf.Set(c.X+dx, c.Y+dy, cursor)
	})
}

// cell maps a render position to the buffer cell containing it.
func cell(p space.Vec2[float64, space.Render]) space.Vec2[int, space.Render] {
	return space.Cast[int](space.Map(p, math.Floor))
}
