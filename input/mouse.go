package input

import "github.com/olivierh59500/gravity-sim-go/space"

// Phase classifies the primary mouse button for a frame.
type Phase uint8

const (
	PhaseUp      Phase = iota // not pressed
	PhasePress                // went down this frame
	PhaseDown                 // held, not yet moved past the drag threshold
	PhaseDrag                 // held and moved past the drag threshold
	PhaseRelease              // went up this frame
)

func (p Phase) String() string {
	switch p {
	case PhaseUp:
		return "up"
	case PhasePress:
		return "press"
	case PhaseDown:
		return "down"
	case PhaseDrag:
		return "drag"
	case PhaseRelease:
		return "release"
	}
	return "unknown"
}

// Mouse is the reduced pointer state.
type Mouse struct {
	Pos     space.Vec2[float64, space.Screen]
	Press   space.Vec2[float64, space.Screen] // where the current or last gesture began
	Release space.Vec2[float64, space.Screen] // where the last gesture ended
	Phase   Phase
	Dragged bool // the gesture moved past the drag threshold
}

// Dragging reports an in-progress drag.
func (m Mouse) Dragging() bool { return m.Phase == PhaseDrag }

// Clicked reports a release that never became a drag.
func (m Mouse) Clicked() bool { return m.Phase == PhaseRelease && !m.Dragged }

// Flung reports the release of a drag.
func (m Mouse) Flung() bool { return m.Phase == PhaseRelease && m.Dragged }

// Slingshot returns the velocity a drag imparts: the press-to-end vector,
// reversed, scaled into render cells, normalized by the viewport and
// multiplied. Dragging left launches right.
func (m Mouse) Slingshot(
	scale space.Scale[int, space.Screen, space.Render],
	viewport space.Vec2[int, space.Render],
	multiplier float64,
) space.Vec2[float64, space.World] {
	end := m.Pos
	if m.Phase == PhaseRelease {
		end = m.Release
	}
	if viewport.X <= 0 || viewport.Y <= 0 {
		return space.Vec2[float64, space.World]{}
	}
	delta := space.ScaleVec(m.Press.Sub(end), scale)
	v := delta.Div(space.Cast[float64](viewport)).MulScalar(multiplier)
	return space.CastUnit[space.World](v)
}
