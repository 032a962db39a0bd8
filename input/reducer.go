package input

import (
	"time"

	"github.com/olivierh59500/gravity-sim-go/space"
)

// Default tuning.
const (
	DefaultKeyCooldown   = 100 * time.Millisecond
	DefaultDragThreshold = 4.0 // screen pixels
)

// Frame is the reduced input for one frame.
type Frame struct {
	Held   KeySet
	Tapped KeySet
	Mouse  Mouse
}

func (f *Frame) IsHeld(k Key) bool   { return f.Held.Has(k) }
func (f *Frame) IsTapped(k Key) bool { return f.Tapped.Has(k) }

// Reducer accumulates events between frames. Events must not be delivered
// while a frame is being processed; the frontends call it from one goroutine.
type Reducer struct {
	cooldown      time.Duration
	dragThreshold float64
	now           func() time.Time

	held    KeySet
	tapped  KeySet
	lastTap [keyCount]time.Time

	pos     space.Vec2[float64, space.Screen]
	press   space.Vec2[float64, space.Screen]
	release space.Vec2[float64, space.Screen]
	down    bool
	dragged bool

	// latched until EndFrame
	pressed  bool
	released bool
}

// NewReducer creates a reducer. A key press is accepted as a tap only when
// more than cooldown has passed since that key's last accepted tap.
func NewReducer(cooldown time.Duration, dragThreshold float64) *Reducer {
	return &Reducer{
		cooldown:      cooldown,
		dragThreshold: dragThreshold,
		now:           time.Now,
	}
}

// SetClock replaces the time source.
func (r *Reducer) SetClock(now func() time.Time) {
	r.now = now
}

// KeyDown registers a press. Presses inside the cooldown window, including
// OS key repeats, are dropped entirely.
func (r *Reducer) KeyDown(k Key) {
	if !k.Valid() {
		return
	}
	t := r.now()
	if last := r.lastTap[k]; !last.IsZero() && t.Sub(last) <= r.cooldown {
		return
	}
	r.held[k] = true
	r.tapped[k] = true
	r.lastTap[k] = t
}

// KeyUp always clears the held flag.
func (r *Reducer) KeyUp(k Key) {
	if !k.Valid() {
		return
	}
	r.held[k] = false
}

// MouseMove records the cursor position in screen pixels.
func (r *Reducer) MouseMove(p space.Vec2[float64, space.Screen]) {
	r.pos = p
	if r.down && !r.dragged && p.Sub(r.press).Len() > r.dragThreshold {
		r.dragged = true
	}
}

// MouseButton records the primary button state.
func (r *Reducer) MouseButton(down bool) {
	switch {
	case down && !r.down:
		r.down = true
		r.pressed = true
		r.press = r.pos
		r.dragged = false
	case !down && r.down:
		r.down = false
		r.released = true
		r.release = r.pos
	}
}

// Reduce returns the input state for the current frame.
func (r *Reducer) Reduce() Frame {
	var phase Phase
	switch {
	case r.released:
		// a press and release inside one frame still reads as a release
		phase = PhaseRelease
	case r.pressed:
		phase = PhasePress
	case r.down && r.dragged:
		phase = PhaseDrag
	case r.down:
		phase = PhaseDown
	default:
		phase = PhaseUp
	}
	return Frame{
		Held:   r.held,
		Tapped: r.tapped,
		Mouse: Mouse{
			Pos:     r.pos,
			Press:   r.press,
			Release: r.release,
			Phase:   phase,
			Dragged: r.dragged,
		},
	}
}

// EndFrame clears taps and latched mouse edges. It runs every frame whether
// or not the taps were consumed.
func (r *Reducer) EndFrame() {
	r.tapped = KeySet{}
	r.pressed = false
	r.released = false
}
