package input

import (
	"math"
	"testing"
	"time"

	"github.com/olivierh59500/gravity-sim-go/space"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestReducer() (*Reducer, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	r := NewReducer(DefaultKeyCooldown, DefaultDragThreshold)
	r.SetClock(clk.now)
	return r, clk
}

func screen(x, y float64) space.Vec2[float64, space.Screen] {
	return space.V[float64, space.Screen](x, y)
}

func TestTapIsEdgeTriggered(t *testing.T) {
	r, clk := newTestReducer()

	r.KeyDown(KeySpace)
	f := r.Reduce()
	if !f.IsTapped(KeySpace) || !f.IsHeld(KeySpace) {
		t.Fatalf("first frame: tapped=%v held=%v, want both", f.IsTapped(KeySpace), f.IsHeld(KeySpace))
	}
	r.EndFrame()

	for i := 0; i < 5; i++ {
		clk.advance(16 * time.Millisecond)
		f = r.Reduce()
		if f.IsTapped(KeySpace) {
			t.Fatalf("frame %d: tap still set", i+2)
		}
		if !f.IsHeld(KeySpace) {
			t.Fatalf("frame %d: key no longer held", i+2)
		}
		r.EndFrame()
	}
}

func TestHeldKeyRepeatYieldsOneTapPerCooldown(t *testing.T) {
	r, clk := newTestReducer()
	const (
		frame  = 16 * time.Millisecond
		repeat = 32 * time.Millisecond
		total  = 2 * time.Second
	)

	var taps []time.Duration
	var elapsed, sinceRepeat time.Duration
	r.KeyDown(KeyUp)
	for elapsed < total {
		f := r.Reduce()
		if f.IsTapped(KeyUp) {
			taps = append(taps, elapsed)
		}
		r.EndFrame()

		clk.advance(frame)
		elapsed += frame
		sinceRepeat += frame
		if sinceRepeat >= repeat {
			sinceRepeat = 0
			r.KeyDown(KeyUp) // OS auto-repeat
		}
	}

	if len(taps) < 2 {
		t.Fatalf("got %d taps over %v, want several", len(taps), total)
	}
	maxTaps := int(total/DefaultKeyCooldown) + 1
	if len(taps) > maxTaps {
		t.Errorf("got %d taps over %v, want at most %d", len(taps), total, maxTaps)
	}
	for i := 1; i < len(taps); i++ {
		if gap := taps[i] - taps[i-1]; gap <= DefaultKeyCooldown {
			t.Errorf("taps %d and %d only %v apart", i-1, i, gap)
		}
	}
}

func TestReleaseIgnoresCooldown(t *testing.T) {
	r, clk := newTestReducer()

	r.KeyDown(KeyW)
	clk.advance(time.Millisecond)
	r.KeyUp(KeyW)
	f := r.Reduce()
	if f.IsHeld(KeyW) {
		t.Error("key still held after release inside cooldown")
	}
	if !f.IsTapped(KeyW) {
		t.Error("tap lost when key released in the same frame")
	}
	r.EndFrame()

	clk.advance(10 * time.Millisecond)
	r.KeyDown(KeyW)
	if f := r.Reduce(); f.IsHeld(KeyW) || f.IsTapped(KeyW) {
		t.Error("re-press inside cooldown was accepted")
	}
	r.EndFrame()

	clk.advance(DefaultKeyCooldown)
	r.KeyDown(KeyW)
	if f := r.Reduce(); !f.IsTapped(KeyW) {
		t.Error("press after cooldown was rejected")
	}
}

func TestTapsClearedEvenWhenUnread(t *testing.T) {
	r, _ := newTestReducer()
	r.KeyDown(KeyC)
	r.EndFrame()
	if f := r.Reduce(); f.IsTapped(KeyC) {
		t.Error("unconsumed tap survived EndFrame")
	}
}

func TestInvalidKeyIgnored(t *testing.T) {
	r, _ := newTestReducer()
	r.KeyDown(Key(200))
	r.KeyUp(Key(200))
	f := r.Reduce()
	if f.IsTapped(Key(200)) || f.IsHeld(Key(200)) {
		t.Error("invalid key reported as set")
	}
	if Key(200).String() != "Unknown" {
		t.Errorf("String() = %q", Key(200).String())
	}
}

func TestMousePhases(t *testing.T) {
	r, _ := newTestReducer()
	step := func() Mouse {
		m := r.Reduce().Mouse
		r.EndFrame()
		return m
	}

	r.MouseMove(screen(10, 10))
	if m := step(); m.Phase != PhaseUp {
		t.Fatalf("idle phase = %v, want up", m.Phase)
	}

	r.MouseButton(true)
	if m := step(); m.Phase != PhasePress {
		t.Fatalf("phase = %v, want press", m.Phase)
	}

	r.MouseMove(screen(12, 11)) // inside the dead zone
	if m := step(); m.Phase != PhaseDown {
		t.Fatalf("phase = %v, want down", m.Phase)
	}

	r.MouseMove(screen(20, 10))
	m := step()
	if m.Phase != PhaseDrag || !m.Dragging() {
		t.Fatalf("phase = %v, want drag", m.Phase)
	}

	r.MouseMove(screen(11, 10)) // back inside the dead zone, still a drag
	if m := step(); m.Phase != PhaseDrag {
		t.Fatalf("phase = %v after returning, want drag", m.Phase)
	}

	r.MouseMove(screen(20, 10))
	r.MouseButton(false)
	m = step()
	if !m.Flung() || m.Clicked() {
		t.Fatalf("release: flung=%v clicked=%v, want flung", m.Flung(), m.Clicked())
	}
	if m.Press != screen(10, 10) || m.Release != screen(20, 10) {
		t.Errorf("gesture %v -> %v, want (10,10) -> (20,10)", m.Press, m.Release)
	}

	if m := step(); m.Phase != PhaseUp {
		t.Errorf("after release phase = %v, want up", m.Phase)
	}
}

func TestClickInsideOneFrame(t *testing.T) {
	r, _ := newTestReducer()
	r.MouseMove(screen(5, 5))
	r.MouseButton(true)
	r.MouseButton(false)
	m := r.Reduce().Mouse
	if !m.Clicked() {
		t.Errorf("phase = %v dragged = %v, want click", m.Phase, m.Dragged)
	}
}

func TestSlingshotOpposesDrag(t *testing.T) {
	scale := space.NewScale[int, space.Screen, space.Render](1)
	viewport := space.V[int, space.Render](100, 100)

	m := Mouse{
		Press:   screen(10, 10),
		Release: screen(20, 10),
		Pos:     screen(20, 10),
		Phase:   PhaseRelease,
		Dragged: true,
	}
	v := m.Slingshot(scale, viewport, 20)
	if v.X >= 0 {
		t.Errorf("x velocity = %v, want negative", v.X)
	}
	if math.Abs(v.X - -2) > 1e-12 || v.Y != 0 {
		t.Errorf("velocity = %v, want (-2, 0)", v)
	}
}

func TestSlingshotScalesToRenderCells(t *testing.T) {
	viewport := space.V[int, space.Render](50, 50)
	m := Mouse{Press: screen(0, 0), Pos: screen(0, 40), Phase: PhaseDrag, Dragged: true}

	v1 := m.Slingshot(space.NewScale[int, space.Screen, space.Render](1), viewport, 10)
	v2 := m.Slingshot(space.NewScale[int, space.Screen, space.Render](2), viewport, 10)
	if math.Abs(v1.Y-2*v2.Y) > 1e-12 {
		t.Errorf("scale 1 gives %v, scale 2 gives %v; want half", v1, v2)
	}
}

func TestSlingshotZeroViewport(t *testing.T) {
	m := Mouse{Press: screen(0, 0), Pos: screen(10, 0)}
	v := m.Slingshot(space.NewScale[int, space.Screen, space.Render](1), space.Vec2[int, space.Render]{}, 20)
	if v != (space.Vec2[float64, space.World]{}) {
		t.Errorf("velocity = %v for empty viewport, want zero", v)
	}
}
