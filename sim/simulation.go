// Package sim is the simulation engine: particle state, the gravity step,
// rasterization of particles and the cursor overlay into an RGBA buffer,
// and the per-frame orchestration that ties input to all of it.
package sim

import (
	"fmt"
	"time"

	"github.com/olivierh59500/gravity-sim-go/input"
	"github.com/olivierh59500/gravity-sim-go/raster"
	"github.com/olivierh59500/gravity-sim-go/space"
)

// RunState is the physics run state.
type RunState uint8

const (
	Paused RunState = iota
	Running
	SteppingOnce // runs for exactly one frame, then reverts to Paused
)

func (r RunState) String() string {
	switch r {
	case Paused:
		return "paused"
	case Running:
		return "running"
	case SteppingOnce:
		return "stepping"
	}
	return "unknown"
}

// State is the per-frame user-facing state. A copy of the previous frame's
// State is kept only to erase the old cursor overlay.
type State struct {
	Frame    uint64
	Shape    raster.Shape
	DrawSize int
	Scale    space.Scale[int, space.Screen, space.Render]
	Run      RunState
	Mouse    input.Mouse
}

// View is the read-only frame handed to a renderer. Pixels is valid until
// the next Update.
type View struct {
	Pixels    []byte
	Size      space.Vec2[int, space.Render]
	Scale     int
	Frame     uint64
	Elapsed   time.Duration
	Particles int
	Merges    int // merges during the last step
}

// Simulation owns the particles and the pixel buffer. It is not safe for
// concurrent use; frontends drive it from their frame callback.
type Simulation struct {
	cfg     Config
	physics PhysicsMode

	state State
	prev  State

	window    space.Vec2[int, space.Screen]
	size      space.Vec2[int, space.Render]
	camera    vec // world position of the viewport's top-left cell
	cameraVel vec

	buf       *raster.Buffer
	particles []Particle
	merges    int
	start     time.Time
}

// New creates a simulation sized to the configured window.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scale := space.NewScale[int, space.Screen, space.Render](cfg.Scale)
	window := space.V[int, space.Screen](cfg.WindowWidth, cfg.WindowHeight)
	size := space.ScaleVec(window, scale)
	if size.X < 1 || size.Y < 1 {
		return nil, fmt.Errorf("sim: window %dx%d is smaller than one cell at scale %d",
			window.X, window.Y, cfg.Scale)
	}

	s := &Simulation{
		cfg:     cfg,
		physics: cfg.Physics,
		window:  window,
		size:    size,
		buf:     raster.NewBuffer(size.X, size.Y),
		start:   time.Now(),
	}
	s.buf.Clear(cfg.Palette.Background)
	s.state = State{
		Shape:    raster.CircleFill,
		DrawSize: cfg.DrawSize,
		Scale:    scale,
		Run:      Paused,
	}
	s.prev = s.state
	s.particles = seedParticles(cfg, size)
	return s, nil
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }

// State returns the current state snapshot.
func (s *Simulation) State() State { return s.state }

// Size returns the viewport in render cells.
func (s *Simulation) Size() space.Vec2[int, space.Render] { return s.size }

// Camera returns the world position of the viewport's top-left cell.
func (s *Simulation) Camera() space.Vec2[float64, space.World] { return s.camera }

// Physics returns the active force model.
func (s *Simulation) Physics() PhysicsMode { return s.physics }

// Particles returns a copy of the live particles.
func (s *Simulation) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// AddParticle appends p to the simulation.
func (s *Simulation) AddParticle(p Particle) {
	s.particles = append(s.particles, p)
}

// View returns the finished frame.
func (s *Simulation) View() View {
	s.buf.Check()
	return View{
		Pixels:    s.buf.Pix(),
		Size:      s.size,
		Scale:     s.state.Scale.Get(),
		Frame:     s.state.Frame,
		Elapsed:   time.Since(s.start),
		Particles: len(s.particles),
		Merges:    s.merges,
	}
}

// Resize adapts the buffer to a new window size in screen pixels. Empty
// windows (minimized, or zero on either axis) are ignored. Particles are
// left untouched. It reports whether the buffer was reallocated.
func (s *Simulation) Resize(window space.Vec2[int, space.Screen]) bool {
	if window.X <= 0 || window.Y <= 0 {
		return false
	}
	s.window = window
	return s.reallocate()
}

// Rescale sets the number of screen pixels per buffer cell, clamped to
// [1, MaxScale], and reallocates the buffer.
func (s *Simulation) Rescale(factor int) {
	factor = max(1, min(factor, s.cfg.MaxScale))
	if factor == s.state.Scale.Get() {
		return
	}
	s.state.Scale = space.NewScale[int, space.Screen, space.Render](factor)
	s.reallocate()
	Logger().Info("rescaled", "scale", factor, "size", s.size)
}

// reallocate replaces size and buffer together so the buffer length always
// matches 4 * size.X * size.Y.
func (s *Simulation) reallocate() bool {
	size := space.ScaleVec(s.window, s.state.Scale)
	if size.X < 1 || size.Y < 1 {
		Logger().Debug("resize skipped, window smaller than one cell", "window", s.window)
		return false
	}
	if size == s.size {
		return false
	}
	buf := raster.NewBuffer(size.X, size.Y)
	buf.Clear(s.cfg.Palette.Background)
	s.size, s.buf = size, buf
	Logger().Debug("resized", "window", s.window, "size", size, "scale", s.state.Scale.Get(), "bytes", len(buf.Pix()))
	return true
}

// Step runs one physics pass with the active force model, whatever the run
// state.
func (s *Simulation) Step() {
	switch s.physics {
	case PhysicsCursor:
		target := s.screenToWorld(s.state.Mouse.Pos)
		stepCursor(s.particles, target, s.cfg.CursorPull, s.cfg.CursorRepelRadius, s.cfg.Damping, s.cfg.Workers)
	default:
		var n int
		s.particles, n = stepGravity(s.particles, gravityParams{
			g:           s.cfg.GravConst,
			dt:          s.cfg.Dt(),
			damping:     s.cfg.Damping,
			mergeFactor: s.cfg.MergeFactor,
			workers:     s.cfg.Workers,
		})
		s.merges += n
	}
}

// Clear removes every particle.
func (s *Simulation) Clear() {
	clear(s.particles)
	s.particles = s.particles[:0]
}

// Reset replaces the particles with the configured seed.
func (s *Simulation) Reset() {
	s.particles = seedParticles(s.cfg, s.size)
}

func (s *Simulation) screenToRender(p space.Vec2[float64, space.Screen]) space.Vec2[float64, space.Render] {
	return space.ScaleVec(p, s.state.Scale)
}

func (s *Simulation) screenToWorld(p space.Vec2[float64, space.Screen]) vec {
	return space.ToWorld(s.screenToRender(p), s.camera)
}
