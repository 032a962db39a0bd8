package sim

import (
	"github.com/olivierh59500/gravity-sim-go/input"
)

// Update runs one frame. The order is fixed: reduce input, spawn from the
// mouse, apply key actions, clear the buffer, step physics if running,
// draw particles, draw the cursor overlay, commit the state, clear taps.
func (s *Simulation) Update(r *input.Reducer) {
	in := r.Reduce()

	s.spawnFromMouse(in.Mouse)
	s.handleKeys(&in)

	s.buf.Clear(s.cfg.Palette.Background)

	s.merges = 0
	if s.state.Run != Paused {
		s.Step()
		if s.state.Run == SteppingOnce {
			s.state.Run = Paused
		}
	}

	s.renderParticles()
	s.renderCursor()

	if fps := uint64(s.cfg.TargetFPS); fps > 0 && s.state.Frame%fps == 0 {
		Logger().Debug("frame", "n", s.state.Frame, "particles", len(s.particles))
	}

	s.prev = s.state
	r.EndFrame()
	s.state.Frame++
}

// spawnFromMouse turns a finished gesture into a particle: a click drops
// one at rest, a drag launches one from the press point against the drag.
func (s *Simulation) spawnFromMouse(m input.Mouse) {
	var v vec
	switch {
	case m.Flung():
		v = m.Slingshot(s.state.Scale, s.size, s.cfg.DrawbackMultiplier)
	case m.Clicked():
	default:
		return
	}
	s.AddParticle(NewParticle(s.screenToWorld(m.Press), v, float64(s.state.DrawSize), s.cfg.Density))
}

func (s *Simulation) handleKeys(in *input.Frame) {
	log := Logger()

	if in.IsTapped(input.KeySpace) {
		if s.state.Run == Running {
			s.state.Run = Paused
		} else {
			s.state.Run = Running
		}
		log.Info("toggled simulation", "state", s.state.Run)
	} else if in.IsTapped(input.KeyRight) && s.state.Run == Paused {
		s.state.Run = SteppingOnce
	}

	if in.IsTapped(input.KeyC) {
		s.Clear()
		log.Info("cleared particles")
	} else if in.IsTapped(input.KeyR) {
		s.Reset()
		log.Info("reset particles", "seed", s.cfg.Seed, "count", len(s.particles))
	}

	if in.IsTapped(input.KeyG) {
		if s.physics == PhysicsGravity {
			s.physics = PhysicsCursor
		} else {
			s.physics = PhysicsGravity
		}
		log.Info("physics mode", "mode", s.physics)
	}

	speed := s.cfg.CameraSpeed
	if in.IsHeld(input.KeyW) {
		s.cameraVel.Y -= speed
	}
	if in.IsHeld(input.KeyS) {
		s.cameraVel.Y += speed
	}
	if in.IsHeld(input.KeyD) {
		s.cameraVel.X += speed
	}
	if in.IsHeld(input.KeyA) {
		s.cameraVel.X -= speed
	}

	if in.IsTapped(input.KeyUp) {
		s.state.DrawSize++
	}
	if in.IsTapped(input.KeyDown) {
		s.state.DrawSize--
	}
	s.state.DrawSize = max(1, min(s.state.DrawSize, s.cfg.MaxDrawSize))

	if in.IsTapped(input.KeyTab) {
		s.state.Shape = s.state.Shape.Next()
	}

	if in.IsTapped(input.KeyMinus) {
		s.Rescale(s.state.Scale.Get() - 1)
	} else if in.IsTapped(input.KeyEqual) {
		s.Rescale(s.state.Scale.Get() + 1)
	}

	// velocity settles where damping balances the per-frame push
	s.cameraVel = s.cameraVel.MulScalar(s.cfg.CameraDamping)
	s.camera = s.camera.Add(s.cameraVel)

	s.state.Mouse = in.Mouse
}
