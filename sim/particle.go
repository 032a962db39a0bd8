package sim

import (
	"math"

	"github.com/olivierh59500/gravity-sim-go/space"
)

type vec = space.Vec2[float64, space.World]

// Particle is a body in world space. A zero mass marks a tombstone left by a
// merge; tombstones are removed at the end of each step.
type Particle struct {
	Pos    vec
	Vel    vec
	Mass   float64
	Radius float64
}

// NewParticle derives mass from radius as a sphere of the given density.
func NewParticle(pos, vel vec, radius, density float64) Particle {
	return Particle{
		Pos:    pos,
		Vel:    vel,
		Mass:   4.0 / 3.0 * math.Pi * radius * radius * radius * density,
		Radius: radius,
	}
}

// Dead reports a tombstone.
func (p Particle) Dead() bool {
	return p.Mass == 0
}

// merge combines two particles. The heavier one keeps its position (a wins
// ties), momentum is conserved and areas add up.
func merge(a, b Particle) Particle {
	pos := a.Pos
	if b.Mass > a.Mass {
		pos = b.Pos
	}
	mass := a.Mass + b.Mass
	momentum := a.Vel.MulScalar(a.Mass).Add(b.Vel.MulScalar(b.Mass))
	return Particle{
		Pos:    pos,
		Vel:    momentum.DivScalar(mass),
		Mass:   mass,
		Radius: math.Sqrt(a.Radius*a.Radius + b.Radius*b.Radius),
	}
}

// compact drops tombstones in place.
func compact(ps []Particle) []Particle {
	live := ps[:0]
	for _, p := range ps {
		if !p.Dead() && p.Radius != 0 {
			live = append(live, p)
		}
	}
	clear(ps[len(live):])
	return live
}
