package sim

import (
	"github.com/aquilax/go-perlin"

	"github.com/olivierh59500/gravity-sim-go/space"
)

// Nebula tuning.
const (
	nebulaSpacing   = 12   // render cells between noise samples
	nebulaFrequency = 64.0 // render cells per noise unit
	nebulaThreshold = 0.15 // minimum noise for a grain to appear
	nebulaMaxRadius = 3.0
)

// seedParticles builds the initial particle set for cfg over a viewport of
// the given size.
func seedParticles(cfg Config, size space.Vec2[int, space.Render]) []Particle {
	switch cfg.Seed {
	case SeedEmpty:
		return nil
	case SeedNebula:
		return nebula(cfg, size)
	default:
		return binary(cfg)
	}
}

// binary places two resting suns.
func binary(cfg Config) []Particle {
	var zero vec
	return []Particle{
		NewParticle(space.V[float64, space.World](120, 120), zero, cfg.SunRadius, cfg.SunDensity),
		NewParticle(space.V[float64, space.World](320, 320), zero, cfg.SunRadius, cfg.SunDensity),
	}
}

// nebula scatters resting grains on a grid wherever Perlin noise exceeds a
// threshold; denser noise gives larger grains. The same NoiseSeed always
// produces the same field.
func nebula(cfg Config, size space.Vec2[int, space.Render]) []Particle {
	noise := perlin.NewPerlin(2, 2, 3, cfg.NoiseSeed)
	var ps []Particle
	var zero vec
	for y := nebulaSpacing / 2; y < size.Y; y += nebulaSpacing {
		for x := nebulaSpacing / 2; x < size.X; x += nebulaSpacing {
			n := noise.Noise2D(float64(x)/nebulaFrequency, float64(y)/nebulaFrequency)
			if n < nebulaThreshold {
				continue
			}
			r := 1 + (n-nebulaThreshold)/(1-nebulaThreshold)*(nebulaMaxRadius-1)
			pos := space.V[float64, space.World](float64(x), float64(y))
			ps = append(ps, NewParticle(pos, zero, min(r, nebulaMaxRadius), cfg.Density))
		}
	}
	return ps
}
