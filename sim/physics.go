package sim

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/olivierh59500/gravity-sim-go/space"
)

const (
	// Pairs closer than this exert no force; the formula divides by distance.
	minDistance = 1e-9

	// Below this many particles the force pass stays on the calling goroutine.
	parallelThreshold = 64
)

type gravityParams struct {
	g           float64
	dt          float64
	damping     float64
	mergeFactor float64
	workers     int
}

// stepGravity advances ps by one frame and returns the survivors and the
// number of merges. The pass is brute force, O(n^2).
//
// Merges run first, sequentially, so the survivor of a merge may absorb
// further particles in the same pass. Forces are then accumulated into
// per-worker slices and folded, and only then applied, so no two goroutines
// ever write the same particle.
func stepGravity(ps []Particle, p gravityParams) ([]Particle, int) {
	merges := mergeCollisions(ps, p.mergeFactor)
	dv := accumulate(ps, p.g, p.dt, p.workers)
	for i := range ps {
		if ps[i].Dead() {
			continue
		}
		ps[i].Vel = ps[i].Vel.Add(dv[i]).MulScalar(p.damping)
		ps[i].Pos = ps[i].Pos.Add(ps[i].Vel)
	}
	return compact(ps), merges
}

// mergeCollisions merges every overlapping pair into the lower index and
// tombstones the higher one.
func mergeCollisions(ps []Particle, factor float64) int {
	n := 0
	for i := range ps {
		if ps[i].Dead() {
			continue
		}
		for j := i + 1; j < len(ps); j++ {
			if ps[j].Dead() {
				continue
			}
			d := ps[j].Pos.Sub(ps[i].Pos).Len()
			if d < factor*math.Max(ps[i].Radius, ps[j].Radius) {
				ps[i] = merge(ps[i], ps[j])
				ps[j] = Particle{}
				n++
			}
		}
	}
	return n
}

// accumulate returns the velocity change of every particle for one step.
func accumulate(ps []Particle, g, dt float64, workers int) []vec {
	n := len(ps)
	dv := make([]vec, n)
	if n < 2 {
		return dv
	}
	workers = workerCount(workers, n)
	if n < parallelThreshold || workers == 1 {
		pairForces(ps, g, dt, 0, 1, dv)
		return dv
	}

	// Worker w owns rows w, w+workers, ... and writes only its own slice.
	partial := make([][]vec, workers)
	var eg errgroup.Group
	for w := range workers {
		eg.Go(func() error {
			local := make([]vec, n)
			pairForces(ps, g, dt, w, workers, local)
			partial[w] = local
			return nil
		})
	}
	_ = eg.Wait()

	parallelRange(n, workers, func(lo, hi int) {
		for _, local := range partial {
			for i := lo; i < hi; i++ {
				dv[i] = dv[i].Add(local[i])
			}
		}
	})
	return dv
}

// pairForces adds the gravity of every pair (i, j), i < j, for rows i
// starting at offset and advancing by stride. Newton's third law gives the
// contribution to j for free.
func pairForces(ps []Particle, g, dt float64, offset, stride int, dv []vec) {
	for i := offset; i < len(ps); i += stride {
		a := ps[i]
		if a.Dead() {
			continue
		}
		for j := i + 1; j < len(ps); j++ {
			b := ps[j]
			if b.Dead() {
				continue
			}
			delta := b.Pos.Sub(a.Pos)
			d := delta.Len()
			if d < minDistance {
				continue
			}
			f := g * a.Mass * b.Mass / (d * d)
			if math.IsInf(f, 0) || math.IsNaN(f) {
				continue
			}
			force := delta.DivScalar(d).MulScalar(f)
			dv[i] = dv[i].Add(force.MulScalar(dt / a.Mass))
			dv[j] = dv[j].Sub(force.MulScalar(dt / b.Mass))
		}
	}
}

// stepCursor pulls every particle toward target with a force inversely
// proportional to distance. Inside repel the particle is instead kicked
// against its own velocity so nothing collapses onto the cursor.
func stepCursor(ps []Particle, target vec, pull, repel, damping float64, workers int) {
	parallelRange(len(ps), workerCount(workers, len(ps)), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			p := &ps[i]
			dist := p.Pos.Sub(target)
			d := dist.Len()
			if d > repel {
				p.Vel = p.Vel.Sub(dist.MulScalar(pull / d))
			} else {
				// +1 per negative component, -1 otherwise
				neg := space.Map(p.Vel, func(v float64) float64 { return b2f(v < 0) })
				p.Vel = p.Vel.Add(neg.MulScalar(2).SubScalar(1))
			}
			p.Vel = p.Vel.MulScalar(damping)
			p.Pos = p.Pos.Add(p.Vel)
		}
	})
}

// parallelRange splits [0, n) into at most workers contiguous chunks and
// runs fn on each. Chunks never overlap.
func parallelRange(n, workers int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	if workers <= 1 || n < parallelThreshold {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var eg errgroup.Group
	eg.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		eg.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = eg.Wait()
}

func workerCount(requested, n int) int {
	w := requested
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	return max(1, min(w, n))
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
