package main

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/quillaja/gravsim/internal/placement"
	"github.com/quillaja/gravsim/internal/sim"
	"github.com/quillaja/gravsim/internal/vec"
)

// closest a seeded mass may start to the core, km.
const minSeedDistance = 1.0

// seedSystem places a core mass at rest at center, then n masses on circular
// orbits at points sampled uniformly from a disk around it. it goes through
// the same clicks a user would make, so colours and logging match.
func seedSystem(s *sim.Simulator, center vec.Vec2, n int, radius, coreMass float64, rng *rand.Rand) error {
	if s.State().Phase != placement.Idle {
		return errors.New("seed: a mass is awaiting its velocity")
	}
	if radius <= minSeedDistance {
		return errors.Errorf("seed: radius %g too small", radius)
	}

	controls := s.Controls()
	mass, orbit := controls.NewMassValue(), controls.CircularOrbit()
	defer func() {
		controls.SetNewMassValue(mass)
		controls.SetCircularOrbit(orbit)
	}()

	// double click drops the core at rest
	controls.SetCircularOrbit(false)
	controls.SetNewMassValue(coreMass)
	if _, err := s.Click(placement.Click{Pos: center, Button: placement.ButtonPrimary, Count: 2}); err != nil {
		return errors.Wrap(err, "seed core")
	}

	controls.SetNewMassValue(mass)
	controls.SetCircularOrbit(true)
	for i := 0; i < n; i++ {
		var d vec.Vec2
		for d.Len() < minSeedDistance {
			d = uniformSampleDisk(rng, radius)
		}
		if _, err := s.Click(placement.Click{Pos: center.Add(d), Button: placement.ButtonPrimary, Count: 1}); err != nil {
			return errors.Wrapf(err, "seed mass %d", i)
		}
	}
	return nil
}

// uniformly (no bias towards center) sample a disk with the given radius.
func uniformSampleDisk(rng *rand.Rand, radius float64) vec.Vec2 {
	r := radius * math.Sqrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()
	return vec.Polar(r, theta)
}
