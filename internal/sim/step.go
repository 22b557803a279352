package sim

import (
	"math"

	"github.com/quillaja/gravsim/internal/body"
	"github.com/quillaja/gravsim/internal/gravity"
)

// Timestep converts a measured frame rate to seconds per frame. A missing,
// zero or non-finite rate gives 0, a freeze frame.
func Timestep(fps float64) float64 {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 0
	}
	return 1 / fps
}

// Step advances every mass in store by dt.
//
// All accelerations are computed from the positions at the start of the step
// before any mass moves, so no mass sees another's updated position within
// the same step. Pending masses are skipped in both passes.
func Step(store *body.Store, dt float64) {
	masses := store.Masses()

	// 1) accelerations from frame-start positions
	for i := range masses {
		if !masses[i].Active() {
			continue
		}
		store.SetAcceleration(i, gravity.FieldAt(masses, masses[i].Position, i))
	}

	// 2) update positions/velocities
	for i := range masses {
		store.Integrate(i, dt)
	}
}
