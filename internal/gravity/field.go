// Package gravity evaluates the gravitational field of a set of point masses.
//
// The model is brute-force pairwise with no softening: two masses on the same
// point produce non-finite accelerations, and those are returned as is.
package gravity

import (
	"github.com/quillaja/gravsim/internal/body"
	"github.com/quillaja/gravsim/internal/vec"
)

// G = 66.7408 km³ Yg⁻¹ s⁻¹, the constant of the km/Yg/s unit system.
const G = 66.7408

// NoExclusion is passed to FieldAt when no stored mass is at the point, e.g.
// a mass that has not been inserted yet.
const NoExclusion = -1

// Pull is the acceleration at point `at` caused by source.
//
//	r = source - at
//	a = r * (G*m / |r|²)
func Pull(source body.Mass, at vec.Vec2) vec.Vec2 {
	r := source.Position.Sub(at)
	return r.Mul(G * source.Mass / r.LenSqr())
}

// FieldAt sums Pull over every active mass except masses[exclude].
func FieldAt(masses []body.Mass, at vec.Vec2, exclude int) vec.Vec2 {
	var a vec.Vec2
	for i := range masses {
		if i == exclude || !masses[i].Active() {
			continue
		}
		a = a.Add(Pull(masses[i], at))
	}
	return a
}

// Force exerted on target by source (Yg·km/s²).
func Force(source, target body.Mass) vec.Vec2 {
	return Pull(source, target.Position).Mul(target.Mass)
}
