// Package orbit derives launch velocities for new masses.
package orbit

import (
	"math"

	"github.com/pkg/errors"
	"github.com/quillaja/gravsim/internal/body"
	"github.com/quillaja/gravsim/internal/gravity"
	"github.com/quillaja/gravsim/internal/vec"
)

// ErrNoReferenceMass is returned when there is no mass to orbit.
var ErrNoReferenceMass = errors.New("circular orbit needs an existing mass")

// Solution is the launch state for a mass placed at a point.
type Solution struct {
	Velocity     vec.Vec2 // km/s
	Acceleration vec.Vec2 // km/s², the field at the point
}

// Circular returns a velocity that puts a mass placed at `at` on a roughly
// circular orbit around masses[0]. The mass being placed must not be in
// masses.
//
// The speed balances v²/d = |a| with a the field of every active mass and d
// the distance to masses[0], so the orbit is only circular when masses[0]
// dominates. The direction is the field direction turned a quarter turn
// clockwise. A point on top of an active mass gives non-finite values.
func Circular(masses []body.Mass, at vec.Vec2) (Solution, error) {
	if len(masses) == 0 {
		return Solution{}, ErrNoReferenceMass
	}
	a := gravity.FieldAt(masses, at, gravity.NoExclusion)
	angle := vec.Angle(a) - math.Pi/2
	d := at.Sub(masses[0].Position).Len()
	speed := math.Sqrt(a.Len() * d)
	return Solution{
		Velocity:     vec.Polar(speed, angle),
		Acceleration: a,
	}, nil
}
