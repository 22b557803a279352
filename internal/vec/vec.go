// Package vec holds the 2D vector type shared by the simulation.
//
// Vec2 is mgl64's two element vector, so Add, Sub, Mul (scale), Dot, Len and
// Normalize come from mathgl. Normalize is not guarded: the zero vector
// normalizes to NaN components.
package vec

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a position (km), velocity (km/s) or acceleration (km/s²).
type Vec2 = mgl64.Vec2

// New makes a Vec2 from its components.
func New(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Neg returns -v.
func Neg(v Vec2) Vec2 {
	return v.Mul(-1)
}

// Polar builds a vector of length r pointing at angle theta (radians).
func Polar(r, theta float64) Vec2 {
	return Vec2{r * math.Cos(theta), r * math.Sin(theta)}
}

// Angle of v from the +x axis, in (-pi, pi].
func Angle(v Vec2) float64 {
	return math.Atan2(v[1], v[0])
}

// Finite reports whether neither component is NaN or infinite.
func Finite(v Vec2) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
