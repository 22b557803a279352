// Package body is the point mass model and the arena that stores masses in
// creation order.
package body

import (
	"fmt"

	"github.com/quillaja/gravsim/internal/palette"
	"github.com/quillaja/gravsim/internal/vec"
)

// Mass is one point mass in the plane.
type Mass struct {
	Position     vec.Vec2 // km
	Velocity     vec.Vec2 // km/s
	Acceleration vec.Vec2 // km/s², recomputed every step
	Mass         float64  // Yg
	Pending      bool     // placed, waiting for its velocity; frozen and force-inert
	Tag          palette.Tag
}

// Active masses are sources and targets of gravity.
func (m Mass) Active() bool {
	return !m.Pending
}

// update velocity then position (semi-implicit Euler). pending masses stay put.
func (m *Mass) Integrate(dt float64) {
	if m.Pending {
		return
	}
	// dv = a*dt
	m.Velocity = m.Velocity.Add(m.Acceleration.Mul(dt))
	// dp = v*dt, with the updated v
	m.Position = m.Position.Add(m.Velocity.Mul(dt))
}

func (m Mass) String() string {
	return fmt.Sprintf("m: %.1f\np: [%.2f, %.2f]\nv: [%.2f, %.2f]\na: [%.2f, %.2f]\n",
		m.Mass, m.Position[0], m.Position[1], m.Velocity[0], m.Velocity[1], m.Acceleration[0], m.Acceleration[1])
}
