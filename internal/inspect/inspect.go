// Package inspect formats mass telemetry for display panels and measures
// conserved quantities of a mass collection.
package inspect

import (
	"fmt"
	"math"

	"github.com/quillaja/gravsim/internal/body"
	"github.com/quillaja/gravsim/internal/gravity"
	"github.com/quillaja/gravsim/internal/palette"
	"github.com/quillaja/gravsim/internal/vec"
	"gonum.org/v1/gonum/floats"
)

// Row is the telemetry of one mass, ready to print.
type Row struct {
	Label        string // "Mass 1", "Mass 2", ...
	Position     string
	Velocity     string
	Acceleration string
	Mass         string
	Tag          palette.Tag
	Pending      bool
}

// Rows formats every mass in creation order.
func Rows(masses []body.Mass) []Row {
	rows := make([]Row, len(masses))
	for i, m := range masses {
		rows[i] = Row{
			Label:        fmt.Sprintf("Mass %d", i+1),
			Position:     fmt.Sprintf("(%.1f, %.1f) km", m.Position[0], m.Position[1]),
			Velocity:     fmt.Sprintf("(%.1f, %.1f) km/s", m.Velocity[0], m.Velocity[1]),
			Acceleration: fmt.Sprintf("(%.1f, %.1f) km/s^2", m.Acceleration[0], m.Acceleration[1]),
			Mass:         fmt.Sprintf("%.1f Yg", m.Mass),
			Tag:          m.Tag,
			Pending:      m.Pending,
		}
	}
	return rows
}

// Lines lays the row out as a label/value table.
func (r Row) Lines() []string {
	title := r.Label
	if r.Pending {
		title += " (awaiting velocity)"
	}
	return []string{
		title,
		"  Position:     " + r.Position,
		"  Velocity:     " + r.Velocity,
		"  Acceleration: " + r.Acceleration,
		"  Mass:         " + r.Mass,
	}
}

// Totals of the active masses.
type Totals struct {
	Count        int // all masses
	Active       int
	TotalMass    float64  // Yg
	Momentum     vec.Vec2 // Yg·km/s
	CenterOfMass vec.Vec2 // km
	Kinetic      float64  // Yg·km²/s²
	Potential    float64  // Yg·km²/s², logarithmic
}

// Energy is kinetic plus potential energy.
func (t Totals) Energy() float64 {
	return t.Kinetic + t.Potential
}

// Measure computes totals over the active masses.
//
// The pull G*m/|r| has the logarithmic potential G*m1*m2*ln|r|, which is what
// Potential sums over every pair. Coincident masses make it non-finite.
func Measure(masses []body.Mass) Totals {
	t := Totals{Count: len(masses)}

	var m, x, y, vx, vy, v2 []float64
	for _, b := range masses {
		if !b.Active() {
			continue
		}
		m = append(m, b.Mass)
		x = append(x, b.Position[0])
		y = append(y, b.Position[1])
		vx = append(vx, b.Velocity[0])
		vy = append(vy, b.Velocity[1])
		v2 = append(v2, b.Velocity.LenSqr())
	}
	t.Active = len(m)
	if t.Active == 0 {
		return t
	}

	t.TotalMass = floats.Sum(m)
	t.Momentum = vec.New(floats.Dot(m, vx), floats.Dot(m, vy))
	t.CenterOfMass = vec.New(floats.Dot(m, x), floats.Dot(m, y)).Mul(1 / t.TotalMass)
	t.Kinetic = 0.5 * floats.Dot(m, v2)

	for i := 0; i < len(m); i++ {
		for j := i + 1; j < len(m); j++ {
			r := math.Hypot(x[j]-x[i], y[j]-y[i])
			t.Potential += gravity.G * m[i] * m[j] * math.Log(r)
		}
	}
	return t
}
