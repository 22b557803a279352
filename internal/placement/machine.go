// Package placement turns pointer clicks into masses.
//
// Click one places a mass. Click two, in world coordinates, sets its velocity
// to the displacement from the mass to the click, read directly as km/s. A
// double-click places a mass at rest, and circular orbit mode launches the
// mass around the first mass with no second click.
package placement

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/quillaja/gravsim/internal/body"
	"github.com/quillaja/gravsim/internal/orbit"
	"github.com/quillaja/gravsim/internal/palette"
	"github.com/quillaja/gravsim/internal/vec"
)

// ErrNoReferenceMass is returned when circular orbit mode is on and there is
// no mass to orbit. Nothing is created.
var ErrNoReferenceMass = orbit.ErrNoReferenceMass

// Button is a pointer button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

var buttonNames = map[string]Button{
	"":          ButtonPrimary,
	"primary":   ButtonPrimary,
	"left":      ButtonPrimary,
	"secondary": ButtonSecondary,
	"right":     ButtonSecondary,
	"middle":    ButtonMiddle,
}

// ParseButton reads a button name as written in scenario files.
func ParseButton(name string) (Button, error) {
	b, ok := buttonNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ButtonNone, errors.Errorf("unknown button %q", name)
	}
	return b, nil
}

// Click is a pointer press already converted to world coordinates.
type Click struct {
	Pos    vec.Vec2 // km
	Button Button
	Count  int // 2 for a double-click
}

// Phase of the placement gesture.
type Phase uint8

const (
	Idle Phase = iota
	AwaitingVelocity
)

func (p Phase) String() string {
	if p == AwaitingVelocity {
		return "awaiting-velocity"
	}
	return "idle"
}

// State is the machine's tagged state. Index names the pending mass while
// awaiting its velocity and is -1 otherwise.
type State struct {
	Phase Phase
	Index int
}

var idle = State{Phase: Idle, Index: -1}

// Settings are read on every placement, never cached.
type Settings interface {
	NewMassValue() float64
	CircularOrbit() bool
}

// Kind of thing a click did.
type Kind uint8

const (
	Ignored  Kind = iota // not a primary click
	Placed               // new pending mass
	Thrown               // pending mass got its velocity
	AtRest               // double-click, new mass with zero velocity
	Orbiting             // new mass launched on a circular orbit
	Refused              // circular orbit with nothing to orbit
)

var kindNames = [...]string{"ignored", "placed", "thrown", "at-rest", "orbiting", "refused"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Outcome reports what a click did and to which mass (-1 for none).
type Outcome struct {
	Kind  Kind
	Index int
}

// Machine is the placement state machine. It owns the colour cursor for new
// masses. The zero value is not ready; use New.
type Machine struct {
	state  State
	colors palette.Cycle
}

// New returns an idle machine whose next colour is Orange.
func New() *Machine {
	return &Machine{state: idle}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// NextTag is the colour the next placed mass will get.
func (m *Machine) NextTag() palette.Tag {
	return m.colors.Peek()
}

// Reset returns to Idle and restarts the colour cycle.
func (m *Machine) Reset() {
	m.state = idle
	m.colors.Reset()
}

// Handle consumes one click.
func (m *Machine) Handle(store *body.Store, settings Settings, c Click) (Outcome, error) {
	if c.Button != ButtonPrimary {
		return Outcome{Kind: Ignored, Index: -1}, nil
	}

	if m.state.Phase == AwaitingVelocity {
		i := m.state.Index
		if i >= 0 && i < store.Len() && store.At(i).Pending {
			store.Finalize(i, c.Pos.Sub(store.At(i).Position))
			m.state = idle
			return Outcome{Kind: Thrown, Index: i}, nil
		}
		// the pending mass is gone; start over
		m.state = idle
	}

	nm := body.Mass{
		Position: c.Pos,
		Mass:     settings.NewMassValue(),
	}

	kind := Placed
	switch {
	case settings.CircularOrbit():
		sol, err := orbit.Circular(store.Masses(), c.Pos)
		if err != nil {
			return Outcome{Kind: Refused, Index: -1}, err
		}
		nm.Velocity = sol.Velocity
		nm.Acceleration = sol.Acceleration
		kind = Orbiting
	case c.Count == 2:
		kind = AtRest
	default:
		nm.Pending = true
	}

	nm.Tag = m.colors.Next()
	i := store.Append(nm)
	if nm.Pending {
		m.state = State{Phase: AwaitingVelocity, Index: i}
	}
	return Outcome{Kind: kind, Index: i}, nil
}
