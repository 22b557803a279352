// Package sim drives the simulation: it owns the masses, routes clicks to the
// placement machine and steps gravity once per frame.
//
// A Simulator is not safe for concurrent use. Frontends call it from the
// goroutine that runs their frame loop.
package sim

import (
	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/quillaja/gravsim/internal/body"
	"github.com/quillaja/gravsim/internal/palette"
	"github.com/quillaja/gravsim/internal/placement"
	"github.com/quillaja/gravsim/internal/vec"
)

const initialCapacity = 50

// Simulator is the simulation core.
type Simulator struct {
	store    *body.Store
	machine  *placement.Machine
	controls *Controls
	logger   kitlog.Logger
	frames   uint64
	elapsed  float64 // simulated seconds
}

// New returns an empty simulator. A nil logger discards output.
func New(controls *Controls, logger kitlog.Logger) *Simulator {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	if controls == nil {
		controls = NewControls(100, false)
	}
	return &Simulator{
		store:    body.NewStore(initialCapacity),
		machine:  placement.New(),
		controls: controls,
		logger:   logger,
	}
}

// Controls are the live settings read at placement time.
func (s *Simulator) Controls() *Controls {
	return s.controls
}

// Click hands one click, in world coordinates, to the placement machine.
func (s *Simulator) Click(c placement.Click) (placement.Outcome, error) {
	out, err := s.machine.Handle(s.store, s.controls, c)
	switch {
	case err != nil:
		level.Warn(s.logger).Log("msg", "placement refused", "x", c.Pos[0], "y", c.Pos[1], "err", err)
	case out.Kind != placement.Ignored:
		m := s.store.At(out.Index)
		level.Debug(s.logger).Log(
			"msg", "click", "kind", out.Kind, "mass", out.Index+1,
			"x", m.Position[0], "y", m.Position[1],
			"vx", m.Velocity[0], "vy", m.Velocity[1], "yg", m.Mass, "tag", m.Tag)
	}
	return out, err
}

// Advance steps the simulation by one frame at the measured frame rate and
// returns the timestep used.
func (s *Simulator) Advance(fps float64) float64 {
	dt := Timestep(fps)
	s.StepDt(dt)
	return dt
}

// StepDt steps the simulation by dt seconds.
func (s *Simulator) StepDt(dt float64) {
	Step(s.store, dt)
	s.frames++
	s.elapsed += dt
}

// Frame runs one frame: at most one click, then one step. A nil click only
// steps. The click's error, if any, is returned after the step has run.
func (s *Simulator) Frame(fps float64, c *placement.Click) (placement.Outcome, error) {
	out := placement.Outcome{Kind: placement.Ignored, Index: -1}
	var err error
	if c != nil {
		out, err = s.Click(*c)
	}
	s.Advance(fps)
	return out, err
}

// ClearAll removes every mass, returns placement to Idle and restarts the
// colour cycle.
func (s *Simulator) ClearAll() {
	n := s.store.Len()
	s.store.Reset()
	s.machine.Reset()
	level.Info(s.logger).Log("msg", "cleared", "masses", n)
}

// Masses is the mass collection in creation order. The slice is borrowed:
// read it during the current frame and do not modify it.
func (s *Simulator) Masses() []body.Mass {
	return s.store.Masses()
}

// Len is the number of masses.
func (s *Simulator) Len() int {
	return s.store.Len()
}

// State is the placement machine's state.
func (s *Simulator) State() placement.State {
	return s.machine.State()
}

// NextTag is the colour the next placed mass will get.
func (s *Simulator) NextTag() palette.Tag {
	return s.machine.NextTag()
}

// Frames is the number of steps taken since New.
func (s *Simulator) Frames() uint64 { return s.frames }

// Elapsed is the simulated time in seconds since New.
func (s *Simulator) Elapsed() float64 { return s.elapsed }

// Sprite is what a renderer needs to draw one mass.
type Sprite struct {
	Index        int
	Position     vec.Vec2
	Velocity     vec.Vec2 // zero while pending
	Acceleration vec.Vec2 // zero while pending
	Tag          palette.Tag
	Pending      bool
}

// Feed lists a Sprite per mass, in creation order.
func (s *Simulator) Feed() []Sprite {
	return FeedOf(s.store.Masses())
}

// FeedOf builds sprites from a snapshot of masses.
func FeedOf(masses []body.Mass) []Sprite {
	out := make([]Sprite, len(masses))
	for i, m := range masses {
		out[i] = Sprite{Index: i, Position: m.Position, Tag: m.Tag, Pending: m.Pending}
		if !m.Pending {
			out[i].Velocity = m.Velocity
			out[i].Acceleration = m.Acceleration
		}
	}
	return out
}
