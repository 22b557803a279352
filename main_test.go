package main

import (
	"testing"

	kitlog "github.com/go-kit/kit/log"
	"github.com/quillaja/gravsim/internal/config"
	"github.com/quillaja/gravsim/internal/placement"
	"github.com/quillaja/gravsim/internal/sim"
	"github.com/quillaja/gravsim/internal/vec"
)

func TestEventQueueOnePerFrame(t *testing.T) {
	q := newEventQueue([]config.Event{{Frame: 0, X: 1}, {Frame: 0, X: 2}, {Frame: 3, X: 3}})

	var got []float64
	for frame := 0; frame < 5; frame++ {
		if ev, ok := q.next(frame); ok {
			got = append(got, ev.X)
			if ev.Frame > frame {
				t.Fatalf("event for frame %d delivered at %d", ev.Frame, frame)
			}
		}
	}
	want := []float64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("delivered %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("delivered %v, want %v", got, want)
		}
	}
	if q.pending() != 0 {
		t.Fatalf("%d events left", q.pending())
	}
}

func TestApplyScenario(t *testing.T) {
	s := sim.New(sim.NewControls(100, false), nil)
	logger := kitlog.NewNopLogger()
	mass := 1000.0
	on := true

	apply(s, config.Event{X: 0, Y: 0, Clicks: 2, NewMass: &mass}, logger)
	apply(s, config.Event{X: 100, Y: 0, CircularOrbit: &on}, logger)
	apply(s, config.Event{X: 5, Y: 5, Button: "right"}, logger)

	if s.Len() != 2 {
		t.Fatalf("%d masses", s.Len())
	}
	if m := s.Masses()[0]; m.Mass != 1000 || m.Velocity != (vec.Vec2{}) {
		t.Fatalf("first mass %v", m)
	}
	if m := s.Masses()[1]; m.Pending || m.Velocity.Len() == 0 {
		t.Fatalf("orbiting mass %v", m)
	}

	apply(s, config.Event{Clear: true}, logger)
	if s.Len() != 0 || s.State().Phase != placement.Idle {
		t.Fatal("clear event did not clear")
	}
	if !s.Controls().CircularOrbit() {
		t.Fatal("orbit setting should survive a clear")
	}
	// refused orbit click is logged, not fatal
	apply(s, config.Event{X: 1, Y: 1}, logger)
	if s.Len() != 0 {
		t.Fatal("orbit click on an empty system created a mass")
	}
}

func TestSampleScenario(t *testing.T) {
	cfg, err := config.Load("scenarios")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Events) != 5 || cfg.Run.Frames != 1200 {
		t.Fatalf("events=%d frames=%d", len(cfg.Events), cfg.Run.Frames)
	}

	s := sim.New(sim.NewControls(cfg.NewMass, cfg.CircularOrbit), nil)
	logger := kitlog.NewNopLogger()
	q := newEventQueue(cfg.Events)
	for frame := 0; frame < 900; frame++ {
		if ev, ok := q.next(frame); ok {
			apply(s, ev, logger)
		}
		s.Advance(cfg.Run.FPS)
	}
	if s.Len() != 3 || s.State().Phase != placement.Idle {
		t.Fatalf("before clear: len=%d state=%+v", s.Len(), s.State())
	}
	for _, m := range s.Masses() {
		if !vec.Finite(m.Position) {
			t.Fatalf("mass escaped to %v", m.Position)
		}
	}

	if ev, ok := q.next(900); !ok || !ev.Clear {
		t.Fatalf("frame 900 event = %+v, %v", ev, ok)
	}
	if q.pending() != 0 {
		t.Errorf("%d events left", q.pending())
	}
}
