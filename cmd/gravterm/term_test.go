package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	kitlog "github.com/go-kit/kit/log"
	"github.com/quillaja/gravsim/internal/config"
	"github.com/quillaja/gravsim/internal/placement"
)

func newTestTerm(t *testing.T) (*term, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return newTerm(screen, config.Default(), kitlog.NewNopLogger()), screen
}

func clickAt(tm *term, x, y int, btn tcell.ButtonMask) {
	tm.handle(tcell.NewEventMouse(x, y, btn, tcell.ModNone))
	tm.handle(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func TestTwoClickThrow(t *testing.T) {
	tm, _ := newTestTerm(t)

	clickAt(tm, 10, 10, tcell.Button1)
	if got := tm.sim.State(); got.Phase != placement.AwaitingVelocity || got.Index != 0 {
		t.Fatalf("after first click state = %+v", got)
	}
	clickAt(tm, 20, 10, tcell.Button1)
	if got := tm.sim.State(); got.Phase != placement.Idle {
		t.Fatalf("after second click state = %+v", got)
	}

	m := tm.sim.Masses()[0]
	if m.Pending {
		t.Fatal("mass still pending")
	}
	// 10 cells at 8 world units per cell
	if m.Velocity[0] != 80 || m.Velocity[1] != 0 {
		t.Errorf("velocity = %v, want [80 0]", m.Velocity)
	}
}

func TestHeldButtonIsOnePress(t *testing.T) {
	tm, _ := newTestTerm(t)

	tm.handle(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	// drag with the button still down
	tm.handle(tcell.NewEventMouse(12, 10, tcell.Button1, tcell.ModNone))
	tm.handle(tcell.NewEventMouse(14, 10, tcell.Button1, tcell.ModNone))

	if tm.sim.Len() != 1 || tm.sim.State().Phase != placement.AwaitingVelocity {
		t.Errorf("len=%d state=%+v, want one pending mass", tm.sim.Len(), tm.sim.State())
	}
}

func TestSecondaryButtonIgnored(t *testing.T) {
	tm, _ := newTestTerm(t)
	clickAt(tm, 10, 10, tcell.Button2)
	if tm.sim.Len() != 0 {
		t.Errorf("len = %d, want 0", tm.sim.Len())
	}
}

func TestKeys(t *testing.T) {
	tm, _ := newTestTerm(t)
	controls := tm.sim.Controls()

	key := func(r rune) bool {
		return tm.handle(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}

	key('+')
	if got := controls.NewMassValue(); got < 109.99 || got > 110.01 {
		t.Errorf("mass after + = %v, want 110", got)
	}
	key('-')
	if got := controls.NewMassValue(); got < 99.99 || got > 100.01 {
		t.Errorf("mass after - = %v, want 100", got)
	}

	// orbit mode cannot stay on with nothing to orbit
	key('o')
	if controls.CircularOrbit() {
		t.Error("orbit mode on with no masses")
	}

	clickAt(tm, 10, 10, tcell.Button1)
	clickAt(tm, 11, 10, tcell.Button1)
	key('o')
	if !controls.CircularOrbit() {
		t.Error("orbit mode off after o with masses present")
	}

	key('c')
	if tm.sim.Len() != 0 {
		t.Errorf("len after clear = %d", tm.sim.Len())
	}
	if key('q') {
		t.Error("q did not quit")
	}
	if tm.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("esc did not quit")
	}
}

func TestDrawMasses(t *testing.T) {
	tm, screen := newTestTerm(t)

	clickAt(tm, 10, 10, tcell.Button1) // pending
	tm.draw()

	cells, w, _ := screen.GetContents()
	if got := cells[10*w+10].Runes; len(got) == 0 || got[0] != '○' {
		t.Errorf("pending cell = %q, want ○", got)
	}

	clickAt(tm, 30, 10, tcell.Button1)
	tm.draw()
	cells, w, _ = screen.GetContents()
	if got := cells[10*w+10].Runes; len(got) == 0 || got[0] != '●' {
		t.Errorf("active cell = %q, want ●", got)
	}
	if got := cells[1].Runes; len(got) == 0 || got[0] != 'm' {
		t.Errorf("status line not drawn: %q", got)
	}
}

func TestBlipStreamer(t *testing.T) {
	blip, err := blipStreamer(placedTone)
	if err != nil {
		t.Fatalf("blipStreamer: %v", err)
	}

	want := sampleRate.N(blipLength)
	samples := make([][2]float64, 512)
	total := 0
	for {
		n, ok := blip.Stream(samples)
		for i := 0; i < n; i++ {
			if samples[i][0] < -1 || samples[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total+i, samples[i][0])
			}
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}
	if total != want {
		t.Errorf("blip length = %d samples, want %d", total, want)
	}
}

func TestSilentUntilStart(t *testing.T) {
	s := newSound()
	s.play(placedTone) // must not touch the speaker
	s.close()
}
