package placement

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/quillaja/gravsim/internal/body"
	"github.com/quillaja/gravsim/internal/gravity"
	"github.com/quillaja/gravsim/internal/palette"
	"github.com/quillaja/gravsim/internal/vec"
	"gonum.org/v1/gonum/floats/scalar"
)

type settings struct {
	mass  float64
	orbit bool
}

func (s *settings) NewMassValue() float64 { return s.mass }
func (s *settings) CircularOrbit() bool   { return s.orbit }

func click(x, y float64) Click { return Click{Pos: vec.New(x, y), Button: ButtonPrimary, Count: 1} }

func pendingCount(s *body.Store) (n int) {
	for _, m := range s.Masses() {
		if m.Pending {
			n++
		}
	}
	return
}

func TestTwoClickThrow(t *testing.T) {
	store := body.NewStore(4)
	cfg := &settings{mass: 100}
	m := New()

	out, err := m.Handle(store, cfg, click(0, 0))
	if err != nil || out.Kind != Placed || out.Index != 0 {
		t.Fatalf("first click: %+v %v", out, err)
	}
	if st := m.State(); st.Phase != AwaitingVelocity || st.Index != 0 {
		t.Fatalf("state after placing: %+v", st)
	}
	if p := store.At(0); !p.Pending || p.Mass != 100 || p.Velocity != (vec.Vec2{}) {
		t.Fatalf("placed mass: %v", p)
	}

	out, err = m.Handle(store, cfg, click(10, 0))
	if err != nil || out.Kind != Thrown || out.Index != 0 {
		t.Fatalf("second click: %+v %v", out, err)
	}
	if m.State().Phase != Idle {
		t.Fatal("machine did not return to idle")
	}
	if p := store.At(0); p.Pending || p.Velocity != vec.New(10, 0) || p.Position != vec.New(0, 0) {
		t.Fatalf("thrown mass: %v", p)
	}
}

func TestVelocityIsDisplacement(t *testing.T) {
	store := body.NewStore(1)
	m := New()
	cfg := &settings{mass: 1}
	m.Handle(store, cfg, click(-20, 35))
	m.Handle(store, cfg, click(5, 5))
	if v := store.At(0).Velocity; v != vec.New(25, -30) {
		t.Fatalf("velocity = %v", v)
	}
}

func TestDoubleClickAtRest(t *testing.T) {
	store := body.NewStore(1)
	m := New()
	out, err := m.Handle(store, &settings{mass: 100}, Click{Pos: vec.New(5, 5), Button: ButtonPrimary, Count: 2})
	if err != nil || out.Kind != AtRest {
		t.Fatalf("%+v %v", out, err)
	}
	if m.State().Phase != Idle {
		t.Fatal("double-click left the machine waiting")
	}
	p := store.At(0)
	if p.Pending || p.Velocity != (vec.Vec2{}) || p.Position != vec.New(5, 5) {
		t.Fatalf("mass: %v", p)
	}
}

func TestCircularOrbitPlacement(t *testing.T) {
	store := body.NewStore(2)
	store.Append(body.Mass{Position: vec.New(0, 0), Mass: 1000})
	m := New()
	out, err := m.Handle(store, &settings{mass: 1, orbit: true}, click(100, 0))
	if err != nil || out.Kind != Orbiting || out.Index != 1 {
		t.Fatalf("%+v %v", out, err)
	}
	p := store.At(1)
	if p.Pending || m.State().Phase != Idle {
		t.Fatal("orbiting mass should be active immediately")
	}
	if !scalar.EqualWithinAbs(p.Velocity.Dot(vec.New(100, 0)), 0, 1e-9) {
		t.Fatalf("velocity %v not perpendicular", p.Velocity)
	}
	want := math.Sqrt(gravity.G * 1000 / 100 * 100)
	if !scalar.EqualWithinRel(p.Velocity.Len(), want, 1e-12) {
		t.Fatalf("|v| = %f, want %f", p.Velocity.Len(), want)
	}
	if p.Acceleration == (vec.Vec2{}) {
		t.Fatal("orbiting mass should carry its initial acceleration")
	}
}

func TestCircularOrbitRefusedWhenEmpty(t *testing.T) {
	store := body.NewStore(1)
	m := New()
	out, err := m.Handle(store, &settings{mass: 1, orbit: true}, click(1, 1))
	if errors.Cause(err) != ErrNoReferenceMass || out.Kind != Refused {
		t.Fatalf("%+v %v", out, err)
	}
	if store.Len() != 0 {
		t.Fatal("refused placement created a mass")
	}
	if m.NextTag() != palette.Orange {
		t.Fatal("refused placement used up a colour")
	}
}

func TestSettingsReadThrough(t *testing.T) {
	store := body.NewStore(3)
	cfg := &settings{mass: 100}
	m := New()
	m.Handle(store, cfg, Click{Pos: vec.New(0, 0), Button: ButtonPrimary, Count: 2})
	cfg.mass = 42
	m.Handle(store, cfg, Click{Pos: vec.New(1, 0), Button: ButtonPrimary, Count: 2})
	if store.At(0).Mass != 100 || store.At(1).Mass != 42 {
		t.Fatalf("masses %f %f", store.At(0).Mass, store.At(1).Mass)
	}
	cfg.orbit = true
	out, _ := m.Handle(store, cfg, click(50, 50))
	if out.Kind != Orbiting {
		t.Fatalf("orbit toggle not read through: %v", out.Kind)
	}
}

func TestNonPrimaryIgnored(t *testing.T) {
	store := body.NewStore(1)
	m := New()
	cfg := &settings{mass: 1}
	for _, b := range []Button{ButtonNone, ButtonSecondary, ButtonMiddle} {
		out, err := m.Handle(store, cfg, Click{Pos: vec.New(1, 1), Button: b, Count: 1})
		if err != nil || out.Kind != Ignored {
			t.Fatalf("button %d: %+v %v", b, out, err)
		}
	}
	m.Handle(store, cfg, click(0, 0))
	m.Handle(store, cfg, Click{Pos: vec.New(9, 9), Button: ButtonSecondary})
	if st := m.State(); st.Phase != AwaitingVelocity || store.Len() != 1 {
		t.Fatalf("secondary click changed state: %+v", st)
	}
}

func TestColorsCycleAcrossGestures(t *testing.T) {
	store := body.NewStore(8)
	cfg := &settings{mass: 10}
	m := New()
	m.Handle(store, cfg, click(0, 0)) // placed
	m.Handle(store, cfg, click(1, 0)) // thrown
	m.Handle(store, cfg, Click{Pos: vec.New(5, 5), Button: ButtonPrimary, Count: 2})
	cfg.orbit = true
	m.Handle(store, cfg, click(50, 0))
	m.Handle(store, cfg, click(0, 80))
	want := []palette.Tag{palette.Orange, palette.Yellow, palette.Green, palette.Orange}
	if store.Len() != len(want) {
		t.Fatalf("%d masses", store.Len())
	}
	for i, w := range want {
		if got := store.At(i).Tag; got != w {
			t.Fatalf("mass %d tag %s, want %s", i, got, w)
		}
	}

	m.Reset()
	if m.NextTag() != palette.Orange || m.State().Phase != Idle {
		t.Fatal("reset did not restore initial state")
	}
}

func TestAtMostOnePending(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	store := body.NewStore(64)
	cfg := &settings{mass: 10}
	m := New()
	for i := 0; i < 500; i++ {
		c := Click{
			Pos:    vec.New(rng.Float64()*1000, rng.Float64()*1000),
			Button: Button(rng.Intn(4)),
			Count:  1 + rng.Intn(2),
		}
		cfg.orbit = rng.Intn(5) == 0
		m.Handle(store, cfg, c)
		n := pendingCount(store)
		if n > 1 {
			t.Fatalf("step %d: %d pending masses", i, n)
		}
		st := m.State()
		if (n == 1) != (st.Phase == AwaitingVelocity) {
			t.Fatalf("step %d: state %+v with %d pending", i, st, n)
		}
		if st.Phase == AwaitingVelocity && !store.At(st.Index).Pending {
			t.Fatalf("step %d: state points at active mass %d", i, st.Index)
		}
	}
}

func TestStaleAwaitingStateRecovers(t *testing.T) {
	store := body.NewStore(2)
	cfg := &settings{mass: 1}
	m := New()
	m.Handle(store, cfg, click(0, 0))
	store.Reset() // cleared without resetting the machine
	out, err := m.Handle(store, cfg, click(3, 3))
	if err != nil || out.Kind != Placed || out.Index != 0 {
		t.Fatalf("%+v %v", out, err)
	}
	if pendingCount(store) != 1 {
		t.Fatal("expected exactly one pending mass")
	}
}

func TestParseButton(t *testing.T) {
	cases := map[string]Button{"": ButtonPrimary, "Left": ButtonPrimary, "secondary": ButtonSecondary, " middle ": ButtonMiddle}
	for in, want := range cases {
		got, err := ParseButton(in)
		if err != nil || got != want {
			t.Fatalf("%q: %v %v", in, got, err)
		}
	}
	if _, err := ParseButton("thumb"); err == nil {
		t.Fatal("expected error for unknown button")
	}
}
