package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/quillaja/gravsim/internal/config"
	"github.com/quillaja/gravsim/internal/input"
	"github.com/quillaja/gravsim/internal/inspect"
	"github.com/quillaja/gravsim/internal/logging"
	"github.com/quillaja/gravsim/internal/palette"
	"github.com/quillaja/gravsim/internal/placement"
	"github.com/quillaja/gravsim/internal/sim"
	"github.com/quillaja/gravsim/internal/vec"
)

const (
	frameRate = 30
	// a terminal cell is roughly 8x16 pixels
	cellW    = 8
	cellH    = 16
	massStep = 1.1
)

// term owns the screen and the simulator; everything runs on the loop in run.
type term struct {
	screen  tcell.Screen
	sim     *sim.Simulator
	view    input.Viewport
	clicks  *input.ClickCounter
	sound   *sound
	logger  kitlog.Logger
	buttons tcell.ButtonMask
	last    time.Time
	fps     float64
	message string
}

func newTerm(screen tcell.Screen, cfg config.Config, logger kitlog.Logger) *term {
	_, h := screen.Size()
	clicks := input.NewClickCounter()
	clicks.Slop = 0.5 // same cell
	return &term{
		screen: screen,
		sim:    sim.New(sim.NewControls(cfg.NewMass, cfg.CircularOrbit), logging.Component(logger, "sim")),
		view:   cellViewport(cfg.View.Scale, h),
		clicks: clicks,
		sound:  newSound(),
		logger: logging.Component(logger, "gravterm"),
		fps:    frameRate,
	}
}

// cellViewport maps cells to world units; cells are twice as tall as wide.
func cellViewport(scale float64, rows int) input.Viewport {
	return input.Viewport{
		ScaleX: scale * cellW,
		ScaleY: scale * cellH,
		Height: float64(rows),
	}
}

func (t *term) run(tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !t.handle(ev) {
				return
			}
		case now := <-ticker.C:
			if !t.last.IsZero() {
				if d := now.Sub(t.last).Seconds(); d > 0 {
					t.fps = 1 / d
				}
			}
			t.last = now
			t.sim.Advance(t.fps)
			t.draw()
		}
	}
}

// handle reacts to one terminal event; false quits.
func (t *term) handle(ev tcell.Event) bool {
	controls := t.sim.Controls()
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
			return false
		case ev.Rune() == 'c':
			t.sim.ClearAll()
			t.message = ""
		case ev.Rune() == 'o':
			controls.ToggleCircularOrbit()
		case ev.Rune() == '+':
			controls.SetNewMassValue(controls.NewMassValue() * massStep)
		case ev.Rune() == '-':
			controls.SetNewMassValue(controls.NewMassValue() / massStep)
		}
	case *tcell.EventMouse:
		if sev, ok := t.press(ev); ok {
			t.click(sev)
		}
	case *tcell.EventResize:
		_, h := t.screen.Size()
		t.view.Resize(float64(h))
		t.screen.Sync()
	}
	if t.sim.Len() == 0 && controls.CircularOrbit() {
		controls.SetCircularOrbit(false)
	}
	return true
}

// press turns tcell's button state into a press event on the down edge.
func (t *term) press(ev *tcell.EventMouse) (input.ScreenEvent, bool) {
	buttons := ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	down := buttons &^ t.buttons
	t.buttons = buttons

	var button placement.Button
	switch {
	case down&tcell.Button1 != 0:
		button = placement.ButtonPrimary
	case down&tcell.Button2 != 0:
		button = placement.ButtonSecondary
	case down&tcell.Button3 != 0:
		button = placement.ButtonMiddle
	default:
		return input.ScreenEvent{}, false
	}
	cx, cy := ev.Position()
	x, y := float64(cx), float64(cy)
	sev := input.ScreenEvent{X: x, Y: y, Button: button, Clicks: 1}
	if button == placement.ButtonPrimary {
		sev.Clicks = t.clicks.Press(x, y)
	}
	return sev, true
}

func (t *term) click(ev input.ScreenEvent) {
	out, err := t.sim.Click(t.view.Click(ev))
	if err != nil {
		t.message = err.Error()
		t.sound.play(refusedTone)
		return
	}
	t.message = ""
	switch out.Kind {
	case placement.Placed:
		t.sound.play(placedTone)
	case placement.Thrown, placement.AtRest:
		t.sound.play(thrownTone)
	case placement.Orbiting:
		t.sound.play(orbitTone)
	}
	level.Debug(t.logger).Log("msg", "click", "kind", out.Kind, "index", out.Index)
}

func (t *term) draw() {
	t.screen.Clear()
	w, h := t.screen.Size()

	for _, s := range t.sim.Feed() {
		if !vec.Finite(s.Position) {
			continue
		}
		sx, sy := t.view.Screen(s.Position)
		x, y := int(sx), int(sy)
		if x < 0 || y < 1 || x >= w || y >= h {
			continue
		}
		glyph := '●'
		if s.Pending {
			glyph = '○'
		}
		t.screen.SetContent(x, y, glyph, nil, tcell.StyleDefault.Foreground(tagColor(s.Tag)))
	}

	orbit := "off"
	if t.sim.Controls().CircularOrbit() {
		orbit = "on"
	}
	totals := inspect.Measure(t.sim.Masses())
	status := fmt.Sprintf(" masses %d | E %.4g | new %.1f Yg (+/-) | orbit %s (o) | next %s | %.0f fps | c clear, q quit ",
		t.sim.Len(), totals.Energy(), t.sim.Controls().NewMassValue(), orbit, t.sim.NextTag(), t.fps)
	if t.sim.State().Phase == placement.AwaitingVelocity {
		status += "| click again to set velocity "
	}
	if t.message != "" {
		status += "| " + t.message + " "
	}
	t.text(0, 0, status, tcell.StyleDefault.Reverse(true))

	t.screen.Show()
}

func (t *term) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (t *term) cleanup() {
	t.sound.close()
	t.screen.Fini()
}

// tagColor is the tag's base shade as a true colour.
func tagColor(tag palette.Tag) tcell.Color {
	r, g, b := tag.Color().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
