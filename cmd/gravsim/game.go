package main

import (
	"fmt"
	"image/color"
	"math"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quillaja/gravsim/internal/config"
	"github.com/quillaja/gravsim/internal/input"
	"github.com/quillaja/gravsim/internal/inspect"
	"github.com/quillaja/gravsim/internal/logging"
	"github.com/quillaja/gravsim/internal/placement"
	"github.com/quillaja/gravsim/internal/sim"
	"github.com/quillaja/gravsim/internal/vec"
	"golang.org/x/image/font/basicfont"
)

const (
	massRadius = 5 // px
	tipSize    = 10.0
	tipAngle   = math.Pi / 8
	panelW     = 270
	lineH      = 15
	padding    = 10
	massStep   = 1.1 // Up/Down scale the next mass by this factor
)

// Game adapts the simulator to ebiten's Update/Draw loop.
type Game struct {
	sim     *sim.Simulator
	view    input.Viewport
	clicks  *input.ClickCounter
	logger  kitlog.Logger
	width   int
	height  int
	message string // last refusal, shown in the overlay
}

func newGame(cfg config.Config, logger kitlog.Logger) *Game {
	return &Game{
		sim:    sim.New(sim.NewControls(cfg.NewMass, cfg.CircularOrbit), logging.Component(logger, "sim")),
		view:   input.NewViewport(cfg.View.Scale, float64(cfg.View.Height)),
		clicks: input.NewClickCounter(),
		logger: logging.Component(logger, "gravsim"),
		width:  cfg.View.Width,
		height: cfg.View.Height,
	}
}

// Update handles keys and at most one click, then steps the simulation.
func (g *Game) Update() error {
	controls := g.sim.Controls()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.sim.ClearAll()
		g.message = ""
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		controls.ToggleCircularOrbit()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		controls.SetNewMassValue(controls.NewMassValue() * massStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		controls.SetNewMassValue(controls.NewMassValue() / massStep)
	}
	// nothing to orbit yet
	if g.sim.Len() == 0 && controls.CircularOrbit() {
		controls.SetCircularOrbit(false)
	}

	if ev, ok := g.pointer(); ok {
		if _, err := g.sim.Click(g.view.Click(ev)); err != nil {
			g.message = err.Error()
		} else {
			g.message = ""
		}
	}

	g.sim.Advance(ebiten.ActualTPS())
	return nil
}

// pointer returns this frame's press outside the panel, if any.
func (g *Game) pointer() (input.ScreenEvent, bool) {
	var button placement.Button
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		button = placement.ButtonPrimary
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		button = placement.ButtonSecondary
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle):
		button = placement.ButtonMiddle
	default:
		return input.ScreenEvent{}, false
	}
	mx, my := ebiten.CursorPosition()
	if mx < panelW {
		return input.ScreenEvent{}, false
	}
	x, y := float64(mx), float64(my)
	ev := input.ScreenEvent{X: x, Y: y, Button: button, Clicks: 1}
	if button == placement.ButtonPrimary {
		ev.Clicks = g.clicks.Press(x, y)
	}
	return ev, true
}

// Draw renders the masses, the mass panel and the overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for _, s := range g.sim.Feed() {
		if !vec.Finite(s.Position) {
			continue
		}
		x, y := g.view.Screen(s.Position)
		if !s.Pending {
			g.drawVector(screen, x, y, s.Acceleration, accelC)
			g.drawVector(screen, x, y, s.Velocity, velocityC)
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), massRadius, s.Tag.Color(), true)
	}

	g.drawPanel(screen)
	g.drawOverlay(screen)
}

// Layout follows the window so the world keeps its scale when resized.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideHeight != g.height {
		level.Debug(g.logger).Log("msg", "resize", "width", outsideWidth, "height", outsideHeight)
	}
	g.width, g.height = outsideWidth, outsideHeight
	g.view.Resize(float64(outsideHeight))
	return outsideWidth, outsideHeight
}

func (g *Game) drawVector(screen *ebiten.Image, x, y float64, d vec.Vec2, clr color.Color) {
	dx, dy := g.view.Length(d)
	if !vec.Finite(vec.New(dx, dy)) || (dx == 0 && dy == 0) {
		return
	}
	ex, ey := x+dx, y+dy
	vector.StrokeLine(screen, float32(x), float32(y), float32(ex), float32(ey), 1, clr, true)

	// arrow head
	back := vec.Angle(vec.New(-dx, -dy))
	for _, a := range []float64{back + tipAngle, back - tipAngle} {
		tip := vec.Polar(tipSize, a)
		vector.StrokeLine(screen, float32(ex), float32(ey), float32(ex+tip[0]), float32(ey+tip[1]), 1, clr, true)
	}
}

// the "Existing Masses" and "New Masses" panel down the left side.
func (g *Game) drawPanel(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, panelW, float32(g.height), panelBG, false)
	face := basicfont.Face7x13
	controls := g.sim.Controls()

	y := padding + lineH
	orbit := "off"
	if controls.CircularOrbit() {
		orbit = "on"
	}
	for _, line := range []string{
		"New Masses",
		fmt.Sprintf("  Mass [Yg]: %.1f  (Up/Down)", controls.NewMassValue()),
		fmt.Sprintf("  Circular orbit: %s  (O)", orbit),
		fmt.Sprintf("  Next colour: %s", g.sim.NextTag()),
		"",
		totalsLine(inspect.Measure(g.sim.Masses())),
		"",
		"Existing Masses  (C clears)",
	} {
		text.Draw(screen, line, face, padding, y, textC)
		y += lineH
	}

	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	for _, row := range inspect.Rows(g.sim.Masses()) {
		if y > g.height {
			break
		}
		lines := row.Lines()
		// header in the tag colour, lighter under the cursor
		top := y - lineH + 3
		hovered := mx >= padding/2 && mx < panelW-padding/2 && my >= top && my < top+lineH
		shade := row.Tag.Shade(hovered, hovered && pressed)
		vector.DrawFilledRect(screen, padding/2, float32(top), panelW-padding, lineH, shade, false)
		headerC := color.Color(textC)
		if row.Tag.DarkText() {
			headerC = color.Black
		}
		text.Draw(screen, lines[0], face, padding, y, headerC)
		y += lineH
		for _, line := range lines[1:] {
			text.Draw(screen, line, face, padding, y, textC)
			y += lineH
		}
	}
}

// instructions in the top right corner.
func (g *Game) drawOverlay(screen *ebiten.Image) {
	lines := []string{
		"Click to place a new mass.",
		"Click again to set its velocity.",
	}
	if g.message != "" {
		lines = append(lines, g.message)
	}
	face := basicfont.Face7x13
	for i, line := range lines {
		w := len(line) * 7
		text.Draw(screen, line, face, g.width-w-padding, padding+lineH*(i+1), textC)
	}
}

func totalsLine(t inspect.Totals) string {
	return fmt.Sprintf("E %.4g  |p| %.4g", t.Energy(), t.Momentum.Len())
}
