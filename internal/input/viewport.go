// Package input converts frontend pointer events into world-space clicks.
package input

import (
	"github.com/quillaja/gravsim/internal/placement"
	"github.com/quillaja/gravsim/internal/vec"
)

// ScreenEvent is a pointer press as a frontend reports it, in pixels (or
// terminal cells) with y growing downwards.
type ScreenEvent struct {
	X, Y   float64
	Button placement.Button
	Clicks int
}

// Viewport maps screen coordinates to world km. World y grows upwards and
// the world origin is the bottom-left corner of the screen.
type Viewport struct {
	ScaleX float64 // km per horizontal unit
	ScaleY float64 // km per vertical unit
	Height float64 // screen height in vertical units
}

// NewViewport makes a viewport with square units.
func NewViewport(scale, height float64) Viewport {
	return Viewport{ScaleX: scale, ScaleY: scale, Height: height}
}

// World converts a screen point to world km.
func (v Viewport) World(sx, sy float64) vec.Vec2 {
	return vec.New(sx*v.ScaleX, (v.Height-sy)*v.ScaleY)
}

// Screen converts a world point back to screen coordinates.
func (v Viewport) Screen(p vec.Vec2) (sx, sy float64) {
	return p[0] / v.ScaleX, v.Height - p[1]/v.ScaleY
}

// Length converts a world vector to a screen-space offset, y flipped.
func (v Viewport) Length(d vec.Vec2) (dx, dy float64) {
	return d[0] / v.ScaleX, -d[1] / v.ScaleY
}

// Click converts ev to the click the placement machine consumes.
func (v Viewport) Click(ev ScreenEvent) placement.Click {
	return placement.Click{
		Pos:    v.World(ev.X, ev.Y),
		Button: ev.Button,
		Count:  ev.Clicks,
	}
}

// Resize changes the screen height, keeping the scale.
func (v *Viewport) Resize(height float64) {
	v.Height = height
}
