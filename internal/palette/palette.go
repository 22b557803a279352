// Package palette is the fixed set of colour tags handed out to new masses.
package palette

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Tag groups masses for display. It has no physical meaning.
type Tag uint8

// tags in hand-out order
const (
	Orange Tag = iota
	Yellow
	Green

	numTags
)

var names = [numTags]string{"orange", "yellow", "green"}

// panel headers in these colours take black text.
var darkText = [numTags]bool{Yellow: true, Green: true}

// base, hovered and active shades for each tag.
var shades = [numTags][3]colorful.Color{
	Orange: {{R: 1.0, G: 0.4, B: 0.0}, {R: 1.0, G: 0.6, B: 0.0}, {R: 1.0, G: 0.8, B: 0.0}},
	Yellow: {{R: 1.0, G: 1.0, B: 0.0}, {R: 1.0, G: 1.0, B: 0.6}, {R: 1.0, G: 1.0, B: 0.8}},
	Green:  {{R: 0.0, G: 0.8, B: 0.0}, {R: 0.0, G: 1.0, B: 0.2}, {R: 0.4, G: 1.0, B: 0.4}},
}

func (t Tag) String() string {
	if t >= numTags {
		return "unknown"
	}
	return names[t]
}

// Color is the tag's base display colour.
func (t Tag) Color() colorful.Color {
	return t.Shades()[0]
}

// Shades returns base, hovered and active colours.
func (t Tag) Shades() [3]colorful.Color {
	return shades[t%numTags]
}

// Shade picks the colour for a widget in the tag's colour: pressed wins
// over hovered.
func (t Tag) Shade(hovered, pressed bool) colorful.Color {
	s := t.Shades()
	switch {
	case pressed:
		return s[2]
	case hovered:
		return s[1]
	}
	return s[0]
}

// DarkText reports whether text drawn over the tag colour should be dark.
func (t Tag) DarkText() bool {
	return darkText[t%numTags]
}

// Cycle hands out tags in the order Orange, Yellow, Green, Orange, ...
// The zero value starts at Orange.
type Cycle struct {
	next Tag
}

// Next returns the current tag and advances the cursor.
func (c *Cycle) Next() Tag {
	t := c.next
	c.next = (c.next + 1) % numTags
	return t
}

// Peek returns the tag the next call to Next will hand out.
func (c *Cycle) Peek() Tag {
	return c.next
}

// Reset puts the cursor back on Orange.
func (c *Cycle) Reset() {
	c.next = Orange
}
