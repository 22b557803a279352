package input

import (
	"math"
	"time"
)

// defaults match common desktop double-click settings
const (
	DefaultDoubleClickWindow = 400 * time.Millisecond
	DefaultDoubleClickSlop   = 4.0
)

// ClickCounter numbers successive presses of the same button for frontends
// that only report single presses. A press within Window of the previous one
// and no further than Slop from it continues the run.
type ClickCounter struct {
	Window time.Duration
	Slop   float64
	Now    func() time.Time

	last   time.Time
	lx, ly float64
	count  int
}

// NewClickCounter uses the default window and slop and the wall clock.
func NewClickCounter() *ClickCounter {
	return &ClickCounter{
		Window: DefaultDoubleClickWindow,
		Slop:   DefaultDoubleClickSlop,
		Now:    time.Now,
	}
}

// Press records a press at (x, y) and returns its click count: 1 for a
// single click, 2 for the second click of a double-click and so on.
func (c *ClickCounter) Press(x, y float64) int {
	now := c.Now()
	if c.count > 0 && now.Sub(c.last) <= c.Window && math.Hypot(x-c.lx, y-c.ly) <= c.Slop {
		c.count++
	} else {
		c.count = 1
	}
	c.last, c.lx, c.ly = now, x, y
	return c.count
}

// Reset forgets the previous press.
func (c *ClickCounter) Reset() {
	c.count = 0
}
