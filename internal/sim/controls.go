package sim

// Controls are the values a user edits between placements. The placement
// machine reads them on every click.
type Controls struct {
	newMass       float64 // Yg
	circularOrbit bool
}

// NewControls returns controls with the given initial values.
func NewControls(newMass float64, circularOrbit bool) *Controls {
	return &Controls{newMass: newMass, circularOrbit: circularOrbit}
}

// NewMassValue is the mass given to the next placed mass.
func (c *Controls) NewMassValue() float64 { return c.newMass }

// SetNewMassValue changes the mass for future placements only. Non-positive
// values are ignored.
func (c *Controls) SetNewMassValue(m float64) {
	if m > 0 {
		c.newMass = m
	}
}

// CircularOrbit reports whether new masses are launched into orbit.
func (c *Controls) CircularOrbit() bool { return c.circularOrbit }

// SetCircularOrbit sets circular orbit mode.
func (c *Controls) SetCircularOrbit(on bool) { c.circularOrbit = on }

// ToggleCircularOrbit flips circular orbit mode and returns the new value.
func (c *Controls) ToggleCircularOrbit() bool {
	c.circularOrbit = !c.circularOrbit
	return c.circularOrbit
}
