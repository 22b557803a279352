package body

import "github.com/quillaja/gravsim/internal/vec"

// Store keeps masses in creation order. Masses are addressed by index, which
// is stable until Reset.
//
// Only the methods below mutate a stored mass; a mass value never changes
// after Append.
type Store struct {
	masses []Mass
}

// NewStore makes an empty store with room for capacity masses.
func NewStore(capacity int) *Store {
	return &Store{masses: make([]Mass, 0, capacity)}
}

// Len is the number of stored masses.
func (s *Store) Len() int {
	return len(s.masses)
}

// Append stores m and returns its index. A pending mass is stored with zero
// velocity and acceleration.
func (s *Store) Append(m Mass) int {
	if m.Pending {
		m.Velocity = vec.Vec2{}
		m.Acceleration = vec.Vec2{}
	}
	s.masses = append(s.masses, m)
	return len(s.masses) - 1
}

// At returns a copy of mass i.
func (s *Store) At(i int) Mass {
	return s.masses[i]
}

// Masses is the backing slice, borrowed read-only until the next mutation.
func (s *Store) Masses() []Mass {
	return s.masses
}

// Finalize gives mass i its velocity and makes it active.
func (s *Store) Finalize(i int, velocity vec.Vec2) {
	s.masses[i].Velocity = velocity
	s.masses[i].Pending = false
}

// SetAcceleration records the acceleration computed for mass i.
func (s *Store) SetAcceleration(i int, a vec.Vec2) {
	s.masses[i].Acceleration = a
}

// Integrate advances mass i by dt.
func (s *Store) Integrate(i int, dt float64) {
	s.masses[i].Integrate(dt)
}

// Reset removes every mass, keeping the allocation.
func (s *Store) Reset() {
	s.masses = s.masses[:0]
}
