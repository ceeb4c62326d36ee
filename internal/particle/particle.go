// Package particle defines the typed occupants of a simulation cell.
package particle

// State holds the physical properties of a particle. It never affects rule
// matching.
type State struct {
	// Temperature in degrees Celsius.
	Temperature float64
	// Pressure in kilopascals.
	Pressure float64
	// Density in grams per cubic centimetre.
	Density float64
}

// DefaultState is room temperature, atmospheric pressure and unit density.
func DefaultState() State {
	return State{Temperature: 20, Pressure: 101.325, Density: 1}
}

// StateFor returns the default state for a particle kind.
func StateFor(k Kind) State {
	s := DefaultState()
	switch k {
	case Sand:
		s.Density = 1.5
	case Water:
		s.Density = 1.0
	case Stone:
		s.Density = 2.65
	}
	return s
}

// Particle is a kind plus its mutable physical state.
type Particle struct {
	Kind  Kind
	State State
}

// New returns a particle of the given kind in its default state.
func New(k Kind) *Particle {
	return &Particle{Kind: k, State: StateFor(k)}
}

// Equal reports whether two particles have the same kind. State is ignored.
func (p *Particle) Equal(o *Particle) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.Kind == o.Kind
}

// Clone returns an independent copy of p.
func (p *Particle) Clone() *Particle {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
