package sand

import (
	"fmt"

	"sand-ca/internal/particle"
)

// Tool is what a pointer press does to a cell.
type Tool struct {
	spawn bool
	kind  particle.Kind
}

// Despawn clears cells.
func Despawn() Tool { return Tool{} }

// Spawn fills cells with fresh particles of kind k.
func Spawn(k particle.Kind) Tool { return Tool{spawn: true, kind: k} }

// ToolForDigit maps the number keys: 1 erases, 2 sand, 3 water, 4 stone.
func ToolForDigit(d int) (Tool, bool) {
	switch d {
	case 1:
		return Despawn(), true
	case 2:
		return Spawn(particle.Sand), true
	case 3:
		return Spawn(particle.Water), true
	case 4:
		return Spawn(particle.Stone), true
	}
	return Tool{}, false
}

// Kind returns the spawned kind, or false for Despawn.
func (t Tool) Kind() (particle.Kind, bool) { return t.kind, t.spawn }

// Apply performs the tool at cell (x, y).
func (t Tool) Apply(w *World, x, y int) error {
	if !t.spawn {
		return w.Place(x, y, nil)
	}
	k := t.kind
	return w.Place(x, y, &k)
}

func (t Tool) String() string {
	if !t.spawn {
		return "erase"
	}
	return t.kind.String()
}

// Stats counts particles for the HUD.
type Stats struct {
	Spawned  int
	Existing int
}

func (s Stats) String() string {
	return fmt.Sprintf("spawned %d, existing %d", s.Spawned, s.Existing)
}
