package particle

import (
	"fmt"
	"strings"
)

// Kind enumerates the particle types known to the simulation.
type Kind uint8

const (
	Sand Kind = iota
	Water
	Stone
)

var kindNames = [...]string{
	Sand:  "sand",
	Water: "water",
	Stone: "stone",
}

// Kinds lists every particle kind in declaration order.
func Kinds() []Kind { return []Kind{Sand, Water, Stone} }

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool { return int(k) < len(kindNames) }

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind from its name, ignoring case.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown particle kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid particle kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
