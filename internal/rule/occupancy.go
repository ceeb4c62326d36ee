package rule

import "fmt"

type occupancyState uint8

const (
	stateVacant occupancyState = iota
	stateOccupiedBy
	stateOccupiedByAny
	stateUnknown
)

// Occupancy is a pattern cell: a specific occupant, any occupant, nothing,
// or "don't care". The zero value is Vacant.
type Occupancy[T comparable] struct {
	state occupancyState
	value T
}

// OccupiedBy matches cells holding exactly v.
func OccupiedBy[T comparable](v T) Occupancy[T] {
	return Occupancy[T]{state: stateOccupiedBy, value: v}
}

// OccupiedByAny matches any occupied cell.
func OccupiedByAny[T comparable]() Occupancy[T] {
	return Occupancy[T]{state: stateOccupiedByAny}
}

// Unknown matches every cell.
func Unknown[T comparable]() Occupancy[T] {
	return Occupancy[T]{state: stateUnknown}
}

// Vacant matches only empty cells.
func Vacant[T comparable]() Occupancy[T] {
	return Occupancy[T]{}
}

// IsOccupiedBy reports whether o names a concrete occupant.
func (o Occupancy[T]) IsOccupiedBy() bool { return o.state == stateOccupiedBy }

// IsOccupiedByAny reports whether o is the any-occupant wildcard.
func (o Occupancy[T]) IsOccupiedByAny() bool { return o.state == stateOccupiedByAny }

// IsUnknown reports whether o is the match-everything wildcard.
func (o Occupancy[T]) IsUnknown() bool { return o.state == stateUnknown }

// IsVacant reports whether o denotes an empty cell.
func (o Occupancy[T]) IsVacant() bool { return o.state == stateVacant }

// IsWildcard reports whether o leaves the occupant unspecified. In an
// output grid a wildcard keeps whatever the cell held before.
func (o Occupancy[T]) IsWildcard() bool {
	return o.state == stateOccupiedByAny || o.state == stateUnknown
}

// Value returns the occupant of an OccupiedBy cell.
func (o Occupancy[T]) Value() (T, bool) {
	if o.state != stateOccupiedBy {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Matches is the pattern relation between two cells. It is reflexive and
// symmetric but not transitive: Unknown matches both OccupiedBy(a) and
// OccupiedBy(b) while those two only match each other when a == b.
func (o Occupancy[T]) Matches(other Occupancy[T]) bool {
	if o.state == stateUnknown || other.state == stateUnknown {
		return true
	}
	switch o.state {
	case stateVacant:
		return other.state == stateVacant
	case stateOccupiedByAny:
		return other.state == stateOccupiedBy || other.state == stateOccupiedByAny
	case stateOccupiedBy:
		switch other.state {
		case stateOccupiedByAny:
			return true
		case stateOccupiedBy:
			return o.value == other.value
		}
	}
	return false
}

// String renders the cell using the rule-file tokens.
func (o Occupancy[T]) String() string {
	switch o.state {
	case stateOccupiedBy:
		return fmt.Sprint(o.value)
	case stateOccupiedByAny:
		return tokenAny
	case stateUnknown:
		return tokenUnknown
	default:
		return tokenVacant
	}
}

// MapOccupancy converts the occupant of o with f, keeping wildcards as they are.
func MapOccupancy[T, U comparable](o Occupancy[T], f func(T) U) Occupancy[U] {
	if o.state == stateOccupiedBy {
		return OccupiedBy(f(o.value))
	}
	return Occupancy[U]{state: o.state}
}
