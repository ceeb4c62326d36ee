// Package rule holds the pattern-rewrite rules that drive the falling-sand
// world, together with their ordering, registry and file format.
package rule

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/sampleuv"

	"sand-ca/internal/core"
)

// ErrInvalidRule is matched by every rule validation error via errors.Is.
var ErrInvalidRule = errors.New("invalid rule")

// ErrNoOutputs is returned for a rule without any outputs.
var ErrNoOutputs = fmt.Errorf("%w: no outputs", ErrInvalidRule)

// DimensionMismatchError reports an output whose shape differs from the input.
type DimensionMismatchError struct {
	Index  int
	Input  core.Dimensions
	Output core.Dimensions
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("invalid rule: output %d is %s, input is %s", e.Index, e.Output, e.Input)
}

// Is makes errors.Is(err, ErrInvalidRule) true.
func (e *DimensionMismatchError) Is(target error) bool { return target == ErrInvalidRule }

// ProbabilityError reports output probabilities that do not add up to 100%.
type ProbabilityError struct {
	Total float64
}

func (e *ProbabilityError) Error() string {
	return fmt.Sprintf("invalid rule: output probabilities sum to %g, want 1", e.Total)
}

// Is makes errors.Is(err, ErrInvalidRule) true.
func (e *ProbabilityError) Is(target error) bool { return target == ErrInvalidRule }

// Output is one possible rewrite of a matched window.
type Output[T comparable] struct {
	Grid        *core.Grid[Occupancy[T]]
	Probability core.Percentage
}

// Rule rewrites any window matching Input with one of Outputs, chosen by
// probability. Rules without a priority are interleaved randomly with the
// prioritised ones each tick; lower priorities run first.
type Rule[T comparable] struct {
	Name     string
	Input    *core.Grid[Occupancy[T]]
	Outputs  []Output[T]
	Priority *int
}

// New validates and builds a rule.
func New[T comparable](input *core.Grid[Occupancy[T]], outputs ...Output[T]) (*Rule[T], error) {
	r := &Rule[T]{Input: input, Outputs: outputs}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Must is New for rule literals; it panics on validation errors.
func Must[T comparable](input *core.Grid[Occupancy[T]], outputs ...Output[T]) *Rule[T] {
	r, err := New(input, outputs...)
	if err != nil {
		panic(fmt.Sprintf("rule: %v", err))
	}
	return r
}

// Validate checks the structural invariants of r: at least one output, all
// outputs shaped like the input, and probabilities summing to 1.
func (r *Rule[T]) Validate() error {
	if r.Input == nil {
		return fmt.Errorf("%w: missing input pattern", ErrInvalidRule)
	}
	if len(r.Outputs) == 0 {
		return ErrNoOutputs
	}
	dims := r.Input.Dimensions()
	weights := make([]float64, len(r.Outputs))
	for i, out := range r.Outputs {
		if out.Grid == nil {
			return fmt.Errorf("%w: output %d has no grid", ErrInvalidRule, i)
		}
		if od := out.Grid.Dimensions(); od != dims {
			return &DimensionMismatchError{Index: i, Input: dims, Output: od}
		}
		weights[i] = out.Probability.Value()
	}
	if total := floats.Sum(weights); math.Abs(total-1) >= core.Epsilon {
		return &ProbabilityError{Total: total}
	}
	return nil
}

// WithPriority sets the priority and returns r.
func (r *Rule[T]) WithPriority(p int) *Rule[T] {
	r.Priority = &p
	return r
}

// WithName sets the diagnostic name and returns r.
func (r *Rule[T]) WithName(name string) *Rule[T] {
	r.Name = name
	return r
}

// Dimensions is the shape of the input pattern.
func (r *Rule[T]) Dimensions() core.Dimensions { return r.Input.Dimensions() }

// Matches reports whether every cell of window matches the corresponding
// input cell. Windows of a different shape never match.
func (r *Rule[T]) Matches(window *core.Grid[Occupancy[T]]) bool {
	return Matches(r.Input, window)
}

// Matches compares two patterns cell by cell.
func Matches[T comparable](a, b *core.Grid[Occupancy[T]]) bool {
	if a == nil || b == nil || a.Dimensions() != b.Dimensions() {
		return false
	}
	bc := b.Cells()
	for i, c := range a.Cells() {
		if !c.Matches(bc[i]) {
			return false
		}
	}
	return true
}

// Sample picks one output with probability proportional to its weight.
func (r *Rule[T]) Sample(src rand.Source) Output[T] {
	if len(r.Outputs) == 1 {
		return r.Outputs[0]
	}
	weights := make([]float64, len(r.Outputs))
	for i, out := range r.Outputs {
		weights[i] = out.Probability.Value()
	}
	idx, ok := sampleuv.NewWeighted(weights, src).Take()
	if !ok {
		return r.Outputs[len(r.Outputs)-1]
	}
	return r.Outputs[idx]
}

func (r *Rule[T]) String() string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("rule(%s, %d outputs)", r.Dimensions(), len(r.Outputs))
}
