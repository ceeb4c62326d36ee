package core

import (
	"math"
	"strconv"
)

// Epsilon is the tolerance used by Percentage.IsOne and Percentage.IsZero.
const Epsilon = 1e-5

// Percentage is a probability-like scalar clamped to [0, 1]. Arithmetic on
// percentages saturates at both ends instead of leaving the range.
type Percentage float64

// NewPercentage clamps v into [0, 1].
func NewPercentage(v float64) Percentage {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return Percentage(v)
}

// FromPercent builds a Percentage from a value in [0, 100].
func FromPercent(p float64) Percentage {
	return NewPercentage(p / 100)
}

// Value returns the raw fraction in [0, 1].
func (p Percentage) Value() float64 { return float64(p) }

// AsPercent returns the value scaled to [0, 100].
func (p Percentage) AsPercent() float64 { return float64(p) * 100 }

// IsOne reports whether p is within Epsilon of 100%.
func (p Percentage) IsOne() bool { return math.Abs(float64(p)-1) < Epsilon }

// IsZero reports whether p is within Epsilon of 0%.
func (p Percentage) IsZero() bool { return math.Abs(float64(p)) < Epsilon }

// Add returns p+q saturated at 100%.
func (p Percentage) Add(q Percentage) Percentage { return NewPercentage(float64(p) + float64(q)) }

// Sub returns p-q saturated at 0%.
func (p Percentage) Sub(q Percentage) Percentage { return NewPercentage(float64(p) - float64(q)) }

// Mul returns the product of two percentages (50% of 60% is 30%).
func (p Percentage) Mul(q Percentage) Percentage { return NewPercentage(float64(p) * float64(q)) }

// Scale multiplies p by an arbitrary factor and clamps the result.
func (p Percentage) Scale(f float64) Percentage { return NewPercentage(float64(p) * f) }

// String renders the percentage as e.g. "50%".
func (p Percentage) String() string {
	return strconv.FormatFloat(p.AsPercent(), 'f', -1, 64) + "%"
}

// SumPercentages adds the provided percentages with saturation.
func SumPercentages(ps ...Percentage) Percentage {
	var total float64
	for _, p := range ps {
		total += float64(p)
	}
	return NewPercentage(total)
}
