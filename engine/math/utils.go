package math

import "golang.org/x/exp/constraints"

// Scalar is any element type a vector component can hold.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Float is the element type of positions and colours.
type Float interface {
	constraints.Float
}

// Index is the element type of face vertex indices.
type Index interface {
	constraints.Integer
}

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}
