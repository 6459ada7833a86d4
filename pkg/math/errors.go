package math

import "errors"

var (
	// ErrZeroLength is returned when normalizing a vector of length 0.
	ErrZeroLength = errors.New("math: normalize zero-length vector")

	// ErrSingularMatrix is returned when inverting a matrix whose determinant is 0.
	ErrSingularMatrix = errors.New("math: singular matrix")

	// ErrInvalidFrustum is returned for projection parameters that would divide by zero.
	ErrInvalidFrustum = errors.New("math: invalid frustum")
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
