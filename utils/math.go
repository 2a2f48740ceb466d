// Package utils contains small numeric helpers shared across the trajectory packages.
package utils

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the tolerance used when deciding that two path quantities are the same.
const Epsilon = 1e-9

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Square returns n*n. math.Pow(n, 2) is slow, this is faster.
func Square(n float64) float64 {
	return n * n
}

// Clamp limits value to the closed range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Float64AlmostEqual returns whether a and b are within Epsilon of each other.
func Float64AlmostEqual(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, Epsilon)
}

// IsFinite returns false for NaN and infinities.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
