package spatialmath

import "math"

// NormalizeAngle returns the given angle in radians wrapped into the (-pi, pi] range.
func NormalizeAngle(theta float64) float64 {
	wrapped := math.Remainder(theta, 2*math.Pi)
	if wrapped <= -math.Pi {
		wrapped += 2 * math.Pi
	}
	return wrapped
}

// ShortestAngleBetween returns the signed rotation of smallest magnitude that takes from to to.
func ShortestAngleBetween(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// InterpolateAngle interpolates between two headings along the shorter arc.
func InterpolateAngle(from, to, by float64) float64 {
	return NormalizeAngle(from + ShortestAngleBetween(from, to)*by)
}
