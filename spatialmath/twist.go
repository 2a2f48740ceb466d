package spatialmath

import "math"

const twistEpsilon = 1e-9

// Twist is an instantaneous planar velocity expressed in the body frame: forward, lateral and
// rotational components.
type Twist struct {
	Dx     float64
	Dy     float64
	DTheta float64
}

// Scaled returns the twist multiplied by k, e.g. a velocity twist integrated over k seconds.
func (t Twist) Scaled(k float64) Twist {
	return Twist{Dx: t.Dx * k, Dy: t.Dy * k, DTheta: t.DTheta * k}
}

// Curvature returns the signed curvature of the arc the twist traces, or 0 for a rotation in place.
func (t Twist) Curvature() float64 {
	norm := math.Hypot(t.Dx, t.Dy)
	if norm == 0 {
		return 0
	}
	if t.Dx < 0 {
		norm = -norm
	}
	return t.DTheta / norm
}
