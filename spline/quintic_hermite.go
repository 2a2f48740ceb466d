// Package spline fits smooth curves through waypoint poses and samples them densely enough that
// straight-line interpolation between consecutive samples stays within fixed error bounds.
package spline

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/trajgen/spatialmath"
	"go.viam.com/trajgen/utils"
)

// tangentScale sets the magnitude of the endpoint tangents relative to the chord length.
const tangentScale = 1.2

// minWaypointSpacing is the smallest chord between consecutive waypoints that still defines a
// tangent.
const minWaypointSpacing = 1e-6

// hermiteAxis holds the boundary conditions and power-basis coefficients of one coordinate of a
// quintic Hermite segment.
type hermiteAxis struct {
	p0, d0, dd0 float64
	p1, d1, dd1 float64

	a, b, c, d, e, f float64
}

func newHermiteAxis(p0, d0, dd0, p1, d1, dd1 float64) hermiteAxis {
	return hermiteAxis{
		p0: p0, d0: d0, dd0: dd0,
		p1: p1, d1: d1, dd1: dd1,
		a: -6*p0 - 3*d0 - 0.5*dd0 + 0.5*dd1 - 3*d1 + 6*p1,
		b: 15*p0 + 8*d0 + 1.5*dd0 - dd1 + 7*d1 - 15*p1,
		c: -10*p0 - 6*d0 - 1.5*dd0 + 0.5*dd1 - 4*d1 + 10*p1,
		d: 0.5 * dd0,
		e: d0,
		f: p0,
	}
}

func (h hermiteAxis) value(t float64) float64 {
	return ((((h.a*t+h.b)*t+h.c)*t+h.d)*t+h.e)*t + h.f
}

func (h hermiteAxis) velocity(t float64) float64 {
	return (((5*h.a*t+4*h.b)*t+3*h.c)*t+2*h.d)*t + h.e
}

func (h hermiteAxis) acceleration(t float64) float64 {
	return ((20*h.a*t+12*h.b)*t+6*h.c)*t + 2*h.d
}

func (h hermiteAxis) jerk(t float64) float64 {
	return (60*h.a*t+24*h.b)*t + 6*h.c
}

// QuinticHermite is a curve between two poses, parameterized over [0, 1], whose position,
// tangent and second derivative are fixed at both ends. Matching those at shared waypoints makes
// heading and curvature continuous across consecutive segments.
type QuinticHermite struct {
	x hermiteAxis
	y hermiteAxis
}

// NewQuinticHermite returns the segment leaving start along its heading and arriving at end along
// its heading, with zero second derivative at both ends.
func NewQuinticHermite(start, end spatialmath.Pose) (*QuinticHermite, error) {
	chord := start.Distance(end)
	if chord < minWaypointSpacing || !utils.IsFinite(chord) {
		return nil, NewDegenerateSplineError("waypoints %s and %s are coincident", start, end)
	}
	scale := tangentScale * chord
	sin0, cos0 := math.Sincos(start.Heading())
	sin1, cos1 := math.Sincos(end.Heading())
	return &QuinticHermite{
		x: newHermiteAxis(start.X(), cos0*scale, 0, end.X(), cos1*scale, 0),
		y: newHermiteAxis(start.Y(), sin0*scale, 0, end.Y(), sin1*scale, 0),
	}, nil
}

// withSecondDerivatives returns a copy of the segment with the given endpoint second derivatives.
func (q *QuinticHermite) withSecondDerivatives(start, end r2.Point) *QuinticHermite {
	return &QuinticHermite{
		x: newHermiteAxis(q.x.p0, q.x.d0, start.X, q.x.p1, q.x.d1, end.X),
		y: newHermiteAxis(q.y.p0, q.y.d0, start.Y, q.y.p1, q.y.d1, end.Y),
	}
}

// StartSecondDerivative returns the second derivative of the curve at t = 0.
func (q *QuinticHermite) StartSecondDerivative() r2.Point {
	return r2.Point{X: q.x.dd0, Y: q.y.dd0}
}

// EndSecondDerivative returns the second derivative of the curve at t = 1.
func (q *QuinticHermite) EndSecondDerivative() r2.Point {
	return r2.Point{X: q.x.dd1, Y: q.y.dd1}
}

// Position returns the point on the curve at t.
func (q *QuinticHermite) Position(t float64) r2.Point {
	return r2.Point{X: q.x.value(t), Y: q.y.value(t)}
}

// Velocity returns the derivative of the curve with respect to t.
func (q *QuinticHermite) Velocity(t float64) r2.Point {
	return r2.Point{X: q.x.velocity(t), Y: q.y.velocity(t)}
}

// Heading returns the direction of the tangent at t.
func (q *QuinticHermite) Heading(t float64) float64 {
	return math.Atan2(q.y.velocity(t), q.x.velocity(t))
}

// Curvature returns the signed curvature at t.
func (q *QuinticHermite) Curvature(t float64) float64 {
	dx, dy := q.x.velocity(t), q.y.velocity(t)
	ddx, ddy := q.x.acceleration(t), q.y.acceleration(t)
	speedSq := dx*dx + dy*dy
	return (dx*ddy - ddx*dy) / (speedSq * math.Sqrt(speedSq))
}

// DCurvatureDs returns the derivative of curvature with respect to arc length at t.
func (q *QuinticHermite) DCurvatureDs(t float64) float64 {
	dx, dy := q.x.velocity(t), q.y.velocity(t)
	ddx, ddy := q.x.acceleration(t), q.y.acceleration(t)
	dddx, dddy := q.x.jerk(t), q.y.jerk(t)
	speedSq := dx*dx + dy*dy
	cross := dx*ddy - ddx*dy
	return ((dx*dddy-dddx*dy)*speedSq - 3*cross*(dx*ddx+dy*ddy)) / (speedSq * speedSq * speedSq)
}

// Pose returns the position and tangent heading at t.
func (q *QuinticHermite) Pose(t float64) spatialmath.Pose {
	return spatialmath.NewPoseFromPoint(q.Position(t), q.Heading(t))
}

// CurvedPose returns the pose at t annotated with curvature and its arc-length derivative.
func (q *QuinticHermite) CurvedPose(t float64) spatialmath.CurvedPose {
	return spatialmath.NewCurvedPose(q.Pose(t), q.Curvature(t), q.DCurvatureDs(t))
}

// sumDCurvature2 approximates the integral of (dk/ds)^2 over the arc length of the segment.
func (q *QuinticHermite) sumDCurvature2() float64 {
	const samples = 100
	dt := 1.0 / samples
	sum := 0.0
	for i := 0; i < samples; i++ {
		t := (float64(i) + 0.5) * dt
		dk := q.DCurvatureDs(t)
		sum += dk * dk * q.Velocity(t).Norm() * dt
	}
	return sum
}
