// Package spatialmath defines the planar pose algebra used to describe, build and follow paths on a field.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/trajgen/utils"
)

// Pose is a position and heading in a planar field frame. Heading is in radians, counterclockwise
// from the +X axis, and is always kept in (-pi, pi].
type Pose struct {
	translation r2.Point
	heading     float64
}

// NewPose returns a pose at x, y facing heading radians.
func NewPose(x, y, heading float64) Pose {
	return Pose{translation: r2.Point{X: x, Y: y}, heading: NormalizeAngle(heading)}
}

// NewPoseFromDegrees returns a pose at x, y facing heading degrees.
func NewPoseFromDegrees(x, y, headingDegs float64) Pose {
	return NewPose(x, y, utils.DegToRad(headingDegs))
}

// NewPoseFromPoint returns a pose at the given translation facing heading radians.
func NewPoseFromPoint(pt r2.Point, heading float64) Pose {
	return Pose{translation: pt, heading: NormalizeAngle(heading)}
}

// NewZeroPose returns the identity pose.
func NewZeroPose() Pose {
	return Pose{}
}

// X returns the x coordinate of the pose.
func (p Pose) X() float64 { return p.translation.X }

// Y returns the y coordinate of the pose.
func (p Pose) Y() float64 { return p.translation.Y }

// Heading returns the heading of the pose in radians.
func (p Pose) Heading() float64 { return p.heading }

// Translation returns the position of the pose.
func (p Pose) Translation() r2.Point { return p.translation }

// TransformBy composes p with other, treating other as expressed in p's local frame.
func (p Pose) TransformBy(other Pose) Pose {
	return Pose{
		translation: p.translation.Add(rotate(other.translation, p.heading)),
		heading:     NormalizeAngle(p.heading + other.heading),
	}
}

// Inverse returns the pose which, composed with p, yields the identity.
func (p Pose) Inverse() Pose {
	return Pose{
		translation: rotate(p.translation.Mul(-1), -p.heading),
		heading:     NormalizeAngle(-p.heading),
	}
}

// RelativeTo returns p expressed in the local frame of base.
func (p Pose) RelativeTo(base Pose) Pose {
	return PoseBetween(base, p)
}

// Rotate returns p turned in place by theta radians.
func (p Pose) Rotate(theta float64) Pose {
	return p.TransformBy(NewPose(0, 0, theta))
}

// Reversed returns p turned in place by half a revolution.
func (p Pose) Reversed() Pose {
	return p.Rotate(math.Pi)
}

// Mirror reflects the pose across the field X axis.
func (p Pose) Mirror() Pose {
	return NewPose(p.translation.X, -p.translation.Y, -p.heading)
}

// Distance returns the euclidean distance between the positions of the two poses.
func (p Pose) Distance(other Pose) float64 {
	return other.translation.Sub(p.translation).Norm()
}

// Interpolate returns the pose a fraction by of the way from p to to. Position is interpolated
// linearly and heading along the shorter arc.
func (p Pose) Interpolate(to Pose, by float64) Pose {
	if by <= 0 {
		return p
	}
	if by >= 1 {
		return to
	}
	return Pose{
		translation: p.translation.Add(to.translation.Sub(p.translation).Mul(by)),
		heading:     InterpolateAngle(p.heading, to.heading, by),
	}
}

// Exp integrates a constant body twist for unit time starting at p.
func (p Pose) Exp(twist Twist) Pose {
	sinTheta := math.Sin(twist.DTheta)
	cosTheta := math.Cos(twist.DTheta)
	var s, c float64
	if math.Abs(twist.DTheta) < twistEpsilon {
		s = 1 - twist.DTheta*twist.DTheta/6
		c = 0.5 * twist.DTheta
	} else {
		s = sinTheta / twist.DTheta
		c = (1 - cosTheta) / twist.DTheta
	}
	delta := NewPose(twist.Dx*s-twist.Dy*c, twist.Dx*c+twist.Dy*s, twist.DTheta)
	return p.TransformBy(delta)
}

// Log returns the constant body twist which, integrated for unit time from p, arrives at end.
func (p Pose) Log(end Pose) Twist {
	delta := PoseBetween(p, end)
	dTheta := delta.heading
	halfDTheta := dTheta / 2
	cosMinusOne := math.Cos(dTheta) - 1

	var halfThetaByTanOfHalfDTheta float64
	if math.Abs(cosMinusOne) < twistEpsilon {
		halfThetaByTanOfHalfDTheta = 1 - dTheta*dTheta/12
	} else {
		halfThetaByTanOfHalfDTheta = -(halfDTheta * math.Sin(dTheta)) / cosMinusOne
	}
	part := rotate(delta.translation, math.Atan2(-halfDTheta, halfThetaByTanOfHalfDTheta)).
		Mul(math.Hypot(halfThetaByTanOfHalfDTheta, halfDTheta))
	return Twist{Dx: part.X, Dy: part.Y, DTheta: dTheta}
}

func (p Pose) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.2f°)", p.translation.X, p.translation.Y, utils.RadToDeg(p.heading))
}

// PoseBetween returns the pose of to expressed in the local frame of from.
func PoseBetween(from, to Pose) Pose {
	return from.Inverse().TransformBy(to)
}

// PoseAlmostEqual returns whether two poses agree in position and heading within tol.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	return a.Distance(b) <= tol && math.Abs(ShortestAngleBetween(a.heading, b.heading)) <= tol
}

func rotate(v r2.Point, theta float64) r2.Point {
	sin, cos := math.Sincos(theta)
	return r2.Point{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}
