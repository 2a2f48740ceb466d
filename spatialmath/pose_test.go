package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestNormalizeAngle(t *testing.T) {
	test.That(t, math.Abs(NormalizeAngle(3*math.Pi)), test.ShouldAlmostEqual, math.Pi)
	test.That(t, math.Abs(NormalizeAngle(-math.Pi)), test.ShouldAlmostEqual, math.Pi)
	test.That(t, NormalizeAngle(-3*math.Pi/2), test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, NormalizeAngle(0.25), test.ShouldAlmostEqual, 0.25)
}

func TestShortestAngleBetween(t *testing.T) {
	from := 170 * math.Pi / 180
	to := -170 * math.Pi / 180
	test.That(t, ShortestAngleBetween(from, to), test.ShouldAlmostEqual, 20*math.Pi/180)
	test.That(t, ShortestAngleBetween(to, from), test.ShouldAlmostEqual, -20*math.Pi/180)

	mid := InterpolateAngle(from, to, 0.5)
	test.That(t, math.Abs(mid), test.ShouldAlmostEqual, math.Pi)
}

func TestPoseComposition(t *testing.T) {
	base := NewPoseFromDegrees(1, 2, 90)
	local := NewPose(3, 0, 0)

	world := base.TransformBy(local)
	test.That(t, world.X(), test.ShouldAlmostEqual, 1)
	test.That(t, world.Y(), test.ShouldAlmostEqual, 5)
	test.That(t, world.Heading(), test.ShouldAlmostEqual, math.Pi/2)

	t.Run("inverse", func(t *testing.T) {
		identity := base.TransformBy(base.Inverse())
		test.That(t, PoseAlmostEqual(identity, NewZeroPose(), 1e-12), test.ShouldBeTrue)
	})

	t.Run("pose between", func(t *testing.T) {
		delta := PoseBetween(base, world)
		test.That(t, PoseAlmostEqual(delta, local, 1e-12), test.ShouldBeTrue)
		test.That(t, PoseAlmostEqual(world.RelativeTo(base), local, 1e-12), test.ShouldBeTrue)
	})

	t.Run("reversed keeps position", func(t *testing.T) {
		flipped := base.Reversed()
		test.That(t, flipped.X(), test.ShouldAlmostEqual, base.X())
		test.That(t, flipped.Y(), test.ShouldAlmostEqual, base.Y())
		test.That(t, flipped.Heading(), test.ShouldAlmostEqual, -math.Pi/2)
	})
}

func TestPoseInterpolate(t *testing.T) {
	a := NewPoseFromDegrees(0, 0, 170)
	b := NewPoseFromDegrees(2, 4, -170)

	mid := a.Interpolate(b, 0.5)
	test.That(t, mid.X(), test.ShouldAlmostEqual, 1)
	test.That(t, mid.Y(), test.ShouldAlmostEqual, 2)
	test.That(t, math.Abs(mid.Heading()), test.ShouldAlmostEqual, math.Pi)

	test.That(t, a.Interpolate(b, -1), test.ShouldResemble, a)
	test.That(t, a.Interpolate(b, 2), test.ShouldResemble, b)
}

func TestPoseMirror(t *testing.T) {
	p := NewPoseFromDegrees(3, 4, 30).Mirror()
	test.That(t, p.X(), test.ShouldAlmostEqual, 3)
	test.That(t, p.Y(), test.ShouldAlmostEqual, -4)
	test.That(t, p.Heading(), test.ShouldAlmostEqual, -math.Pi/6)
}

func TestTwistExpLog(t *testing.T) {
	for _, tc := range []struct {
		name  string
		twist Twist
	}{
		{"straight", Twist{Dx: 2}},
		{"arc", Twist{Dx: 1, DTheta: math.Pi / 2}},
		{"tiny rotation", Twist{Dx: 1, Dy: 0.1, DTheta: 1e-12}},
		{"spin", Twist{DTheta: 1}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			start := NewPoseFromDegrees(1, -1, 45)
			end := start.Exp(tc.twist)
			back := start.Log(end)
			test.That(t, back.Dx, test.ShouldAlmostEqual, tc.twist.Dx, 1e-9)
			test.That(t, back.Dy, test.ShouldAlmostEqual, tc.twist.Dy, 1e-9)
			test.That(t, back.DTheta, test.ShouldAlmostEqual, tc.twist.DTheta, 1e-9)
		})
	}

	t.Run("quarter circle", func(t *testing.T) {
		// unit radius left turn, a quarter of the way around
		end := NewZeroPose().Exp(Twist{Dx: math.Pi / 2, DTheta: math.Pi / 2})
		test.That(t, PoseAlmostEqual(end, NewPose(1, 1, math.Pi/2), 1e-9), test.ShouldBeTrue)
	})
}

func TestTwistCurvature(t *testing.T) {
	test.That(t, Twist{Dx: 2, DTheta: 1}.Curvature(), test.ShouldAlmostEqual, 0.5)
	test.That(t, Twist{Dx: -2, DTheta: 1}.Curvature(), test.ShouldAlmostEqual, -0.5)
	test.That(t, Twist{DTheta: 1}.Curvature(), test.ShouldEqual, 0)
	test.That(t, Twist{Dx: 1, DTheta: 2}.Scaled(0.5), test.ShouldResemble, Twist{Dx: 0.5, DTheta: 1})
}

func TestCurvedPose(t *testing.T) {
	a := NewCurvedPose(NewPose(0, 0, 0), 0.5, 0.1)
	b := NewCurvedPose(NewPose(1, 0, 0), 1.5, 0.3)

	mid := a.Interpolate(b, 0.5)
	test.That(t, mid.X(), test.ShouldAlmostEqual, 0.5)
	test.That(t, mid.Curvature, test.ShouldAlmostEqual, 1.0)
	test.That(t, mid.DCurvatureDs, test.ShouldAlmostEqual, 0.2)

	flipped := a.FlipCurvature()
	test.That(t, flipped.Pose, test.ShouldResemble, a.Pose)
	test.That(t, flipped.Curvature, test.ShouldEqual, -0.5)
	test.That(t, flipped.DCurvatureDs, test.ShouldEqual, -0.1)

	moved := a.TransformedBy(NewPose(1, 1, math.Pi/2))
	test.That(t, moved.Curvature, test.ShouldEqual, a.Curvature)
	test.That(t, moved.X(), test.ShouldAlmostEqual, 1)
	test.That(t, moved.Heading(), test.ShouldAlmostEqual, math.Pi/2)
}
