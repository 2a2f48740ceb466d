package spatialmath

import "fmt"

// CurvedPose is a pose on a path annotated with the path's signed curvature (1/turning radius,
// positive turning left) and the rate of change of that curvature per unit arc length.
type CurvedPose struct {
	Pose
	Curvature    float64
	DCurvatureDs float64
}

// NewCurvedPose returns a CurvedPose.
func NewCurvedPose(pose Pose, curvature, dCurvatureDs float64) CurvedPose {
	return CurvedPose{Pose: pose, Curvature: curvature, DCurvatureDs: dCurvatureDs}
}

// Interpolate returns the state a fraction by of the way from c to to, interpolating curvature
// and its derivative linearly alongside the pose.
func (c CurvedPose) Interpolate(to CurvedPose, by float64) CurvedPose {
	return CurvedPose{
		Pose:         c.Pose.Interpolate(to.Pose, by),
		Curvature:    lerp(c.Curvature, to.Curvature, by),
		DCurvatureDs: lerp(c.DCurvatureDs, to.DCurvatureDs, by),
	}
}

// FlipCurvature returns c with curvature and its derivative negated and the pose untouched.
func (c CurvedPose) FlipCurvature() CurvedPose {
	return CurvedPose{Pose: c.Pose, Curvature: -c.Curvature, DCurvatureDs: -c.DCurvatureDs}
}

// Mirror reflects the state across the field X axis. Turning direction flips with it.
func (c CurvedPose) Mirror() CurvedPose {
	return CurvedPose{Pose: c.Pose.Mirror(), Curvature: -c.Curvature, DCurvatureDs: -c.DCurvatureDs}
}

// TransformedBy re-expresses the state in a frame located at base. Rigid motions leave curvature
// unchanged.
func (c CurvedPose) TransformedBy(base Pose) CurvedPose {
	return CurvedPose{Pose: base.TransformBy(c.Pose), Curvature: c.Curvature, DCurvatureDs: c.DCurvatureDs}
}

func (c CurvedPose) String() string {
	return fmt.Sprintf("%s k=%.4f dk/ds=%.4f", c.Pose, c.Curvature, c.DCurvatureDs)
}

func lerp(a, b, by float64) float64 {
	return a + (b-a)*by
}
