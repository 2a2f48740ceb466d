package trajectory

import (
	"fmt"

	"go.viam.com/trajgen/spatialmath"
)

// TimedState is a path sample annotated with its arc length from the start of the trajectory,
// the time it is reached, and the signed velocity and acceleration along the path there. Negative
// velocity means the robot is driving backwards.
type TimedState struct {
	spatialmath.CurvedPose
	Distance     float64
	Time         float64
	Velocity     float64
	Acceleration float64
}

// Interpolate returns the state a fraction by of the way from s to to. Position, curvature,
// distance, time and velocity are interpolated linearly and heading along the shorter arc.
// Acceleration is constant over an interval, so the earlier state's value is kept.
func (s TimedState) Interpolate(to TimedState, by float64) TimedState {
	if by <= 0 {
		return s
	}
	if by >= 1 {
		return to
	}
	return TimedState{
		CurvedPose:   s.CurvedPose.Interpolate(to.CurvedPose, by),
		Distance:     s.Distance + (to.Distance-s.Distance)*by,
		Time:         s.Time + (to.Time-s.Time)*by,
		Velocity:     s.Velocity + (to.Velocity-s.Velocity)*by,
		Acceleration: s.Acceleration,
	}
}

// Twist returns the body velocity a differential-steer robot needs to track this state: forward
// speed and the yaw rate implied by the path curvature. It is the feed-forward term of a follower.
func (s TimedState) Twist() spatialmath.Twist {
	return spatialmath.Twist{Dx: s.Velocity, DTheta: s.Velocity * s.Curvature}
}

func (s TimedState) String() string {
	return fmt.Sprintf("t=%.3f s=%.3f %s v=%.3f a=%.3f", s.Time, s.Distance, s.CurvedPose, s.Velocity, s.Acceleration)
}
