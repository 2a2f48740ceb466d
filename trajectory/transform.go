package trajectory

import "go.viam.com/trajgen/spatialmath"

// Mirror returns the trajectory reflected across the field X axis, e.g. to run a path planned for
// one side of a symmetric field on the other. Timing is unchanged.
func Mirror(traj *Trajectory) *Trajectory {
	return mapStates(traj, func(s TimedState) TimedState {
		s.CurvedPose = s.CurvedPose.Mirror()
		return s
	})
}

// Transform returns the trajectory with every pose re-expressed in the frame located at base,
// e.g. to replay a path defined relative to the robot's start from wherever it actually starts.
func Transform(traj *Trajectory, base spatialmath.Pose) *Trajectory {
	return mapStates(traj, func(s TimedState) TimedState {
		s.CurvedPose = s.CurvedPose.TransformedBy(base)
		return s
	})
}

func mapStates(traj *Trajectory, fn func(TimedState) TimedState) *Trajectory {
	out := make([]TimedState, traj.Len())
	for i, s := range traj.states {
		out[i] = fn(s)
	}
	return &Trajectory{states: out}
}
