package timing

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/trajgen/spatialmath"
	"go.viam.com/trajgen/trajectory"
	"go.viam.com/trajgen/utils"
)

// accelerationTolerance absorbs the rounding of recovering accelerations from squared velocities.
const accelerationTolerance = 1e-6

// Options are the global limits and boundary conditions of a time parameterization.
type Options struct {
	// StartVelocity and EndVelocity are speeds, so non-negative, in either direction of travel.
	StartVelocity float64
	EndVelocity   float64
	// MaxVelocity and MaxAcceleration bound speed and the magnitude of acceleration everywhere.
	MaxVelocity     float64
	MaxAcceleration float64
	// Reversed marks a path generated from waypoints rotated by half a turn, to be driven backwards.
	Reversed bool
	// StepSize, when positive, resamples the path at that arc-length spacing before integrating.
	StepSize float64
}

// Validate returns every problem with the options at once.
func (o Options) Validate() error {
	var err error
	if !(o.MaxVelocity > 0) || math.IsInf(o.MaxVelocity, 0) {
		err = multierr.Append(err, errors.Errorf("max velocity must be positive and finite, got %v", o.MaxVelocity))
	}
	if !(o.MaxAcceleration > 0) || math.IsInf(o.MaxAcceleration, 0) {
		err = multierr.Append(err, errors.Errorf("max acceleration must be positive and finite, got %v", o.MaxAcceleration))
	}
	if !(o.StartVelocity >= 0) || math.IsInf(o.StartVelocity, 0) {
		err = multierr.Append(err, errors.Errorf("start velocity must be non-negative and finite, got %v", o.StartVelocity))
	}
	if !(o.EndVelocity >= 0) || math.IsInf(o.EndVelocity, 0) {
		err = multierr.Append(err, errors.Errorf("end velocity must be non-negative and finite, got %v", o.EndVelocity))
	}
	if !(o.StepSize >= 0) || math.IsInf(o.StepSize, 0) {
		err = multierr.Append(err, errors.Errorf("step size must be non-negative and finite, got %v", o.StepSize))
	}
	return err
}

// IsDwell returns whether a step between two consecutive velocities covers no time: the robot is
// stopped at both ends, so the average-velocity rule would divide by zero.
func IsDwell(v0, v1 float64) bool {
	return utils.Float64AlmostEqual(v0+v1, 0)
}

// Parameterize computes a velocity profile along view that respects the constraints and options,
// then integrates it into a trajectory.
//
// A forward pass accelerates as hard as allowed from the start velocity and a backward pass does
// the same from the end velocity; each sample keeps the lower of the two. The result is never
// clipped into feasibility: if a constraint cannot be met anywhere, the whole call fails with
// ErrInfeasibleConstraints.
func Parameterize(view *trajectory.DistanceView, constraints []Constraint, opts Options) (*trajectory.Trajectory, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.StepSize > 0 {
		var err error
		if view, err = resample(view, opts.StepSize); err != nil {
			return nil, err
		}
	}

	n := view.Len()
	ceilings := make([]float64, n)
	for i := range ceilings {
		ceilings[i] = CombineVelocity(view.State(i), opts.MaxVelocity, constraints)
		if math.IsNaN(ceilings[i]) || ceilings[i] < 0 {
			return nil, NewInfeasibleConstraintsError("velocity ceiling %v at sample %d", ceilings[i], i)
		}
	}

	forward := make([]float64, n)
	forward[0] = math.Min(opts.StartVelocity, ceilings[0])
	for i := 0; i < n-1; i++ {
		_, maxAccel, err := CombineAcceleration(view.State(i), forward[i], opts.MaxAcceleration, constraints)
		if err != nil {
			return nil, errors.Wrapf(err, "forward pass at sample %d", i)
		}
		reachable, err := reachableVelocity(forward[i], maxAccel, view.Distance(i+1)-view.Distance(i))
		if err != nil {
			return nil, errors.Wrapf(err, "forward pass at sample %d", i)
		}
		forward[i+1] = math.Min(ceilings[i+1], reachable)
	}

	backward := make([]float64, n)
	backward[n-1] = math.Min(opts.EndVelocity, ceilings[n-1])
	for i := n - 1; i > 0; i-- {
		reachable, err := brakingVelocity(view, i, backward[i], ceilings[i-1], opts.MaxAcceleration, constraints)
		if err != nil {
			return nil, errors.Wrapf(err, "backward pass at sample %d", i)
		}
		backward[i-1] = math.Min(ceilings[i-1], reachable)
	}

	velocities := make([]float64, n)
	for i := range velocities {
		velocities[i] = math.Min(forward[i], backward[i])
	}

	states := make([]trajectory.TimedState, n)
	elapsed := 0.0
	for i := range states {
		if i > 0 {
			elapsed += stepDuration(velocities[i-1], velocities[i], view.Distance(i)-view.Distance(i-1))
		}
		states[i] = trajectory.TimedState{
			CurvedPose: view.State(i),
			Distance:   view.Distance(i),
			Time:       elapsed,
			Velocity:   velocities[i],
		}
	}
	for i := 0; i < n-1; i++ {
		ds := view.Distance(i+1) - view.Distance(i)
		if ds > 0 {
			states[i].Acceleration = (utils.Square(velocities[i+1]) - utils.Square(velocities[i])) / (2 * ds)
		}
	}
	if n > 1 {
		states[n-1].Acceleration = states[n-2].Acceleration
	}
	if err := checkAccelerations(states, opts.MaxAcceleration, constraints); err != nil {
		return nil, err
	}

	if opts.Reversed {
		for i := range states {
			states[i].CurvedPose = states[i].CurvedPose.FlipCurvature()
			states[i].Velocity = -states[i].Velocity
			states[i].Acceleration = -states[i].Acceleration
		}
	}
	return trajectory.New(states)
}

// brakingVelocity returns the fastest speed at sample i-1 from which the robot can still slow down
// to v at sample i. The step's deceleration is stored on sample i-1, so it must respect the braking
// bounds there as well as at sample i.
func brakingVelocity(
	view *trajectory.DistanceView,
	i int,
	v, ceiling, maxAcceleration float64,
	constraints []Constraint,
) (float64, error) {
	ds := view.Distance(i) - view.Distance(i-1)
	minAccel, _, err := CombineAcceleration(view.State(i), v, maxAcceleration, constraints)
	if err != nil {
		return 0, err
	}
	reachable, err := reachableVelocity(v, -minAccel, ds)
	if err != nil {
		return 0, err
	}
	prevMinAccel, _, err := CombineAcceleration(view.State(i-1), math.Min(ceiling, reachable), maxAcceleration, constraints)
	if err != nil {
		return 0, err
	}
	if prevMinAccel <= minAccel {
		return reachable, nil
	}
	return reachableVelocity(v, -prevMinAccel, ds)
}

// checkAccelerations fails if the acceleration of any step falls outside the range the constraints
// allow at the step's first sample. The last state only repeats the final step, so it is skipped.
func checkAccelerations(states []trajectory.TimedState, maxAcceleration float64, constraints []Constraint) error {
	for i := 0; i < len(states)-1; i++ {
		s := states[i]
		minAccel, maxAccel, err := CombineAcceleration(s.CurvedPose, s.Velocity, maxAcceleration, constraints)
		if err != nil {
			return errors.Wrapf(err, "checking sample %d", i)
		}
		if s.Acceleration < minAccel-accelerationTolerance || s.Acceleration > maxAccel+accelerationTolerance {
			return NewInfeasibleConstraintsError(
				"acceleration %v at sample %d is outside [%v, %v] at %s", s.Acceleration, i, minAccel, maxAccel, s.CurvedPose)
		}
	}
	return nil
}

// reachableVelocity returns the speed reached from v after accelerating at accel over ds.
func reachableVelocity(v, accel, ds float64) (float64, error) {
	squared := utils.Square(v) + 2*accel*ds
	if squared < 0 || math.IsNaN(squared) {
		return 0, NewInfeasibleConstraintsError("cannot keep moving from %v at acceleration %v over %v", v, accel, ds)
	}
	return math.Sqrt(squared), nil
}

func stepDuration(v0, v1, ds float64) float64 {
	if IsDwell(v0, v1) {
		return 0
	}
	return 2 * ds / (v0 + v1)
}

// resample returns a view of the same path sampled every step along its length, plus its end.
func resample(view *trajectory.DistanceView, step float64) (*trajectory.DistanceView, error) {
	length := view.Length()
	count := int(math.Ceil(length/step - utils.Epsilon))
	samples := make([]spatialmath.CurvedPose, 0, count+1)
	for i := 0; i < count; i++ {
		samples = append(samples, view.Sample(float64(i)*step))
	}
	samples = append(samples, view.Sample(length))
	return trajectory.NewDistanceView(samples)
}
