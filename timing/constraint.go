// Package timing assigns velocities, accelerations and timestamps to a sampled path subject to a
// list of constraints.
package timing

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/trajgen/spatialmath"
)

// Constraint bounds the velocity and acceleration a trajectory may have at a path state.
// Velocities passed in and returned are magnitudes; direction of travel is applied afterwards.
// Implementations return +Inf (or -Inf for a minimum) where they impose no bound.
type Constraint interface {
	MaxVelocity(state spatialmath.CurvedPose) float64
	MinMaxAcceleration(state spatialmath.CurvedPose, velocity float64) (float64, float64)
}

type validator interface {
	Validate() error
}

func unboundedAcceleration() (float64, float64) {
	return math.Inf(-1), math.Inf(1)
}

// VelocityLimit caps speed everywhere on the path.
type VelocityLimit struct {
	Max float64 `json:"max"`
}

// MaxVelocity returns the configured cap.
func (c *VelocityLimit) MaxVelocity(spatialmath.CurvedPose) float64 {
	return c.Max
}

// MinMaxAcceleration imposes no bound.
func (c *VelocityLimit) MinMaxAcceleration(spatialmath.CurvedPose, float64) (float64, float64) {
	return unboundedAcceleration()
}

// Validate checks the cap is usable.
func (c *VelocityLimit) Validate() error {
	if !(c.Max > 0) || math.IsInf(c.Max, 1) {
		return errors.Errorf("max must be positive and finite, got %v", c.Max)
	}
	return nil
}

// CentripetalAcceleration limits lateral acceleration v²·|κ| on curved parts of the path.
type CentripetalAcceleration struct {
	MaxAcceleration float64 `json:"max_acceleration"`
}

// MaxVelocity returns sqrt(MaxAcceleration / |κ|), or +Inf on straight sections.
func (c *CentripetalAcceleration) MaxVelocity(state spatialmath.CurvedPose) float64 {
	if state.Curvature == 0 {
		return math.Inf(1)
	}
	return math.Sqrt(c.MaxAcceleration / math.Abs(state.Curvature))
}

// MinMaxAcceleration imposes no bound.
func (c *CentripetalAcceleration) MinMaxAcceleration(spatialmath.CurvedPose, float64) (float64, float64) {
	return unboundedAcceleration()
}

// Validate checks the limit is usable.
func (c *CentripetalAcceleration) Validate() error {
	if !(c.MaxAcceleration > 0) {
		return errors.Errorf("max_acceleration must be positive, got %v", c.MaxAcceleration)
	}
	return nil
}

// AccelerationLimit bounds longitudinal acceleration to [Min, Max] everywhere. Min is normally
// negative.
type AccelerationLimit struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MaxVelocity imposes no bound.
func (c *AccelerationLimit) MaxVelocity(spatialmath.CurvedPose) float64 {
	return math.Inf(1)
}

// MinMaxAcceleration returns the configured range.
func (c *AccelerationLimit) MinMaxAcceleration(spatialmath.CurvedPose, float64) (float64, float64) {
	return c.Min, c.Max
}

// VelocityLimitRegion slows the robot down inside an axis-aligned rectangle of the field.
type VelocityLimitRegion struct {
	MinX     float64 `json:"min_x"`
	MinY     float64 `json:"min_y"`
	MaxX     float64 `json:"max_x"`
	MaxY     float64 `json:"max_y"`
	Velocity float64 `json:"velocity"`
}

// Contains returns whether pose lies inside the region, boundary included.
func (c *VelocityLimitRegion) Contains(pose spatialmath.Pose) bool {
	return pose.X() >= c.MinX && pose.X() <= c.MaxX && pose.Y() >= c.MinY && pose.Y() <= c.MaxY
}

// MaxVelocity returns the region's cap inside it and +Inf outside.
func (c *VelocityLimitRegion) MaxVelocity(state spatialmath.CurvedPose) float64 {
	if c.Contains(state.Pose) {
		return c.Velocity
	}
	return math.Inf(1)
}

// MinMaxAcceleration imposes no bound.
func (c *VelocityLimitRegion) MinMaxAcceleration(spatialmath.CurvedPose, float64) (float64, float64) {
	return unboundedAcceleration()
}

// Validate checks the rectangle and cap.
func (c *VelocityLimitRegion) Validate() error {
	var err error
	if c.MinX > c.MaxX {
		err = multierr.Append(err, errors.Errorf("min_x %v is greater than max_x %v", c.MinX, c.MaxX))
	}
	if c.MinY > c.MaxY {
		err = multierr.Append(err, errors.Errorf("min_y %v is greater than max_y %v", c.MinY, c.MaxY))
	}
	if !(c.Velocity > 0) || math.IsInf(c.Velocity, 1) {
		err = multierr.Append(err, errors.Errorf("velocity must be positive and finite, got %v", c.Velocity))
	}
	return err
}

// DifferentialDrive keeps the outer wheel of a differential-drive robot of the given track width
// under MaxWheelVelocity. Driving at v along curvature κ, the outer wheel moves at
// v·(1 + |κ|·TrackWidth/2).
type DifferentialDrive struct {
	TrackWidth       float64 `json:"track_width"`
	MaxWheelVelocity float64 `json:"max_wheel_velocity"`
}

// MaxVelocity returns the fastest chassis speed that keeps both wheels under the limit.
func (c *DifferentialDrive) MaxVelocity(state spatialmath.CurvedPose) float64 {
	return c.MaxWheelVelocity / (1 + math.Abs(state.Curvature)*c.TrackWidth/2)
}

// MinMaxAcceleration imposes no bound.
func (c *DifferentialDrive) MinMaxAcceleration(spatialmath.CurvedPose, float64) (float64, float64) {
	return unboundedAcceleration()
}

// Validate checks the drive geometry.
func (c *DifferentialDrive) Validate() error {
	var err error
	if !(c.TrackWidth > 0) {
		err = multierr.Append(err, errors.Errorf("track_width must be positive, got %v", c.TrackWidth))
	}
	if !(c.MaxWheelVelocity > 0) {
		err = multierr.Append(err, errors.Errorf("max_wheel_velocity must be positive, got %v", c.MaxWheelVelocity))
	}
	return err
}

// CombineVelocity returns the velocity ceiling at state: the smallest of maxVelocity and every
// constraint's MaxVelocity.
func CombineVelocity(state spatialmath.CurvedPose, maxVelocity float64, constraints []Constraint) float64 {
	ceiling := maxVelocity
	for _, c := range constraints {
		ceiling = math.Min(ceiling, c.MaxVelocity(state))
	}
	return ceiling
}

// CombineAcceleration intersects [-maxAcceleration, maxAcceleration] with the range of every
// constraint evaluated at state and velocity. An empty or undefined intersection is reported as
// ErrInfeasibleConstraints.
func CombineAcceleration(
	state spatialmath.CurvedPose,
	velocity, maxAcceleration float64,
	constraints []Constraint,
) (float64, float64, error) {
	minAccel, maxAccel := -maxAcceleration, maxAcceleration
	for _, c := range constraints {
		lo, hi := c.MinMaxAcceleration(state, velocity)
		minAccel = math.Max(minAccel, lo)
		maxAccel = math.Min(maxAccel, hi)
	}
	if math.IsNaN(minAccel) || math.IsNaN(maxAccel) {
		return 0, 0, NewInfeasibleConstraintsError("undefined acceleration range at %s", state)
	}
	if minAccel > maxAccel {
		return 0, 0, NewInfeasibleConstraintsError("empty acceleration range [%v, %v] at %s", minAccel, maxAccel, state)
	}
	return minAccel, maxAccel, nil
}
