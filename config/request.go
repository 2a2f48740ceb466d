// Package config defines the file format for trajectory requests and turns parsed files into
// generator requests.
package config

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/trajgen/generator"
	"go.viam.com/trajgen/spatialmath"
	"go.viam.com/trajgen/spline"
	"go.viam.com/trajgen/timing"
	"go.viam.com/trajgen/utils"
)

// Waypoint is a pose the path must pass through. Headings are in degrees.
type Waypoint struct {
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
	HeadingDegs float64 `json:"heading_degs" yaml:"heading_degs"`
}

// Pose returns the waypoint as a pose with its heading in radians.
func (w Waypoint) Pose() spatialmath.Pose {
	return spatialmath.NewPoseFromDegrees(w.X, w.Y, w.HeadingDegs)
}

// Constraint names a registered timing constraint and the attributes to build it from.
type Constraint struct {
	Type       string                 `json:"type" yaml:"type"`
	Attributes map[string]interface{} `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Validate ensures the constraint names a registered type.
func (c Constraint) Validate(path string) error {
	if c.Type == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "type")
	}
	if !lo.Contains(timing.RegisteredConstraints(), c.Type) {
		return utils.NewConfigValidationError(path, errors.Errorf("unknown constraint type %q", c.Type))
	}
	return nil
}

// Sampler overrides the path sampling thresholds. The heading threshold is in degrees.
type Sampler struct {
	MaxDx         float64 `json:"max_dx" yaml:"max_dx"`
	MaxDy         float64 `json:"max_dy" yaml:"max_dy"`
	MaxDThetaDegs float64 `json:"max_dtheta_degs" yaml:"max_dtheta_degs"`
}

func (s Sampler) samplerConfig() spline.SamplerConfig {
	return spline.SamplerConfig{
		MaxDx:     s.MaxDx,
		MaxDy:     s.MaxDy,
		MaxDTheta: utils.DegToRad(s.MaxDThetaDegs),
	}
}

// Request is the on-disk form of a trajectory request.
type Request struct {
	// Name labels the trajectory in output. Read defaults it to the file name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Waypoints   []Waypoint   `json:"waypoints" yaml:"waypoints"`
	Constraints []Constraint `json:"constraints,omitempty" yaml:"constraints,omitempty"`

	Reversed        bool    `json:"reversed,omitempty" yaml:"reversed,omitempty"`
	StartVelocity   float64 `json:"start_velocity,omitempty" yaml:"start_velocity,omitempty"`
	EndVelocity     float64 `json:"end_velocity,omitempty" yaml:"end_velocity,omitempty"`
	MaxVelocity     float64 `json:"max_velocity" yaml:"max_velocity"`
	MaxAcceleration float64 `json:"max_acceleration" yaml:"max_acceleration"`

	Sampler           *Sampler `json:"sampler,omitempty" yaml:"sampler,omitempty"`
	StepSize          float64  `json:"step_size,omitempty" yaml:"step_size,omitempty"`
	OptimizeCurvature bool     `json:"optimize_curvature,omitempty" yaml:"optimize_curvature,omitempty"`
}

// Validate checks the shape of the request: enough waypoints, positive limits and known
// constraint types. Every problem found is reported.
func (r *Request) Validate() error {
	var err error
	if len(r.Waypoints) == 0 {
		err = multierr.Append(err, utils.NewConfigValidationFieldRequiredError("", "waypoints"))
	} else if len(r.Waypoints) == 1 {
		err = multierr.Append(err, utils.NewConfigValidationError("waypoints", errors.New("at least 2 waypoints are required")))
	}
	if r.MaxVelocity <= 0 {
		err = multierr.Append(err, utils.NewConfigValidationFieldRequiredError("", "max_velocity"))
	}
	if r.MaxAcceleration <= 0 {
		err = multierr.Append(err, utils.NewConfigValidationFieldRequiredError("", "max_acceleration"))
	}
	if r.Sampler != nil {
		if sErr := r.Sampler.samplerConfig().Validate(); sErr != nil {
			err = multierr.Append(err, utils.NewConfigValidationError("sampler", sErr))
		}
	}
	for i, c := range r.Constraints {
		err = multierr.Append(err, c.Validate(fmt.Sprintf("constraints.%d", i)))
	}
	return err
}

// Build validates the request and converts it into a generator request, constructing each
// constraint from the registry.
func (r *Request) Build() (generator.Request, error) {
	if err := r.Validate(); err != nil {
		return generator.Request{}, err
	}
	constraints := make([]timing.Constraint, 0, len(r.Constraints))
	for i, c := range r.Constraints {
		built, err := timing.BuildConstraint(c.Type, c.Attributes)
		if err != nil {
			return generator.Request{}, utils.NewConfigValidationError(fmt.Sprintf("constraints.%d", i), err)
		}
		constraints = append(constraints, built)
	}

	req := generator.Request{
		Waypoints:         lo.Map(r.Waypoints, func(w Waypoint, _ int) spatialmath.Pose { return w.Pose() }),
		Constraints:       constraints,
		StartVelocity:     r.StartVelocity,
		EndVelocity:       r.EndVelocity,
		MaxVelocity:       r.MaxVelocity,
		MaxAcceleration:   r.MaxAcceleration,
		Reversed:          r.Reversed,
		StepSize:          r.StepSize,
		OptimizeCurvature: r.OptimizeCurvature,
	}
	if r.Sampler != nil {
		req.Sampler = r.Sampler.samplerConfig()
	}
	if err := req.Validate(); err != nil {
		return generator.Request{}, err
	}
	return req, nil
}
