// Package generator turns waypoints into time-parameterized trajectories, running the spline,
// sampling and timing stages in order.
package generator

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"go.viam.com/trajgen/logging"
	"go.viam.com/trajgen/spatialmath"
	"go.viam.com/trajgen/spline"
	"go.viam.com/trajgen/timing"
	"go.viam.com/trajgen/trajectory"
)

// Request is everything needed to generate one trajectory. Requests and the constraints they
// reference are only read, so they may be shared between concurrent generations.
type Request struct {
	Waypoints   []spatialmath.Pose
	Constraints []timing.Constraint

	StartVelocity   float64
	EndVelocity     float64
	MaxVelocity     float64
	MaxAcceleration float64
	Reversed        bool

	// Sampler bounds the spacing of path samples. The zero value means spline.DefaultSamplerConfig.
	Sampler spline.SamplerConfig
	// StepSize, when positive, resamples the path at uniform arc-length spacing before timing.
	StepSize float64
	// OptimizeCurvature smooths how curvature changes across interior waypoints before sampling.
	OptimizeCurvature bool
}

func (r Request) sampler() spline.SamplerConfig {
	if r.Sampler == (spline.SamplerConfig{}) {
		return spline.DefaultSamplerConfig()
	}
	return r.Sampler
}

func (r Request) options() timing.Options {
	return timing.Options{
		StartVelocity:   r.StartVelocity,
		EndVelocity:     r.EndVelocity,
		MaxVelocity:     r.MaxVelocity,
		MaxAcceleration: r.MaxAcceleration,
		Reversed:        r.Reversed,
		StepSize:        r.StepSize,
	}
}

// Validate checks the limits and sampler settings of the request. Waypoint problems are left to
// the spline fit, which reports them as spline.ErrDegenerateSpline.
func (r Request) Validate() error {
	var err error
	if r.Sampler != (spline.SamplerConfig{}) {
		err = multierr.Append(err, r.Sampler.Validate())
	}
	err = multierr.Append(err, r.options().Validate())
	for i, c := range r.Constraints {
		if c == nil {
			err = multierr.Append(err, errors.Errorf("constraint %d is nil", i))
		}
	}
	return err
}

// FlipWaypoints turns every waypoint around in place by half a revolution. Fitting the flipped
// waypoints and driving the result backwards retraces the original path.
func FlipWaypoints(waypoints []spatialmath.Pose) []spatialmath.Pose {
	return lo.Map(waypoints, func(p spatialmath.Pose, _ int) spatialmath.Pose {
		return p.TransformBy(spatialmath.NewPose(0, 0, math.Pi))
	})
}

// Generate fits, samples and times a path through the request's waypoints. On failure no
// trajectory is returned: errors wrap spline.ErrDegenerateSpline or timing.ErrInfeasibleConstraints
// where those apply.
func Generate(logger logging.Logger, req Request) (*trajectory.Trajectory, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid trajectory request")
	}

	waypoints := req.Waypoints
	if req.Reversed {
		waypoints = FlipWaypoints(waypoints)
	}

	segments, err := spline.Fit(waypoints)
	if err != nil {
		return nil, err
	}
	if req.OptimizeCurvature {
		var before, after float64
		segments, before, after, err = spline.OptimizeCurvature(segments)
		if err != nil {
			return nil, err
		}
		logger.Debugw("optimized spline curvature", "cost_before", before, "cost_after", after)
	}

	samples, err := spline.ParameterizeSegments(segments, req.sampler())
	if err != nil {
		return nil, err
	}
	view, err := trajectory.NewDistanceView(samples)
	if err != nil {
		return nil, err
	}

	traj, err := timing.Parameterize(view, req.Constraints, req.options())
	if err != nil {
		return nil, err
	}
	logger.Debugw("generated trajectory",
		"waypoints", len(req.Waypoints),
		"samples", view.Len(),
		"states", traj.Len(),
		"length", traj.Length(),
		"duration", traj.Duration(),
		"reversed", req.Reversed,
	)
	return traj, nil
}

// GenerateAll generates a trajectory for every request concurrently and returns them in request
// order. The first failure cancels the requests that have not started and is returned with the
// index of the request that caused it.
func GenerateAll(ctx context.Context, logger logging.Logger, reqs []Request) ([]*trajectory.Trajectory, error) {
	trajs := make([]*trajectory.Trajectory, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			traj, err := Generate(logger, req)
			if err != nil {
				return errors.Wrapf(err, "request %d", i)
			}
			trajs[i] = traj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trajs, nil
}
