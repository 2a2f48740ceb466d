package spline

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/trajgen/spatialmath"
	"go.viam.com/trajgen/utils"
)

// minParameterSpan bounds subdivision depth: a range narrower than this that still violates the
// thresholds can only come from a cusp in the curve.
const minParameterSpan = 1.0 / (1 << 30)

// SamplerConfig bounds the error of treating consecutive samples as connected by a straight line.
// Each accepted interval, viewed from its first sample, advances at most MaxDx, drifts sideways at
// most MaxDy and turns at most MaxDTheta radians.
type SamplerConfig struct {
	MaxDx     float64
	MaxDy     float64
	MaxDTheta float64
}

// DefaultSamplerConfig returns the thresholds used when none are given.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{
		MaxDx:     0.17,
		MaxDy:     0.02,
		MaxDTheta: utils.DegToRad(5),
	}
}

// Validate ensures all thresholds are positive and finite.
func (cfg SamplerConfig) Validate() error {
	var err error
	check := func(name string, v float64) {
		if !(v > 0) || !utils.IsFinite(v) {
			err = multierr.Append(err, errors.Errorf("sampler %s must be positive, got %v", name, v))
		}
	}
	check("max_dx", cfg.MaxDx)
	check("max_dy", cfg.MaxDy)
	check("max_dtheta", cfg.MaxDTheta)
	return err
}

func (cfg SamplerConfig) accepts(delta spatialmath.Pose) bool {
	return math.Abs(delta.X()) <= cfg.MaxDx &&
		math.Abs(delta.Y()) <= cfg.MaxDy &&
		math.Abs(delta.Heading()) <= cfg.MaxDTheta
}

type parameterRange struct {
	t0, t1 float64
}

// ParameterizeSegments samples every segment, in order, into a single dense sequence. A sample
// shared by two consecutive segments appears once.
func ParameterizeSegments(segments []*QuinticHermite, cfg SamplerConfig) ([]spatialmath.CurvedPose, error) {
	if len(segments) == 0 {
		return nil, NewDegenerateSplineError("no segments to sample")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	first := segments[0].CurvedPose(0)
	if err := checkSample(first, 0, 0); err != nil {
		return nil, err
	}
	samples := []spatialmath.CurvedPose{first}
	for i, s := range segments {
		var err error
		samples, err = parameterizeSegment(s, cfg, i, samples)
		if err != nil {
			return nil, err
		}
	}
	return samples, nil
}

// parameterizeSegment appends the end point of every accepted parameter range of s to out. Ranges
// are split at their midpoint on an explicit stack, lower half first, so samples come out ordered
// by parameter and the depth of work is bounded without recursion.
func parameterizeSegment(
	s *QuinticHermite,
	cfg SamplerConfig,
	index int,
	out []spatialmath.CurvedPose,
) ([]spatialmath.CurvedPose, error) {
	stack := []parameterRange{{0, 1}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		delta := spatialmath.PoseBetween(s.Pose(r.t0), s.Pose(r.t1))
		if !cfg.accepts(delta) {
			if r.t1-r.t0 < minParameterSpan {
				return nil, NewDegenerateSplineError("segment %d does not converge near t=%.6f", index, r.t0)
			}
			mid := 0.5 * (r.t0 + r.t1)
			stack = append(stack, parameterRange{mid, r.t1}, parameterRange{r.t0, mid})
			continue
		}

		sample := s.CurvedPose(r.t1)
		if err := checkSample(sample, index, r.t1); err != nil {
			return nil, err
		}
		out = append(out, sample)
	}
	return out, nil
}

func checkSample(sample spatialmath.CurvedPose, index int, t float64) error {
	if !utils.IsFinite(sample.Curvature) || !utils.IsFinite(sample.DCurvatureDs) ||
		!utils.IsFinite(sample.X()) || !utils.IsFinite(sample.Y()) {
		return NewDegenerateSplineError("segment %d has undefined tangent at t=%.6f", index, t)
	}
	return nil
}

// Sample fits waypoints and returns the dense curvature-annotated sample sequence through them.
// When optimizeCurvature is set the interior waypoint second derivatives are smoothed first.
func Sample(waypoints []spatialmath.Pose, cfg SamplerConfig, optimizeCurvature bool) ([]spatialmath.CurvedPose, error) {
	segments, err := Fit(waypoints)
	if err != nil {
		return nil, err
	}
	if optimizeCurvature {
		segments, _, _, err = OptimizeCurvature(segments)
		if err != nil {
			return nil, err
		}
	}
	return ParameterizeSegments(segments, cfg)
}
