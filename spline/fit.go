package spline

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/optimize"

	"go.viam.com/trajgen/spatialmath"
)

// Fit returns one quintic Hermite segment per consecutive pair of waypoints.
func Fit(waypoints []spatialmath.Pose) ([]*QuinticHermite, error) {
	if len(waypoints) < 2 {
		return nil, NewDegenerateSplineError("need at least 2 waypoints, got %d", len(waypoints))
	}
	segments := make([]*QuinticHermite, 0, len(waypoints)-1)
	for i := 1; i < len(waypoints); i++ {
		segment, err := NewQuinticHermite(waypoints[i-1], waypoints[i])
		if err != nil {
			return nil, errors.Wrapf(err, "segment %d", i-1)
		}
		segments = append(segments, segment)
	}
	return segments, nil
}

// curvatureCost sums the squared curvature rate over every segment.
func curvatureCost(segments []*QuinticHermite) float64 {
	cost := 0.0
	for _, s := range segments {
		cost += s.sumDCurvature2()
	}
	return cost
}

// withInteriorSecondDerivatives rebuilds segments so that interior junction j (between segment j
// and j+1) carries the normalized second derivative n = (x[2j], x[2j+1]). Each neighbor uses
// n*|v|^2 with its own tangent magnitude |v|, so both sides see the same curvature at the
// junction. The path endpoints keep their existing values.
func withInteriorSecondDerivatives(segments []*QuinticHermite, x []float64) []*QuinticHermite {
	out := make([]*QuinticHermite, len(segments))
	for i, s := range segments {
		start := s.StartSecondDerivative()
		end := s.EndSecondDerivative()
		if i > 0 {
			n := r2.Point{X: x[2*(i-1)], Y: x[2*(i-1)+1]}
			start = n.Mul(s.Velocity(0).Dot(s.Velocity(0)))
		}
		if i < len(segments)-1 {
			n := r2.Point{X: x[2*i], Y: x[2*i+1]}
			end = n.Mul(s.Velocity(1).Dot(s.Velocity(1)))
		}
		out[i] = s.withSecondDerivatives(start, end)
	}
	return out
}

// OptimizeCurvature adjusts the second derivatives at interior waypoints to reduce how sharply
// curvature changes along the path, and returns the smoothed segments together with the cost
// before and after. Paths with fewer than two segments have no free parameters and are returned
// as is. The search is a deterministic Nelder-Mead minimization, so identical inputs always
// produce identical curves.
func OptimizeCurvature(segments []*QuinticHermite) ([]*QuinticHermite, float64, float64, error) {
	initial := curvatureCost(segments)
	if len(segments) < 2 {
		return segments, initial, initial, nil
	}

	x0 := make([]float64, 2*(len(segments)-1))
	for j := 0; j < len(segments)-1; j++ {
		v := segments[j].Velocity(1)
		n := segments[j].EndSecondDerivative().Mul(1 / v.Dot(v))
		x0[2*j] = n.X
		x0[2*j+1] = n.Y
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			cost := curvatureCost(withInteriorSecondDerivatives(segments, x))
			if math.IsNaN(cost) {
				return math.Inf(1)
			}
			return cost
		},
	}
	// n has units of curvature; start the simplex at a tenth of the mean chord's inverse.
	chord := 0.0
	for _, s := range segments {
		chord += s.Position(0).Sub(s.Position(1)).Norm()
	}
	method := &optimize.NelderMead{SimplexSize: 0.1 * float64(len(segments)) / chord}
	settings := &optimize.Settings{
		MajorIterations: 500,
		FuncEvaluations: 5000,
	}

	result, err := optimize.Minimize(problem, x0, settings, method)
	if result == nil {
		return nil, initial, initial, errors.Wrap(err, "optimizing spline curvature")
	}
	// Iteration and evaluation limits still leave the best location found in result.
	if !(result.F < initial) {
		return segments, initial, initial, nil
	}
	return withInteriorSecondDerivatives(segments, result.X), initial, result.F, nil
}
