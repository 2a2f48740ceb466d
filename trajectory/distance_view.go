package trajectory

import (
	"sort"

	"github.com/pkg/errors"

	"go.viam.com/trajgen/spatialmath"
)

// DistanceView indexes a dense sequence of path samples by cumulative arc length, treating
// consecutive samples as joined by straight lines.
type DistanceView struct {
	states    []spatialmath.CurvedPose
	distances []float64
}

// NewDistanceView computes cumulative arc length over samples. The samples are copied.
func NewDistanceView(samples []spatialmath.CurvedPose) (*DistanceView, error) {
	if len(samples) == 0 {
		return nil, errors.New("distance view needs at least one sample")
	}
	states := make([]spatialmath.CurvedPose, len(samples))
	copy(states, samples)
	distances := make([]float64, len(samples))
	for i := 1; i < len(states); i++ {
		distances[i] = distances[i-1] + states[i-1].Distance(states[i].Pose)
	}
	return &DistanceView{states: states, distances: distances}, nil
}

// Len returns the number of samples.
func (v *DistanceView) Len() int {
	return len(v.states)
}

// Length returns the arc length of the last sample.
func (v *DistanceView) Length() float64 {
	return v.distances[len(v.distances)-1]
}

// State returns sample i.
func (v *DistanceView) State(i int) spatialmath.CurvedPose {
	return v.states[i]
}

// Distance returns the arc length at sample i.
func (v *DistanceView) Distance(i int) float64 {
	return v.distances[i]
}

// Sample returns the interpolated state at arc length s. Values outside [0, Length()] clamp to
// the nearest end: integration can step a hair past either end through rounding.
func (v *DistanceView) Sample(s float64) spatialmath.CurvedPose {
	if s <= 0 {
		return v.states[0]
	}
	if s >= v.Length() {
		return v.states[len(v.states)-1]
	}
	i := sort.SearchFloat64s(v.distances, s)
	if v.distances[i] == s {
		return v.states[i]
	}
	prev := i - 1
	span := v.distances[i] - v.distances[prev]
	if span <= 0 {
		return v.states[i]
	}
	return v.states[prev].Interpolate(v.states[i], (s-v.distances[prev])/span)
}
