// Package trajectory holds time-parameterized paths and the queries a path follower runs against
// them. A Trajectory never changes after construction, so any number of goroutines may read it
// concurrently.
package trajectory

import (
	"sort"

	"github.com/pkg/errors"
)

// Trajectory is an immutable, time-ordered sequence of timed states starting at time 0 and arc
// length 0.
type Trajectory struct {
	states []TimedState
}

// New returns a trajectory over a copy of states. States must be non-empty, start at time 0 and
// distance 0, and be non-decreasing in both.
func New(states []TimedState) (*Trajectory, error) {
	if len(states) == 0 {
		return nil, errors.New("trajectory needs at least one state")
	}
	if states[0].Time != 0 || states[0].Distance != 0 {
		return nil, errors.Errorf("trajectory must start at t=0 s=0, got t=%v s=%v", states[0].Time, states[0].Distance)
	}
	for i := 1; i < len(states); i++ {
		if states[i].Time < states[i-1].Time {
			return nil, errors.Errorf("time decreases at state %d", i)
		}
		if states[i].Distance < states[i-1].Distance {
			return nil, errors.Errorf("distance decreases at state %d", i)
		}
	}
	owned := make([]TimedState, len(states))
	copy(owned, states)
	return &Trajectory{states: owned}, nil
}

// Len returns the number of states.
func (t *Trajectory) Len() int {
	return len(t.states)
}

// State returns state i.
func (t *Trajectory) State(i int) TimedState {
	return t.states[i]
}

// States returns a copy of every state.
func (t *Trajectory) States() []TimedState {
	out := make([]TimedState, len(t.states))
	copy(out, t.states)
	return out
}

// First returns the first state.
func (t *Trajectory) First() TimedState {
	return t.states[0]
}

// Last returns the last state.
func (t *Trajectory) Last() TimedState {
	return t.states[len(t.states)-1]
}

// Duration returns the time of the last state.
func (t *Trajectory) Duration() float64 {
	return t.Last().Time
}

// Length returns the arc length of the last state.
func (t *Trajectory) Length() float64 {
	return t.Last().Distance
}

// SampleAtTime returns the state at time tm, interpolated between the two states that bracket it.
// Times before the start return the first state and times at or after the end return the last.
func (t *Trajectory) SampleAtTime(tm float64) TimedState {
	if tm <= 0 {
		return t.First()
	}
	if tm >= t.Duration() {
		return t.Last()
	}
	i := sort.Search(len(t.states), func(i int) bool { return t.states[i].Time >= tm })
	return t.interpolate(i, tm, t.states[i-1].Time, t.states[i].Time)
}

// SampleAtDistance returns the state at arc length s, interpolated the same way as SampleAtTime.
func (t *Trajectory) SampleAtDistance(s float64) TimedState {
	if s <= 0 {
		return t.First()
	}
	if s >= t.Length() {
		return t.Last()
	}
	i := sort.Search(len(t.states), func(i int) bool { return t.states[i].Distance >= s })
	return t.interpolate(i, s, t.states[i-1].Distance, t.states[i].Distance)
}

// interpolate blends states i-1 and i by where key falls in [lo, hi].
func (t *Trajectory) interpolate(i int, key, lo, hi float64) TimedState {
	if key == hi || hi <= lo {
		return t.states[i]
	}
	return t.states[i-1].Interpolate(t.states[i], (key-lo)/(hi-lo))
}
