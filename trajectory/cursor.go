package trajectory

import (
	"math"

	"go.viam.com/trajgen/utils"
)

// Cursor walks a trajectory forward in time, one control period at a time. It never moves past
// the end and never wraps around. A Cursor is not safe for concurrent use; give each follower its
// own.
type Cursor struct {
	traj    *Trajectory
	offset  float64
	current TimedState
}

// NewCursor returns a cursor positioned at the start of traj.
func NewCursor(traj *Trajectory) *Cursor {
	return &Cursor{traj: traj, current: traj.First()}
}

// Advance moves the cursor dt seconds forward and returns the state there along with whether the
// end of the trajectory has been reached. Negative dt is treated as zero.
func (c *Cursor) Advance(dt float64) (TimedState, bool) {
	c.offset = c.clamp(c.offset + math.Max(dt, 0))
	c.current = c.traj.SampleAtTime(c.offset)
	return c.current, c.Done()
}

// Preview returns the state dt seconds ahead of the cursor without moving it.
func (c *Cursor) Preview(dt float64) TimedState {
	return c.traj.SampleAtTime(c.clamp(c.offset + dt))
}

// Reset moves the cursor back to the start of the trajectory.
func (c *Cursor) Reset() {
	c.offset = 0
	c.current = c.traj.First()
}

// Done returns whether the cursor has reached the end of the trajectory.
func (c *Cursor) Done() bool {
	return c.offset >= c.traj.Duration()
}

// Time returns the cursor's offset from the start of the trajectory.
func (c *Cursor) Time() float64 {
	return c.offset
}

// Remaining returns the time left until the end of the trajectory.
func (c *Cursor) Remaining() float64 {
	return c.traj.Duration() - c.offset
}

// Current returns the state at the cursor.
func (c *Cursor) Current() TimedState {
	return c.current
}

// Trajectory returns the trajectory the cursor walks.
func (c *Cursor) Trajectory() *Trajectory {
	return c.traj
}

func (c *Cursor) clamp(tm float64) float64 {
	return utils.Clamp(tm, 0, c.traj.Duration())
}
