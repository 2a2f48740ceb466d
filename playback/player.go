// Package playback replays a trajectory in real time, one reference state per control period,
// the way a path follower consumes it.
package playback

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"go.viam.com/trajgen/logging"
	"go.viam.com/trajgen/trajectory"
)

// DefaultPeriod is a typical control loop period.
const DefaultPeriod = 20 * time.Millisecond

// Sink receives each reference state in order.
type Sink func(ctx context.Context, state trajectory.TimedState) error

// Player steps a cursor through a trajectory once per tick of a clock. It is open loop: it never
// looks at where the robot actually is.
type Player struct {
	clock  clock.Clock
	period time.Duration
	logger logging.Logger
}

// NewPlayer returns a player that ticks every period on clk.
func NewPlayer(clk clock.Clock, period time.Duration, logger logging.Logger) (*Player, error) {
	if period <= 0 {
		return nil, errors.Errorf("playback period must be positive, got %v", period)
	}
	return &Player{clock: clk, period: period, logger: logger}, nil
}

// Run hands the first state of traj to sink immediately and then one state per period until the
// end of the trajectory, which is always delivered. It returns how many states were delivered.
// Run stops early if ctx is done or sink fails.
func (p *Player) Run(ctx context.Context, traj *trajectory.Trajectory, sink Sink) (int, error) {
	cursor := trajectory.NewCursor(traj)
	ticker := p.clock.Ticker(p.period)
	defer ticker.Stop()

	if err := sink(ctx, cursor.Current()); err != nil {
		return 0, errors.Wrap(err, "delivering initial state")
	}
	delivered := 1
	for !cursor.Done() {
		select {
		case <-ctx.Done():
			p.logger.Debugw("playback interrupted", "time", cursor.Time(), "delivered", delivered)
			return delivered, ctx.Err()
		case <-ticker.C:
		}

		state, _ := cursor.Advance(p.period.Seconds())
		if err := sink(ctx, state); err != nil {
			return delivered, errors.Wrapf(err, "delivering state at t=%.3f", state.Time)
		}
		delivered++
	}
	p.logger.Debugw("playback finished", "duration", traj.Duration(), "delivered", delivered)
	return delivered, nil
}
