package cli

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/urfave/cli/v2"

	"go.viam.com/trajgen/playback"
	"go.viam.com/trajgen/trajectory"
)

// ReplayAction prints one reference state per control period, in real time.
func (ta *trajgenApp) ReplayAction(c *cli.Context) error {
	req, traj, err := ta.singleTrajectory(c)
	if err != nil {
		return err
	}
	period := c.Duration(replayFlagPeriod)
	player, err := playback.NewPlayer(clock.New(), period, ta.logger.Sublogger(req.name))
	if err != nil {
		return err
	}
	if period.Seconds() > traj.Duration() {
		warningf(c.App.ErrWriter, "%s: period %v is longer than the whole trajectory (%.3f s)", req.name, period, traj.Duration())
	}

	delivered, err := player.Run(c.Context, traj, func(_ context.Context, s trajectory.TimedState) error {
		printf(c.App.Writer, "%s", s)
		return nil
	})
	if err != nil {
		return err
	}
	ta.logger.Infow("replay finished", "name", req.name, "states", delivered, "duration", traj.Duration())
	return nil
}
