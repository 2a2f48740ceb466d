package cli

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/trajgen/trajectory"
)

// ProfileAction graphs velocity or acceleration against time.
func (ta *trajgenApp) ProfileAction(c *cli.Context) error {
	req, traj, err := ta.singleTrajectory(c)
	if err != nil {
		return err
	}
	width, height := c.Int(profileFlagWidth), c.Int(profileFlagHeight)
	if width < 2 || height < 1 {
		return errors.Errorf("graph must be at least 2 samples wide and 1 row high, got %dx%d", width, height)
	}

	quantity := "velocity (m/s)"
	value := func(s trajectory.TimedState) float64 { return s.Velocity }
	if c.Bool(profileFlagAcceleration) {
		quantity = "acceleration (m/s²)"
		value = func(s trajectory.TimedState) float64 { return s.Acceleration }
	}

	data := profileSeries(traj, width, value)
	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("%s %s over %.2f s", req.name, quantity, traj.Duration())),
	)
	printf(c.App.Writer, "%s", graph)
	return nil
}

// profileSeries samples value at n evenly spaced times across the trajectory.
func profileSeries(traj *trajectory.Trajectory, n int, value func(trajectory.TimedState) float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		tm := traj.Duration() * float64(i) / float64(n-1)
		data[i] = value(traj.SampleAtTime(tm))
	}
	return data
}
